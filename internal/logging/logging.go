// Package logging configures the structured logger used across the
// optimizer: zap behind the logr interface, with verbosity levels for
// routine pipeline tracing.
package logging

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels used with logr's V().
const (
	INFO  = 0
	DEBUG = 1
	TRACE = 2
)

var global = logr.Discard()

// New builds a logr.Logger backed by zap. verbosity selects the most
// verbose V-level emitted; development switches to the human-readable
// console encoding.
func New(verbosity int, development bool) logr.Logger {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity)) //nolint:gosec // verbosity is a small flag value
	z, err := cfg.Build()
	if err != nil {
		return logr.Discard()
	}
	return zapr.NewLogger(z)
}

// SetLogger installs the process-wide default logger.
func SetLogger(l logr.Logger) {
	global = l
}

// Logger returns the process-wide default logger.
func Logger() logr.Logger {
	return global
}

// NewTestLogger installs a development logger at TRACE verbosity and
// returns it. Test suites call this once in their setup.
func NewTestLogger() logr.Logger {
	l := New(TRACE, true)
	SetLogger(l)
	return l
}

// FromContext returns the logger stored in ctx, falling back to the
// process-wide default.
func FromContext(ctx context.Context) logr.Logger {
	if l, err := logr.FromContext(ctx); err == nil {
		return l
	}
	return global
}

// IntoContext returns a copy of ctx carrying l.
func IntoContext(ctx context.Context, l logr.Logger) context.Context {
	return logr.NewContext(ctx, l)
}
