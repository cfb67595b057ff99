// Package planner orchestrates one optimization run: build the objective,
// build the constraints, bind them into a program, invoke the solver and
// translate the raw outcome into an allocation report.
//
// Construction-time violations (invalid parameters, empty index set) fail
// as Go errors before any solver call. Solver-time outcomes, including
// infeasibility and unboundedness, are never errors; they come back as
// report statuses so callers can present them as recoverable conditions.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agriplan/cropalloc/internal/constraints"
	"github.com/agriplan/cropalloc/internal/logging"
	"github.com/agriplan/cropalloc/internal/metrics"
	"github.com/agriplan/cropalloc/internal/objective"
	"github.com/agriplan/cropalloc/pkg/core"
	"github.com/agriplan/cropalloc/pkg/solver"
)

// Request describes one optimization run over an immutable parameter set.
type Request struct {
	Params  *core.Parameters
	Weights core.Weights
	Formula objective.Formula
}

// Result wraps the report with run metadata. Metadata lives here, outside
// the report, so report extraction stays a pure function of the raw solver
// output: extracting the same raw output twice yields identical reports.
type Result struct {
	// RunID uniquely identifies the run.
	RunID string `json:"runId"`

	// Formula is the score formula the run used.
	Formula objective.Formula `json:"formula"`

	// Elapsed is the wall-clock duration of formulation plus solve.
	Elapsed time.Duration `json:"elapsed"`

	// Report is the typed outcome.
	Report core.AllocationReport `json:"report"`
}

// Planner runs the formulation pipeline against a solver.
type Planner struct {
	solver solver.Solver
}

// New returns a Planner using the given solver; nil selects the default
// gonum simplex.
func New(s solver.Solver) *Planner {
	if s == nil {
		s = solver.NewSimplex()
	}
	return &Planner{solver: s}
}

// Run executes one formulation+solve cycle. The returned error is non-nil
// only for construction-time violations and caller cancellation; every
// solver-time outcome, including adapter faults, is a report status.
func (p *Planner) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	if req.Params == nil {
		return nil, fmt.Errorf("%w: no parameters", core.ErrInvalidParameter)
	}

	builder, err := objective.NewBuilder(req.Params, req.Weights, req.Formula)
	if err != nil {
		return nil, err
	}
	rows, err := constraints.NewBuilder(req.Params).Build()
	if err != nil {
		return nil, err
	}

	prog, err := solver.NewProgram(req.Params.Variables(), builder.Coefficients(), rows)
	if err != nil {
		// Index-set mismatch between the builders is a contract violation,
		// not an input error; surfaced as a defect with the program shape.
		logger.Error(err, "malformed program",
			"variables", len(req.Params.Variables()),
			"constraints", len(rows))
		return p.finish(builder, start, core.AllocationReport{
			Status:  core.StatusError,
			Message: err.Error(),
		}), nil
	}

	// An all-<= program over non-negative variables always admits the
	// empty allocation, so a zero budget never makes the solver itself
	// infeasible. When zero-bound rows force every variable to zero the
	// run cannot plant anything: report infeasible without solving.
	if forced, families := prog.ZeroForced(); len(forced) == len(prog.Variables) {
		logger.V(logging.DEBUG).Info("program is vacuous, skipping solve",
			"forcingFamilies", families)
		return p.finish(builder, start, core.AllocationReport{
			Status:  core.StatusInfeasible,
			Binding: families,
			Message: "zero resource budgets force an empty allocation",
		}), nil
	}

	raw, err := p.solver.Solve(ctx, prog)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		logger.Error(err, "solver fault",
			"variables", len(prog.Variables),
			"constraints", len(prog.Constraints))
		return p.finish(builder, start, core.AllocationReport{
			Status:  core.StatusError,
			Message: err.Error(),
		}), nil
	}

	report := buildReport(builder, prog, raw)
	logger.V(logging.DEBUG).Info("run complete",
		"status", report.Status,
		"objective", report.Totals.Objective,
		"elapsed", time.Since(start))
	return p.finish(builder, start, report), nil
}

func (p *Planner) finish(builder *objective.Builder, start time.Time, report core.AllocationReport) *Result {
	elapsed := time.Since(start)
	metrics.ObserveRun(report.Status, elapsed)
	return &Result{
		RunID:   uuid.NewString(),
		Formula: builder.Formula(),
		Elapsed: elapsed,
		Report:  report,
	}
}

// RunVariants solves the same parameters under several weight
// configurations concurrently. Parameters are immutable, so concurrent
// read-only reuse is safe; results come back in input order.
func (p *Planner) RunVariants(ctx context.Context, params *core.Parameters, formula objective.Formula, variants []core.Weights) ([]*Result, error) {
	results := make([]*Result, len(variants))
	g, ctx := errgroup.WithContext(ctx)
	for i, w := range variants {
		g.Go(func() error {
			res, err := p.Run(ctx, Request{Params: params, Weights: w, Formula: formula})
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
