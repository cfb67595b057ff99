package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// App holds the runtime settings of the CLI and HTTP server, resolved from
// flags, CROPALLOC_* environment variables and defaults, in that priority.
type App struct {
	// ScenarioPath is the scenario YAML file to load.
	ScenarioPath string `mapstructure:"scenario"`

	// Formula overrides the scenario's score formula when non-empty.
	Formula string `mapstructure:"formula"`

	// Serve starts the HTTP API instead of a one-shot run.
	Serve bool `mapstructure:"serve"`

	// Addr is the HTTP listen address.
	Addr string `mapstructure:"addr"`

	// Verbosity is the log verbosity (0=info, 1=debug, 2=trace).
	Verbosity int `mapstructure:"verbosity"`

	// Development switches logging to the console encoding.
	Development bool `mapstructure:"development"`
}

// LoadApp binds the given flag set into viper and resolves the app
// settings. Flags win over environment variables, which win over defaults.
func LoadApp(flags *pflag.FlagSet) (*App, error) {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("verbosity", 0)
	v.SetEnvPrefix("CROPALLOC")
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	var app App
	if err := v.Unmarshal(&app); err != nil {
		return nil, fmt.Errorf("resolve settings: %w", err)
	}
	if app.Verbosity < 0 {
		return nil, fmt.Errorf("verbosity must be >= 0, got %d", app.Verbosity)
	}
	return &app, nil
}
