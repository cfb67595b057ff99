// Command cropalloc solves a crop allocation scenario and prints the
// resulting land assignment, or serves the optimizer as an HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/agriplan/cropalloc/internal/logging"
	"github.com/agriplan/cropalloc/internal/planner"
	"github.com/agriplan/cropalloc/internal/server"
	"github.com/agriplan/cropalloc/pkg/config"
	"github.com/agriplan/cropalloc/pkg/core"
)

func main() {
	flags := pflag.NewFlagSet("cropalloc", pflag.ExitOnError)
	flags.String("scenario", "", "path to the scenario YAML file")
	flags.String("formula", "", "override the scenario's score formula (blend, penalty, hybrid-cost)")
	flags.Bool("serve", false, "serve the HTTP API instead of a one-shot run")
	flags.String("addr", ":8080", "HTTP listen address")
	flags.Int("verbosity", 0, "log verbosity (0=info, 1=debug, 2=trace)")
	flags.Bool("development", false, "human-readable log output")
	_ = flags.Parse(os.Args[1:])

	app, err := config.LoadApp(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	logger := logging.New(app.Verbosity, app.Development)
	logging.SetLogger(logger)

	pl := planner.New(nil)

	if app.Serve {
		if err := server.New(pl, logger).Run(app.Addr); err != nil {
			logger.Error(err, "server exited")
			os.Exit(1)
		}
		return
	}

	if app.ScenarioPath == "" {
		fmt.Fprintln(os.Stderr, "error: --scenario is required (or use --serve)")
		os.Exit(1)
	}

	scenario, err := config.LoadScenario(app.ScenarioPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	params, err := scenario.Parameters()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	formula := scenario.ScoreFormula()
	if app.Formula != "" {
		scenario.Formula = app.Formula
		if err := scenario.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		formula = scenario.ScoreFormula()
	}

	ctx := logging.IntoContext(context.Background(), logger)
	result, err := pl.Run(ctx, planner.Request{
		Params:  params,
		Weights: scenario.Weights,
		Formula: formula,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	printResult(result, params)
	if result.Report.Status != core.StatusOptimal {
		os.Exit(2)
	}
}

func printResult(result *planner.Result, params *core.Parameters) {
	report := result.Report
	fmt.Printf("run %s  formula=%s  status=%s  (%s)\n",
		result.RunID, result.Formula, report.Status, result.Elapsed)

	switch report.Status {
	case core.StatusOptimal:
		printAllocationTable(&report, params)
		fmt.Printf("\ntotal adjusted profit:  %s\n", humanize.Commaf(report.Totals.AdjustedProfit))
		fmt.Printf("weighted secondary:     %s\n", humanize.Commaf(report.Totals.Sustainability))
		fmt.Printf("objective value:        %s\n", humanize.Commaf(report.Totals.Objective))
		if len(report.Binding) > 0 {
			fmt.Printf("binding constraints:    %v\n", report.Binding)
		}
	default:
		fmt.Println(report.Message)
	}
}

// printAllocationTable renders the field x crop hectare table.
func printAllocationTable(report *core.AllocationReport, params *core.Parameters) {
	crops := params.Crops()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	header := "field"
	for _, c := range crops {
		header += "\t" + c.Name
	}
	fmt.Fprintln(w, header)

	fieldNames := make([]string, 0, len(report.Allocation))
	for name := range report.Allocation {
		fieldNames = append(fieldNames, name)
	}
	sort.Strings(fieldNames)
	for _, field := range fieldNames {
		row := field
		for _, c := range crops {
			row += fmt.Sprintf("\t%.2f", report.Area(field, c.Name))
		}
		fmt.Fprintln(w, row)
	}
	_ = w.Flush()
}
