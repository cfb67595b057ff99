package planner

import (
	"fmt"
	"math"
	"sort"

	"github.com/agriplan/cropalloc/internal/objective"
	"github.com/agriplan/cropalloc/pkg/core"
	"github.com/agriplan/cropalloc/pkg/solver"
)

// bindingTol is the relative slack below which a constraint row counts as
// binding at the optimum.
const bindingTol = 1e-6

// buildReport translates the raw solver outcome into a typed report. It is
// a pure function of its inputs: the same raw output always produces an
// identical report.
func buildReport(builder *objective.Builder, prog *solver.Program, raw *solver.Raw) core.AllocationReport {
	switch raw.Status {
	case core.StatusOptimal:
		return buildOptimalReport(builder, prog, raw)
	case core.StatusInfeasible:
		return core.AllocationReport{
			Status:  core.StatusInfeasible,
			Message: "no allocation satisfies all resource constraints",
		}
	case core.StatusUnbounded:
		return core.AllocationReport{
			Status:  core.StatusUnbounded,
			Message: "objective is unbounded; a positive-score variable has no limiting constraint",
		}
	default:
		return core.AllocationReport{
			Status:  core.StatusError,
			Message: fmt.Sprintf("solver returned unknown status %q", raw.Status),
		}
	}
}

func buildOptimalReport(builder *objective.Builder, prog *solver.Program, raw *solver.Raw) core.AllocationReport {
	if len(raw.Values) != len(prog.Variables) {
		// A value vector of the wrong length is an adapter fault: a
		// missing value is only coalesced to zero on a well-formed
		// optimal result, never guessed at.
		return core.AllocationReport{
			Status: core.StatusError,
			Message: fmt.Sprintf("solver returned %d values for %d variables",
				len(raw.Values), len(prog.Variables)),
		}
	}

	allocation := make(map[string]map[string]float64)
	var totals core.Totals
	for i, key := range prog.Variables {
		area := roundArea(raw.Values[i])
		if allocation[key.Field] == nil {
			allocation[key.Field] = make(map[string]float64)
		}
		allocation[key.Field][key.Crop] = area

		// Totals come from the rounded allocation with the formula's own
		// per-unit terms, so the summary always matches the table.
		t := builder.TermsFor(key)
		totals.AdjustedProfit += t.Profit * area
		totals.Sustainability += t.Secondary * area
		totals.Objective += t.Score * area
	}

	return core.AllocationReport{
		Status:     core.StatusOptimal,
		Allocation: allocation,
		Totals:     totals,
		Binding:    bindingFamilies(prog, raw.Values),
	}
}

// roundArea rounds to the documented reporting precision of 2 decimal
// places of hectares. The rounded value is never fed back into a re-solve.
func roundArea(v float64) float64 {
	if v < 0 {
		v = 0
	}
	return math.Round(v*100) / 100
}

// bindingFamilies returns the families of rows the raw optimum saturates.
func bindingFamilies(prog *solver.Program, values []float64) []core.ConstraintFamily {
	index := make(map[core.VariableKey]int, len(prog.Variables))
	for i, k := range prog.Variables {
		index[k] = i
	}

	seen := make(map[core.ConstraintFamily]struct{})
	var families []core.ConstraintFamily
	for _, row := range prog.Constraints {
		var lhs float64
		for k, coeff := range row.Coeffs {
			lhs += coeff * values[index[k]]
		}
		if row.Bound-lhs <= bindingTol*(1+math.Abs(row.Bound)) {
			if _, dup := seen[row.Family]; !dup {
				seen[row.Family] = struct{}{}
				families = append(families, row.Family)
			}
		}
	}
	sort.Slice(families, func(i, j int) bool { return families[i] < families[j] })
	return families
}
