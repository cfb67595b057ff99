package solver

import (
	"fmt"

	"github.com/agriplan/cropalloc/pkg/core"
)

// Program is one solver-ready linear program: a maximization objective and
// a set of <= rows over an ordered variable set. Every variable is
// implicitly continuous and non-negative.
type Program struct {
	// Variables fixes the column order of the program.
	Variables []core.VariableKey

	// Objective maps each variable to its maximization coefficient.
	Objective map[core.VariableKey]float64

	// Constraints are the inequality rows.
	Constraints []core.ResourceConstraint
}

// NewProgram binds an objective and constraint rows into one program,
// verifying the index-set invariant: the objective and every row must
// reference exactly the given variable set, no orphans in either
// direction. A mismatch is a programming-contract violation between the
// builders, not a runtime input error.
func NewProgram(variables []core.VariableKey, objective map[core.VariableKey]float64, rows []core.ResourceConstraint) (*Program, error) {
	if len(variables) == 0 {
		return nil, fmt.Errorf("program has no decision variables")
	}
	index := make(map[core.VariableKey]struct{}, len(variables))
	for _, k := range variables {
		if _, dup := index[k]; dup {
			return nil, fmt.Errorf("duplicate decision variable %s", k)
		}
		index[k] = struct{}{}
	}

	if len(objective) != len(variables) {
		return nil, fmt.Errorf("objective covers %d variables, program has %d", len(objective), len(variables))
	}
	for k := range objective {
		if _, ok := index[k]; !ok {
			return nil, fmt.Errorf("objective references unknown variable %s", k)
		}
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("program has no constraint rows")
	}
	for _, row := range rows {
		for k := range row.Coeffs {
			if _, ok := index[k]; !ok {
				return nil, fmt.Errorf("constraint %q references unknown variable %s", row.Name, k)
			}
		}
	}

	return &Program{Variables: variables, Objective: objective, Constraints: rows}, nil
}

// ZeroForced returns the variables forced to exactly zero by zero-bound
// rows whose coefficients are all positive over their scope, together with
// the forcing constraint families. With only <= rows and non-negative
// variables the empty allocation is always feasible, so when ZeroForced
// covers the whole variable set the program is vacuous: nothing can be
// planted at all, which the planner reports as infeasible.
func (p *Program) ZeroForced() (map[core.VariableKey]struct{}, []core.ConstraintFamily) {
	forced := make(map[core.VariableKey]struct{})
	var families []core.ConstraintFamily
	seen := make(map[core.ConstraintFamily]struct{})

	for _, row := range p.Constraints {
		if row.Bound != 0 || len(row.Coeffs) == 0 {
			continue
		}
		allPositive := true
		for _, c := range row.Coeffs {
			if c <= 0 {
				allPositive = false
				break
			}
		}
		if !allPositive {
			continue
		}
		for k := range row.Coeffs {
			forced[k] = struct{}{}
		}
		if _, dup := seen[row.Family]; !dup {
			seen[row.Family] = struct{}{}
			families = append(families, row.Family)
		}
	}
	return forced, families
}
