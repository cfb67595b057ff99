package solver

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/agriplan/cropalloc/pkg/core"
)

// Raw is the untyped outcome of one solve: a status and, when optimal, one
// value per variable in program column order plus the solver-reported
// objective. The planner recomputes report totals itself and uses
// Objective only for logging.
type Raw struct {
	Status    core.SolveStatus
	Values    []float64
	Objective float64
}

// Solver is the opaque LP collaborator. Implementations must treat the
// program as data: never mutate it, never interpret its domain meaning.
// A returned error is an adapter fault; infeasibility and unboundedness
// are statuses, not errors.
type Solver interface {
	Solve(ctx context.Context, prog *Program) (*Raw, error)
}

// Simplex solves programs with gonum's dense simplex method.
type Simplex struct {
	// Tol is the convergence tolerance passed to the solver; zero selects
	// the gonum default.
	Tol float64
}

// NewSimplex returns a Simplex with default tolerance.
func NewSimplex() *Simplex {
	return &Simplex{}
}

// Solve converts prog to the standard form the simplex method expects
// (minimize c^T x subject to Ax = b, x >= 0) by negating the maximization
// objective and adding one slack variable per <= row, then maps the solver
// outcome to a status. Formulation is O(rows x variables) and effectively
// instantaneous next to the solve itself, so the context is checked once
// before the blocking call rather than threaded through it.
func (s *Simplex) Solve(ctx context.Context, prog *Program) (*Raw, error) {
	if prog == nil {
		return nil, fmt.Errorf("program cannot be nil")
	}
	n := len(prog.Variables)
	m := len(prog.Constraints)
	if n == 0 || m == 0 {
		return nil, fmt.Errorf("malformed program: %d variables, %d constraints", n, m)
	}

	index := make(map[core.VariableKey]int, n)
	for i, k := range prog.Variables {
		index[k] = i
	}

	c := make([]float64, n+m)
	for k, coeff := range prog.Objective {
		i, ok := index[k]
		if !ok {
			return nil, fmt.Errorf("objective references unknown variable %s", k)
		}
		c[i] = -coeff
	}

	a := mat.NewDense(m, n+m, nil)
	b := make([]float64, m)
	for row, constraint := range prog.Constraints {
		for k, coeff := range constraint.Coeffs {
			i, ok := index[k]
			if !ok {
				return nil, fmt.Errorf("constraint %q references unknown variable %s", constraint.Name, k)
			}
			a.Set(row, i, coeff)
		}
		a.Set(row, n+row, 1)
		b[row] = constraint.Bound
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opt, x, err := lp.Simplex(c, a, b, s.Tol, nil)
	switch {
	case err == nil:
		values := make([]float64, n)
		copy(values, x[:n])
		return &Raw{Status: core.StatusOptimal, Values: values, Objective: -opt}, nil
	case errors.Is(err, lp.ErrInfeasible):
		return &Raw{Status: core.StatusInfeasible}, nil
	case errors.Is(err, lp.ErrUnbounded):
		return &Raw{Status: core.StatusUnbounded}, nil
	default:
		return nil, fmt.Errorf("simplex solve failed: %w", err)
	}
}
