// Package solver defines the linear-program contract consumed by the
// planner and binds it to a concrete simplex implementation.
//
// The contract is deliberately narrow: a maximization objective over
// implicitly non-negative continuous variables, a list of <= inequality
// rows, and a status plus one value per variable on success. Any correct
// general-purpose LP solver satisfies it; the package never evaluates the
// program itself.
//
// Key components:
//
//   - Program: solver-ready objective + constraint rows over an ordered
//     variable set
//   - Solver: the opaque collaborator interface
//   - Simplex: the default implementation, backed by
//     gonum.org/v1/gonum/optimize/convex/lp
//
// Example usage:
//
//	prog, err := solver.NewProgram(vars, coeffs, rows)
//	if err != nil {
//	    return err
//	}
//	raw, err := solver.NewSimplex().Solve(ctx, prog)
//	if err != nil {
//	    return err
//	}
//	switch raw.Status {
//	case core.StatusOptimal:
//	    // raw.Values[i] is the area for prog.Variables[i]
//	case core.StatusInfeasible, core.StatusUnbounded:
//	    // expected, user-correctable outcomes
//	}
//
// The solve is blocking with no upper bound on latency (simplex worst case
// is exponential, though fast for these problem sizes); callers needing
// responsiveness should run it off any interactive goroutine.
package solver
