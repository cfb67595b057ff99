package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agriplan/cropalloc/pkg/core"
)

func TestSimplex_Optimal(t *testing.T) {
	// maximize 8000a + 10000b subject to a+b <= 1000,
	// 1000a + 2000b <= 1.5e6. Optimum at a=500, b=500.
	vars := []core.VariableKey{keyA, keyB}
	objective := map[core.VariableKey]float64{keyA: 8000, keyB: 10000}
	prog, err := NewProgram(vars, objective, twoVarRows(1000, 1500000))
	require.NoError(t, err)

	raw, err := NewSimplex().Solve(context.Background(), prog)
	require.NoError(t, err)
	require.Equal(t, core.StatusOptimal, raw.Status)
	require.Len(t, raw.Values, 2)
	assert.InDelta(t, 500, raw.Values[0], 1e-6)
	assert.InDelta(t, 500, raw.Values[1], 1e-6)
	assert.InDelta(t, 9_000_000, raw.Objective, 1e-3)
}

func TestSimplex_SingleBindingResource(t *testing.T) {
	// Generous water: the area constraint alone limits the allocation and
	// everything goes to the higher-scoring crop.
	vars := []core.VariableKey{keyA, keyB}
	objective := map[core.VariableKey]float64{keyA: 8000, keyB: 10000}
	prog, err := NewProgram(vars, objective, twoVarRows(1000, 5_000_000))
	require.NoError(t, err)

	raw, err := NewSimplex().Solve(context.Background(), prog)
	require.NoError(t, err)
	require.Equal(t, core.StatusOptimal, raw.Status)
	assert.InDelta(t, 0, raw.Values[0], 1e-6)
	assert.InDelta(t, 1000, raw.Values[1], 1e-6)
}

func TestSimplex_Infeasible(t *testing.T) {
	// A negative bound over non-negative variables admits no solution.
	vars := []core.VariableKey{keyA, keyB}
	objective := map[core.VariableKey]float64{keyA: 1, keyB: 1}
	rows := []core.ResourceConstraint{
		{
			Name:   "impossible",
			Family: core.FamilyArea,
			Coeffs: map[core.VariableKey]float64{keyA: 1, keyB: 1},
			Bound:  -1,
		},
	}
	prog, err := NewProgram(vars, objective, rows)
	require.NoError(t, err)

	raw, err := NewSimplex().Solve(context.Background(), prog)
	require.NoError(t, err)
	assert.Equal(t, core.StatusInfeasible, raw.Status)
	assert.Empty(t, raw.Values)
}

func TestSimplex_Unbounded(t *testing.T) {
	// b carries a positive coefficient but appears in no constraint row:
	// the objective grows without limit.
	prog := &Program{
		Variables: []core.VariableKey{keyA, keyB},
		Objective: map[core.VariableKey]float64{keyA: 1, keyB: 1},
		Constraints: []core.ResourceConstraint{
			{
				Name:   "area_f",
				Family: core.FamilyArea,
				Coeffs: map[core.VariableKey]float64{keyA: 1},
				Bound:  5,
			},
		},
	}

	raw, err := NewSimplex().Solve(context.Background(), prog)
	require.NoError(t, err)
	assert.Equal(t, core.StatusUnbounded, raw.Status)
}

func TestSimplex_CanceledContext(t *testing.T) {
	vars := []core.VariableKey{keyA, keyB}
	objective := map[core.VariableKey]float64{keyA: 1, keyB: 1}
	prog, err := NewProgram(vars, objective, twoVarRows(10, 10))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewSimplex().Solve(ctx, prog)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimplex_MalformedProgram(t *testing.T) {
	_, err := NewSimplex().Solve(context.Background(), nil)
	assert.Error(t, err)

	_, err = NewSimplex().Solve(context.Background(), &Program{})
	assert.Error(t, err)
}
