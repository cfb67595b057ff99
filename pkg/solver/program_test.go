package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agriplan/cropalloc/pkg/core"
)

var (
	keyA = core.VariableKey{Field: "f", Crop: "a"}
	keyB = core.VariableKey{Field: "f", Crop: "b"}
)

func twoVarRows(boundArea, boundWater float64) []core.ResourceConstraint {
	return []core.ResourceConstraint{
		{
			Name:   "area_f",
			Family: core.FamilyArea,
			Coeffs: map[core.VariableKey]float64{keyA: 1, keyB: 1},
			Bound:  boundArea,
		},
		{
			Name:   "water_f",
			Family: core.FamilyWater,
			Coeffs: map[core.VariableKey]float64{keyA: 1000, keyB: 2000},
			Bound:  boundWater,
		},
	}
}

func TestNewProgram(t *testing.T) {
	vars := []core.VariableKey{keyA, keyB}
	objective := map[core.VariableKey]float64{keyA: 8000, keyB: 10000}

	prog, err := NewProgram(vars, objective, twoVarRows(1000, 1500000))
	require.NoError(t, err)
	assert.Len(t, prog.Variables, 2)
}

func TestNewProgram_ContractViolations(t *testing.T) {
	vars := []core.VariableKey{keyA, keyB}
	objective := map[core.VariableKey]float64{keyA: 8000, keyB: 10000}
	orphan := core.VariableKey{Field: "f", Crop: "ghost"}

	tests := []struct {
		name string
		run  func() error
	}{
		{
			name: "no variables",
			run: func() error {
				_, err := NewProgram(nil, nil, twoVarRows(1, 1))
				return err
			},
		},
		{
			name: "duplicate variable",
			run: func() error {
				_, err := NewProgram([]core.VariableKey{keyA, keyA}, objective, twoVarRows(1, 1))
				return err
			},
		},
		{
			name: "objective missing a variable",
			run: func() error {
				_, err := NewProgram(vars, map[core.VariableKey]float64{keyA: 1}, twoVarRows(1, 1))
				return err
			},
		},
		{
			name: "objective with orphan variable",
			run: func() error {
				_, err := NewProgram(vars, map[core.VariableKey]float64{keyA: 1, orphan: 2}, twoVarRows(1, 1))
				return err
			},
		},
		{
			name: "constraint with orphan variable",
			run: func() error {
				rows := twoVarRows(1, 1)
				rows[0].Coeffs[orphan] = 3
				_, err := NewProgram(vars, objective, rows)
				return err
			},
		},
		{
			name: "no constraints",
			run: func() error {
				_, err := NewProgram(vars, objective, nil)
				return err
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.run())
		})
	}
}

func TestZeroForced(t *testing.T) {
	vars := []core.VariableKey{keyA, keyB}
	objective := map[core.VariableKey]float64{keyA: 8000, keyB: 10000}

	t.Run("zero water bound forces all variables", func(t *testing.T) {
		prog, err := NewProgram(vars, objective, twoVarRows(1000, 0))
		require.NoError(t, err)
		forced, families := prog.ZeroForced()
		assert.Len(t, forced, 2)
		assert.Equal(t, []core.ConstraintFamily{core.FamilyWater}, families)
	})

	t.Run("positive bounds force nothing", func(t *testing.T) {
		prog, err := NewProgram(vars, objective, twoVarRows(1000, 1500000))
		require.NoError(t, err)
		forced, families := prog.ZeroForced()
		assert.Empty(t, forced)
		assert.Empty(t, families)
	})

	t.Run("zero bound with a zero coefficient forces nothing", func(t *testing.T) {
		rows := twoVarRows(1000, 0)
		rows[1].Coeffs[keyA] = 0 // crop a needs no water
		prog, err := NewProgram(vars, objective, rows)
		require.NoError(t, err)
		forced, _ := prog.ZeroForced()
		assert.Empty(t, forced)
	})
}
