// Package constraints emits the linear inequality rows that bound feasible
// allocations: one area and one water row per field, plus global labor and
// equipment rows.
package constraints

import (
	"fmt"

	"github.com/agriplan/cropalloc/pkg/core"
)

// Builder produces the full constraint set for one run.
type Builder struct {
	params *core.Parameters
}

// NewBuilder returns a Builder over an immutable parameter set.
func NewBuilder(params *core.Parameters) *Builder {
	return &Builder{params: params}
}

// Build returns the constraint rows for the run. It fails fast with an
// ErrEmptyIndexSet-wrapped error when the run has no fields or no crops.
// Every coefficient is a non-negative per-hectare requirement and every
// bound is a budget validated non-negative at Parameters construction.
func (b *Builder) Build() ([]core.ResourceConstraint, error) {
	fields := b.params.Fields()
	crops := b.params.Crops()
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields", core.ErrEmptyIndexSet)
	}
	if len(crops) == 0 {
		return nil, fmt.Errorf("%w: no crops", core.ErrEmptyIndexSet)
	}

	rows := make([]core.ResourceConstraint, 0, 2*len(fields)+2)

	for _, f := range fields {
		area := core.ResourceConstraint{
			Name:   fmt.Sprintf("area_%s", f.Name),
			Family: core.FamilyArea,
			Coeffs: make(map[core.VariableKey]float64, len(crops)),
			Bound:  f.AreaHa,
		}
		water := core.ResourceConstraint{
			Name:   fmt.Sprintf("water_%s", f.Name),
			Family: core.FamilyWater,
			Coeffs: make(map[core.VariableKey]float64, len(crops)),
			Bound:  f.WaterBudget,
		}
		for _, c := range crops {
			key := core.VariableKey{Field: f.Name, Crop: c.Name}
			area.Coeffs[key] = 1
			water.Coeffs[key] = c.WaterPerHa
		}
		rows = append(rows, area, water)
	}

	labor := core.ResourceConstraint{
		Name:   "labor",
		Family: core.FamilyLabor,
		Coeffs: make(map[core.VariableKey]float64, len(fields)*len(crops)),
		Bound:  b.params.LaborBudget(),
	}
	equipment := core.ResourceConstraint{
		Name:   "equipment",
		Family: core.FamilyEquipment,
		Coeffs: make(map[core.VariableKey]float64, len(fields)*len(crops)),
		Bound:  b.params.EquipmentBudget(),
	}
	for _, f := range fields {
		for _, c := range crops {
			key := core.VariableKey{Field: f.Name, Crop: c.Name}
			labor.Coeffs[key] = c.LaborDaysPerHa
			equipment.Coeffs[key] = c.EquipmentHoursPerHa
		}
	}
	rows = append(rows, labor, equipment)

	return rows, nil
}
