package core

// Totals are the aggregate scalars of a completed run, recomputed from the
// rounded allocation rather than taken from the raw solver objective, so
// the reported numbers stay consistent with the reported table.
type Totals struct {
	// AdjustedProfit is the unweighted profit of the allocation, using the
	// active formula's profit base per crop.
	AdjustedProfit float64 `json:"adjustedProfit"`

	// Sustainability is the weighted secondary term of the allocation: the
	// sustainability bonus under the blend formula, the resource penalty
	// under the penalty and hybrid-cost formulas.
	Sustainability float64 `json:"sustainability"`

	// Objective is the total objective value of the rounded allocation.
	Objective float64 `json:"objective"`
}

// AllocationReport is the result of one optimization run, shaped for a
// presentation layer: a table keyed by field and crop plus summary scalars.
type AllocationReport struct {
	// Status is the run outcome.
	Status SolveStatus `json:"status"`

	// Allocation maps field name to crop name to hectares, rounded to two
	// decimal places. Present only when Status is OPTIMAL.
	Allocation map[string]map[string]float64 `json:"allocation,omitempty"`

	// Totals are the aggregate scalars of the rounded allocation.
	// Present only when Status is OPTIMAL.
	Totals Totals `json:"totals"`

	// Binding lists the constraint families found binding: at the optimum
	// for OPTIMAL runs, or the zero-budget families that forced an empty
	// program for pre-check INFEASIBLE runs. Best effort; empty when the
	// solver declares infeasibility without a certificate.
	Binding []ConstraintFamily `json:"binding,omitempty"`

	// Message carries detail for INFEASIBLE, UNBOUNDED and ERROR outcomes.
	Message string `json:"message,omitempty"`
}

// Area returns the allocated hectares for a (field, crop) pair, 0 if the
// pair is absent.
func (r *AllocationReport) Area(field, crop string) float64 {
	return r.Allocation[field][crop]
}

// TotalArea returns the total allocated hectares across all pairs.
func (r *AllocationReport) TotalArea() float64 {
	var total float64
	for _, crops := range r.Allocation {
		for _, ha := range crops {
			total += ha
		}
	}
	return total
}
