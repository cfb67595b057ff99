package core

import "fmt"

// SolveStatus is the outcome of one optimization run.
type SolveStatus string

const (
	// StatusOptimal means the solver found an optimal allocation.
	StatusOptimal SolveStatus = "OPTIMAL"

	// StatusInfeasible means no allocation satisfies all constraints
	// simultaneously. This is an expected, user-correctable outcome
	// (e.g. insufficient water for the requested crop mix).
	StatusInfeasible SolveStatus = "INFEASIBLE"

	// StatusUnbounded means the objective can grow without limit. Only
	// possible for a hand-built program with a positive-coefficient
	// variable no constraint bounds; surfaced distinctly from
	// infeasibility because it indicates a configuration error.
	StatusUnbounded SolveStatus = "UNBOUNDED"

	// StatusError means an adapter or protocol fault, not a solver
	// outcome. Treated as a defect.
	StatusError SolveStatus = "ERROR"
)

// ConstraintFamily identifies which resource a constraint row bounds.
type ConstraintFamily string

const (
	FamilyArea      ConstraintFamily = "area"
	FamilyWater     ConstraintFamily = "water"
	FamilyLabor     ConstraintFamily = "labor"
	FamilyEquipment ConstraintFamily = "equipment"
)

// Crop holds per-hectare economic and agronomic attributes of one crop.
// All requirements are non-negative. PriceFluctuation and WeatherFactor are
// dimensionless modifiers bounded by the run's factor range; a zero value
// means "not set" and normalizes to the neutral 1.0 at construction.
type Crop struct {
	// Name is the crop identifier, unique within a run.
	Name string `json:"name" yaml:"name"`

	// YieldTonsPerHa is the expected yield in tons per hectare.
	YieldTonsPerHa float64 `json:"yieldTonsPerHa" yaml:"yieldTonsPerHa"`

	// PricePerTon is the market price per ton.
	PricePerTon float64 `json:"pricePerTon" yaml:"pricePerTon"`

	// FertilizerKgPerHa is the fertilizer requirement in kg per hectare.
	FertilizerKgPerHa float64 `json:"fertilizerKgPerHa,omitempty" yaml:"fertilizerKgPerHa,omitempty"`

	// WaterPerHa is the irrigation water requirement per hectare.
	WaterPerHa float64 `json:"waterPerHa" yaml:"waterPerHa"`

	// LaborDaysPerHa is the labor requirement in person-days per hectare.
	LaborDaysPerHa float64 `json:"laborDaysPerHa" yaml:"laborDaysPerHa"`

	// EquipmentHoursPerHa is the machinery requirement in hours per hectare.
	EquipmentHoursPerHa float64 `json:"equipmentHoursPerHa" yaml:"equipmentHoursPerHa"`

	// PriceFluctuation scales the market price (0 = unset, defaults to 1.0).
	PriceFluctuation float64 `json:"priceFluctuation,omitempty" yaml:"priceFluctuation,omitempty"`

	// WeatherFactor scales the expected yield (0 = unset, defaults to 1.0).
	WeatherFactor float64 `json:"weatherFactor,omitempty" yaml:"weatherFactor,omitempty"`

	// Sustainability is a dimensionless non-negative rating used by the
	// blend formula when a field has no soil-suitability score for the crop.
	Sustainability float64 `json:"sustainability,omitempty" yaml:"sustainability,omitempty"`
}

// Field holds the site attributes of one field.
type Field struct {
	// Name is the field identifier, unique within a run.
	Name string `json:"name" yaml:"name"`

	// AreaHa is the cultivable area in hectares.
	AreaHa float64 `json:"areaHa" yaml:"areaHa"`

	// WaterBudget is the irrigation water available to this field.
	WaterBudget float64 `json:"waterBudget" yaml:"waterBudget"`

	// RainfallIndex in [0,1] is a proxy for water sufficiency from natural
	// precipitation; 1.0 means irrigation scarcity carries no penalty.
	RainfallIndex float64 `json:"rainfallIndex,omitempty" yaml:"rainfallIndex,omitempty"`

	// SoilSuitability maps crop name to a [0,1] suitability score.
	// Optional; keys must reference crops known to the run.
	SoilSuitability map[string]float64 `json:"soilSuitability,omitempty" yaml:"soilSuitability,omitempty"`
}

// Weights controls the relative influence of the objective terms. Each
// weight is in [0,1]. Weights are deliberately not normalized to sum to 1,
// so terms can be tuned independently; the tradeoff is that objective
// magnitudes are not comparable across differently-weighted runs.
type Weights struct {
	Profit         float64 `json:"profit" yaml:"profit"`
	Sustainability float64 `json:"sustainability,omitempty" yaml:"sustainability,omitempty"`
	Water          float64 `json:"water,omitempty" yaml:"water,omitempty"`
	Fertilizer     float64 `json:"fertilizer,omitempty" yaml:"fertilizer,omitempty"`
}

// Validate checks that every weight is within [0,1].
func (w Weights) Validate() error {
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"profit", w.Profit},
		{"sustainability", w.Sustainability},
		{"water", w.Water},
		{"fertilizer", w.Fertilizer},
	} {
		if c.value < 0 || c.value > 1 {
			return fmt.Errorf("%w: weight %q must be between 0 and 1, got %g",
				ErrInvalidParameter, c.name, c.value)
		}
	}
	return nil
}

// VariableKey identifies one (field, crop) decision variable: the hectares
// of the crop planted in the field.
type VariableKey struct {
	Field string `json:"field"`
	Crop  string `json:"crop"`
}

func (k VariableKey) String() string {
	return k.Field + "/" + k.Crop
}

// ResourceConstraint is one named linear inequality: the weighted sum of
// decision variables must not exceed Bound. The operator is always <=.
type ResourceConstraint struct {
	// Name identifies the row, e.g. "water_north-plot" or "labor".
	Name string

	// Family is the resource the row bounds.
	Family ConstraintFamily

	// Coeffs maps each decision variable to its per-hectare requirement.
	// All coefficients are non-negative by construction.
	Coeffs map[VariableKey]float64

	// Bound is the available budget, validated non-negative.
	Bound float64
}

// FactorRange bounds the dimensionless crop modifiers (price fluctuation
// and weather factor) for a run.
type FactorRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// DefaultFactorRange is applied when a run does not configure its own.
var DefaultFactorRange = FactorRange{Min: 0.7, Max: 1.2}

// Contains reports whether v falls within the range.
func (r FactorRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}
