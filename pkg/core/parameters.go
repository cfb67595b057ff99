package core

import "fmt"

// ParameterSpec is the raw input for one optimization run, as collected
// from a scenario file or an API request.
type ParameterSpec struct {
	Crops  []Crop
	Fields []Field

	// LaborBudget is the total labor available, in person-days.
	LaborBudget float64

	// EquipmentBudget is the total machinery time available, in hours.
	EquipmentBudget float64

	// FertilizerUnitCost is the price per kg of fertilizer, used by the
	// penalty and hybrid-cost formulas.
	FertilizerUnitCost float64

	// FactorRange bounds the crop price/weather modifiers.
	// Nil selects DefaultFactorRange.
	FactorRange *FactorRange
}

// Parameters is the validated, read-only input for one optimization run.
// Construction fails with an ErrInvalidParameter-wrapped error if any
// per-unit requirement is negative, a bounded factor falls outside the
// configured range, or a soil-suitability entry references an unknown crop.
// All data is copied on construction; instances are safe for concurrent
// read by multiple downstream components.
type Parameters struct {
	crops  []Crop
	fields []Field

	cropIndex  map[string]int
	fieldIndex map[string]int

	laborBudget        float64
	equipmentBudget    float64
	fertilizerUnitCost float64
	factorRange        FactorRange
}

// NewParameters validates spec and builds an immutable Parameters.
func NewParameters(spec ParameterSpec) (*Parameters, error) {
	factorRange := DefaultFactorRange
	if spec.FactorRange != nil {
		factorRange = *spec.FactorRange
	}
	if factorRange.Min > factorRange.Max {
		return nil, fmt.Errorf("%w: factor range min %g exceeds max %g",
			ErrInvalidParameter, factorRange.Min, factorRange.Max)
	}

	p := &Parameters{
		crops:              make([]Crop, len(spec.Crops)),
		fields:             make([]Field, len(spec.Fields)),
		cropIndex:          make(map[string]int, len(spec.Crops)),
		fieldIndex:         make(map[string]int, len(spec.Fields)),
		laborBudget:        spec.LaborBudget,
		equipmentBudget:    spec.EquipmentBudget,
		fertilizerUnitCost: spec.FertilizerUnitCost,
		factorRange:        factorRange,
	}

	if spec.LaborBudget < 0 {
		return nil, fmt.Errorf("%w: labor budget must be >= 0, got %g", ErrInvalidParameter, spec.LaborBudget)
	}
	if spec.EquipmentBudget < 0 {
		return nil, fmt.Errorf("%w: equipment budget must be >= 0, got %g", ErrInvalidParameter, spec.EquipmentBudget)
	}
	if spec.FertilizerUnitCost < 0 {
		return nil, fmt.Errorf("%w: fertilizer unit cost must be >= 0, got %g", ErrInvalidParameter, spec.FertilizerUnitCost)
	}

	for i, c := range spec.Crops {
		crop, err := normalizeCrop(c, factorRange)
		if err != nil {
			return nil, err
		}
		if _, dup := p.cropIndex[crop.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate crop %q", ErrInvalidParameter, crop.Name)
		}
		p.crops[i] = crop
		p.cropIndex[crop.Name] = i
	}

	for i, f := range spec.Fields {
		field, err := normalizeField(f, p.cropIndex)
		if err != nil {
			return nil, err
		}
		if _, dup := p.fieldIndex[field.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidParameter, field.Name)
		}
		p.fields[i] = field
		p.fieldIndex[field.Name] = i
	}

	return p, nil
}

func normalizeCrop(c Crop, factorRange FactorRange) (Crop, error) {
	if c.Name == "" {
		return Crop{}, fmt.Errorf("%w: crop with empty name", ErrInvalidParameter)
	}
	for _, req := range []struct {
		name  string
		value float64
	}{
		{"yieldTonsPerHa", c.YieldTonsPerHa},
		{"pricePerTon", c.PricePerTon},
		{"fertilizerKgPerHa", c.FertilizerKgPerHa},
		{"waterPerHa", c.WaterPerHa},
		{"laborDaysPerHa", c.LaborDaysPerHa},
		{"equipmentHoursPerHa", c.EquipmentHoursPerHa},
		{"sustainability", c.Sustainability},
	} {
		if req.value < 0 {
			return Crop{}, fmt.Errorf("%w: crop %q: %s must be >= 0, got %g",
				ErrInvalidParameter, c.Name, req.name, req.value)
		}
	}

	// Zero means unset for the dimensionless modifiers; normalize to the
	// neutral 1.0 so downstream formulas never special-case absence.
	if c.PriceFluctuation == 0 {
		c.PriceFluctuation = 1.0
	} else if !factorRange.Contains(c.PriceFluctuation) {
		return Crop{}, fmt.Errorf("%w: crop %q: priceFluctuation %g outside [%g, %g]",
			ErrInvalidParameter, c.Name, c.PriceFluctuation, factorRange.Min, factorRange.Max)
	}
	if c.WeatherFactor == 0 {
		c.WeatherFactor = 1.0
	} else if !factorRange.Contains(c.WeatherFactor) {
		return Crop{}, fmt.Errorf("%w: crop %q: weatherFactor %g outside [%g, %g]",
			ErrInvalidParameter, c.Name, c.WeatherFactor, factorRange.Min, factorRange.Max)
	}
	return c, nil
}

func normalizeField(f Field, cropIndex map[string]int) (Field, error) {
	if f.Name == "" {
		return Field{}, fmt.Errorf("%w: field with empty name", ErrInvalidParameter)
	}
	if f.AreaHa < 0 {
		return Field{}, fmt.Errorf("%w: field %q: areaHa must be >= 0, got %g",
			ErrInvalidParameter, f.Name, f.AreaHa)
	}
	if f.WaterBudget < 0 {
		return Field{}, fmt.Errorf("%w: field %q: waterBudget must be >= 0, got %g",
			ErrInvalidParameter, f.Name, f.WaterBudget)
	}
	if f.RainfallIndex < 0 || f.RainfallIndex > 1 {
		return Field{}, fmt.Errorf("%w: field %q: rainfallIndex must be between 0 and 1, got %g",
			ErrInvalidParameter, f.Name, f.RainfallIndex)
	}

	if f.SoilSuitability != nil {
		soil := make(map[string]float64, len(f.SoilSuitability))
		for crop, score := range f.SoilSuitability {
			if _, known := cropIndex[crop]; !known {
				return Field{}, fmt.Errorf("%w: field %q: soil suitability for unknown crop %q",
					ErrInvalidParameter, f.Name, crop)
			}
			if score < 0 || score > 1 {
				return Field{}, fmt.Errorf("%w: field %q: soil suitability for %q must be between 0 and 1, got %g",
					ErrInvalidParameter, f.Name, crop, score)
			}
			soil[crop] = score
		}
		f.SoilSuitability = soil
	}
	return f, nil
}

// Crops returns a copy of the crop list in input order.
func (p *Parameters) Crops() []Crop {
	out := make([]Crop, len(p.crops))
	copy(out, p.crops)
	return out
}

// Fields returns a copy of the field list in input order.
func (p *Parameters) Fields() []Field {
	out := make([]Field, len(p.fields))
	copy(out, p.fields)
	for i := range out {
		if out[i].SoilSuitability == nil {
			continue
		}
		soil := make(map[string]float64, len(out[i].SoilSuitability))
		for k, v := range out[i].SoilSuitability {
			soil[k] = v
		}
		out[i].SoilSuitability = soil
	}
	return out
}

// Crop returns the crop with the given name.
func (p *Parameters) Crop(name string) (Crop, bool) {
	i, ok := p.cropIndex[name]
	if !ok {
		return Crop{}, false
	}
	return p.crops[i], true
}

// Field returns the field with the given name. The returned value shares
// no mutable state with the receiver.
func (p *Parameters) Field(name string) (Field, bool) {
	i, ok := p.fieldIndex[name]
	if !ok {
		return Field{}, false
	}
	f := p.fields[i]
	if f.SoilSuitability != nil {
		soil := make(map[string]float64, len(f.SoilSuitability))
		for k, v := range f.SoilSuitability {
			soil[k] = v
		}
		f.SoilSuitability = soil
	}
	return f, true
}

// LaborBudget returns the global labor budget in person-days.
func (p *Parameters) LaborBudget() float64 { return p.laborBudget }

// EquipmentBudget returns the global equipment budget in hours.
func (p *Parameters) EquipmentBudget() float64 { return p.equipmentBudget }

// FertilizerUnitCost returns the cost per kg of fertilizer.
func (p *Parameters) FertilizerUnitCost() float64 { return p.fertilizerUnitCost }

// FactorRange returns the bounds applied to the crop modifiers.
func (p *Parameters) FactorRange() FactorRange { return p.factorRange }

// Variables returns the ordered decision-variable set for the run:
// field-major, crops in input order. The objective builder, the constraint
// builder and the solver adapter all derive their index set from this
// single ordering, which is what keeps them aligned.
func (p *Parameters) Variables() []VariableKey {
	keys := make([]VariableKey, 0, len(p.fields)*len(p.crops))
	for _, f := range p.fields {
		for _, c := range p.crops {
			keys = append(keys, VariableKey{Field: f.Name, Crop: c.Name})
		}
	}
	return keys
}
