// Package objective computes the score coefficient of every (field, crop)
// decision variable and assembles the linear objective to be maximized.
//
// The repository's score formulas are interchangeable presets over the same
// input/output contract, selected by Formula. Switching the formula never
// changes the variable set, only the coefficients.
package objective

import (
	"fmt"

	"github.com/agriplan/cropalloc/pkg/core"
)

// Formula selects how the score coefficient of a (field, crop) pair is
// computed from the run parameters.
type Formula string

const (
	// FormulaBlend combines factor-adjusted profit with a sustainability
	// bonus: w_profit*(yield*price*priceFluctuation*weatherFactor) +
	// w_sustain*s, where s is the field's soil suitability for the crop
	// when scored, else the crop's flat sustainability rating.
	FormulaBlend Formula = "blend"

	// FormulaPenalty subtracts weighted resource penalties from profit:
	// w_profit*(yield*price) - w_fert*fert*fertCost - w_water*water*(1-RI).
	FormulaPenalty Formula = "penalty"

	// FormulaHybridCost computes a minimization cost and negates it:
	// cost = -w_profit*(yield*price) + w_fert*fert*fertCost +
	// w_water*water*(1-RI); score = -cost. Algebraically identical to
	// FormulaPenalty; it exists for callers that already hold costs (e.g.
	// from an external pricing feed), where the conversion direction
	// determines sign correctness.
	FormulaHybridCost Formula = "hybrid-cost"
)

// ParseFormula validates a formula name from configuration.
func ParseFormula(s string) (Formula, error) {
	switch Formula(s) {
	case FormulaBlend, FormulaPenalty, FormulaHybridCost:
		return Formula(s), nil
	case "":
		return FormulaBlend, nil
	default:
		return "", fmt.Errorf("unsupported score formula %q", s)
	}
}

// Terms are the per-hectare components of one pair's score, kept separate
// so report totals can be recomputed from a rounded allocation with the
// exact same arithmetic that produced the objective.
type Terms struct {
	// Profit is the unweighted profit base per hectare.
	Profit float64

	// Secondary is the weighted non-profit term per hectare: the
	// sustainability bonus (blend) or the resource penalty (penalty,
	// hybrid-cost).
	Secondary float64

	// Score is the objective coefficient per hectare.
	Score float64
}

// Builder computes score coefficients from an immutable parameter set.
type Builder struct {
	params  *core.Parameters
	weights core.Weights
	formula Formula
}

// NewBuilder validates the weights and formula and returns a Builder.
func NewBuilder(params *core.Parameters, weights core.Weights, formula Formula) (*Builder, error) {
	if params == nil {
		return nil, fmt.Errorf("params cannot be nil")
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	f, err := ParseFormula(string(formula))
	if err != nil {
		return nil, err
	}
	return &Builder{params: params, weights: weights, formula: f}, nil
}

// Formula returns the active formula.
func (b *Builder) Formula() Formula { return b.formula }

// Coefficients returns the objective coefficient of every decision
// variable, keyed identically to the constraint builder's rows.
func (b *Builder) Coefficients() map[core.VariableKey]float64 {
	keys := b.params.Variables()
	coeffs := make(map[core.VariableKey]float64, len(keys))
	for _, k := range keys {
		coeffs[k] = b.TermsFor(k).Score
	}
	return coeffs
}

// TermsFor computes the score components of one (field, crop) pair.
// Unknown pairs score zero; the planner validates the index set separately.
func (b *Builder) TermsFor(key core.VariableKey) Terms {
	crop, okCrop := b.params.Crop(key.Crop)
	field, okField := b.params.Field(key.Field)
	if !okCrop || !okField {
		return Terms{}
	}

	w := b.weights
	revenue := crop.YieldTonsPerHa * crop.PricePerTon

	switch b.formula {
	case FormulaBlend:
		adjusted := revenue * crop.PriceFluctuation * crop.WeatherFactor
		t := Terms{Profit: adjusted}
		// A zero weight zeroes its term exactly: the multiplication is
		// skipped rather than trusted to produce a clean float zero.
		if w.Sustainability != 0 {
			t.Secondary = w.Sustainability * b.suitability(field, crop)
		}
		if w.Profit != 0 {
			t.Score = w.Profit * adjusted
		}
		t.Score += t.Secondary
		return t

	case FormulaPenalty, FormulaHybridCost:
		t := Terms{Profit: revenue}
		if w.Fertilizer != 0 {
			t.Secondary = w.Fertilizer * crop.FertilizerKgPerHa * b.params.FertilizerUnitCost()
		}
		if w.Water != 0 {
			t.Secondary += w.Water * crop.WaterPerHa * waterScarcity(field)
		}
		if b.formula == FormulaHybridCost {
			var cost float64
			if w.Profit != 0 {
				cost = -w.Profit * revenue
			}
			cost += t.Secondary
			t.Score = -cost
			return t
		}
		if w.Profit != 0 {
			t.Score = w.Profit * revenue
		}
		t.Score -= t.Secondary
		return t
	}
	return Terms{}
}

// suitability returns the field's soil score for the crop when present,
// falling back to the crop's flat sustainability rating.
func (b *Builder) suitability(field core.Field, crop core.Crop) float64 {
	if score, ok := field.SoilSuitability[crop.Name]; ok {
		return score
	}
	return crop.Sustainability
}

// waterScarcity returns (1 - rainfallIndex) with the index clamped to
// [0,1]. Out-of-range input is rejected at Parameters construction, so the
// clamp guards an invariant: the scarcity term must never turn negative
// and reward higher water use.
func waterScarcity(field core.Field) float64 {
	ri := field.RainfallIndex
	if ri < 0 {
		ri = 0
	}
	if ri > 1 {
		ri = 1
	}
	return 1 - ri
}
