// Package config loads and validates optimization scenarios and the
// application settings of the CLI and HTTP server.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/agriplan/cropalloc/internal/objective"
	"github.com/agriplan/cropalloc/pkg/core"
)

// Scenario is the on-disk (or on-the-wire) description of one optimization
// run: the crops, the fields, the global budgets, the objective weights and
// the score formula.
type Scenario struct {
	// Crops to allocate.
	Crops []core.Crop `yaml:"crops" json:"crops"`

	// Fields to allocate into.
	Fields []core.Field `yaml:"fields" json:"fields"`

	// LaborBudget is the total labor available, in person-days.
	LaborBudget float64 `yaml:"laborBudget" json:"laborBudget"`

	// EquipmentBudget is the total machinery time available, in hours.
	EquipmentBudget float64 `yaml:"equipmentBudget" json:"equipmentBudget"`

	// FertilizerUnitCost is the price per kg of fertilizer.
	FertilizerUnitCost float64 `yaml:"fertilizerUnitCost,omitempty" json:"fertilizerUnitCost,omitempty"`

	// Weights control the objective terms.
	Weights core.Weights `yaml:"weights" json:"weights"`

	// Formula selects the score formula; empty selects blend.
	Formula string `yaml:"formula,omitempty" json:"formula,omitempty"`

	// FactorRange overrides the default bounds on crop modifiers.
	FactorRange *core.FactorRange `yaml:"factorRange,omitempty" json:"factorRange,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return s, nil
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the parts of the scenario core.NewParameters does not
// own: the formula name. Numeric validation happens in core.NewParameters
// so API callers and file loaders get identical behavior.
func (s *Scenario) Validate() error {
	if _, err := objective.ParseFormula(s.Formula); err != nil {
		return err
	}
	return nil
}

// ScoreFormula returns the parsed formula selection.
func (s *Scenario) ScoreFormula() objective.Formula {
	f, _ := objective.ParseFormula(s.Formula)
	return f
}

// Parameters builds the validated immutable parameter set for the run.
func (s *Scenario) Parameters() (*core.Parameters, error) {
	return core.NewParameters(core.ParameterSpec{
		Crops:              s.Crops,
		Fields:             s.Fields,
		LaborBudget:        s.LaborBudget,
		EquipmentBudget:    s.EquipmentBudget,
		FertilizerUnitCost: s.FertilizerUnitCost,
		FactorRange:        s.FactorRange,
	})
}
