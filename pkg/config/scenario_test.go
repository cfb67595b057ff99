package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agriplan/cropalloc/internal/objective"
	"github.com/agriplan/cropalloc/pkg/core"
)

const scenarioYAML = `
formula: penalty
weights:
  profit: 0.8
  water: 0.2
laborBudget: 75000
equipmentBudget: 20000
fertilizerUnitCost: 25
crops:
  - name: wheat
    yieldTonsPerHa: 4
    pricePerTon: 2000
    fertilizerKgPerHa: 110
    waterPerHa: 1200
    laborDaysPerHa: 20
    equipmentHoursPerHa: 8
  - name: rice
    yieldTonsPerHa: 5
    pricePerTon: 1900
    fertilizerKgPerHa: 140
    waterPerHa: 1800
    laborDaysPerHa: 30
    equipmentHoursPerHa: 10
    priceFluctuation: 1.1
fields:
  - name: north
    areaHa: 1000
    waterBudget: 1500000
    rainfallIndex: 0.6
    soilSuitability:
      wheat: 0.8
  - name: south
    areaHa: 800
    waterBudget: 1200000
`

func TestParseScenario(t *testing.T) {
	s, err := ParseScenario([]byte(scenarioYAML))
	require.NoError(t, err)

	assert.Equal(t, objective.FormulaPenalty, s.ScoreFormula())
	assert.Equal(t, core.Weights{Profit: 0.8, Water: 0.2}, s.Weights)
	require.Len(t, s.Crops, 2)
	require.Len(t, s.Fields, 2)
	assert.Equal(t, 1.1, s.Crops[1].PriceFluctuation)
	assert.Equal(t, 0.8, s.Fields[0].SoilSuitability["wheat"])
}

func TestParseScenario_UnknownFormula(t *testing.T) {
	_, err := ParseScenario([]byte("formula: quantum\nweights: {profit: 1}\n"))
	assert.Error(t, err)
}

func TestParseScenario_BadYAML(t *testing.T) {
	_, err := ParseScenario([]byte("crops: [\n"))
	assert.Error(t, err)
}

func TestScenario_Parameters(t *testing.T) {
	s, err := ParseScenario([]byte(scenarioYAML))
	require.NoError(t, err)

	params, err := s.Parameters()
	require.NoError(t, err)
	assert.Len(t, params.Variables(), 4)
	assert.Equal(t, 75000.0, params.LaborBudget())

	// Unset factors normalize to neutral.
	wheat, ok := params.Crop("wheat")
	require.True(t, ok)
	assert.Equal(t, 1.0, wheat.PriceFluctuation)
	assert.Equal(t, 1.0, wheat.WeatherFactor)
}

func TestScenario_Parameters_Invalid(t *testing.T) {
	s, err := ParseScenario([]byte(scenarioYAML))
	require.NoError(t, err)
	s.Crops[0].WaterPerHa = -5

	_, err = s.Parameters()
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestLoadScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0o600))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Len(t, s.Crops, 2)

	_, err = LoadScenario(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
