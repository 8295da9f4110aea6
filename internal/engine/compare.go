package engine

import (
	"fmt"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.NestSettings
}

// ComparisonResult holds the optimization result and computed statistics for
// a single scenario. Err is set when a scenario fails outright, for example
// when a piece no longer fits after a parameter change.
type ComparisonResult struct {
	Scenario     ComparisonScenario
	Result       *model.OptimizationResult
	SlabsUsed    int
	TotalCuts    int
	WastePercent float64
	Err          error
}

// CompareScenarios runs optimization for each scenario and returns the
// results in scenario order, enabling side-by-side comparison of different
// parameters (algorithm, kerf width, trim margin).
func CompareScenarios(scenarios []ComparisonScenario, pieces []model.Piece) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := Optimize(pieces, scenario.Settings)
		if err != nil {
			results = append(results, ComparisonResult{Scenario: scenario, Err: err})
			continue
		}

		results = append(results, ComparisonResult{
			Scenario:     scenario,
			Result:       result,
			SlabsUsed:    result.TotalSlabs,
			TotalCuts:    len(result.Placements),
			WastePercent: result.WastePercent,
		})
	}

	return results
}

// BuildDefaultScenarios generates comparison scenarios around the current
// settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(base model.NestSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	// Scenario: the other strategy
	alt := base
	if base.Strategy == model.StrategyGenetic {
		alt.Strategy = model.StrategyGuillotine
		scenarios = append(scenarios, ComparisonScenario{Name: "Guillotine Strategy", Settings: alt})
	} else {
		alt.Strategy = model.StrategyGenetic
		scenarios = append(scenarios, ComparisonScenario{Name: "Genetic Strategy", Settings: alt})
	}

	// Scenario: thinner blade
	if base.Slab.KerfMm > 1.0 {
		tight := base
		tight.Slab.KerfMm = base.Slab.KerfMm * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Kerf %.1fmm (half)", tight.Slab.KerfMm),
			Settings: tight,
		})
	}

	// Scenario: no edge trim
	if base.Slab.TrimMarginMm > 0 {
		noTrim := base
		noTrim.Slab.TrimMarginMm = 0
		scenarios = append(scenarios, ComparisonScenario{Name: "No Edge Trim", Settings: noTrim})
	}

	return scenarios
}
