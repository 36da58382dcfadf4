package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculateCompleteness(t *testing.T) {
	var empty NutritionData
	empty.RecalculateCompleteness()
	assert.Zero(t, empty.DataCompleteness)

	partial := NutritionData{
		Macros: MacroNutrients{EnergyKcal: 100, Protein: 5},
	}
	partial.RecalculateCompleteness()
	// 2 populated out of 32 nutrient fields
	assert.InDelta(t, 2.0/32.0*100, partial.DataCompleteness, 0.001)
}

func TestMergePrefersPrimary(t *testing.T) {
	primary := NutritionData{
		FoodID: "usda_1", Name: "Spinach", Source: "usda",
		Macros:           MacroNutrients{EnergyKcal: 23, Protein: 2.9},
		DataQualityScore: 1.0,
	}
	secondary := NutritionData{
		FoodID: "edamam_x", Name: "Spinach Raw", Source: "edamam",
		Brand:            "Greens Co",
		Macros:           MacroNutrients{EnergyKcal: 25, Fiber: 2.2},
		Micros:           MicroNutrients{Iron: 2.7},
		DataQualityScore: 0.9,
		ServingWeight:    30,
	}

	merged := primary.Merge(secondary)
	assert.Equal(t, "usda_1", merged.FoodID)
	assert.Equal(t, "Spinach", merged.Name)
	assert.Equal(t, "usda+edamam", merged.Source)
	assert.Equal(t, "Greens Co", merged.Brand)
	assert.InDelta(t, 23, merged.Macros.EnergyKcal, 0.001)  // primary wins
	assert.InDelta(t, 2.2, merged.Macros.Fiber, 0.001)      // secondary fills zero
	assert.InDelta(t, 2.7, merged.Micros.Iron, 0.001)       // secondary fills zero
	assert.InDelta(t, 0.95, merged.DataQualityScore, 0.001) // mean
	assert.InDelta(t, 30, merged.ServingWeight, 0.001)
	assert.Greater(t, merged.DataCompleteness, 0.0)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	primary := NutritionData{
		FoodID: "usda_1", Source: "usda",
		Macros: MacroNutrients{EnergyKcal: 100},
	}
	secondary := NutritionData{
		FoodID: "edamam_2", Source: "edamam",
		Macros: MacroNutrients{Protein: 10},
	}

	_ = primary.Merge(secondary)
	assert.Zero(t, primary.Macros.Protein)
	assert.Zero(t, secondary.Macros.EnergyKcal)
}

func TestNutritionDataJSONRoundTrip(t *testing.T) {
	original := NutritionData{
		FoodID: "usda_42", Name: "Almonds", Source: "usda",
		Macros:           MacroNutrients{EnergyKcal: 579, Protein: 21.2, TotalFat: 49.9},
		Micros:           MicroNutrients{VitaminE: 25.6, Magnesium: 270},
		DataQualityScore: 1.0,
		LastUpdated:      time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	original.RecalculateCompleteness()

	b, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded NutritionData
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, original, decoded)
}
