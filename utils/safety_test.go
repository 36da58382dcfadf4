package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lakshya4568/food-Prediction/models"
)

func warningCodes(ws []Warning) []string {
	codes := make([]string, 0, len(ws))
	for _, w := range ws {
		codes = append(codes, w.Code)
	}
	return codes
}

func TestAssessFoodSodiumShares(t *testing.T) {
	high := &models.NutritionData{
		Name:   "Instant Noodles",
		Macros: models.MacroNutrients{EnergyKcal: 450, Sodium: 1800},
	}
	codes := warningCodes(AssessFood(high, nil))
	assert.Contains(t, codes, "sodium_very_high") // 1800/2000 = 90%
	assert.Contains(t, codes, "sodium_dense")     // 400 mg per 100 kcal

	moderate := &models.NutritionData{
		Name:   "Soup",
		Macros: models.MacroNutrients{EnergyKcal: 150, Sodium: 500},
	}
	codes = warningCodes(AssessFood(moderate, nil))
	assert.Contains(t, codes, "sodium_high")
	assert.NotContains(t, codes, "sodium_very_high")
}

func TestAssessFoodUsesTargetLimits(t *testing.T) {
	// 500mg is 25% of a restricted 2000mg... with a 1200mg target it is 41%.
	food := &models.NutritionData{
		Name:   "Pickles",
		Macros: models.MacroNutrients{EnergyKcal: 20, Sodium: 500},
	}
	target := &models.NutrientTarget{Calories: 1800, Sodium: 1200}

	codes := warningCodes(AssessFood(food, target))
	assert.Contains(t, codes, "sodium_very_high")
}

func TestAssessFoodSatFatAndTransFat(t *testing.T) {
	food := &models.NutritionData{
		Name: "Butter Cookies",
		Macros: models.MacroNutrients{
			EnergyKcal:   500,
			SaturatedFat: 15,
			TransFat:     0.7,
		},
	}
	codes := warningCodes(AssessFood(food, nil))
	assert.Contains(t, codes, "sat_fat_high_item")
	assert.Contains(t, codes, "sat_fat_very_high_daily_share") // 15g vs 22.2g limit
	assert.Contains(t, codes, "trans_fat_present")
}

func TestAssessFoodFiberDensity(t *testing.T) {
	lowFiber := &models.NutritionData{
		Name:   "White Bread",
		Macros: models.MacroNutrients{EnergyKcal: 265, Carbohydrates: 49, Fiber: 2},
	}
	codes := warningCodes(AssessFood(lowFiber, nil))
	assert.Contains(t, codes, "fiber_low")
	assert.Contains(t, codes, "refined_grain_nudge")

	wholeGrain := &models.NutritionData{
		Name:   "Rolled Oats",
		Macros: models.MacroNutrients{EnergyKcal: 379, Carbohydrates: 67, Fiber: 10},
	}
	codes = warningCodes(AssessFood(wholeGrain, nil))
	assert.Contains(t, codes, "fiber_high")
	assert.Contains(t, codes, "whole_grain_positive")
}

func TestAssessFoodEnergyDensity(t *testing.T) {
	dense := &models.NutritionData{
		Name:          "Chocolate",
		ServingWeight: 100,
		Macros:        models.MacroNutrients{EnergyKcal: 546},
	}
	codes := warningCodes(AssessFood(dense, nil))
	assert.Contains(t, codes, "energy_density_very_high")
}

func TestAssessFoodReconstructsEnergyFromMacros(t *testing.T) {
	food := &models.NutritionData{
		Name: "Mystery Mix",
		Macros: models.MacroNutrients{
			Carbohydrates: 50, Protein: 10, TotalFat: 10, SaturatedFat: 5,
		},
	}
	// kcal = 4*50 + 4*10 + 9*10 = 330; sat fat = 45/330 = 13.6% of item kcal
	codes := warningCodes(AssessFood(food, nil))
	assert.Contains(t, codes, "sat_fat_high_item")
}

func TestAssessFoodCleanRecordNoWarnings(t *testing.T) {
	food := &models.NutritionData{
		Name:   "Steamed Broccoli",
		Macros: models.MacroNutrients{EnergyKcal: 35, Protein: 2.4, Sodium: 30},
	}
	assert.Empty(t, AssessFood(food, nil))
}
