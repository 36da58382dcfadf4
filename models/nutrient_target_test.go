package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNutrientTargetValueAccessor(t *testing.T) {
	target := NutrientTarget{Calories: 2000, Sodium: 1500, Iron: 18}

	for n, want := range map[Nutrient]float64{
		NutrientCalories: 2000,
		NutrientSodium:   1500,
		NutrientIron:     18,
		NutrientProtein:  0,
	} {
		got, err := target.Value(n)
		require.NoError(t, err)
		assert.Equal(t, want, got, n)
	}

	_, err := target.Value("potassium")
	assert.Error(t, err)
}

func TestNutrientTargetWithValue(t *testing.T) {
	target := NutrientTarget{Calories: 2000}

	updated, err := target.WithValue(NutrientSodium, 1200)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, updated.Sodium)
	assert.Equal(t, 2000.0, updated.Calories)
	// original untouched
	assert.Equal(t, 0.0, target.Sodium)

	_, err = target.WithValue("caffeine", 1)
	assert.Error(t, err)
}

func TestNutrientTargetScale(t *testing.T) {
	target := NutrientTarget{Calories: 2000, Protein: 80, Sodium: 2000}
	meal := target.Scale(0.25)

	assert.Equal(t, 500.0, meal.Calories)
	assert.Equal(t, 20.0, meal.Protein)
	assert.Equal(t, 500.0, meal.Sodium)
}

func TestNutrientTargetJSONRoundTrip(t *testing.T) {
	original := NutrientTarget{
		Calories: 2128.5, Protein: 79.8, Carbohydrates: 319.3, Fat: 59.1,
		Fiber: 53.2, Sodium: 2000, Sugar: 26.6, VitaminA: 700,
		VitaminC: 90, VitaminD: 15, Calcium: 1000, Iron: 8,
	}

	b, err := json.Marshal(original)
	require.NoError(t, err)

	// every nutrient name doubles as its JSON key
	var keys map[string]float64
	require.NoError(t, json.Unmarshal(b, &keys))
	for _, n := range Nutrients {
		assert.Contains(t, keys, string(n))
	}

	var decoded NutrientTarget
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, original, decoded)
}

func TestNutrientsCoversEveryTargetField(t *testing.T) {
	// Every listed nutrient must be readable and writable.
	var target NutrientTarget
	for _, n := range Nutrients {
		updated, err := target.WithValue(n, 1)
		require.NoError(t, err, n)
		got, err := updated.Value(n)
		require.NoError(t, err, n)
		assert.Equal(t, 1.0, got, n)
	}
}
