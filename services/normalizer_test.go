package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUSDABasicRecord(t *testing.T) {
	n := NewNormalizer()
	food := &USDAFoodItem{
		FdcID:       12345,
		Description: "Cheddar Cheese",
		DataType:    "Foundation",
		BrandOwner:  "Acme Dairy",
		Nutrients: []USDANutrient{
			{NutrientID: 1008, Unit: "kcal", Amount: 403},
			{NutrientID: 1003, Unit: "g", Amount: 23},
			{NutrientID: 1004, Unit: "g", Amount: 33},
			{NutrientID: 1093, Unit: "mg", Amount: 653},
			{NutrientID: 1087, Unit: "mg", Amount: 710},
			{NutrientID: 9999, Unit: "g", Amount: 42}, // unmapped, ignored
		},
	}

	data := n.NormalizeUSDA(food)
	assert.Equal(t, "usda_12345", data.FoodID)
	assert.Equal(t, "Cheddar Cheese", data.Name)
	assert.Equal(t, "usda", data.Source)
	assert.InDelta(t, 403, data.Macros.EnergyKcal, 0.001)
	assert.InDelta(t, 23, data.Macros.Protein, 0.001)
	assert.InDelta(t, 653, data.Macros.Sodium, 0.001)
	assert.InDelta(t, 710, data.Micros.Calcium, 0.001)
	assert.InDelta(t, 1.0, data.DataQualityScore, 0.001)
	assert.Greater(t, data.DataCompleteness, 0.0)
}

func TestNormalizeUSDAKilojouleConversion(t *testing.T) {
	n := NewNormalizer()
	food := &USDAFoodItem{
		FdcID: 1,
		Nutrients: []USDANutrient{
			{NutrientID: 1008, Unit: "kJ", Amount: 400},
		},
	}

	data := n.NormalizeUSDA(food)
	assert.InDelta(t, 95.6024, data.Macros.EnergyKcal, 0.0001)
}

func TestNormalizeUSDAQualityTiers(t *testing.T) {
	n := NewNormalizer()
	cases := map[string]float64{
		"Foundation":     1.0,
		"SR Legacy":      0.95,
		"Survey (FNDDS)": 0.9,
		"Branded":        0.8,
		"Experimental":   0.7,
		"Mystery":        0.75,
	}
	for dataType, want := range cases {
		data := n.NormalizeUSDA(&USDAFoodItem{FdcID: 1, DataType: dataType})
		assert.InDelta(t, want, data.DataQualityScore, 0.001, dataType)
	}
}

func TestNormalizeUSDANegativeValuesCollapse(t *testing.T) {
	n := NewNormalizer()
	food := &USDAFoodItem{
		FdcID: 1,
		Nutrients: []USDANutrient{
			{NutrientID: 1003, Unit: "g", Amount: -5},
		},
	}
	data := n.NormalizeUSDA(food)
	assert.Zero(t, data.Macros.Protein)
}

func TestNormalizeEdamamRecord(t *testing.T) {
	n := NewNormalizer()
	food := &EdamamFoodItem{
		FoodID: "food_abc",
		Label:  "Banana",
		Nutrients: map[string]EdamamNutrient{
			"ENERC_KCAL": {Quantity: 89, Unit: "kcal"},
			"PROCNT":     {Quantity: 1.1, Unit: "g"},
			"K":          {Quantity: 358, Unit: "mg"},
			"UNKNOWN":    {Quantity: 7, Unit: "g"},
		},
	}

	data := n.NormalizeEdamam(food)
	assert.Equal(t, "edamam_food_abc", data.FoodID)
	assert.Equal(t, "edamam", data.Source)
	assert.InDelta(t, 89, data.Macros.EnergyKcal, 0.001)
	assert.InDelta(t, 1.1, data.Macros.Protein, 0.001)
	assert.InDelta(t, 358, data.Micros.Potassium, 0.001)
	assert.InDelta(t, 0.9, data.DataQualityScore, 0.001)
}

func TestNormalizeDispatch(t *testing.T) {
	n := NewNormalizer()

	_, err := n.Normalize(USDAFoodItem{FdcID: 1})
	assert.NoError(t, err)
	_, err = n.Normalize(&EdamamFoodItem{FoodID: "x"})
	assert.NoError(t, err)

	_, err = n.Normalize("not a food record")
	assert.ErrorIs(t, err, ErrUnsupportedSourceType)
}

func TestMergePrimaryWins(t *testing.T) {
	n := NewNormalizer()
	primary := n.NormalizeUSDA(&USDAFoodItem{
		FdcID:       1,
		Description: "Oatmeal",
		DataType:    "Foundation",
		Nutrients: []USDANutrient{
			{NutrientID: 1008, Unit: "kcal", Amount: 389},
			{NutrientID: 1003, Unit: "g", Amount: 16.9},
		},
	})
	secondary := n.NormalizeEdamam(&EdamamFoodItem{
		FoodID: "oat",
		Label:  "Oats",
		Nutrients: map[string]EdamamNutrient{
			"ENERC_KCAL": {Quantity: 400, Unit: "kcal"},
			"FIBTG":      {Quantity: 10.6, Unit: "g"},
		},
	})

	merged := n.Merge(primary, secondary)
	// Primary keeps its value, secondary only fills zeroes
	assert.InDelta(t, 389, merged.Macros.EnergyKcal, 0.001)
	assert.InDelta(t, 16.9, merged.Macros.Protein, 0.001)
	assert.InDelta(t, 10.6, merged.Macros.Fiber, 0.001)
	assert.Equal(t, "usda+edamam", merged.Source)
	assert.InDelta(t, (1.0+0.9)/2, merged.DataQualityScore, 0.001)
}

func TestMergeIdempotent(t *testing.T) {
	n := NewNormalizer()
	record := n.NormalizeUSDA(&USDAFoodItem{
		FdcID:       7,
		Description: "Lentils",
		DataType:    "SR Legacy",
		Nutrients: []USDANutrient{
			{NutrientID: 1008, Unit: "kcal", Amount: 116},
			{NutrientID: 1003, Unit: "g", Amount: 9},
			{NutrientID: 1079, Unit: "g", Amount: 7.9},
		},
	})

	merged := n.Merge(record, record)
	require.NotNil(t, merged)
	assert.Equal(t, record.Macros, merged.Macros)
	assert.Equal(t, record.Micros, merged.Micros)
	assert.InDelta(t, record.DataCompleteness, merged.DataCompleteness, 0.001)
}
