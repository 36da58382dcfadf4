package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lakshya4568/food-Prediction/models"
)

func TestAgeGroupFor(t *testing.T) {
	cases := []struct {
		age   int
		group AgeGroup
	}{
		{2, AgeChild1to3},
		{5, AgeChild4to6},
		{8, AgeChild7to9},
		{11, AgeAdolescent10to12},
		{14, AgeAdolescent13to15},
		{17, AgeAdolescent16to17},
		{25, AgeAdult18to29},
		{45, AgeAdult30to49},
		{60, AgeAdult50to64},
		{70, AgeElderly65Plus},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.group, AgeGroupFor(tc.age), "age %d", tc.age)
	}
}

func TestIsChildOrAdolescent(t *testing.T) {
	assert.True(t, AgeGroupFor(10).IsChildOrAdolescent())
	assert.False(t, AgeGroupFor(30).IsChildOrAdolescent())
	assert.False(t, AgeGroupFor(70).IsChildOrAdolescent())
}

func TestMicronutrientNeedIronByGender(t *testing.T) {
	g := NewGuidelines()

	// Adult women keep the higher table value; adult men drop to 8.
	assert.Equal(t, 18.0, g.MicronutrientNeed(models.NutrientIron, 30, models.GenderFemale, nil))
	assert.Equal(t, 8.0, g.MicronutrientNeed(models.NutrientIron, 30, models.GenderMale, nil))

	// After the 18-50 window both get the band value.
	assert.Equal(t, 8.0, g.MicronutrientNeed(models.NutrientIron, 60, models.GenderFemale, nil))
}

func TestMicronutrientNeedKidneyCalciumCap(t *testing.T) {
	g := NewGuidelines()

	// Elderly band is 1200 normally, capped at 1000 with kidney disease.
	assert.Equal(t, 1200.0, g.MicronutrientNeed(models.NutrientCalcium, 70, models.GenderMale, nil))
	assert.Equal(t, 1000.0, g.MicronutrientNeed(models.NutrientCalcium, 70, models.GenderMale,
		[]models.ChronicCondition{models.KidneyDisease}))
}

func TestMicronutrientNeedUnknownNutrientFallsBack(t *testing.T) {
	g := NewGuidelines()
	assert.Equal(t, 0.0, g.MicronutrientNeed(models.NutrientProtein, 30, models.GenderMale, nil))
}
