package services

import (
	"github.com/lakshya4568/food-Prediction/models"
)

// AgeGroup buckets an age in years into a WHO/ICMR guideline band.
type AgeGroup string

const (
	AgeChild1to3        AgeGroup = "child_1_3y"
	AgeChild4to6        AgeGroup = "child_4_6y"
	AgeChild7to9        AgeGroup = "child_7_9y"
	AgeAdolescent10to12 AgeGroup = "adolescent_10_12y"
	AgeAdolescent13to15 AgeGroup = "adolescent_13_15y"
	AgeAdolescent16to17 AgeGroup = "adolescent_16_17y"
	AgeAdult18to29      AgeGroup = "adult_18_29y"
	AgeAdult30to49      AgeGroup = "adult_30_49y"
	AgeAdult50to64      AgeGroup = "adult_50_64y"
	AgeElderly65Plus    AgeGroup = "elderly_65plus"
)

var childAgeGroups = map[AgeGroup]bool{
	AgeChild1to3: true, AgeChild4to6: true, AgeChild7to9: true,
	AgeAdolescent10to12: true, AgeAdolescent13to15: true, AgeAdolescent16to17: true,
}

// AgeGroupFor maps an age in years to its guideline band.
func AgeGroupFor(age int) AgeGroup {
	switch {
	case age <= 3:
		return AgeChild1to3
	case age <= 6:
		return AgeChild4to6
	case age <= 9:
		return AgeChild7to9
	case age <= 12:
		return AgeAdolescent10to12
	case age <= 15:
		return AgeAdolescent13to15
	case age <= 17:
		return AgeAdolescent16to17
	case age <= 29:
		return AgeAdult18to29
	case age <= 49:
		return AgeAdult30to49
	case age <= 64:
		return AgeAdult50to64
	default:
		return AgeElderly65Plus
	}
}

// IsChildOrAdolescent reports whether the band is one of the six pediatric ones.
func (g AgeGroup) IsChildOrAdolescent() bool {
	return childAgeGroups[g]
}

// Guidelines is the WHO/ICMR baseline micronutrient reference table. It is
// built once and read-only afterwards, so it is safe for concurrent use.
type Guidelines struct {
	baselines map[models.Nutrient]map[AgeGroup]float64
	defaults  map[models.Nutrient]float64
}

// NewGuidelines loads the reference table.
func NewGuidelines() *Guidelines {
	return &Guidelines{
		// WHO/ICMR recommended daily allowances per band. vitamin_a in mcg
		// RAE, vitamin_c in mg, vitamin_d in mcg, calcium and iron in mg.
		baselines: map[models.Nutrient]map[AgeGroup]float64{
			models.NutrientVitaminA: {
				AgeChild1to3: 300, AgeChild4to6: 400, AgeChild7to9: 500,
				AgeAdolescent10to12: 600, AgeAdolescent13to15: 750, AgeAdolescent16to17: 800,
				AgeAdult18to29: 700, AgeAdult30to49: 700, AgeAdult50to64: 700,
				AgeElderly65Plus: 700,
			},
			models.NutrientVitaminC: {
				AgeChild1to3: 30, AgeChild4to6: 35, AgeChild7to9: 40,
				AgeAdolescent10to12: 50, AgeAdolescent13to15: 65, AgeAdolescent16to17: 75,
				AgeAdult18to29: 90, AgeAdult30to49: 90, AgeAdult50to64: 90,
				AgeElderly65Plus: 90,
			},
			models.NutrientVitaminD: {
				AgeChild1to3: 15, AgeChild4to6: 15, AgeChild7to9: 15,
				AgeAdolescent10to12: 15, AgeAdolescent13to15: 15, AgeAdolescent16to17: 15,
				AgeAdult18to29: 15, AgeAdult30to49: 15, AgeAdult50to64: 15,
				AgeElderly65Plus: 20,
			},
			models.NutrientCalcium: {
				AgeChild1to3: 500, AgeChild4to6: 600, AgeChild7to9: 700,
				AgeAdolescent10to12: 1000, AgeAdolescent13to15: 1300, AgeAdolescent16to17: 1300,
				AgeAdult18to29: 1000, AgeAdult30to49: 1000, AgeAdult50to64: 1000,
				AgeElderly65Plus: 1200,
			},
			models.NutrientIron: {
				AgeChild1to3: 7, AgeChild4to6: 10, AgeChild7to9: 10,
				AgeAdolescent10to12: 8, AgeAdolescent13to15: 11, AgeAdolescent16to17: 15,
				AgeAdult18to29: 18, AgeAdult30to49: 18, AgeAdult50to64: 8,
				AgeElderly65Plus: 8,
			},
		},
		defaults: map[models.Nutrient]float64{
			models.NutrientVitaminA: 700,
			models.NutrientVitaminC: 90,
			models.NutrientVitaminD: 15,
			models.NutrientCalcium:  1000,
			models.NutrientIron:     18,
		},
	}
}

// MicronutrientNeed returns the daily baseline for a micronutrient given age,
// gender and condition list, falling back to the fixed WHO defaults when the
// table has no entry.
func (g *Guidelines) MicronutrientNeed(n models.Nutrient, age int, gender models.Gender,
	conditions []models.ChronicCondition) float64 {

	group := AgeGroupFor(age)
	byGroup, ok := g.baselines[n]
	if !ok {
		return g.defaults[n]
	}
	value, ok := byGroup[group]
	if !ok {
		return g.defaults[n]
	}

	// Iron needs drop after menopause and are lower for adult men.
	if n == models.NutrientIron && age >= 18 && age <= 50 && gender != models.GenderFemale {
		value = 8
	}
	// Kidney disease patients are advised a lower calcium load.
	if n == models.NutrientCalcium {
		for _, c := range conditions {
			if c == models.KidneyDisease {
				value = min(value, 1000)
			}
		}
	}
	return value
}
