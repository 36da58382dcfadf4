package models

import "fmt"

// Nutrient names a field of NutrientTarget. Adjustment tables are keyed by
// Nutrient so a table entry can never reference a field that does not exist.
type Nutrient string

const (
	NutrientCalories      Nutrient = "calories"
	NutrientProtein       Nutrient = "protein"
	NutrientCarbohydrates Nutrient = "carbohydrates"
	NutrientFat           Nutrient = "fat"
	NutrientFiber         Nutrient = "fiber"
	NutrientSodium        Nutrient = "sodium"
	NutrientSugar         Nutrient = "sugar"
	NutrientVitaminA      Nutrient = "vitamin_a"
	NutrientVitaminC      Nutrient = "vitamin_c"
	NutrientVitaminD      Nutrient = "vitamin_d"
	NutrientCalcium       Nutrient = "calcium"
	NutrientIron          Nutrient = "iron"
)

// Nutrients lists every target field in a stable order.
var Nutrients = []Nutrient{
	NutrientCalories, NutrientProtein, NutrientCarbohydrates, NutrientFat,
	NutrientFiber, NutrientSodium, NutrientSugar, NutrientVitaminA,
	NutrientVitaminC, NutrientVitaminD, NutrientCalcium, NutrientIron,
}

// NutrientTarget holds daily intake targets. Calories in kcal, sodium in mg,
// vitamins/minerals per guideline units, everything else in grams.
type NutrientTarget struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	Fiber         float64 `json:"fiber"`
	Sodium        float64 `json:"sodium"`
	Sugar         float64 `json:"sugar"`
	VitaminA      float64 `json:"vitamin_a"`
	VitaminC      float64 `json:"vitamin_c"`
	VitaminD      float64 `json:"vitamin_d"`
	Calcium       float64 `json:"calcium"`
	Iron          float64 `json:"iron"`
}

// Value returns the target for a nutrient.
func (t NutrientTarget) Value(n Nutrient) (float64, error) {
	switch n {
	case NutrientCalories:
		return t.Calories, nil
	case NutrientProtein:
		return t.Protein, nil
	case NutrientCarbohydrates:
		return t.Carbohydrates, nil
	case NutrientFat:
		return t.Fat, nil
	case NutrientFiber:
		return t.Fiber, nil
	case NutrientSodium:
		return t.Sodium, nil
	case NutrientSugar:
		return t.Sugar, nil
	case NutrientVitaminA:
		return t.VitaminA, nil
	case NutrientVitaminC:
		return t.VitaminC, nil
	case NutrientVitaminD:
		return t.VitaminD, nil
	case NutrientCalcium:
		return t.Calcium, nil
	case NutrientIron:
		return t.Iron, nil
	}
	return 0, fmt.Errorf("unknown nutrient %q", n)
}

// WithValue returns a copy of the target with one nutrient replaced.
func (t NutrientTarget) WithValue(n Nutrient, v float64) (NutrientTarget, error) {
	switch n {
	case NutrientCalories:
		t.Calories = v
	case NutrientProtein:
		t.Protein = v
	case NutrientCarbohydrates:
		t.Carbohydrates = v
	case NutrientFat:
		t.Fat = v
	case NutrientFiber:
		t.Fiber = v
	case NutrientSodium:
		t.Sodium = v
	case NutrientSugar:
		t.Sugar = v
	case NutrientVitaminA:
		t.VitaminA = v
	case NutrientVitaminC:
		t.VitaminC = v
	case NutrientVitaminD:
		t.VitaminD = v
	case NutrientCalcium:
		t.Calcium = v
	case NutrientIron:
		t.Iron = v
	default:
		return t, fmt.Errorf("unknown nutrient %q", n)
	}
	return t, nil
}

// Scale multiplies every field by ratio, used for per-meal targets.
func (t NutrientTarget) Scale(ratio float64) NutrientTarget {
	return NutrientTarget{
		Calories:      t.Calories * ratio,
		Protein:       t.Protein * ratio,
		Carbohydrates: t.Carbohydrates * ratio,
		Fat:           t.Fat * ratio,
		Fiber:         t.Fiber * ratio,
		Sodium:        t.Sodium * ratio,
		Sugar:         t.Sugar * ratio,
		VitaminA:      t.VitaminA * ratio,
		VitaminC:      t.VitaminC * ratio,
		VitaminD:      t.VitaminD * ratio,
		Calcium:       t.Calcium * ratio,
		Iron:          t.Iron * ratio,
	}
}
