package models

import "time"

// MacroNutrients per 100g. Sodium and cholesterol are kept in mg, everything
// else in grams (energy in kcal).
type MacroNutrients struct {
	EnergyKcal         float64 `json:"energy_kcal"`
	Protein            float64 `json:"protein"`
	TotalFat           float64 `json:"total_fat"`
	SaturatedFat       float64 `json:"saturated_fat"`
	MonounsaturatedFat float64 `json:"monounsaturated_fat"`
	PolyunsaturatedFat float64 `json:"polyunsaturated_fat"`
	TransFat           float64 `json:"trans_fat"`
	Cholesterol        float64 `json:"cholesterol"`
	Carbohydrates      float64 `json:"carbohydrates"`
	Fiber              float64 `json:"fiber"`
	Sugars             float64 `json:"sugars"`
	Sodium             float64 `json:"sodium"`
}

func (m *MacroNutrients) fields() []*float64 {
	return []*float64{
		&m.EnergyKcal, &m.Protein, &m.TotalFat, &m.SaturatedFat,
		&m.MonounsaturatedFat, &m.PolyunsaturatedFat, &m.TransFat,
		&m.Cholesterol, &m.Carbohydrates, &m.Fiber, &m.Sugars, &m.Sodium,
	}
}

// MicroNutrients per 100g: 11 vitamins and 9 minerals.
type MicroNutrients struct {
	VitaminA   float64 `json:"vitamin_a"`   // RAE, mcg
	VitaminC   float64 `json:"vitamin_c"`   // mg
	VitaminD   float64 `json:"vitamin_d"`   // mcg
	VitaminE   float64 `json:"vitamin_e"`   // mg
	VitaminK   float64 `json:"vitamin_k"`   // mcg
	Thiamin    float64 `json:"thiamin"`     // mg
	Riboflavin float64 `json:"riboflavin"`  // mg
	Niacin     float64 `json:"niacin"`      // mg
	VitaminB6  float64 `json:"vitamin_b6"`  // mg
	Folate     float64 `json:"folate"`      // mcg
	VitaminB12 float64 `json:"vitamin_b12"` // mcg

	Calcium    float64 `json:"calcium"`    // mg
	Iron       float64 `json:"iron"`       // mg
	Magnesium  float64 `json:"magnesium"`  // mg
	Phosphorus float64 `json:"phosphorus"` // mg
	Potassium  float64 `json:"potassium"`  // mg
	Zinc       float64 `json:"zinc"`       // mg
	Copper     float64 `json:"copper"`     // mg
	Manganese  float64 `json:"manganese"`  // mg
	Selenium   float64 `json:"selenium"`   // mcg
}

func (m *MicroNutrients) fields() []*float64 {
	return []*float64{
		&m.VitaminA, &m.VitaminC, &m.VitaminD, &m.VitaminE, &m.VitaminK,
		&m.Thiamin, &m.Riboflavin, &m.Niacin, &m.VitaminB6, &m.Folate,
		&m.VitaminB12, &m.Calcium, &m.Iron, &m.Magnesium, &m.Phosphorus,
		&m.Potassium, &m.Zinc, &m.Copper, &m.Manganese, &m.Selenium,
	}
}

// NutritionData is the unified food record every provider normalizes into.
// FoodID has the form "<source>_<native id>".
type NutritionData struct {
	FoodID string `json:"food_id"`
	Name   string `json:"name"`
	Brand  string `json:"brand,omitempty"`
	Source string `json:"source"`

	Macros MacroNutrients `json:"macros"`
	Micros MicroNutrients `json:"micros"`

	ServingSize   string  `json:"serving_size,omitempty"`
	ServingWeight float64 `json:"serving_weight,omitempty"`
	Category      string  `json:"category,omitempty"`
	Barcode       string  `json:"barcode,omitempty"`

	DataQualityScore float64   `json:"data_quality_score"`
	LastUpdated      time.Time `json:"last_updated"`
	DataCompleteness float64   `json:"data_completeness"`
}

// RecalculateCompleteness recomputes the percentage of nutrient fields that
// carry a non-zero value. Call after construction and after every merge.
func (d *NutritionData) RecalculateCompleteness() {
	total, populated := 0, 0
	for _, f := range d.Macros.fields() {
		total++
		if *f > 0 {
			populated++
		}
	}
	for _, f := range d.Micros.fields() {
		total++
		if *f > 0 {
			populated++
		}
	}
	d.DataCompleteness = float64(populated) / float64(total) * 100
}

// Merge combines this record (primary) with a secondary one. Every nutrient
// field takes the primary's value unless it is zero; metadata is first
// non-empty; quality is the mean of the two. Completeness is recomputed.
func (d NutritionData) Merge(secondary NutritionData) NutritionData {
	merged := NutritionData{
		FoodID:           d.FoodID,
		Name:             d.Name,
		Brand:            firstNonEmpty(d.Brand, secondary.Brand),
		Source:           d.Source + "+" + secondary.Source,
		ServingSize:      firstNonEmpty(d.ServingSize, secondary.ServingSize),
		Category:         firstNonEmpty(d.Category, secondary.Category),
		Barcode:          firstNonEmpty(d.Barcode, secondary.Barcode),
		DataQualityScore: (d.DataQualityScore + secondary.DataQualityScore) / 2,
		LastUpdated:      time.Now(),
	}
	merged.ServingWeight = d.ServingWeight
	if merged.ServingWeight == 0 {
		merged.ServingWeight = secondary.ServingWeight
	}

	dst := merged.Macros.fields()
	pri := d.Macros.fields()
	sec := secondary.Macros.fields()
	for i := range dst {
		*dst[i] = *pri[i]
		if *dst[i] == 0 {
			*dst[i] = *sec[i]
		}
	}
	dst = merged.Micros.fields()
	pri = d.Micros.fields()
	sec = secondary.Micros.fields()
	for i := range dst {
		*dst[i] = *pri[i]
		if *dst[i] == 0 {
			*dst[i] = *sec[i]
		}
	}

	merged.RecalculateCompleteness()
	return merged
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
