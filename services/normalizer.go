package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lakshya4568/food-Prediction/models"
)

// ErrUnsupportedSourceType is returned when Normalize receives a record shape
// it does not know how to map.
var ErrUnsupportedSourceType = errors.New("unsupported source record type")

// unitClass tells the converter what unit the destination field is defined
// in, so values already in that unit pass through untouched.
type unitClass string

const (
	unitKcal    unitClass = "kcal"
	unitGram    unitClass = "g"
	unitKeepMg  unitClass = "mg_as_mg"
	unitKeepMcg unitClass = "mcg_as_mcg"
)

// fieldMapping binds an upstream nutrient to a unified-schema field. The
// setter writes into either the macro or micro block.
type fieldMapping struct {
	set  func(*models.NutritionData, float64)
	unit unitClass
}

// Normalizer maps raw provider records into the unified NutritionData schema.
// The lookup tables are fixed at construction; the normalizer is stateless
// and safe for concurrent use.
type Normalizer struct {
	usdaByCode   map[int]fieldMapping
	edamamByTag  map[string]fieldMapping
	usdaQuality  map[string]float64
	unitFactors  map[string]float64
}

func NewNormalizer() *Normalizer {
	macro := func(f func(*models.MacroNutrients) *float64) func(*models.NutritionData, float64) {
		return func(d *models.NutritionData, v float64) { *f(&d.Macros) = v }
	}
	micro := func(f func(*models.MicroNutrients) *float64) func(*models.NutritionData, float64) {
		return func(d *models.NutritionData, v float64) { *f(&d.Micros) = v }
	}

	n := &Normalizer{
		usdaByCode:  map[int]fieldMapping{},
		edamamByTag: map[string]fieldMapping{},
		usdaQuality: map[string]float64{
			"Foundation":     1.0,
			"SR Legacy":      0.95,
			"Survey (FNDDS)": 0.9,
			"Branded":        0.8,
			"Experimental":   0.7,
		},
		unitFactors: map[string]float64{
			"kj":   0.239006,
			"kcal": 1.0,
			"g":    1.0,
			"mg":   0.001,
			"mcg":  0.000001,
			"µg":   0.000001,
			"ug":   0.000001,
		},
	}

	type entry struct {
		code int
		tag  string
		m    fieldMapping
	}
	table := []entry{
		{1008, "ENERC_KCAL", fieldMapping{macro(func(m *models.MacroNutrients) *float64 { return &m.EnergyKcal }), unitKcal}},
		{1003, "PROCNT", fieldMapping{macro(func(m *models.MacroNutrients) *float64 { return &m.Protein }), unitGram}},
		{1004, "FAT", fieldMapping{macro(func(m *models.MacroNutrients) *float64 { return &m.TotalFat }), unitGram}},
		{1258, "FASAT", fieldMapping{macro(func(m *models.MacroNutrients) *float64 { return &m.SaturatedFat }), unitGram}},
		{1292, "FAMS", fieldMapping{macro(func(m *models.MacroNutrients) *float64 { return &m.MonounsaturatedFat }), unitGram}},
		{1293, "FAPU", fieldMapping{macro(func(m *models.MacroNutrients) *float64 { return &m.PolyunsaturatedFat }), unitGram}},
		{1257, "FATRN", fieldMapping{macro(func(m *models.MacroNutrients) *float64 { return &m.TransFat }), unitGram}},
		{1253, "CHOLE", fieldMapping{macro(func(m *models.MacroNutrients) *float64 { return &m.Cholesterol }), unitKeepMg}},
		{1005, "CHOCDF", fieldMapping{macro(func(m *models.MacroNutrients) *float64 { return &m.Carbohydrates }), unitGram}},
		{1079, "FIBTG", fieldMapping{macro(func(m *models.MacroNutrients) *float64 { return &m.Fiber }), unitGram}},
		{2000, "SUGAR", fieldMapping{macro(func(m *models.MacroNutrients) *float64 { return &m.Sugars }), unitGram}},
		{1093, "NA", fieldMapping{macro(func(m *models.MacroNutrients) *float64 { return &m.Sodium }), unitKeepMg}},

		{1104, "VITA_RAE", fieldMapping{micro(func(m *models.MicroNutrients) *float64 { return &m.VitaminA }), unitKeepMcg}},
		{1162, "VITC", fieldMapping{micro(func(m *models.MicroNutrients) *float64 { return &m.VitaminC }), unitKeepMg}},
		{1114, "VITD", fieldMapping{micro(func(m *models.MicroNutrients) *float64 { return &m.VitaminD }), unitKeepMcg}},
		{1109, "TOCPHA", fieldMapping{micro(func(m *models.MicroNutrients) *float64 { return &m.VitaminE }), unitKeepMg}},
		{1185, "VITK1", fieldMapping{micro(func(m *models.MicroNutrients) *float64 { return &m.VitaminK }), unitKeepMcg}},
		{1165, "THIA", fieldMapping{micro(func(m *models.MicroNutrients) *float64 { return &m.Thiamin }), unitKeepMg}},
		{1166, "RIBF", fieldMapping{micro(func(m *models.MicroNutrients) *float64 { return &m.Riboflavin }), unitKeepMg}},
		{1167, "NIA", fieldMapping{micro(func(m *models.MicroNutrients) *float64 { return &m.Niacin }), unitKeepMg}},
		{1175, "VITB6A", fieldMapping{micro(func(m *models.MicroNutrients) *float64 { return &m.VitaminB6 }), unitKeepMg}},
		{1177, "FOLAC", fieldMapping{micro(func(m *models.MicroNutrients) *float64 { return &m.Folate }), unitKeepMcg}},
		{1178, "VITB12", fieldMapping{micro(func(m *models.MicroNutrients) *float64 { return &m.VitaminB12 }), unitKeepMcg}},
		{1087, "CA", fieldMapping{micro(func(m *models.MicroNutrients) *float64 { return &m.Calcium }), unitKeepMg}},
		{1089, "FE", fieldMapping{micro(func(m *models.MicroNutrients) *float64 { return &m.Iron }), unitKeepMg}},
		{1090, "MG", fieldMapping{micro(func(m *models.MicroNutrients) *float64 { return &m.Magnesium }), unitKeepMg}},
		{1091, "P", fieldMapping{micro(func(m *models.MicroNutrients) *float64 { return &m.Phosphorus }), unitKeepMg}},
		{1092, "K", fieldMapping{micro(func(m *models.MicroNutrients) *float64 { return &m.Potassium }), unitKeepMg}},
		{1095, "ZN", fieldMapping{micro(func(m *models.MicroNutrients) *float64 { return &m.Zinc }), unitKeepMg}},
		{1098, "CU", fieldMapping{micro(func(m *models.MicroNutrients) *float64 { return &m.Copper }), unitKeepMg}},
		{1101, "MN", fieldMapping{micro(func(m *models.MicroNutrients) *float64 { return &m.Manganese }), unitKeepMg}},
		{1103, "SE", fieldMapping{micro(func(m *models.MicroNutrients) *float64 { return &m.Selenium }), unitKeepMcg}},
	}
	for _, e := range table {
		n.usdaByCode[e.code] = e.m
		n.edamamByTag[e.tag] = e.m
	}
	return n
}

// Normalize dispatches on the concrete record shape. Anything other than a
// USDA or Edamam record fails with ErrUnsupportedSourceType.
func (n *Normalizer) Normalize(record any) (*models.NutritionData, error) {
	switch r := record.(type) {
	case *USDAFoodItem:
		return n.NormalizeUSDA(r), nil
	case USDAFoodItem:
		return n.NormalizeUSDA(&r), nil
	case *EdamamFoodItem:
		return n.NormalizeEdamam(r), nil
	case EdamamFoodItem:
		return n.NormalizeEdamam(&r), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedSourceType, record)
}

// NormalizeUSDA maps a FoodData Central record by nutrient code. Unmapped
// codes are ignored; a record with no recognizable nutrients normalizes to
// zeroed fields rather than failing.
func (n *Normalizer) NormalizeUSDA(food *USDAFoodItem) *models.NutritionData {
	data := &models.NutritionData{
		FoodID:           fmt.Sprintf("usda_%d", food.FdcID),
		Name:             food.Description,
		Brand:            food.BrandOwner,
		Source:           "usda",
		Category:         food.DataType,
		Barcode:          food.GtinUpc,
		DataQualityScore: n.usdaQualityScore(food.DataType),
		LastUpdated:      time.Now(),
	}
	for _, nutrient := range food.Nutrients {
		mapping, ok := n.usdaByCode[nutrient.NutrientID]
		if !ok {
			continue
		}
		mapping.set(data, n.convertUnit(nutrient.Amount, nutrient.Unit, mapping.unit))
	}
	data.RecalculateCompleteness()
	return data
}

// NormalizeEdamam maps an Edamam record by nutrient tag. Edamam data gets a
// fixed quality score; missing tags are simply left at zero.
func (n *Normalizer) NormalizeEdamam(food *EdamamFoodItem) *models.NutritionData {
	category := food.CategoryLabel
	if category == "" {
		category = food.Category
	}
	data := &models.NutritionData{
		FoodID:           "edamam_" + food.FoodID,
		Name:             food.Label,
		Brand:            food.Brand,
		Source:           "edamam",
		Category:         category,
		ServingWeight:    food.ServingWeight,
		DataQualityScore: 0.9,
		LastUpdated:      time.Now(),
	}
	for tag, nutrient := range food.Nutrients {
		mapping, ok := n.edamamByTag[tag]
		if !ok {
			continue
		}
		mapping.set(data, n.convertUnit(nutrient.Quantity, nutrient.Unit, mapping.unit))
	}
	data.RecalculateCompleteness()
	return data
}

// convertUnit normalizes a nutrient value toward its destination field's
// unit. Non-positive values collapse to zero to guard against upstream
// negative/missing sentinels.
func (n *Normalizer) convertUnit(value float64, fromUnit string, target unitClass) float64 {
	if value <= 0 {
		return 0.0
	}
	fromUnit = strings.ToLower(strings.TrimSpace(fromUnit))

	// Fields defined in mg or mcg keep values already expressed that way.
	if target == unitKeepMg || target == unitKeepMcg {
		switch fromUnit {
		case "mg", "mcg", "µg", "ug":
			return value
		}
	}

	factor, ok := n.unitFactors[fromUnit]
	if !ok {
		factor = 1.0
	}
	return value * factor
}

func (n *Normalizer) usdaQualityScore(dataType string) float64 {
	if score, ok := n.usdaQuality[dataType]; ok {
		return score
	}
	return 0.75
}

// Merge combines a primary and a secondary normalized record.
func (n *Normalizer) Merge(primary, secondary *models.NutritionData) *models.NutritionData {
	merged := primary.Merge(*secondary)
	return &merged
}
