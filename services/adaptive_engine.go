package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lakshya4568/food-Prediction/models"
)

// ErrInvalidActivityLevel is returned when a profile carries an activity
// level outside the five known values.
var ErrInvalidActivityLevel = errors.New("invalid activity level")

// AdaptiveEngine turns a HealthProfile into personalized, explainable
// nutrient targets. All tables are fixed at construction; the engine holds no
// mutable state and is safe for concurrent use. Build one with
// NewAdaptiveEngine and inject it where needed.
type AdaptiveEngine struct {
	guidelines           *Guidelines
	activityMultipliers  map[models.ActivityLevel]float64
	conditionAdjustments map[models.ChronicCondition][]nutrientFactor
	mealRatios           map[string]float64
}

// nutrientFactor pairs a target field with a multiplicative factor. Keeping
// the order explicit keeps the audit trail deterministic.
type nutrientFactor struct {
	Nutrient models.Nutrient
	Factor   float64
}

func NewAdaptiveEngine(guidelines *Guidelines) *AdaptiveEngine {
	return &AdaptiveEngine{
		guidelines: guidelines,
		activityMultipliers: map[models.ActivityLevel]float64{
			models.Sedentary:        1.2,
			models.LightlyActive:    1.375,
			models.ModeratelyActive: 1.55,
			models.VeryActive:       1.725,
			models.ExtremelyActive:  1.9,
		},
		conditionAdjustments: map[models.ChronicCondition][]nutrientFactor{
			models.DiabetesType1: {
				{models.NutrientCarbohydrates, 0.85},
				{models.NutrientProtein, 1.1},
				{models.NutrientSodium, 0.8},
			},
			models.DiabetesType2: {
				{models.NutrientCarbohydrates, 0.75},
				{models.NutrientProtein, 1.15},
				{models.NutrientFiber, 1.3},
				{models.NutrientSodium, 0.8},
			},
			models.Hypertension: {
				{models.NutrientSodium, 0.6},
				{models.NutrientCalories, 0.95},
			},
			models.HeartDisease: {
				{models.NutrientFat, 0.8},
				{models.NutrientSodium, 0.7},
				{models.NutrientFiber, 1.25},
				{models.NutrientCalories, 0.9},
			},
			models.KidneyDisease: {
				{models.NutrientProtein, 0.8},
				{models.NutrientSodium, 0.6},
			},
			models.Obesity: {
				{models.NutrientCalories, 0.8},
				{models.NutrientProtein, 1.2},
				{models.NutrientFiber, 1.3},
			},
			models.Underweight: {
				{models.NutrientCalories, 1.3},
				{models.NutrientProtein, 1.25},
				{models.NutrientFat, 1.2},
			},
		},
		mealRatios: map[string]float64{
			"breakfast": 0.25,
			"lunch":     0.35,
			"dinner":    0.30,
			"snack":     0.10,
			"main":      0.33,
		},
	}
}

// CalculateAdaptiveTargets computes the full adaptive target for a profile:
// base targets from BMR/TDEE and the guideline table, then condition
// adjustments in profile condition order, then weight-goal adjustments.
func (e *AdaptiveEngine) CalculateAdaptiveTargets(profile *models.HealthProfile) (*models.AdaptiveTarget, error) {
	base, err := e.calculateBaseTargets(profile)
	if err != nil {
		return nil, err
	}

	adjusted, adjustments := e.applyConditionAdjustments(base, profile)
	adjusted, goalAdjustments := e.applyGoalAdjustments(adjusted, profile)
	adjustments = append(adjustments, goalAdjustments...)

	return &models.AdaptiveTarget{
		BaseTarget:       base,
		AdjustedTarget:   adjusted,
		Adjustments:      adjustments,
		ConfidenceScore:  e.confidenceScore(profile),
		SourceGuidelines: e.sourceGuidelines(profile),
	}, nil
}

func (e *AdaptiveEngine) calculateBaseTargets(profile *models.HealthProfile) (models.NutrientTarget, error) {
	// Mifflin-St Jeor
	var bmr float64
	if profile.Gender == models.GenderMale {
		bmr = 10*profile.Weight + 6.25*profile.Height - 5*float64(profile.Age) + 5
	} else {
		bmr = 10*profile.Weight + 6.25*profile.Height - 5*float64(profile.Age) - 161
	}

	multiplier, ok := e.activityMultipliers[profile.ActivityLevel]
	if !ok {
		return models.NutrientTarget{}, fmt.Errorf("%w: %q", ErrInvalidActivityLevel, profile.ActivityLevel)
	}
	tdee := bmr * multiplier

	// WHO macronutrient distribution: protein 15%, fat 25%, carbs 60%.
	conditions := []models.ChronicCondition(profile.ChronicConditions)
	return models.NutrientTarget{
		Calories:      tdee,
		Protein:       (tdee * 0.15) / 4,
		Fat:           (tdee * 0.25) / 9,
		Carbohydrates: (tdee * 0.60) / 4,
		Fiber:         (tdee / 1000) * 25, // WHO: 25g per 1000 kcal
		Sodium:        2000,               // WHO: under 2000mg per day
		Sugar:         (tdee * 0.05) / 4,  // WHO: under 5% of calories
		VitaminA:      e.guidelines.MicronutrientNeed(models.NutrientVitaminA, profile.Age, profile.Gender, conditions),
		VitaminC:      e.guidelines.MicronutrientNeed(models.NutrientVitaminC, profile.Age, profile.Gender, conditions),
		VitaminD:      e.guidelines.MicronutrientNeed(models.NutrientVitaminD, profile.Age, profile.Gender, conditions),
		Calcium:       e.guidelines.MicronutrientNeed(models.NutrientCalcium, profile.Age, profile.Gender, conditions),
		Iron:          e.guidelines.MicronutrientNeed(models.NutrientIron, profile.Age, profile.Gender, conditions),
	}, nil
}

// applyConditionAdjustments compounds per-condition factors in the order
// conditions appear on the profile, recording one audit entry per
// (condition, nutrient) pair touched.
func (e *AdaptiveEngine) applyConditionAdjustments(target models.NutrientTarget,
	profile *models.HealthProfile) (models.NutrientTarget, []models.Adjustment) {

	adjustments := []models.Adjustment{}
	for _, condition := range profile.ChronicConditions {
		for _, nf := range e.conditionAdjustments[condition] {
			oldValue, err := target.Value(nf.Nutrient)
			if err != nil {
				continue
			}
			newValue := oldValue * nf.Factor
			target, _ = target.WithValue(nf.Nutrient, newValue)

			adjustments = append(adjustments, models.Adjustment{
				Reason:           string(condition) + " management",
				Nutrient:         nf.Nutrient,
				AdjustmentFactor: nf.Factor,
				OldValue:         oldValue,
				NewValue:         newValue,
				Description:      adjustmentDescription(nf.Factor),
			})
		}
	}
	return target, adjustments
}

func (e *AdaptiveEngine) applyGoalAdjustments(target models.NutrientTarget,
	profile *models.HealthProfile) (models.NutrientTarget, []models.Adjustment) {

	adjustments := []models.Adjustment{}
	switch profile.WeightGoal {
	case models.GoalLose:
		oldCalories := target.Calories
		target.Calories = oldCalories * 0.8
		oldProtein := target.Protein
		target.Protein = oldProtein * 1.2

		adjustments = append(adjustments,
			models.Adjustment{
				Reason:           "weight_loss_goal",
				Nutrient:         models.NutrientCalories,
				AdjustmentFactor: 0.8,
				OldValue:         oldCalories,
				NewValue:         target.Calories,
				Description:      "Reduced for sustainable weight loss",
			},
			models.Adjustment{
				Reason:           "weight_loss_goal",
				Nutrient:         models.NutrientProtein,
				AdjustmentFactor: 1.2,
				OldValue:         oldProtein,
				NewValue:         target.Protein,
				Description:      "Increased to preserve muscle mass",
			})
	case models.GoalGain:
		oldCalories := target.Calories
		target.Calories = oldCalories * 1.15

		adjustments = append(adjustments, models.Adjustment{
			Reason:           "weight_gain_goal",
			Nutrient:         models.NutrientCalories,
			AdjustmentFactor: 1.15,
			OldValue:         oldCalories,
			NewValue:         target.Calories,
			Description:      "Increased for healthy weight gain",
		})
	}
	return target, adjustments
}

// confidenceScore multiplies penalties for sparse or unusual profiles and a
// small bonus for complete ones. Capped at 1.0; there is deliberately no
// lower clamp, so many stacked penalties keep shrinking the score.
func (e *AdaptiveEngine) confidenceScore(profile *models.HealthProfile) float64 {
	confidence := 1.0

	if profile.Age < 18 || profile.Age > 65 {
		confidence *= 0.9
	}
	if len(profile.ChronicConditions) > 2 {
		confidence *= 0.85
	}
	if bmi := profile.BMI(); bmi < 16 || bmi > 35 {
		confidence *= 0.8
	}
	if len(profile.Medications) > 0 {
		confidence *= 0.9
	}
	if len(profile.Allergies) > 0 && len(profile.DietaryPreferences) > 0 &&
		profile.WeightGoal != "" && profile.TargetWeight != nil {
		confidence *= 1.05
	}

	return math.Min(confidence, 1.0)
}

func (e *AdaptiveEngine) sourceGuidelines(profile *models.HealthProfile) []string {
	sources := []string{"WHO Dietary Guidelines", "ICMR Nutrient Requirements"}

	if AgeGroupFor(profile.Age).IsChildOrAdolescent() {
		sources = append(sources, "WHO Child/Adolescent Guidelines")
	}
	if len(profile.ChronicConditions) > 0 {
		sources = append(sources, "Clinical Nutrition Guidelines")
	}
	if profile.Gender == models.GenderFemale && profile.Age >= 19 && profile.Age <= 50 {
		sources = append(sources, "WHO Women's Health Guidelines")
	}
	return sources
}

func adjustmentDescription(factor float64) string {
	if factor > 1.0 {
		intensity := "significantly"
		if factor < 1.2 {
			intensity = "slightly"
		} else if factor < 1.5 {
			intensity = "moderately"
		}
		return fmt.Sprintf("Increased %s (%.1fx)", intensity, factor)
	}
	intensity := "significantly"
	if factor > 0.8 {
		intensity = "slightly"
	} else if factor > 0.6 {
		intensity = "moderately"
	}
	return fmt.Sprintf("Reduced %s (%.1fx)", intensity, factor)
}

// CalculateMealTargets scales the adjusted daily target down to a single
// meal. Unknown meal types get the default 1/3 share instead of failing.
func (e *AdaptiveEngine) CalculateMealTargets(daily *models.AdaptiveTarget, mealType string) models.NutrientTarget {
	ratio, ok := e.mealRatios[mealType]
	if !ok {
		ratio = 0.33
	}
	return daily.AdjustedTarget.Scale(ratio)
}

// NutrientGap describes one nutrient's intake relative to its target.
type NutrientGap struct {
	Current    float64 `json:"current"`
	Target     float64 `json:"target"`
	GapAmount  float64 `json:"gap_amount"`
	GapPercent float64 `json:"gap_percent"`
	Status     string  `json:"status"`
}

// GapAnalysis is the full intake-vs-target report.
type GapAnalysis struct {
	Gaps            map[models.Nutrient]NutrientGap `json:"gaps"`
	Recommendations []string                        `json:"recommendations"`
	OverallScore    float64                         `json:"overall_score"`
}

var nutrientFoods = map[models.Nutrient][]string{
	models.NutrientProtein:  {"lean meats", "fish", "legumes", "nuts"},
	models.NutrientFiber:    {"whole grains", "fruits", "vegetables", "legumes"},
	models.NutrientCalcium:  {"dairy products", "leafy greens", "fortified foods"},
	models.NutrientIron:     {"red meat", "spinach", "lentils", "fortified cereals"},
	models.NutrientVitaminC: {"citrus fruits", "berries", "bell peppers"},
	models.NutrientVitaminA: {"carrots", "sweet potatoes", "dark leafy greens"},
}

var gapScoreWeights = map[models.Nutrient]float64{
	models.NutrientCalories:      1.0,
	models.NutrientProtein:       1.0,
	models.NutrientCarbohydrates: 0.8,
	models.NutrientFat:           0.8,
	models.NutrientFiber:         1.2,
	models.NutrientSodium:        1.0,
}

// AnalyzeNutrientGap compares current intake against adjusted targets,
// classifies each nutrient into a status band and emits recommendations for
// gaps beyond 20% in either direction.
func (e *AdaptiveEngine) AnalyzeNutrientGap(current models.NutrientTarget, targets *models.AdaptiveTarget) GapAnalysis {
	gaps := make(map[models.Nutrient]NutrientGap, len(models.Nutrients))
	recommendations := []string{}

	for _, n := range models.Nutrients {
		target, _ := targets.AdjustedTarget.Value(n)
		intake, _ := current.Value(n)

		gapPercent := 0.0
		if target > 0 {
			gapPercent = (intake - target) / target * 100
		}

		gaps[n] = NutrientGap{
			Current:    intake,
			Target:     target,
			GapAmount:  intake - target,
			GapPercent: gapPercent,
			Status:     nutrientStatus(gapPercent),
		}

		if math.Abs(gapPercent) > 20 {
			recommendations = append(recommendations, nutrientRecommendation(n, gapPercent))
		}
	}

	return GapAnalysis{
		Gaps:            gaps,
		Recommendations: recommendations,
		OverallScore:    overallNutritionScore(gaps),
	}
}

func nutrientStatus(gapPercent float64) string {
	switch {
	case gapPercent < -30:
		return "critically_low"
	case gapPercent < -20:
		return "low"
	case gapPercent < -10:
		return "slightly_low"
	case gapPercent <= 10:
		return "optimal"
	case gapPercent <= 25:
		return "slightly_high"
	case gapPercent <= 50:
		return "high"
	default:
		return "critically_high"
	}
}

func nutrientRecommendation(n models.Nutrient, gapPercent float64) string {
	if gapPercent < -20 {
		foods, ok := nutrientFoods[n]
		if !ok {
			foods = []string{string(n) + "-rich foods"}
		}
		if len(foods) > 2 {
			foods = foods[:2]
		}
		return fmt.Sprintf("Increase %s intake by including more %s", n, strings.Join(foods, ", "))
	}
	if gapPercent > 25 {
		return fmt.Sprintf("Consider reducing %s intake to avoid excess", n)
	}
	return fmt.Sprintf("Monitor %s levels", n)
}

// overallNutritionScore maps each nutrient's absolute gap to a tier score,
// weights it, and averages over all nutrients.
func overallNutritionScore(gaps map[models.Nutrient]NutrientGap) float64 {
	if len(gaps) == 0 {
		return 0
	}
	total := 0.0
	for n, gap := range gaps {
		weight, ok := gapScoreWeights[n]
		if !ok {
			weight = 0.5
		}
		gapPercent := math.Abs(gap.GapPercent)

		score := 40.0
		switch {
		case gapPercent <= 10:
			score = 100
		case gapPercent <= 25:
			score = 80
		case gapPercent <= 50:
			score = 60
		}
		total += score * weight
	}
	return total / float64(len(gaps))
}
