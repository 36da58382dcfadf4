package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshya4568/food-Prediction/models"
)

func testEngine() *AdaptiveEngine {
	return NewAdaptiveEngine(NewGuidelines())
}

func sedentaryMale45() *models.HealthProfile {
	return &models.HealthProfile{
		UserID:        "u1",
		Age:           45,
		Gender:        models.GenderMale,
		Height:        175,
		Weight:        90,
		ActivityLevel: models.Sedentary,
	}
}

func TestCalculateAdaptiveTargetsHypertension(t *testing.T) {
	profile := sedentaryMale45()
	profile.ChronicConditions = append(profile.ChronicConditions, models.Hypertension)

	target, err := testEngine().CalculateAdaptiveTargets(profile)
	require.NoError(t, err)

	// BMR = 10*90 + 6.25*175 - 5*45 + 5 = 1773.75, TDEE = *1.2
	assert.InDelta(t, 2128.5, target.BaseTarget.Calories, 0.001)
	assert.InDelta(t, 2000, target.BaseTarget.Sodium, 0.001)

	// sodium *0.6, calories *0.95
	assert.InDelta(t, 1200, target.AdjustedTarget.Sodium, 0.001)
	assert.InDelta(t, 2128.5*0.95, target.AdjustedTarget.Calories, 0.001)

	require.Len(t, target.Adjustments, 2)
	sodiumAdj := target.Adjustments[0]
	assert.Equal(t, "hypertension management", sodiumAdj.Reason)
	assert.Equal(t, models.NutrientSodium, sodiumAdj.Nutrient)
	assert.InDelta(t, 0.6, sodiumAdj.AdjustmentFactor, 0.001)
	assert.InDelta(t, 2000, sodiumAdj.OldValue, 0.001)
	assert.InDelta(t, 1200, sodiumAdj.NewValue, 0.001)

	assert.Contains(t, target.SourceGuidelines, "Clinical Nutrition Guidelines")
}

func TestCalculateAdaptiveTargetsBaseMacroSplit(t *testing.T) {
	target, err := testEngine().CalculateAdaptiveTargets(sedentaryMale45())
	require.NoError(t, err)

	tdee := target.BaseTarget.Calories
	assert.InDelta(t, tdee*0.15/4, target.BaseTarget.Protein, 0.001)
	assert.InDelta(t, tdee*0.25/9, target.BaseTarget.Fat, 0.001)
	assert.InDelta(t, tdee*0.60/4, target.BaseTarget.Carbohydrates, 0.001)
	assert.InDelta(t, tdee/1000*25, target.BaseTarget.Fiber, 0.001)
	assert.InDelta(t, tdee*0.05/4, target.BaseTarget.Sugar, 0.001)
}

func TestCalculateAdaptiveTargetsNoAdjustments(t *testing.T) {
	target, err := testEngine().CalculateAdaptiveTargets(sedentaryMale45())
	require.NoError(t, err)

	assert.Equal(t, target.BaseTarget, target.AdjustedTarget)
	assert.Empty(t, target.Adjustments)
	assert.Equal(t, []string{"WHO Dietary Guidelines", "ICMR Nutrient Requirements"},
		target.SourceGuidelines)
}

func TestCalculateAdaptiveTargetsInvalidActivity(t *testing.T) {
	profile := sedentaryMale45()
	profile.ActivityLevel = "couch_potato"

	_, err := testEngine().CalculateAdaptiveTargets(profile)
	assert.ErrorIs(t, err, ErrInvalidActivityLevel)
}

func TestWeightLossGoalAdjustments(t *testing.T) {
	profile := sedentaryMale45()
	profile.WeightGoal = models.GoalLose

	target, err := testEngine().CalculateAdaptiveTargets(profile)
	require.NoError(t, err)

	assert.InDelta(t, target.BaseTarget.Calories*0.8, target.AdjustedTarget.Calories, 0.001)
	assert.InDelta(t, target.BaseTarget.Protein*1.2, target.AdjustedTarget.Protein, 0.001)

	require.Len(t, target.Adjustments, 2)
	assert.Equal(t, "weight_loss_goal", target.Adjustments[0].Reason)
	assert.Equal(t, models.NutrientCalories, target.Adjustments[0].Nutrient)
	assert.Equal(t, "weight_loss_goal", target.Adjustments[1].Reason)
	assert.Equal(t, models.NutrientProtein, target.Adjustments[1].Nutrient)
}

func TestWeightGainGoalAdjustment(t *testing.T) {
	profile := sedentaryMale45()
	profile.WeightGoal = models.GoalGain

	target, err := testEngine().CalculateAdaptiveTargets(profile)
	require.NoError(t, err)

	assert.InDelta(t, target.BaseTarget.Calories*1.15, target.AdjustedTarget.Calories, 0.001)
	require.Len(t, target.Adjustments, 1)
	assert.Equal(t, "weight_gain_goal", target.Adjustments[0].Reason)
}

func TestConditionAdjustmentsCompoundInProfileOrder(t *testing.T) {
	profile := sedentaryMale45()
	profile.ChronicConditions = append(profile.ChronicConditions,
		models.Hypertension, models.KidneyDisease)

	target, err := testEngine().CalculateAdaptiveTargets(profile)
	require.NoError(t, err)

	// sodium: 2000 * 0.6 (hypertension) * 0.6 (kidney) = 720
	assert.InDelta(t, 720, target.AdjustedTarget.Sodium, 0.001)

	// 2 hypertension entries + 2 kidney entries, profile order
	require.Len(t, target.Adjustments, 4)
	assert.Equal(t, "hypertension management", target.Adjustments[0].Reason)
	assert.Equal(t, "kidney_disease management", target.Adjustments[2].Reason)
	assert.InDelta(t, 1200, target.Adjustments[3].OldValue, 0.001)
	assert.InDelta(t, 720, target.Adjustments[3].NewValue, 0.001)
}

func TestConfidenceScore(t *testing.T) {
	e := testEngine()

	healthy := sedentaryMale45()
	assert.InDelta(t, 1.0, e.confidenceScore(healthy), 0.0001)

	elderly := sedentaryMale45()
	elderly.Age = 70
	assert.InDelta(t, 0.9, e.confidenceScore(elderly), 0.0001)

	medicated := sedentaryMale45()
	medicated.Medications = append(medicated.Medications, "metformin")
	assert.InDelta(t, 0.9, e.confidenceScore(medicated), 0.0001)

	// Complete profile bonus must not push the score past 1.0
	tw := 80.0
	complete := sedentaryMale45()
	complete.Allergies = append(complete.Allergies, models.AllergyInfo{Allergen: "peanut"})
	complete.DietaryPreferences = append(complete.DietaryPreferences, "vegetarian")
	complete.WeightGoal = models.GoalLose
	complete.TargetWeight = &tw
	assert.InDelta(t, 1.0, e.confidenceScore(complete), 0.0001)

	// Stacked penalties keep multiplying with no lower clamp
	stacked := sedentaryMale45()
	stacked.Age = 80
	stacked.Weight = 130 // BMI > 35
	stacked.ChronicConditions = append(stacked.ChronicConditions,
		models.Hypertension, models.DiabetesType2, models.HeartDisease)
	stacked.Medications = append(stacked.Medications, "statin")
	assert.InDelta(t, 0.9*0.85*0.8*0.9, e.confidenceScore(stacked), 0.0001)
}

func TestSourceGuidelines(t *testing.T) {
	e := testEngine()

	child := sedentaryMale45()
	child.Age = 10
	assert.Contains(t, e.sourceGuidelines(child), "WHO Child/Adolescent Guidelines")

	woman := sedentaryMale45()
	woman.Gender = models.GenderFemale
	woman.Age = 30
	assert.Contains(t, e.sourceGuidelines(woman), "WHO Women's Health Guidelines")

	older := sedentaryMale45()
	older.Gender = models.GenderFemale
	older.Age = 55
	assert.NotContains(t, e.sourceGuidelines(older), "WHO Women's Health Guidelines")
}

func TestCalculateMealTargets(t *testing.T) {
	e := testEngine()
	target, err := e.CalculateAdaptiveTargets(sedentaryMale45())
	require.NoError(t, err)

	breakfast := e.CalculateMealTargets(target, "breakfast")
	assert.InDelta(t, target.AdjustedTarget.Calories*0.25, breakfast.Calories, 0.001)
	assert.InDelta(t, target.AdjustedTarget.Sodium*0.25, breakfast.Sodium, 0.001)

	unknown := e.CalculateMealTargets(target, "brunch")
	assert.InDelta(t, target.AdjustedTarget.Calories*0.33, unknown.Calories, 0.001)
}

func TestAnalyzeNutrientGapSodiumCriticallyHigh(t *testing.T) {
	e := testEngine()
	profile := sedentaryMale45()
	profile.ChronicConditions = append(profile.ChronicConditions, models.Hypertension)

	target, err := e.CalculateAdaptiveTargets(profile)
	require.NoError(t, err)
	require.InDelta(t, 1200, target.AdjustedTarget.Sodium, 0.001)

	current := target.AdjustedTarget
	current.Sodium = 2500

	analysis := e.AnalyzeNutrientGap(current, target)
	sodiumGap := analysis.Gaps[models.NutrientSodium]
	assert.InDelta(t, 108.333, sodiumGap.GapPercent, 0.01)
	assert.Equal(t, "critically_high", sodiumGap.Status)

	assert.Contains(t, analysis.Recommendations,
		"Consider reducing sodium intake to avoid excess")
}

func TestAnalyzeNutrientGapStatusBands(t *testing.T) {
	cases := []struct {
		gapPercent float64
		status     string
	}{
		{-40, "critically_low"},
		{-25, "low"},
		{-15, "slightly_low"},
		{0, "optimal"},
		{15, "slightly_high"},
		{40, "high"},
		{60, "critically_high"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, nutrientStatus(tc.gapPercent), "gap %.0f%%", tc.gapPercent)
	}
}

func TestAnalyzeNutrientGapLowIntakeRecommendation(t *testing.T) {
	e := testEngine()
	target, err := e.CalculateAdaptiveTargets(sedentaryMale45())
	require.NoError(t, err)

	current := target.AdjustedTarget
	current.Protein = current.Protein * 0.5

	analysis := e.AnalyzeNutrientGap(current, target)
	assert.Equal(t, "critically_low", analysis.Gaps[models.NutrientProtein].Status)
	assert.Contains(t, analysis.Recommendations,
		"Increase protein intake by including more lean meats, fish")
}

func TestOverallNutritionScorePerfectIntake(t *testing.T) {
	e := testEngine()
	target, err := e.CalculateAdaptiveTargets(sedentaryMale45())
	require.NoError(t, err)

	analysis := e.AnalyzeNutrientGap(target.AdjustedTarget, target)

	// All gaps zero: every nutrient scores 100, averaged down by its weight.
	expected := 0.0
	for _, n := range models.Nutrients {
		weight, ok := gapScoreWeights[n]
		if !ok {
			weight = 0.5
		}
		expected += 100 * weight
	}
	expected /= float64(len(models.Nutrients))
	assert.InDelta(t, expected, analysis.OverallScore, 0.001)
	assert.Empty(t, analysis.Recommendations)
}
