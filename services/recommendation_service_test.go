package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshya4568/food-Prediction/models"
)

func TestParseInsightCleanJSON(t *testing.T) {
	insight, ok := parseInsight(`{"health_benefits":"Rich in protein.","recommendation":"Recommended."}`)
	require.True(t, ok)
	assert.Equal(t, OriginParsed, insight.Origin)
	assert.Equal(t, "Rich in protein.", insight.HealthBenefits)
}

func TestParseInsightMarkdownFence(t *testing.T) {
	text := "```json\n{\"health_benefits\":\"High in fiber.\",\"recommendation\":\"Eat in moderation.\"}\n```"
	insight, ok := parseInsight(text)
	require.True(t, ok)
	assert.Equal(t, OriginMarkdownExtract, insight.Origin)
	assert.Equal(t, "Eat in moderation.", insight.Recommendation)
}

func TestParseInsightBareFence(t *testing.T) {
	text := "```\n{\"health_benefits\":\"b\",\"recommendation\":\"r\"}\n```"
	insight, ok := parseInsight(text)
	require.True(t, ok)
	assert.Equal(t, OriginMarkdownExtract, insight.Origin)
}

func TestParseInsightRejectsGarbageAndMissingKeys(t *testing.T) {
	_, ok := parseInsight("sorry, I can't help with that")
	assert.False(t, ok)

	_, ok = parseInsight(`{"health_benefits":"only one key"}`)
	assert.False(t, ok)
}

func TestFoodInsightFallsBackWhenUnconfigured(t *testing.T) {
	svc := &RecommendationService{} // no API key
	profile := &models.HealthProfile{Height: 175, Weight: 70}

	insight := svc.FoodInsightFor(context.Background(), "pizza", profile)
	require.NotNil(t, insight)
	assert.Equal(t, OriginFallbackTemplate, insight.Origin)
	assert.Contains(t, insight.HealthBenefits, "pizza")
	assert.NotEmpty(t, insight.Recommendation)
}

func TestBuildInsightPromptIncludesProfile(t *testing.T) {
	profile := &models.HealthProfile{Height: 175, Weight: 90}
	profile.ChronicConditions = append(profile.ChronicConditions,
		models.Hypertension, models.DiabetesType2)

	prompt := buildInsightPrompt("biryani", profile)
	assert.Contains(t, prompt, "biryani")
	assert.Contains(t, prompt, "175.0 cm")
	assert.Contains(t, prompt, "hypertension, diabetes_type_2")

	empty := buildInsightPrompt("rice", &models.HealthProfile{Height: 160, Weight: 55})
	assert.True(t, strings.Contains(empty, "None specified"))
}
