package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/lakshya4568/food-Prediction/models"
)

// ParseOrigin tags how a food insight was obtained, so callers can tell a
// model answer from the canned fallback.
type ParseOrigin string

const (
	// OriginParsed means the model returned clean JSON.
	OriginParsed ParseOrigin = "parsed"
	// OriginMarkdownExtract means JSON was recovered from a ```json fence.
	OriginMarkdownExtract ParseOrigin = "markdown_extract"
	// OriginFallbackTemplate means the model was unavailable or unparseable
	// and a generic template answer was substituted.
	OriginFallbackTemplate ParseOrigin = "fallback_template"
)

// FoodInsight is the recommendation payload for one food and user profile.
type FoodInsight struct {
	HealthBenefits string      `json:"health_benefits"`
	Recommendation string      `json:"recommendation"`
	Origin         ParseOrigin `json:"origin"`
}

// RecommendationService generates per-food health guidance with the Gemini
// REST API. It always produces an answer; when the model call or its JSON
// fails, the insight falls back to a template and is tagged as such.
type RecommendationService struct {
	apiKey string
	model  string
	client *http.Client
}

func NewRecommendationService() *RecommendationService {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash-001"
	}
	return &RecommendationService{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *RecommendationService) Configured() bool { return s.apiKey != "" }

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
	Config   struct {
		ResponseMimeType string  `json:"responseMimeType"`
		Temperature      float64 `json:"temperature"`
		MaxOutputTokens  int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type geminiContent struct {
	Parts []struct {
		Text string `json:"text"`
	} `json:"parts"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// FoodInsightFor asks the model whether a user with the given profile should
// eat the food. Never returns an error for model trouble, only the tagged
// fallback.
func (s *RecommendationService) FoodInsightFor(ctx context.Context, foodName string, profile *models.HealthProfile) *FoodInsight {
	if !s.Configured() {
		return fallbackInsight(foodName)
	}

	raw, err := s.generate(ctx, buildInsightPrompt(foodName, profile))
	if err != nil {
		return fallbackInsight(foodName)
	}
	insight, ok := parseInsight(raw)
	if !ok {
		return fallbackInsight(foodName)
	}
	return insight
}

func buildInsightPrompt(foodName string, profile *models.HealthProfile) string {
	conditions := "None specified"
	if len(profile.ChronicConditions) > 0 {
		names := make([]string, 0, len(profile.ChronicConditions))
		for _, c := range profile.ChronicConditions {
			names = append(names, string(c))
		}
		conditions = strings.Join(names, ", ")
	}

	return fmt.Sprintf(`Analyze the food '%s'.
Provide its key health benefits.
Based on the following user profile:
- Height: %.1f cm
- Weight: %.1f kg
- BMI: %.1f
- Pre-existing conditions: %s

Should this user eat this food? Provide a brief recommendation (e.g., 'Recommended', 'Eat in moderation', 'Avoid') and a short explanation for the recommendation.

Format the response strictly as a JSON object with two keys:
1.  "health_benefits": A string containing the health benefits.
2.  "recommendation": A string containing the recommendation and explanation.

Example JSON output:
{
  "health_benefits": "Rich in protein and iron, supports muscle growth.",
  "recommendation": "Recommended: Good source of nutrients, but consider portion size due to fat content."
}`, foodName, profile.Height, profile.Weight, profile.BMI(), conditions)
}

// generate calls the generateContent endpoint and returns the raw text of
// the first candidate.
func (s *RecommendationService) generate(ctx context.Context, prompt string) (string, error) {
	var gr geminiRequest
	gr.Contents = []geminiContent{{Parts: []struct {
		Text string `json:"text"`
	}{{Text: prompt}}}}
	gr.Config.ResponseMimeType = "application/json"
	gr.Config.Temperature = 0.3
	gr.Config.MaxOutputTokens = 1000

	b, err := json.Marshal(gr)
	if err != nil {
		return "", fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	u := fmt.Sprintf("%s/models/%s:generateContent?key=%s", geminiBaseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", u, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call gemini API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error %d: %s", resp.StatusCode, string(body))
	}

	var out geminiResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to parse gemini response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// parseInsight decodes the model text, first as-is, then with markdown code
// fences stripped. The origin tag records which path succeeded.
func parseInsight(text string) (*FoodInsight, bool) {
	text = strings.TrimSpace(text)

	if insight := decodeInsight(text); insight != nil {
		insight.Origin = OriginParsed
		return insight, true
	}

	stripped := text
	if after, ok := strings.CutPrefix(stripped, "```json"); ok {
		stripped = after
	} else if after, ok := strings.CutPrefix(stripped, "```"); ok {
		stripped = after
	}
	stripped = strings.TrimSuffix(strings.TrimSpace(stripped), "```")
	stripped = strings.TrimSpace(stripped)

	if insight := decodeInsight(stripped); insight != nil {
		insight.Origin = OriginMarkdownExtract
		return insight, true
	}
	return nil, false
}

func decodeInsight(text string) *FoodInsight {
	var insight FoodInsight
	if err := json.Unmarshal([]byte(text), &insight); err != nil {
		return nil
	}
	if insight.HealthBenefits == "" || insight.Recommendation == "" {
		return nil
	}
	return &insight
}

func fallbackInsight(foodName string) *FoodInsight {
	return &FoodInsight{
		HealthBenefits: fmt.Sprintf("%s provides energy and nutrients as part of a balanced diet.", foodName),
		Recommendation: "Eat in moderation: personalized guidance is unavailable right now, so follow general portion-control advice.",
		Origin:         OriginFallbackTemplate,
	}
}
