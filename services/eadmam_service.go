package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// EdamamNutrient is one nutrient entry from the Edamam Food Database,
// keyed upstream by short tags like ENERC_KCAL or PROCNT.
type EdamamNutrient struct {
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// EdamamFoodItem is the raw Edamam record the normalizer consumes.
type EdamamFoodItem struct {
	FoodID        string                    `json:"food_id"`
	Label         string                    `json:"label"`
	Nutrients     map[string]EdamamNutrient `json:"nutrients"`
	Category      string                    `json:"category,omitempty"`
	CategoryLabel string                    `json:"category_label,omitempty"`
	Brand         string                    `json:"brand,omitempty"`
	ServingWeight float64                   `json:"serving_weight,omitempty"`
}

type EdamamService struct {
	appID  string
	appKey string
	client *http.Client
}

// NewEdamamService initializes the EdamamService with credentials and HTTP client
func NewEdamamService() *EdamamService {
	return &EdamamService{
		appID:  os.Getenv("EDAMAM_APP_ID"),
		appKey: os.Getenv("EDAMAM_APP_KEY"),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

const edamamBaseURL = "https://api.edamam.com/api/food-database/v2"

// foodParserResponse mirrors the parser endpoint: exact matches in "parsed",
// suggestions in "hints".
type foodParserResponse struct {
	Parsed []struct {
		Food edamamRawFood `json:"food"`
	} `json:"parsed"`
	Hints []struct {
		Food edamamRawFood `json:"food"`
	} `json:"hints"`
}

type edamamRawFood struct {
	FoodID        string             `json:"foodId"`
	Label         string             `json:"label"`
	Brand         string             `json:"brand"`
	Category      string             `json:"category"`
	CategoryLabel string             `json:"categoryLabel"`
	Nutrients     map[string]float64 `json:"nutrients"`
}

// SearchFoods calls the Edamam Food Database parser endpoint.
func (s *EdamamService) SearchFoods(query string, limit int) ([]EdamamFoodItem, error) {
	u := fmt.Sprintf("%s/parser?ingr=%s&app_id=%s&app_key=%s",
		edamamBaseURL, url.QueryEscape(query), s.appID, s.appKey)

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to call Edamam parser: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Edamam parser response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("edamam parser API error %d: %s", resp.StatusCode, string(body))
	}

	var pr foodParserResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("failed to parse Edamam parser JSON: %w", err)
	}

	results := make([]EdamamFoodItem, 0, limit)
	for _, h := range pr.Parsed {
		if len(results) >= limit {
			break
		}
		results = append(results, rawFoodToItem(h.Food))
	}
	for _, h := range pr.Hints {
		if len(results) >= limit {
			break
		}
		results = append(results, rawFoodToItem(h.Food))
	}
	return results, nil
}

// rawFoodToItem converts the parser's flat nutrient map (a handful of tags
// with implicit units) into the tagged nutrient form.
func rawFoodToItem(f edamamRawFood) EdamamFoodItem {
	item := EdamamFoodItem{
		FoodID:        f.FoodID,
		Label:         f.Label,
		Brand:         f.Brand,
		Category:      f.Category,
		CategoryLabel: f.CategoryLabel,
		Nutrients:     make(map[string]EdamamNutrient, len(f.Nutrients)),
	}
	for tag, qty := range f.Nutrients {
		unit := "g"
		switch tag {
		case "ENERC_KCAL":
			unit = "kcal"
		case "NA", "CHOLE", "CA", "FE", "MG", "P", "K", "ZN", "CU", "MN",
			"VITC", "TOCPHA", "THIA", "RIBF", "NIA", "VITB6A":
			unit = "mg"
		case "VITA_RAE", "VITD", "VITK1", "FOLAC", "VITB12", "SE":
			unit = "mcg"
		}
		item.Nutrients[tag] = EdamamNutrient{Label: tag, Quantity: qty, Unit: unit}
	}
	return item
}

// nutrientsResponse mirrors the nutrients endpoint.
type nutrientsResponse struct {
	TotalNutrients map[string]struct {
		Label    string  `json:"label"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	} `json:"totalNutrients"`
	Ingredients []struct {
		Parsed []struct {
			Food         string  `json:"food"`
			FoodID       string  `json:"foodId"`
			FoodCategory string  `json:"foodCategory,omitempty"`
			Weight       float64 `json:"weight,omitempty"`
		} `json:"parsed"`
	} `json:"ingredients"`
}

// GetFoodDetails calls the nutrients endpoint for a 100g serving so values
// line up with the per-100g unified schema. Returns (nil, nil) when Edamam
// cannot resolve the food.
func (s *EdamamService) GetFoodDetails(foodID string) (*EdamamFoodItem, error) {
	payload := map[string]any{
		"ingredients": []map[string]any{{
			"quantity":   100,
			"measureURI": "http://www.edamam.com/ontologies/edamam.owl#Measure_gram",
			"foodId":     foodID,
		}},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal nutrients payload: %w", err)
	}

	u := fmt.Sprintf("%s/nutrients?app_id=%s&app_key=%s", edamamBaseURL, s.appID, s.appKey)
	req, err := http.NewRequest("POST", u, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create nutrients request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Edamam nutrients API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read nutrients response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("edamam nutrients API error %d: %s", resp.StatusCode, string(body))
	}

	var nr nutrientsResponse
	if err := json.Unmarshal(body, &nr); err != nil {
		return nil, fmt.Errorf("failed to parse Edamam nutrients JSON: %w", err)
	}

	item := &EdamamFoodItem{
		FoodID:    foodID,
		Nutrients: make(map[string]EdamamNutrient, len(nr.TotalNutrients)),
	}
	for tag, n := range nr.TotalNutrients {
		item.Nutrients[tag] = EdamamNutrient{Label: n.Label, Quantity: n.Quantity, Unit: n.Unit}
	}

	// Best-effort food info from the first parsed ingredient (if present)
	if len(nr.Ingredients) > 0 && len(nr.Ingredients[0].Parsed) > 0 {
		p := nr.Ingredients[0].Parsed[0]
		item.Label = p.Food
		item.CategoryLabel = p.FoodCategory
		item.ServingWeight = p.Weight
	}
	return item, nil
}
