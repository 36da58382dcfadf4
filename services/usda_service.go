package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

// USDANutrient is one nutrient entry from USDA FoodData Central.
type USDANutrient struct {
	NutrientID int     `json:"nutrient_id"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	Amount     float64 `json:"amount"`
}

// USDAFoodItem is the raw FoodData Central record the normalizer consumes.
type USDAFoodItem struct {
	FdcID       int            `json:"fdc_id"`
	Description string         `json:"description"`
	DataType    string         `json:"data_type"`
	Nutrients   []USDANutrient `json:"nutrients"`
	BrandOwner  string         `json:"brand_owner,omitempty"`
	GtinUpc     string         `json:"gtin_upc,omitempty"`
	Ingredients string         `json:"ingredients,omitempty"`
}

// USDAService wraps the USDA FoodData Central API.
type USDAService struct {
	apiKey string
	client *http.Client
}

func NewUSDAService() *USDAService {
	return &USDAService{
		apiKey: os.Getenv("USDA_API_KEY"),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

const usdaBaseURL = "https://api.nal.usda.gov/fdc/v1"

type usdaSearchResponse struct {
	Foods []struct {
		FdcID       int    `json:"fdcId"`
		Description string `json:"description"`
		DataType    string `json:"dataType"`
		BrandOwner  string `json:"brandOwner"`
		GtinUpc     string `json:"gtinUpc"`
	} `json:"foods"`
}

type usdaFoodResponse struct {
	FdcID         int    `json:"fdcId"`
	Description   string `json:"description"`
	DataType      string `json:"dataType"`
	BrandOwner    string `json:"brandOwner"`
	GtinUpc       string `json:"gtinUpc"`
	Ingredients   string `json:"ingredients"`
	FoodNutrients []struct {
		Nutrient struct {
			ID       int    `json:"id"`
			Name     string `json:"name"`
			UnitName string `json:"unitName"`
		} `json:"nutrient"`
		Amount float64 `json:"amount"`
	} `json:"foodNutrients"`
}

// SearchFoods queries the FoodData Central search endpoint. Search results
// carry no nutrient list; fetch details per food for the full record.
func (s *USDAService) SearchFoods(query string, limit int) ([]USDAFoodItem, error) {
	if limit > 200 {
		limit = 200
	}
	u := fmt.Sprintf("%s/foods/search?query=%s&pageSize=%d&api_key=%s",
		usdaBaseURL, url.QueryEscape(query), limit, s.apiKey)

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to call USDA search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read USDA search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usda search API error %d: %s", resp.StatusCode, string(body))
	}

	var sr usdaSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse USDA search JSON: %w", err)
	}

	results := make([]USDAFoodItem, 0, len(sr.Foods))
	for _, f := range sr.Foods {
		results = append(results, USDAFoodItem{
			FdcID:       f.FdcID,
			Description: f.Description,
			DataType:    f.DataType,
			BrandOwner:  f.BrandOwner,
			GtinUpc:     f.GtinUpc,
		})
	}
	return results, nil
}

// GetFoodDetails fetches the full nutrient list for one FDC ID. Returns
// (nil, nil) when the food does not exist upstream.
func (s *USDAService) GetFoodDetails(fdcID string) (*USDAFoodItem, error) {
	if _, err := strconv.Atoi(fdcID); err != nil {
		return nil, fmt.Errorf("invalid fdc id %q", fdcID)
	}
	u := fmt.Sprintf("%s/food/%s?api_key=%s", usdaBaseURL, fdcID, s.apiKey)

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to call USDA food endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read USDA food response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usda food API error %d: %s", resp.StatusCode, string(body))
	}

	var fr usdaFoodResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return nil, fmt.Errorf("failed to parse USDA food JSON: %w", err)
	}

	item := &USDAFoodItem{
		FdcID:       fr.FdcID,
		Description: fr.Description,
		DataType:    fr.DataType,
		BrandOwner:  fr.BrandOwner,
		GtinUpc:     fr.GtinUpc,
		Ingredients: fr.Ingredients,
	}
	for _, fn := range fr.FoodNutrients {
		item.Nutrients = append(item.Nutrients, USDANutrient{
			NutrientID: fn.Nutrient.ID,
			Name:       fn.Nutrient.Name,
			Unit:       fn.Nutrient.UnitName,
			Amount:     fn.Amount,
		})
	}
	return item, nil
}
