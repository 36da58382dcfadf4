package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/lakshya4568/food-Prediction/models"
)

// ErrFoodNotFound is returned when no provider can resolve a food id.
var ErrFoodNotFound = errors.New("food not found")

// NutritionService orchestrates the two upstream providers behind the cache
// and the normalizer. Source "usda", "edamam" or "both"; "both" search
// interleaves, and "both" details merges USDA (primary) with Edamam.
type NutritionService struct {
	usda       *USDAService
	edamam     *EdamamService
	normalizer *Normalizer
	cache      *NutritionCache
}

func NewNutritionService(usda *USDAService, edamam *EdamamService,
	normalizer *Normalizer, cache *NutritionCache) *NutritionService {
	return &NutritionService{usda: usda, edamam: edamam, normalizer: normalizer, cache: cache}
}

// Search queries the requested source(s), normalizes every hit and caches
// the unified result set for an hour.
func (s *NutritionService) Search(ctx context.Context, query, source string, limit int) ([]models.NutritionData, error) {
	if limit <= 0 {
		limit = 10
	}
	if source == "" {
		source = "both"
	}

	if cached := s.cache.GetSearchResults(ctx, query, source, limit); cached != nil {
		return cached, nil
	}

	var results []models.NutritionData
	switch source {
	case "usda":
		usdaResults, err := s.searchUSDA(query, limit)
		if err != nil {
			return nil, err
		}
		results = usdaResults
	case "edamam":
		edamamResults, err := s.searchEdamam(query, limit)
		if err != nil {
			return nil, err
		}
		results = edamamResults
	case "both":
		// Degraded providers reduce the result set instead of failing the
		// whole search.
		usdaResults, err := s.searchUSDA(query, limit)
		if err != nil {
			log.Printf("usda search degraded: %v", err)
		}
		edamamResults, err := s.searchEdamam(query, limit)
		if err != nil {
			log.Printf("edamam search degraded: %v", err)
		}
		results = append(usdaResults, edamamResults...)
		if len(results) > limit {
			results = results[:limit]
		}
	default:
		return nil, fmt.Errorf("unknown source %q (want usda, edamam or both)", source)
	}

	s.cache.SetSearchResults(ctx, query, source, limit, results, time.Hour)
	return results, nil
}

func (s *NutritionService) searchUSDA(query string, limit int) ([]models.NutritionData, error) {
	foods, err := s.usda.SearchFoods(query, limit)
	if err != nil {
		return nil, err
	}
	results := make([]models.NutritionData, 0, len(foods))
	for i := range foods {
		results = append(results, *s.normalizer.NormalizeUSDA(&foods[i]))
	}
	return results, nil
}

func (s *NutritionService) searchEdamam(query string, limit int) ([]models.NutritionData, error) {
	foods, err := s.edamam.SearchFoods(query, limit)
	if err != nil {
		return nil, err
	}
	results := make([]models.NutritionData, 0, len(foods))
	for i := range foods {
		results = append(results, *s.normalizer.NormalizeEdamam(&foods[i]))
	}
	return results, nil
}

// GetDetails resolves a prefixed food id ("usda_123", "edamam_abc"). For
// USDA foods it additionally tries to fill gaps from Edamam by name and
// merges the two records.
func (s *NutritionService) GetDetails(ctx context.Context, foodID string) (*models.NutritionData, error) {
	if cached := s.cache.GetFoodDetails(ctx, foodID); cached != nil {
		return cached, nil
	}

	source, nativeID, ok := strings.Cut(foodID, "_")
	if !ok {
		return nil, fmt.Errorf("malformed food id %q", foodID)
	}

	var data *models.NutritionData
	switch source {
	case "usda":
		food, err := s.usda.GetFoodDetails(nativeID)
		if err != nil {
			return nil, err
		}
		if food == nil {
			return nil, fmt.Errorf("%w: %s", ErrFoodNotFound, foodID)
		}
		data = s.normalizer.NormalizeUSDA(food)

		// Fill gaps from Edamam when it knows the same food.
		if secondary := s.edamamByName(food.Description); secondary != nil {
			data = s.normalizer.Merge(data, secondary)
		}
	case "edamam":
		food, err := s.edamam.GetFoodDetails(nativeID)
		if err != nil {
			return nil, err
		}
		if food == nil {
			return nil, fmt.Errorf("%w: %s", ErrFoodNotFound, foodID)
		}
		data = s.normalizer.NormalizeEdamam(food)
	default:
		return nil, fmt.Errorf("%w: unknown source prefix in %q", ErrUnsupportedSourceType, foodID)
	}

	s.cache.SetFoodDetails(ctx, foodID, data, time.Hour)
	return data, nil
}

func (s *NutritionService) edamamByName(name string) *models.NutritionData {
	if name == "" {
		return nil
	}
	hits, err := s.edamam.SearchFoods(name, 1)
	if err != nil || len(hits) == 0 {
		return nil
	}
	detail, err := s.edamam.GetFoodDetails(hits[0].FoodID)
	if err != nil || detail == nil {
		return nil
	}
	return s.normalizer.NormalizeEdamam(detail)
}

// FoodComparison is the compare endpoint's payload.
type FoodComparison struct {
	Foods    []models.NutritionData `json:"foods"`
	Analysis map[string]any         `json:"analysis"`
}

// Compare fetches every food and ranks them on a few headline nutrients.
// Results are cached under the sorted id list.
func (s *NutritionService) Compare(ctx context.Context, foodIDs []string) (*FoodComparison, error) {
	if len(foodIDs) < 2 {
		return nil, fmt.Errorf("comparison needs at least 2 food ids, got %d", len(foodIDs))
	}

	if cached := s.cache.GetComparison(ctx, foodIDs); cached != nil {
		if comparison := comparisonFromCache(cached); comparison != nil {
			return comparison, nil
		}
	}

	foods := make([]models.NutritionData, 0, len(foodIDs))
	for _, id := range foodIDs {
		data, err := s.GetDetails(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("comparison failed for %s: %w", id, err)
		}
		foods = append(foods, *data)
	}

	comparison := &FoodComparison{
		Foods:    foods,
		Analysis: comparisonAnalysis(foods),
	}
	s.cache.SetComparison(ctx, foodIDs, map[string]any{
		"foods":    comparison.Foods,
		"analysis": comparison.Analysis,
	}, time.Hour)
	return comparison, nil
}

// comparisonFromCache rehydrates the typed comparison from the cached map.
func comparisonFromCache(cached map[string]any) *FoodComparison {
	b, err := json.Marshal(cached)
	if err != nil {
		return nil
	}
	var comparison FoodComparison
	if err := json.Unmarshal(b, &comparison); err != nil || len(comparison.Foods) == 0 {
		return nil
	}
	return &comparison
}

// comparisonAnalysis picks the best food per headline metric.
func comparisonAnalysis(foods []models.NutritionData) map[string]any {
	type ranked struct {
		FoodID string  `json:"food_id"`
		Name   string  `json:"name"`
		Value  float64 `json:"value"`
	}
	best := func(metric string, value func(*models.NutritionData) float64, lowerBetter bool) ranked {
		entries := make([]ranked, 0, len(foods))
		for i := range foods {
			entries = append(entries, ranked{foods[i].FoodID, foods[i].Name, value(&foods[i])})
		}
		sort.Slice(entries, func(i, j int) bool {
			if lowerBetter {
				return entries[i].Value < entries[j].Value
			}
			return entries[i].Value > entries[j].Value
		})
		return entries[0]
	}

	return map[string]any{
		"highest_protein": best("protein", func(d *models.NutritionData) float64 { return d.Macros.Protein }, false),
		"lowest_calories": best("calories", func(d *models.NutritionData) float64 { return d.Macros.EnergyKcal }, true),
		"highest_fiber":   best("fiber", func(d *models.NutritionData) float64 { return d.Macros.Fiber }, false),
		"lowest_sodium":   best("sodium", func(d *models.NutritionData) float64 { return d.Macros.Sodium }, true),
	}
}
