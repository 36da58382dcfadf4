package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lakshya4568/food-Prediction/services"
	"github.com/lakshya4568/food-Prediction/utils"
)

// NutritionController serves food search, details, comparison and cache
// management.
type NutritionController struct {
	nutrition *services.NutritionService
	cache     *services.NutritionCache
}

func NewNutritionController(nutrition *services.NutritionService, cache *services.NutritionCache) *NutritionController {
	return &NutritionController{nutrition: nutrition, cache: cache}
}

func (ctl *NutritionController) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}
	source := c.DefaultQuery("source", "both")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	results, err := ctl.nutrition.Search(c.Request.Context(), query, source, limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"source":  source,
		"count":   len(results),
		"results": results,
	})
}

func (ctl *NutritionController) Details(c *gin.Context) {
	data, err := ctl.nutrition.GetDetails(c.Request.Context(), c.Param("foodId"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFoodNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrUnsupportedSourceType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, data)
}

func (ctl *NutritionController) Compare(c *gin.Context) {
	var body struct {
		FoodIDs []string `json:"food_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comparison, err := ctl.nutrition.Compare(c.Request.Context(), body.FoodIDs)
	if err != nil {
		if errors.Is(err, services.ErrFoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, comparison)
}

// FoodWarnings screens a food against daily dietary limits.
func (ctl *NutritionController) FoodWarnings(c *gin.Context) {
	data, err := ctl.nutrition.GetDetails(c.Request.Context(), c.Param("foodId"))
	if err != nil {
		if errors.Is(err, services.ErrFoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"food_id":  data.FoodID,
		"name":     data.Name,
		"warnings": utils.AssessFood(data, nil),
	})
}

func (ctl *NutritionController) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.cache.Stats(c.Request.Context()))
}

func (ctl *NutritionController) ClearCache(c *gin.Context) {
	deleted, err := ctl.cache.ClearAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (ctl *NutritionController) InvalidateFood(c *gin.Context) {
	deleted, err := ctl.cache.InvalidateFood(c.Request.Context(), c.Param("foodId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
