package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lakshya4568/food-Prediction/models"
	"github.com/lakshya4568/food-Prediction/services"
	"github.com/lakshya4568/food-Prediction/utils"
)

// RecommendationController serves per-food health guidance.
type RecommendationController struct {
	recommendations *services.RecommendationService
}

func NewRecommendationController(recommendations *services.RecommendationService) *RecommendationController {
	return &RecommendationController{recommendations: recommendations}
}

// GetHealthInfo answers "should this user eat this food" for an ad-hoc
// profile supplied in the request body. The response carries an origin tag
// so clients can tell a model answer from the canned fallback.
func (ctl *RecommendationController) GetHealthInfo(c *gin.Context) {
	var body struct {
		FoodName   string   `json:"food_name" binding:"required"`
		Height     float64  `json:"height" binding:"required"`
		Weight     float64  `json:"weight" binding:"required"`
		Conditions []string `json:"conditions"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := utils.CalculateBMI(body.Height, body.Weight); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := &models.HealthProfile{
		Height: body.Height,
		Weight: body.Weight,
	}
	for _, cond := range body.Conditions {
		profile.ChronicConditions = append(profile.ChronicConditions, models.ChronicCondition(cond))
	}

	insight := ctl.recommendations.FoodInsightFor(c.Request.Context(), body.FoodName, profile)
	c.JSON(http.StatusOK, insight)
}
