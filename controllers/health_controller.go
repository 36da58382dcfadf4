package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lakshya4568/food-Prediction/middlewares"
	"github.com/lakshya4568/food-Prediction/models"
	"github.com/lakshya4568/food-Prediction/services"
)

// HealthController serves the health-profile CRUD and the adaptive target
// endpoints built on top of it.
type HealthController struct {
	profiles *services.ProfileService
	engine   *services.AdaptiveEngine
}

func NewHealthController(profiles *services.ProfileService, engine *services.AdaptiveEngine) *HealthController {
	return &HealthController{profiles: profiles, engine: engine}
}

func (ctl *HealthController) CreateProfile(c *gin.Context) {
	var profile models.HealthProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if profile.UserID == "" {
		profile.UserID = c.GetString("userID")
	}

	if err := ctl.profiles.Create(&profile); err != nil {
		if errors.Is(err, services.ErrProfileExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (ctl *HealthController) GetProfile(c *gin.Context) {
	profile, err := ctl.profiles.Get(c.Param("userId"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrProfileNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (ctl *HealthController) UpdateProfile(c *gin.Context) {
	var incoming models.HealthProfile
	if err := c.ShouldBindJSON(&incoming); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := ctl.profiles.Update(c.Param("userId"), &incoming)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (ctl *HealthController) DeleteProfile(c *gin.Context) {
	if err := ctl.profiles.Delete(c.Param("userId")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrProfileNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile deleted"})
}

func (ctl *HealthController) ListProfiles(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	profiles, err := ctl.profiles.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles, "count": len(profiles)})
}

func (ctl *HealthController) ProfileExists(c *gin.Context) {
	exists, err := ctl.profiles.Exists(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

func (ctl *HealthController) ProfileSummary(c *gin.Context) {
	summary, err := ctl.profiles.Summary(c.Param("userId"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrProfileNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// NutrientTargets computes the adaptive daily targets for the profile loaded
// by the middleware. An optional meal_type query scales the result to one
// meal.
func (ctl *HealthController) NutrientTargets(c *gin.Context) {
	profile, ok := middlewares.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile missing from context"})
		return
	}

	targets, err := ctl.engine.CalculateAdaptiveTargets(profile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if mealType := c.Query("meal_type"); mealType != "" {
		c.JSON(http.StatusOK, gin.H{
			"meal_type":    mealType,
			"meal_targets": ctl.engine.CalculateMealTargets(targets, mealType),
			"daily":        targets,
		})
		return
	}
	c.JSON(http.StatusOK, targets)
}

// GapAnalysis compares reported intake against the profile's adaptive
// targets.
func (ctl *HealthController) GapAnalysis(c *gin.Context) {
	profile, ok := middlewares.ProfileFrom(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile missing from context"})
		return
	}

	var body struct {
		CurrentIntake models.NutrientTarget `json:"current_intake" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	targets, err := ctl.engine.CalculateAdaptiveTargets(profile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ctl.engine.AnalyzeNutrientGap(body.CurrentIntake, targets))
}

// Reference endpoints for onboarding forms.

func (ctl *HealthController) ActivityLevels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"activity_levels": models.ActivityLevels()})
}

func (ctl *HealthController) ChronicConditions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"chronic_conditions": models.ChronicConditions()})
}

func (ctl *HealthController) Genders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"genders": []models.Gender{
		models.GenderMale, models.GenderFemale, models.GenderOther,
	}})
}
