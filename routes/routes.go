package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lakshya4568/food-Prediction/controllers"
	"github.com/lakshya4568/food-Prediction/middlewares"
	"github.com/lakshya4568/food-Prediction/services"
)

// Deps carries every service the router wires into handlers.
type Deps struct {
	Auth            *services.AuthService
	Profiles        *services.ProfileService
	Engine          *services.AdaptiveEngine
	Nutrition       *services.NutritionService
	Cache           *services.NutritionCache
	Recognition     *services.RecognitionService
	Recommendations *services.RecommendationService
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	authCtl := controllers.NewAuthController(deps.Auth)
	healthCtl := controllers.NewHealthController(deps.Profiles, deps.Engine)
	nutritionCtl := controllers.NewNutritionController(deps.Nutrition, deps.Cache)
	predictCtl := controllers.NewPredictController(deps.Recognition)
	recommendationCtl := controllers.NewRecommendationController(deps.Recommendations)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
	}

	// Liveness plus downstream status
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "healthy",
			"cache_enabled":  deps.Cache.Enabled(),
			"gemini_enabled": deps.Recommendations.Configured(),
		})
	})

	// Public model endpoints, matching the classifier's original surface
	r.POST("/predict", predictCtl.Predict)
	r.POST("/get_health_info", recommendationCtl.GetHealthInfo)

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware(deps.Auth))
	{
		health := api.Group("/health")
		{
			health.POST("/profile", healthCtl.CreateProfile)
			health.GET("/profiles", healthCtl.ListProfiles)
			health.GET("/profile/:userId", healthCtl.GetProfile)
			health.PUT("/profile/:userId", healthCtl.UpdateProfile)
			health.DELETE("/profile/:userId", healthCtl.DeleteProfile)
			health.GET("/profile/:userId/exists", healthCtl.ProfileExists)
			health.GET("/profile/:userId/summary", healthCtl.ProfileSummary)

			health.GET("/reference/activity-levels", healthCtl.ActivityLevels)
			health.GET("/reference/conditions", healthCtl.ChronicConditions)
			health.GET("/reference/genders", healthCtl.Genders)

			// Target endpoints need the subject's profile loaded
			targets := health.Group("/profile/:userId")
			targets.Use(middlewares.RequireProfile(deps.Profiles))
			{
				targets.GET("/nutrient-targets", healthCtl.NutrientTargets)
				targets.POST("/gap-analysis", healthCtl.GapAnalysis)
			}
		}

		nutrition := api.Group("/nutrition")
		{
			nutrition.GET("/search", nutritionCtl.Search)
			nutrition.GET("/details/:foodId", nutritionCtl.Details)
			nutrition.GET("/details/:foodId/warnings", nutritionCtl.FoodWarnings)
			nutrition.POST("/compare", nutritionCtl.Compare)
			nutrition.GET("/cache/stats", nutritionCtl.CacheStats)
			nutrition.POST("/cache/clear", nutritionCtl.ClearCache)
			nutrition.DELETE("/cache/invalidate/:foodId", nutritionCtl.InvalidateFood)
		}
	}

	return r
}
