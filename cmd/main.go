package main

import (
	"log"
	"time"

	"github.com/lakshya4568/food-Prediction/config"
	"github.com/lakshya4568/food-Prediction/routes"
	"github.com/lakshya4568/food-Prediction/services"
)

func main() {
	config.LoadEnv()

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	recognition, err := services.NewRecognitionService()
	if err != nil {
		log.Fatalf("recognition init failed: %v", err)
	}

	cache := services.NewNutritionCache(time.Hour)
	normalizer := services.NewNormalizer()
	nutrition := services.NewNutritionService(
		services.NewUSDAService(),
		services.NewEdamamService(),
		normalizer,
		cache,
	)

	r := routes.SetupRouter(routes.Deps{
		Auth:            services.NewAuthService(db),
		Profiles:        services.NewProfileService(db),
		Engine:          services.NewAdaptiveEngine(services.NewGuidelines()),
		Nutrition:       nutrition,
		Cache:           cache,
		Recognition:     recognition,
		Recommendations: services.NewRecommendationService(),
	})
	if err := r.Run(config.ServerAddr()); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
