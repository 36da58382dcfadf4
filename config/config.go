package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lakshya4568/food-Prediction/models"
)

// LoadEnv reads .env if present. Missing files are fine in deployed
// environments where variables come from the platform.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
}

// InitDB connects to postgres and migrates the schema. The handle is
// returned rather than stored in a package global so services receive it by
// injection.
func InitDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.HealthProfile{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}
	return db, nil
}

// ServerAddr returns the listen address, PORT overriding the 8080 default.
func ServerAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}
