package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lakshya4568/food-Prediction/models"
)

// ErrProfileNotFound is returned when no health profile exists for a user.
var ErrProfileNotFound = errors.New("health profile not found")

// ErrProfileExists is returned when creating a second profile for a user.
var ErrProfileExists = errors.New("health profile already exists")

// ProfileService persists health profiles with gorm.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Create validates and stores a new profile. One profile per user.
func (s *ProfileService) Create(profile *models.HealthProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	var count int64
	if err := s.db.Model(&models.HealthProfile{}).
		Where("user_id = ?", profile.UserID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing profile: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: user %s", ErrProfileExists, profile.UserID)
	}
	return s.db.Create(profile).Error
}

func (s *ProfileService) Get(userID string) (*models.HealthProfile, error) {
	var profile models.HealthProfile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %s", ErrProfileNotFound, userID)
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update replaces the stored profile's fields with the incoming ones after
// revalidation. The user id is immutable.
func (s *ProfileService) Update(userID string, incoming *models.HealthProfile) (*models.HealthProfile, error) {
	existing, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	incoming.UserID = existing.UserID
	incoming.Model = existing.Model
	if err := incoming.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.Save(incoming).Error; err != nil {
		return nil, err
	}
	return incoming, nil
}

func (s *ProfileService) Delete(userID string) error {
	result := s.db.Where("user_id = ?", userID).Delete(&models.HealthProfile{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %s", ErrProfileNotFound, userID)
	}
	return nil
}

func (s *ProfileService) List(limit, offset int) ([]models.HealthProfile, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var profiles []models.HealthProfile
	err := s.db.Order("user_id").Limit(limit).Offset(offset).Find(&profiles).Error
	return profiles, err
}

func (s *ProfileService) Exists(userID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.HealthProfile{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

// Summary flattens a profile into the dashboard shape: identity, derived
// body metrics and the risk inputs the target engine cares about.
func (s *ProfileService) Summary(userID string) (map[string]any, error) {
	profile, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"user_id":             profile.UserID,
		"age":                 profile.Age,
		"gender":              profile.Gender,
		"height_cm":           profile.Height,
		"weight_kg":           profile.Weight,
		"bmi":                 profile.BMI(),
		"bmi_category":        profile.BMICategory(),
		"age_group":           AgeGroupFor(profile.Age),
		"activity_level":      profile.ActivityLevel,
		"weight_goal":         profile.WeightGoal,
		"target_weight":       profile.TargetWeight,
		"chronic_conditions":  profile.ChronicConditions,
		"condition_count":     len(profile.ChronicConditions),
		"allergy_count":       len(profile.Allergies),
		"medication_count":    len(profile.Medications),
		"dietary_preferences": profile.DietaryPreferences,
	}, nil
}
