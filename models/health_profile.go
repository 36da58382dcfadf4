package models

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type ActivityLevel string

const (
	Sedentary        ActivityLevel = "sedentary"
	LightlyActive    ActivityLevel = "lightly_active"
	ModeratelyActive ActivityLevel = "moderately_active"
	VeryActive       ActivityLevel = "very_active"
	ExtremelyActive  ActivityLevel = "extremely_active"
)

func ActivityLevels() []ActivityLevel {
	return []ActivityLevel{Sedentary, LightlyActive, ModeratelyActive, VeryActive, ExtremelyActive}
}

func (a ActivityLevel) Valid() bool {
	for _, lvl := range ActivityLevels() {
		if a == lvl {
			return true
		}
	}
	return false
}

type ChronicCondition string

const (
	DiabetesType1 ChronicCondition = "diabetes_type_1"
	DiabetesType2 ChronicCondition = "diabetes_type_2"
	Hypertension  ChronicCondition = "hypertension"
	HeartDisease  ChronicCondition = "heart_disease"
	KidneyDisease ChronicCondition = "kidney_disease"
	Obesity       ChronicCondition = "obesity"
	Underweight   ChronicCondition = "underweight"
)

func ChronicConditions() []ChronicCondition {
	return []ChronicCondition{
		DiabetesType1, DiabetesType2, Hypertension, HeartDisease,
		KidneyDisease, Obesity, Underweight,
	}
}

func (c ChronicCondition) Valid() bool {
	for _, cond := range ChronicConditions() {
		if c == cond {
			return true
		}
	}
	return false
}

type WeightGoal string

const (
	GoalLose     WeightGoal = "lose"
	GoalMaintain WeightGoal = "maintain"
	GoalGain     WeightGoal = "gain"
)

func (w WeightGoal) Valid() bool {
	switch w {
	case GoalLose, GoalMaintain, GoalGain, "":
		return true
	}
	return false
}

// AllergyInfo describes one declared allergy on a profile.
type AllergyInfo struct {
	Allergen string   `json:"allergen"`
	Severity string   `json:"severity"`
	Symptoms []string `json:"symptoms"`
}

// HealthProfile is the per-user health record the adaptive engine reads.
// Height in cm, weight in kg. List fields are stored as JSON columns.
type HealthProfile struct {
	gorm.Model `json:"-"`

	UserID        string        `json:"user_id" gorm:"type:varchar(64);uniqueIndex;not null"`
	Age           int           `json:"age" gorm:"not null"`
	Gender        Gender        `json:"gender" gorm:"type:varchar(10);not null"`
	Height        float64       `json:"height" gorm:"not null"` // cm
	Weight        float64       `json:"weight" gorm:"not null"` // kg
	ActivityLevel ActivityLevel `json:"activity_level" gorm:"type:varchar(20);not null"`

	Allergies          datatypes.JSONSlice[AllergyInfo]      `json:"allergies"`
	ChronicConditions  datatypes.JSONSlice[ChronicCondition] `json:"chronic_conditions"`
	Medications        datatypes.JSONSlice[string]           `json:"medications"`
	DietaryPreferences datatypes.JSONSlice[string]           `json:"dietary_preferences"`

	WeightGoal   WeightGoal `json:"weight_goal" gorm:"type:varchar(10)"`
	TargetWeight *float64   `json:"target_weight"`
}

// NewHealthProfile builds a validated profile. An empty userID gets a fresh
// UUID, matching the create-profile API contract.
func NewHealthProfile(userID string, age int, gender Gender, height, weight float64,
	activity ActivityLevel) (*HealthProfile, error) {

	if userID == "" {
		userID = uuid.NewString()
	}
	p := &HealthProfile{
		UserID:        userID,
		Age:           age,
		Gender:        gender,
		Height:        height,
		Weight:        weight,
		ActivityLevel: activity,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces the construction invariants: strictly positive
// anthropometrics and known enum values.
func (p *HealthProfile) Validate() error {
	if p.Age <= 0 {
		return fmt.Errorf("age must be positive, got %d", p.Age)
	}
	if p.Height <= 0 {
		return fmt.Errorf("height must be positive, got %g", p.Height)
	}
	if p.Weight <= 0 {
		return fmt.Errorf("weight must be positive, got %g", p.Weight)
	}
	if !p.Gender.Valid() {
		return fmt.Errorf("invalid gender %q", p.Gender)
	}
	if !p.ActivityLevel.Valid() {
		return fmt.Errorf("invalid activity level %q", p.ActivityLevel)
	}
	if !p.WeightGoal.Valid() {
		return fmt.Errorf("invalid weight goal %q", p.WeightGoal)
	}
	for _, cond := range p.ChronicConditions {
		if !cond.Valid() {
			return fmt.Errorf("invalid chronic condition %q", cond)
		}
	}
	return nil
}

// BMI is weight / height(m)^2.
func (p *HealthProfile) BMI() float64 {
	h := p.Height / 100.0
	return p.Weight / (h * h)
}

// BMICategory buckets the BMI into the standard WHO bands.
func (p *HealthProfile) BMICategory() string {
	switch bmi := p.BMI(); {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25.0:
		return "normal"
	case bmi < 30.0:
		return "overweight"
	default:
		return "obese"
	}
}

// HasCondition reports whether the profile lists a chronic condition.
func (p *HealthProfile) HasCondition(c ChronicCondition) bool {
	for _, cond := range p.ChronicConditions {
		if cond == c {
			return true
		}
	}
	return false
}
