package models

import (
	"gorm.io/gorm"
)

// User is an account; health data lives on HealthProfile keyed by UserID.
type User struct {
	gorm.Model
	UserID   string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	FullName string
	Disabled bool `gorm:"default:false"`
}
