package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lakshya4568/food-Prediction/models"
	"github.com/lakshya4568/food-Prediction/utils"
)

// AuthService registers and authenticates API users.
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

func (s *AuthService) Register(email, password, fullName string) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("email already registered")
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		UserID:   uuid.NewString(),
		Email:    email,
		Password: hashedPassword,
		FullName: fullName,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) Authenticate(email, password string) (string, *models.User, error) {
	var user models.User
	result := s.db.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return "", nil, errors.New("user not found or disabled")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, errors.New("incorrect password")
	}

	token, err := utils.GenerateJWT(user.Email, user.UserID)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// UserByEmail is used by the auth middleware's email-claim fallback.
func (s *AuthService) UserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}
