package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lakshya4568/food-Prediction/models"
	"github.com/lakshya4568/food-Prediction/services"
)

// RequireProfile loads the caller's health profile and attaches it to the
// context, rejecting requests from users who have not completed onboarding.
// The user id comes from the auth middleware, with an X-User-ID header
// fallback for service-to-service calls.
func RequireProfile(profiles *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")
		if userID == "" {
			userID = c.GetString("userID")
		}
		if userID == "" {
			userID = c.GetHeader("X-User-ID")
		}
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user id required"})
			return
		}

		profile, err := profiles.Get(userID)
		if errors.Is(err, services.ErrProfileNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error": "health profile not found, complete onboarding first",
			})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
			return
		}

		c.Set("userID", userID)
		c.Set("profile", profile)
		c.Next()
	}
}

// ProfileFrom fetches the profile stored by RequireProfile.
func ProfileFrom(c *gin.Context) (*models.HealthProfile, bool) {
	v, ok := c.Get("profile")
	if !ok {
		return nil, false
	}
	profile, ok := v.(*models.HealthProfile)
	return profile, ok
}
