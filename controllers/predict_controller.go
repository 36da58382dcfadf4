package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lakshya4568/food-Prediction/services"
)

// 10 MB is plenty for a food photo.
const maxImageBytes = 10 << 20

// PredictController classifies uploaded food images.
type PredictController struct {
	recognition *services.RecognitionService
}

func NewPredictController(recognition *services.RecognitionService) *PredictController {
	return &PredictController{recognition: recognition}
}

// Predict accepts a multipart "file" upload and returns the predicted food
// class with its confidence and runner-up candidates.
func (ctl *PredictController) Predict(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required (multipart field 'file')"})
		return
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer f.Close()

	imageBytes, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return
	}

	prediction, err := ctl.recognition.Classify(c.Request.Context(), imageBytes)
	if err != nil {
		if errors.Is(err, services.ErrNoFoodDetected) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prediction)
}
