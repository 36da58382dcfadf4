package services

import (
	"context"
	"errors"
	"os"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// ErrNoFoodDetected is returned when the classifier finds no usable label.
var ErrNoFoodDetected = errors.New("no food detected in image")

// FoodPrediction is the classifier output: the winning class plus the
// runner-up candidates, confidences in [0,1].
type FoodPrediction struct {
	Class      string            `json:"class"`
	Confidence float64           `json:"confidence"`
	TopClasses []ClassConfidence `json:"top_classes"`
}

type ClassConfidence struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

// RecognitionService classifies food images with AWS Rekognition label
// detection. Generic container labels ("Food", "Plate") are skipped so the
// winning class names an actual dish or ingredient.
type RecognitionService struct {
	client *rekognition.Client
}

func NewRecognitionService() (*RecognitionService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RecognitionService{client: rekognition.NewFromConfig(cfg)}, nil
}

// genericLabels are containers and scene labels that never name a food.
var genericLabels = map[string]bool{
	"food":    true,
	"meal":    true,
	"dish":    true,
	"plate":   true,
	"bowl":    true,
	"cutlery": true,
	"produce": true,
	"plant":   true,
}

// Classify runs label detection on raw image bytes and picks the most
// confident non-generic label as the predicted food class.
func (r *RecognitionService) Classify(ctx context.Context, imageBytes []byte) (*FoodPrediction, error) {
	if len(imageBytes) == 0 {
		return nil, errors.New("empty image")
	}

	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: imageBytes},
		MaxLabels:     aws.Int32(10),
		MinConfidence: aws.Float32(55),
	})
	if err != nil {
		return nil, err
	}

	candidates := make([]ClassConfidence, 0, len(out.Labels))
	for _, l := range out.Labels {
		if l.Name == nil || l.Confidence == nil {
			continue
		}
		if genericLabels[strings.ToLower(*l.Name)] {
			continue
		}
		candidates = append(candidates, ClassConfidence{
			Class:      strings.ToLower(*l.Name),
			Confidence: float64(*l.Confidence) / 100.0,
		})
	}
	if len(candidates) == 0 {
		return nil, ErrNoFoodDetected
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	if len(candidates) > 5 {
		candidates = candidates[:5]
	}

	return &FoodPrediction{
		Class:      candidates[0].Class,
		Confidence: candidates[0].Confidence,
		TopClasses: candidates,
	}, nil
}
