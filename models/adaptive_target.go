package models

// Adjustment is one audit-trail entry explaining a single factor applied to a
// single nutrient. Condition adjustments come first (in profile condition
// order), then goal adjustments.
type Adjustment struct {
	Reason           string   `json:"reason"`
	Nutrient         Nutrient `json:"nutrient"`
	AdjustmentFactor float64  `json:"adjustment_factor"`
	OldValue         float64  `json:"old_value"`
	NewValue         float64  `json:"new_value"`
	Description      string   `json:"change_description"`
}

// AdaptiveTarget is the engine's output: the unadjusted baseline, the target
// after condition and goal factors, and the full audit trail.
type AdaptiveTarget struct {
	BaseTarget       NutrientTarget `json:"base_target"`
	AdjustedTarget   NutrientTarget `json:"adjusted_target"`
	Adjustments      []Adjustment   `json:"adjustments"`
	ConfidenceScore  float64        `json:"confidence_score"`
	SourceGuidelines []string       `json:"source_guidelines"`
}
