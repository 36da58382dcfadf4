package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/lakshya4568/food-Prediction/models"
)

// WarningSeverity categorizes how serious the flag is.
type WarningSeverity string

const (
	Info    WarningSeverity = "info"
	Caution WarningSeverity = "caution"
	High    WarningSeverity = "high"
)

// Warning is a structured dietary finding for one food record.
type Warning struct {
	Code           string          `json:"code"`
	Severity       WarningSeverity `json:"severity"`
	Message        string          `json:"message"`
	Metric         string          `json:"metric,omitempty"`
	Value          float64         `json:"value,omitempty"`
	Limit          float64         `json:"limit,omitempty"`
	PercentOfLimit float64         `json:"percent_of_limit,omitempty"`
}

// AssessFood screens a normalized food record against daily limits. When the
// caller has adaptive targets, those supply the calorie and sodium limits;
// otherwise 2000 kcal and 2000 mg sodium are assumed.
func AssessFood(data *models.NutritionData, target *models.NutrientTarget) []Warning {
	warnings := []Warning{}

	kcal := data.Macros.EnergyKcal
	if kcal <= 0 {
		// Reconstruct from macros when the record lacks energy
		kcal = 4*data.Macros.Carbohydrates + 4*data.Macros.Protein + 9*data.Macros.TotalFat
	}

	kcalTarget := 2000.0
	sodiumLimit := 2000.0
	if target != nil {
		if target.Calories > 0 {
			kcalTarget = target.Calories
		}
		if target.Sodium > 0 {
			sodiumLimit = target.Sodium
		}
	}
	satFatDailyLimitG := (0.10 * kcalTarget) / 9.0

	// Sugars relative to the item's own calories
	if kcal > 0 && data.Macros.Sugars > 0 {
		pct := (data.Macros.Sugars * 4.0) / kcal
		if pct >= 0.10 {
			warnings = append(warnings, Warning{
				Code:     "sugars_high_item",
				Severity: Caution,
				Message:  fmt.Sprintf("High sugars for this item (%.0f%% of its calories).", pct*100),
				Metric:   "sugar_percent_of_item_kcal",
				Value:    round2(pct * 100),
				Limit:    10,
			})
		}
	}

	// Saturated fat, both item-relative and daily-share
	if kcal > 0 && data.Macros.SaturatedFat > 0 {
		pct := (data.Macros.SaturatedFat * 9.0) / kcal
		if pct >= 0.10 {
			warnings = append(warnings, Warning{
				Code:     "sat_fat_high_item",
				Severity: High,
				Message:  fmt.Sprintf("High saturated fat for this item (%.0f%% of its calories).", pct*100),
				Metric:   "saturated_fat_percent_of_item_kcal",
				Value:    round2(pct * 100),
				Limit:    10,
			})
		}
	}
	if data.Macros.SaturatedFat > 0 && satFatDailyLimitG > 0 {
		share := data.Macros.SaturatedFat / satFatDailyLimitG
		if share >= 0.40 {
			warnings = append(warnings, Warning{
				Code:           "sat_fat_very_high_daily_share",
				Severity:       High,
				Message:        fmt.Sprintf("One serving provides ~%.0f%% of the daily saturated-fat limit.", share*100),
				Metric:         "sat_fat_percent_of_daily_limit",
				Value:          round2(share * 100),
				Limit:          100,
				PercentOfLimit: round2(share * 100),
			})
		} else if share >= 0.20 {
			warnings = append(warnings, Warning{
				Code:           "sat_fat_high_daily_share",
				Severity:       Caution,
				Message:        fmt.Sprintf("High share of the daily saturated-fat limit from one serving (~%.0f%%).", share*100),
				Metric:         "sat_fat_percent_of_daily_limit",
				Value:          round2(share * 100),
				Limit:          100,
				PercentOfLimit: round2(share * 100),
			})
		}
	}

	// Sodium share of the daily limit, plus density per 100 kcal
	if data.Macros.Sodium > 0 && sodiumLimit > 0 {
		share := data.Macros.Sodium / sodiumLimit
		if share >= 0.40 {
			warnings = append(warnings, Warning{
				Code:           "sodium_very_high",
				Severity:       High,
				Message:        fmt.Sprintf("Very high sodium for one serving (~%.0f%% of the daily limit).", share*100),
				Metric:         "sodium_percent_of_daily_limit",
				Value:          round2(share * 100),
				Limit:          100,
				PercentOfLimit: round2(share * 100),
			})
		} else if share >= 0.20 {
			warnings = append(warnings, Warning{
				Code:           "sodium_high",
				Severity:       Caution,
				Message:        fmt.Sprintf("High sodium for one serving (~%.0f%% of the daily limit).", share*100),
				Metric:         "sodium_percent_of_daily_limit",
				Value:          round2(share * 100),
				Limit:          100,
				PercentOfLimit: round2(share * 100),
			})
		}
		if kcal > 0 {
			naPer100kcal := (data.Macros.Sodium / kcal) * 100.0
			if naPer100kcal >= 400 {
				warnings = append(warnings, Warning{
					Code:     "sodium_dense",
					Severity: Info,
					Message:  "High sodium density relative to calories. Consider lower-sodium alternatives.",
					Metric:   "sodium_mg_per_100kcal",
					Value:    round2(naPer100kcal),
				})
			}
		}
	}

	// Trans fat
	if data.Macros.TransFat > 0 {
		severity := Caution
		if data.Macros.TransFat >= 0.5 {
			severity = High
		}
		warnings = append(warnings, Warning{
			Code:     "trans_fat_present",
			Severity: severity,
			Message:  fmt.Sprintf("Contains trans fat (%.2fg); keep intake as low as possible.", data.Macros.TransFat),
			Metric:   "trans_fat_g",
			Value:    round2(data.Macros.TransFat),
		})
	}

	// Fiber density for carbohydrate foods
	if kcal > 0 && data.Macros.Carbohydrates >= 15 && data.Macros.Fiber > 0 {
		fiberPer100kcal := (data.Macros.Fiber / kcal) * 100.0
		if fiberPer100kcal < 1.0 {
			warnings = append(warnings, Warning{
				Code:     "fiber_low",
				Severity: Info,
				Message:  "Low dietary fiber for a carbohydrate food. Consider whole grains, fruits, or vegetables.",
				Metric:   "fiber_g_per_100kcal",
				Value:    round2(fiberPer100kcal),
			})
		} else if fiberPer100kcal >= 2.5 {
			warnings = append(warnings, Warning{
				Code:     "fiber_high",
				Severity: Info,
				Message:  "Good fiber density. Supports a healthy dietary pattern.",
				Metric:   "fiber_g_per_100kcal",
				Value:    round2(fiberPer100kcal),
			})
		}
	}

	// Whole vs refined grain name heuristics
	lower := strings.ToLower(data.Name)
	if isLikelyWholeGrain(lower) {
		warnings = append(warnings, Warning{
			Code:     "whole_grain_positive",
			Severity: Info,
			Message:  "Whole-grain choice supports fiber and nutrient density.",
		})
	} else if isLikelyRefinedGrain(lower) {
		warnings = append(warnings, Warning{
			Code:     "refined_grain_nudge",
			Severity: Info,
			Message:  "Refined-grain item. Consider swapping for whole-grain options.",
		})
	}

	// Energy density when serving weight is known
	if data.ServingWeight > 0 && kcal > 0 {
		kcalPer100g := (kcal / data.ServingWeight) * 100.0
		if kcalPer100g >= 275 {
			warnings = append(warnings, Warning{
				Code:     "energy_density_very_high",
				Severity: Info,
				Message:  "Very energy-dense food. Mindful portions help fit it into a healthy pattern.",
				Metric:   "kcal_per_100g",
				Value:    round2(kcalPer100g),
			})
		} else if kcalPer100g >= 150 {
			warnings = append(warnings, Warning{
				Code:     "energy_density_high",
				Severity: Info,
				Message:  "High energy density. Balance with lower-calorie, nutrient-dense sides.",
				Metric:   "kcal_per_100g",
				Value:    round2(kcalPer100g),
			})
		}
	}

	return warnings
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func isLikelyWholeGrain(name string) bool {
	return containsAny(name, "whole wheat", "whole-grain", "whole grain", "brown rice", "oat", "oats", "quinoa", "bulgur", "rye", "wholemeal")
}

func isLikelyRefinedGrain(name string) bool {
	return containsAny(name, "white bread", "white rice", "refined flour", "all-purpose flour", "maida", "cake", "pastry", "cracker", "biscuit")
}
