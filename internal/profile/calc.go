package profile

import (
	"math"

	"github.com/impapp/backend/internal/models"
)

// Mifflin–St Jeor with the original app's goal adjustments. Stateless; the
// result is written into the ledger profile once at onboarding and read back
// for display comparisons.

// Goal adjustments in kcal/day.
const (
	adjustLoseHalfKg = -500
	adjustLoseOneKg  = -1000
	adjustGain       = +300
)

// BMR computes basal metabolic rate in kcal/day.
func BMR(age int, gender string, weightKg, heightCm float64) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == "male" {
		return base + 5
	}
	return base - 161
}

// Maintenance computes the daily calorie target: BMR scaled by activity
// factor, adjusted for the weight goal, rounded to the nearest kcal.
func Maintenance(age int, gender string, weightKg, heightCm, activityFactor float64, goalType string) int {
	m := BMR(age, gender, weightKg, heightCm) * activityFactor
	switch goalType {
	case models.GoalLoseHalfKg:
		m += adjustLoseHalfKg
	case models.GoalLoseOneKg:
		m += adjustLoseOneKg
	case models.GoalGain:
		m += adjustGain
	}
	if m < 0 {
		m = 0
	}
	return int(math.Round(m))
}
