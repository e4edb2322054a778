package ledger

import (
	"github.com/impapp/backend/internal/daykey"
	"github.com/impapp/backend/internal/models"
)

// ApplyGreenScore advances the daily eco-bonus tracker for one logged event
// and returns the points delta it earned. The tracker resets whenever its
// stored date is not the current day key; increments are capped at
// models.GreenScoreDailyCap per day.
//
// Eligibility is policy supplied by the caller (e.g. the product carries a
// green/eco classification); this function only does the cap bookkeeping.
func ApplyGreenScore(gs models.GreenScore, day daykey.Key, eligible bool) (models.GreenScore, int) {
	if gs.Date != day {
		gs = models.GreenScore{Date: day}
	}
	if !eligible || gs.Redeemed >= models.GreenScoreDailyCap {
		return gs, 0
	}
	gs.Redeemed++
	return gs, 1
}
