package ledger

import (
	"testing"

	"github.com/impapp/backend/internal/models"
)

func TestGreenScoreDailyCap(t *testing.T) {
	gs := models.GreenScore{Date: "2025-03-01"}
	points := 0
	for i := 0; i < 5; i++ {
		var delta int
		gs, delta = ApplyGreenScore(gs, "2025-03-01", true)
		points += delta
	}
	if points != 3 {
		t.Errorf("points after 5 eligible events: got %d, want 3", points)
	}
	if gs.Redeemed != 3 {
		t.Errorf("redeemed: got %d, want 3", gs.Redeemed)
	}
}

func TestGreenScoreResetsOnNewDay(t *testing.T) {
	gs := models.GreenScore{Date: "2025-03-01", Redeemed: 3}

	gs, delta := ApplyGreenScore(gs, "2025-03-02", true)
	if delta != 1 {
		t.Errorf("first event of new day: got delta %d, want 1", delta)
	}
	if gs.Date != "2025-03-02" || gs.Redeemed != 1 {
		t.Errorf("state after reset: %+v", gs)
	}
}

func TestGreenScoreIneligible(t *testing.T) {
	gs := models.GreenScore{Date: "2025-03-01", Redeemed: 1}

	out, delta := ApplyGreenScore(gs, "2025-03-01", false)
	if delta != 0 {
		t.Errorf("ineligible event: got delta %d, want 0", delta)
	}
	if out != gs {
		t.Errorf("ineligible event mutated state: %+v", out)
	}
}

func TestGreenScoreIneligibleStillResetsDate(t *testing.T) {
	gs := models.GreenScore{Date: "2025-03-01", Redeemed: 2}

	out, delta := ApplyGreenScore(gs, "2025-03-02", false)
	if delta != 0 {
		t.Errorf("delta: got %d, want 0", delta)
	}
	if out.Date != "2025-03-02" || out.Redeemed != 0 {
		t.Errorf("date rollover on ineligible event: %+v", out)
	}
}
