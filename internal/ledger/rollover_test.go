package ledger

import (
	"testing"

	"github.com/impapp/backend/internal/daykey"
	"github.com/impapp/backend/internal/models"
)

func bucketWith(date daykey.Key, calories ...int) models.DayBucket {
	b := models.DayBucket{Date: date, Items: []models.LogEntry{}}
	for i, c := range calories {
		b.Items = append(b.Items, models.LogEntry{ID: string(rune('a' + i)), Name: "food", Calories: c})
	}
	b.TotalCalories = b.SumCalories()
	return b
}

func TestRolloverSameDayNoOp(t *testing.T) {
	l := models.NewUserLedger("2025-03-01")
	l.Today = bucketWith("2025-03-01", 200)
	l.Streak.Current = 4

	out, archived := Rollover(l, "2025-03-01")
	if archived != nil {
		t.Fatal("same-day rollover must not archive")
	}
	if out.Streak.Current != 4 || len(out.History) != 0 {
		t.Errorf("same-day rollover mutated the ledger: %+v", out)
	}
}

func TestRolloverArchivesAndIncrementsStreak(t *testing.T) {
	l := models.NewUserLedger("2025-03-01")
	l.Today = bucketWith("2025-03-01", 200, 350)
	l.Streak.Current = 2

	out, archived := Rollover(l, "2025-03-02")
	if archived == nil {
		t.Fatal("expected an archived bucket")
	}
	if archived.Date != "2025-03-01" || archived.TotalCalories != 550 {
		t.Errorf("archived bucket: got %+v", archived)
	}
	if len(out.History) != 1 || out.History[0].Date != "2025-03-01" {
		t.Errorf("history: got %+v", out.History)
	}
	if out.Streak.Current != 3 {
		t.Errorf("streak: got %d, want 3", out.Streak.Current)
	}
	if out.Today.Date != "2025-03-02" || len(out.Today.Items) != 0 || out.Today.TotalCalories != 0 {
		t.Errorf("new today bucket: got %+v", out.Today)
	}
}

func TestRolloverEmptyDayResetsStreak(t *testing.T) {
	l := models.NewUserLedger("2025-03-01")
	l.Streak.Current = 7

	out, archived := Rollover(l, "2025-03-02")
	if archived == nil || archived.TotalCalories != 0 {
		t.Fatalf("expected empty archived bucket, got %+v", archived)
	}
	if out.Streak.Current != 0 {
		t.Errorf("streak after empty day: got %d, want 0", out.Streak.Current)
	}
	// The empty day still lands in history: one bucket per observed day.
	if len(out.History) != 1 {
		t.Errorf("history length: got %d, want 1", len(out.History))
	}
}

func TestRolloverIdempotent(t *testing.T) {
	l := models.NewUserLedger("2025-03-01")
	l.Today = bucketWith("2025-03-01", 100)

	first, archived := Rollover(l, "2025-03-02")
	if archived == nil {
		t.Fatal("first call should archive")
	}
	second, archivedAgain := Rollover(first, "2025-03-02")
	if archivedAgain != nil {
		t.Fatal("second call with the same day key must be a no-op")
	}
	if len(second.History) != len(first.History) || second.Streak != first.Streak {
		t.Errorf("second call changed state: %+v vs %+v", second, first)
	}
}

func TestRolloverMultiDayGapSingleStep(t *testing.T) {
	l := models.NewUserLedger("2025-03-01")
	l.Today = bucketWith("2025-03-01", 400)

	// Five days later: exactly one archival, no synthetic buckets for the gap.
	out, archived := Rollover(l, "2025-03-06")
	if archived == nil {
		t.Fatal("expected one archival")
	}
	if len(out.History) != 1 {
		t.Errorf("history length after gap: got %d, want 1", len(out.History))
	}
	if out.Today.Date != "2025-03-06" {
		t.Errorf("today date: got %s, want 2025-03-06", out.Today.Date)
	}
	if out.Streak.Current != 1 {
		t.Errorf("streak: got %d, want 1", out.Streak.Current)
	}
}

func TestRolloverOneBucketPerDay(t *testing.T) {
	days := []daykey.Key{"2025-03-01", "2025-03-02", "2025-03-03", "2025-03-04"}
	l := models.NewUserLedger(days[0])
	for _, d := range days[1:] {
		l, _ = Rollover(l, d)
		l.Today.Items = append(l.Today.Items, models.LogEntry{ID: "x", Name: "food", Calories: 100})
		l.Today.TotalCalories = l.Today.SumCalories()
	}

	seen := map[daykey.Key]bool{l.Today.Date: true}
	for _, b := range l.History {
		if seen[b.Date] {
			t.Errorf("duplicate bucket for day %s", b.Date)
		}
		seen[b.Date] = true
	}
	if len(l.History) != len(days)-1 {
		t.Errorf("history length: got %d, want %d", len(l.History), len(days)-1)
	}
}
