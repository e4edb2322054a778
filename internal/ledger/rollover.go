package ledger

import (
	"github.com/impapp/backend/internal/daykey"
	"github.com/impapp/backend/internal/models"
)

// Rollover archives the today bucket into history when the day key has
// advanced, and re-evaluates the streak from the archived total. Pure: no
// I/O, no clock access; the caller supplies the current day key.
//
// When more than one day has elapsed since today.Date, exactly one archival
// step occurs; skipped days leave a gap in history rather than synthetic
// empty buckets.
//
// Idempotent: once today.Date == day, further calls are no-ops.
func Rollover(l models.UserLedger, day daykey.Key) (models.UserLedger, *models.DayBucket) {
	if l.Today.Date == day {
		return l, nil
	}

	archived := l.Today
	archived.TotalCalories = archived.SumCalories()

	l.History = append(l.History, archived)
	if archived.TotalCalories > 0 {
		l.Streak.Current++
	} else {
		l.Streak.Current = 0
	}
	l.Today = models.DayBucket{Date: day, Items: []models.LogEntry{}}
	return l, &archived
}
