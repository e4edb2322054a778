package ledger

import (
	"errors"
	"strings"

	"github.com/impapp/backend/internal/models"
)

// ErrInvalidEntry is returned for a malformed log entry (negative calories or
// an empty name). Rejected before any mutation.
var ErrInvalidEntry = errors.New("invalid log entry")

// ApplyEntry validates e and appends it to the bucket, recomputing the total
// from the full item list. Duplicate names are allowed: multiple servings of
// the same food are distinct entries.
func ApplyEntry(b models.DayBucket, e models.LogEntry) (models.DayBucket, error) {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" || e.Calories < 0 {
		return b, ErrInvalidEntry
	}

	items := make([]models.LogEntry, len(b.Items), len(b.Items)+1)
	copy(items, b.Items)
	b.Items = append(items, e)
	b.TotalCalories = b.SumCalories()
	return b, nil
}
