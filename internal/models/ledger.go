package models

import (
	"time"

	"github.com/impapp/backend/internal/daykey"
)

// JSON field names mirror the stored ledger document (snake-free, camelCase
// where the mobile clients expect it).

// LogEntry is one logged consumption item. IDs are unique within a bucket;
// Timestamp orders entries for display only: day-bucketing uses the engine's
// day key, never the entry timestamp.
type LogEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Calories  int       `json:"calories"`
	Timestamp time.Time `json:"timestamp"`
}

// DayBucket accumulates one calendar day of log entries. TotalCalories is a
// cache of sum(Items.Calories) and is recomputed on every mutation; it is
// never accepted from a caller.
type DayBucket struct {
	Date          daykey.Key `json:"date"`
	Items         []LogEntry `json:"items"`
	TotalCalories int        `json:"totalCalories"`
}

// SumCalories recomputes the bucket total from the authoritative item list.
func (b DayBucket) SumCalories() int {
	total := 0
	for _, it := range b.Items {
		total += it.Calories
	}
	return total
}

// Streak counts consecutive archived days with a positive calorie total.
type Streak struct {
	Current int `json:"current"`
}

// GreenScore tracks the daily cap on eco-bonus points: at most 3 increments
// per day key.
type GreenScore struct {
	Date     daykey.Key `json:"date"`
	Redeemed int        `json:"redeemed"`
}

// GreenScoreDailyCap is the maximum eco-bonus increments per day.
const GreenScoreDailyCap = 3

// Goal types accepted in Profile.GoalType.
const (
	GoalMaintain   = "maintain"
	GoalLoseHalfKg = "lose_0.5kg"
	GoalLoseOneKg  = "lose_1kg"
	GoalGain       = "gain"
)

// Profile holds the nutrition-target inputs written at onboarding. The ledger
// core reads MaintenanceCalories for display comparisons and never mutates it.
type Profile struct {
	Age                 int     `json:"age"`
	Gender              string  `json:"gender"`
	WeightKg            float64 `json:"weight"`
	HeightCm            float64 `json:"height"`
	ActivityFactor      float64 `json:"activity"`
	WeightGoalKg        float64 `json:"weightGoal,omitempty"`
	GoalType            string  `json:"goalType"`
	MaintenanceCalories int     `json:"bmr"`
}

// UserLedger is the whole per-user document: the accumulating today bucket,
// the append-only history, and the derived reward state. It is read and
// written as one unit: partial writes are forbidden.
type UserLedger struct {
	Today      DayBucket   `json:"today"`
	History    []DayBucket `json:"history"`
	Streak     Streak      `json:"streak"`
	Points     int         `json:"points"`
	GreenScore GreenScore  `json:"greenScore"`
	Profile    *Profile    `json:"profile,omitempty"`
}

// NewUserLedger returns the zero-value ledger for a first-time user: an empty
// today bucket dated day, no history, zero streak and points.
func NewUserLedger(day daykey.Key) UserLedger {
	return UserLedger{
		Today:      DayBucket{Date: day, Items: []LogEntry{}},
		History:    []DayBucket{},
		GreenScore: GreenScore{Date: day},
	}
}

// Clone returns a deep copy so callers can hand out snapshots without
// sharing the items or history slices.
func (l UserLedger) Clone() UserLedger {
	cp := l
	cp.Today.Items = append([]LogEntry(nil), l.Today.Items...)
	cp.History = make([]DayBucket, len(l.History))
	for i, b := range l.History {
		cp.History[i] = b
		cp.History[i].Items = append([]LogEntry(nil), b.Items...)
	}
	if l.Profile != nil {
		p := *l.Profile
		cp.Profile = &p
	}
	return cp
}
