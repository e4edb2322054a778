package daykey

import (
	"os"
	"time"
)

// Key identifies one calendar day as YYYY-MM-DD in the reference timezone.
// All day-bucketing and rollover decisions use Keys, never raw timestamps.
type Key string

const layout = "2006-01-02"

// DefaultZone is the reference timezone for day boundaries. Overridable via
// LEDGER_TZ for deployments outside Singapore.
var DefaultZone = mustLoadZone()

func mustLoadZone() *time.Location {
	name := os.Getenv("LEDGER_TZ")
	if name == "" {
		name = "Asia/Singapore"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// At returns the day key for the given instant in the reference timezone.
func At(t time.Time) Key {
	return Key(t.In(DefaultZone).Format(layout))
}

// Parse returns the midnight instant of the key in the reference timezone.
func (k Key) Parse() (time.Time, error) {
	return time.ParseInLocation(layout, string(k), DefaultZone)
}

// Valid reports whether the key is a well-formed YYYY-MM-DD date.
func (k Key) Valid() bool {
	_, err := k.Parse()
	return err == nil
}

// Clock supplies the current time. The real implementation wraps time.Now;
// tests substitute fixed or advancing clocks.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// Today returns the current day key according to clk.
func Today(clk Clock) Key { return At(clk.Now()) }
