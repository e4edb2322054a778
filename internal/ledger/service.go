package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/impapp/backend/internal/daykey"
	"github.com/impapp/backend/internal/models"
)

// ErrInsufficientPoints is returned when a redemption cost exceeds the
// balance. No mutation is performed.
var ErrInsufficientPoints = errors.New("insufficient points")

// ErrConflict is returned when a write lost the version race maxAttempts
// times in a row. The caller should re-issue the operation from scratch.
var ErrConflict = errors.New("ledger write conflict")

// maxAttempts bounds the read-modify-write retry loop so no operation blocks
// indefinitely under contention.
const maxAttempts = 5

// EntryInput is a resolved consumption event: name and calories already
// looked up by the caller (barcode, recipe, or manual entry).
type EntryInput struct {
	Name     string
	Calories int
}

// Store is the persistence contract the service needs. Implemented by
// Repository; tests substitute an in-memory version.
type Store interface {
	Get(ctx context.Context, userID string) (models.UserLedger, int64, bool, error)
	Create(ctx context.Context, userID string, l models.UserLedger) (bool, error)
	Update(ctx context.Context, userID string, l models.UserLedger, version int64) error
	UpdateInTx(ctx context.Context, userID string, l models.UserLedger, version int64, extra func(ctx context.Context, tx pgx.Tx) error) error
}

// Service is the single entry point for all ledger mutations. Every
// operation is one atomic read-modify-write against the store, retried on
// version conflict, so concurrent logs and redemptions for the same user
// cannot lose updates.
type Service interface {
	// LogEvent applies one consumption event: lazy rollover, entry append,
	// green-score bookkeeping, and points delta, persisted as one write.
	LogEvent(ctx context.Context, userID string, input EntryInput, rewardEligible bool) (*models.UserLedger, error)
	// Redeem atomically decrements points by cost. record, when non-nil,
	// runs in the same transaction as the decrement (redemption row,
	// fulfillment job) so neither commits without the other.
	Redeem(ctx context.Context, userID string, cost int, record func(ctx context.Context, tx pgx.Tx) error) (*models.UserLedger, error)
	// SetProfile writes the onboarding profile into the ledger document.
	SetProfile(ctx context.Context, userID string, p models.Profile) (*models.UserLedger, error)
	// Snapshot returns a read-only view of the ledger with rollover applied
	// to the view (not persisted), so "today" is always current.
	Snapshot(ctx context.Context, userID string) (*models.UserLedger, error)
}

type service struct {
	store Store
	clock daykey.Clock
}

func NewService(store Store, clock daykey.Clock) *service {
	if clock == nil {
		clock = daykey.SystemClock()
	}
	return &service{store: store, clock: clock}
}

var _ Service = (*service)(nil)

func (s *service) LogEvent(ctx context.Context, userID string, input EntryInput, rewardEligible bool) (*models.UserLedger, error) {
	entry := models.LogEntry{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Calories:  input.Calories,
		Timestamp: s.clock.Now(),
	}
	// Validate up front so a malformed entry never creates a ledger row.
	if _, err := ApplyEntry(models.DayBucket{}, entry); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		day := daykey.Today(s.clock)
		l, version, err := s.readOrCreate(ctx, userID, day)
		if err != nil {
			return nil, err
		}

		l, _ = Rollover(l, day)
		today, err := ApplyEntry(l.Today, entry)
		if err != nil {
			return nil, err
		}
		l.Today = today

		gs, delta := ApplyGreenScore(l.GreenScore, day, rewardEligible)
		l.GreenScore = gs
		l.Points += delta

		if err := s.store.Update(ctx, userID, l, version); err != nil {
			if errors.Is(err, ErrVersionMismatch) {
				continue
			}
			return nil, err
		}
		snap := l.Clone()
		return &snap, nil
	}
	return nil, ErrConflict
}

func (s *service) Redeem(ctx context.Context, userID string, cost int, record func(ctx context.Context, tx pgx.Tx) error) (*models.UserLedger, error) {
	if cost <= 0 {
		return nil, fmt.Errorf("redeem: non-positive cost %d", cost)
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		day := daykey.Today(s.clock)
		l, version, found, err := s.store.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !found || l.Points < cost {
			// A user with no ledger has no points; either way, nothing
			// is written, not even the pending rollover, which stays
			// lazy until the next successful operation.
			return nil, ErrInsufficientPoints
		}

		l, _ = Rollover(l, day)
		l.Points -= cost

		if err := s.store.UpdateInTx(ctx, userID, l, version, record); err != nil {
			if errors.Is(err, ErrVersionMismatch) {
				continue
			}
			return nil, err
		}
		snap := l.Clone()
		return &snap, nil
	}
	return nil, ErrConflict
}

func (s *service) SetProfile(ctx context.Context, userID string, p models.Profile) (*models.UserLedger, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		day := daykey.Today(s.clock)
		l, version, err := s.readOrCreate(ctx, userID, day)
		if err != nil {
			return nil, err
		}
		l.Profile = &p
		if err := s.store.Update(ctx, userID, l, version); err != nil {
			if errors.Is(err, ErrVersionMismatch) {
				continue
			}
			return nil, err
		}
		snap := l.Clone()
		return &snap, nil
	}
	return nil, ErrConflict
}

func (s *service) Snapshot(ctx context.Context, userID string) (*models.UserLedger, error) {
	day := daykey.Today(s.clock)
	l, _, found, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		l = models.NewUserLedger(day)
	} else {
		l, _ = Rollover(l, day)
	}
	snap := l.Clone()
	return &snap, nil
}

// readOrCreate returns the current ledger, lazily creating the zero-value
// document on first access. First write wins: on a creation race the loser
// re-reads the winner's row.
func (s *service) readOrCreate(ctx context.Context, userID string, day daykey.Key) (models.UserLedger, int64, error) {
	l, version, found, err := s.store.Get(ctx, userID)
	if err != nil || found {
		return l, version, err
	}
	if _, err := s.store.Create(ctx, userID, models.NewUserLedger(day)); err != nil {
		return models.UserLedger{}, 0, err
	}
	l, version, found, err = s.store.Get(ctx, userID)
	if err != nil {
		return models.UserLedger{}, 0, err
	}
	if !found {
		return models.UserLedger{}, 0, fmt.Errorf("ledger for %s vanished after create", userID)
	}
	return l, version, nil
}
