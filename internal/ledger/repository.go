package ledger

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/impapp/backend/internal/models"
)

// ErrVersionMismatch is returned when a conditional write loses a race: the
// document version read is no longer current. Callers re-read and retry.
var ErrVersionMismatch = errors.New("ledger version mismatch")

// Repository persists whole UserLedger documents in the user_ledgers table.
// Each row carries a version counter; every update is conditional on the
// version the caller read, so concurrent read-modify-write cycles cannot
// silently clobber each other.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get returns the ledger document, its version, and whether a row exists.
func (r *Repository) Get(ctx context.Context, userID string) (models.UserLedger, int64, bool, error) {
	var doc []byte
	var version int64
	err := r.pool.QueryRow(ctx, `
		SELECT doc, version FROM user_ledgers WHERE user_id = $1
	`, userID).Scan(&doc, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.UserLedger{}, 0, false, nil
	}
	if err != nil {
		return models.UserLedger{}, 0, false, err
	}
	var l models.UserLedger
	if err := json.Unmarshal(doc, &l); err != nil {
		return models.UserLedger{}, 0, false, err
	}
	return l, version, true, nil
}

// Create inserts the zero-value ledger for a first-time user. First write
// wins: if a concurrent caller already created the row, Create reports
// inserted=false and no error, and the caller re-reads.
func (r *Repository) Create(ctx context.Context, userID string, l models.UserLedger) (bool, error) {
	doc, err := json.Marshal(l)
	if err != nil {
		return false, err
	}
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO user_ledgers (user_id, doc, version)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id) DO NOTHING
	`, userID, doc)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Update writes the whole document conditional on version. All fields land
// in one statement: there is no partial-write path.
func (r *Repository) Update(ctx context.Context, userID string, l models.UserLedger, version int64) error {
	doc, err := json.Marshal(l)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE user_ledgers
		SET doc = $1, version = version + 1, updated_at = now()
		WHERE user_id = $2 AND version = $3
	`, doc, userID, version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionMismatch
	}
	return nil
}

// UpdateInTx runs the conditional document write and any extra writes (e.g.
// a redemption row plus its fulfillment job) in one transaction, so the
// points decrement and its side effects commit or roll back together.
func (r *Repository) UpdateInTx(ctx context.Context, userID string, l models.UserLedger, version int64, extra func(ctx context.Context, tx pgx.Tx) error) error {
	doc, err := json.Marshal(l)
	if err != nil {
		return err
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE user_ledgers
		SET doc = $1, version = version + 1, updated_at = now()
		WHERE user_id = $2 AND version = $3
	`, doc, userID, version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionMismatch
	}
	if extra != nil {
		if err := extra(ctx, tx); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
