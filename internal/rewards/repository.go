package rewards

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Redemption statuses.
const (
	StatusPending = "PENDING"
	StatusIssued  = "ISSUED"
)

// Redemption records one voucher claim. Created PENDING in the same
// transaction as the points decrement; the fulfillment worker marks it
// ISSUED.
type Redemption struct {
	ID          uuid.UUID  `json:"id"`
	UserID      string     `json:"user_id"`
	OptionID    string     `json:"option_id"`
	Title       string     `json:"title"`
	Cost        int        `json:"cost"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	FulfilledAt *time.Time `json:"fulfilled_at,omitempty"`
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateTx inserts a redemption inside the given transaction.
func (r *Repository) CreateTx(ctx context.Context, tx pgx.Tx, rd *Redemption) error {
	return tx.QueryRow(ctx, `
		INSERT INTO redemptions (id, user_id, option_id, title, cost, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, rd.ID, rd.UserID, rd.OptionID, rd.Title, rd.Cost, rd.Status).Scan(&rd.CreatedAt)
}

// MarkIssued stamps the redemption fulfilled.
func (r *Repository) MarkIssued(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE redemptions SET status = $1, fulfilled_at = now() WHERE id = $2
	`, StatusIssued, id)
	return err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Redemption, error) {
	var rd Redemption
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, option_id, title, cost, status, created_at, fulfilled_at
		FROM redemptions WHERE id = $1
	`, id).Scan(&rd.ID, &rd.UserID, &rd.OptionID, &rd.Title, &rd.Cost, &rd.Status, &rd.CreatedAt, &rd.FulfilledAt)
	if err != nil {
		return nil, err
	}
	return &rd, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*Redemption, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, option_id, title, cost, status, created_at, fulfilled_at
		FROM redemptions WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*Redemption
	for rows.Next() {
		var rd Redemption
		if err := rows.Scan(&rd.ID, &rd.UserID, &rd.OptionID, &rd.Title, &rd.Cost, &rd.Status, &rd.CreatedAt, &rd.FulfilledAt); err != nil {
			return nil, err
		}
		list = append(list, &rd)
	}
	return list, rows.Err()
}
