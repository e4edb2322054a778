package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new account and returns the created Account.
func (r *Repository) Create(ctx context.Context, email, passwordHash, displayName string) (*Account, error) {
	acc := &Account{Email: email, DisplayName: displayName}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (email, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING id
	`, email, passwordHash, displayName).Scan(&acc.ID)
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// GetByEmail returns the account and password hash for login. Returns nil if not found.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Account, string, error) {
	var acc Account
	var passwordHash string
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, display_name, password_hash
		FROM accounts WHERE email = $1
	`, email).Scan(&acc.ID, &acc.Email, &acc.DisplayName, &passwordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return &acc, passwordHash, nil
}
