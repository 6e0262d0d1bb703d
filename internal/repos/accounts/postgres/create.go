package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/wiet32522/LSCgambling/internal/repos/accounts"
)

func (r *accountsRepo) Create(ctx context.Context, username, passwordHash string, startingBalance decimal.Decimal) (*accounts.Account, error) {
	acc := &accounts.Account{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		Balance:      startingBalance,
		LastActive:   time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, balance, last_active)
		VALUES ($1, $2, $3, $4, $5)
	`, acc.ID, acc.Username, acc.PasswordHash, acc.Balance, acc.LastActive)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return nil, accounts.ErrUsernameTaken
			}
		}

		return nil, fmt.Errorf("insert account: %w", err)
	}

	return acc, nil
}
