package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/wiet32522/LSCgambling/internal/repos/accounts"
)

func (r *accountsRepo) GetByID(ctx context.Context, id uuid.UUID) (*accounts.Account, error) {
	var acc accounts.Account

	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, balance, last_active
		FROM users
		WHERE id = $1
	`, id).Scan(&acc.ID, &acc.Username, &acc.PasswordHash, &acc.Balance, &acc.LastActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accounts.ErrAccountNotFound
		}

		return nil, fmt.Errorf("get account by id: %w", err)
	}

	return &acc, nil
}

func (r *accountsRepo) GetByUsername(ctx context.Context, username string) (*accounts.Account, error) {
	var acc accounts.Account

	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, balance, last_active
		FROM users
		WHERE username = $1
	`, username).Scan(&acc.ID, &acc.Username, &acc.PasswordHash, &acc.Balance, &acc.LastActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accounts.ErrAccountNotFound
		}

		return nil, fmt.Errorf("get account by username: %w", err)
	}

	return &acc, nil
}
