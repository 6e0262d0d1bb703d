package accounts

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wiet32522/LSCgambling/internal/repos/accounts"
)

// LockAndGetBalance takes a FOR UPDATE row lock on the account. Concurrent
// callers against the same account serialize here until the surrounding
// transaction commits or rolls back.
func (r *accountsRepo) LockAndGetBalance(tx *sql.Tx, id uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal

	err := tx.QueryRow(`
		SELECT balance
		FROM users
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, accounts.ErrAccountNotFound
		}

		return decimal.Zero, fmt.Errorf("lock/get balance: %w", err)
	}

	return balance, nil
}
