package accounts

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wiet32522/LSCgambling/internal/repos/accounts"
)

// SetBalance writes the balance computed by the caller. It must only be
// called while holding the row lock from LockAndGetBalance, in the same
// transaction.
func (r *accountsRepo) SetBalance(tx *sql.Tx, id uuid.UUID, balance decimal.Decimal) error {
	if balance.IsNegative() {
		return accounts.ErrInsufficientFunds
	}

	res, err := tx.Exec(`
		UPDATE users
		SET balance = $2
		WHERE id = $1
	`, id, balance)
	if err != nil {
		return fmt.Errorf("set balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return accounts.ErrAccountNotFound
	}

	return nil
}
