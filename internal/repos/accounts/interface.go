package accounts

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrAccountNotFound = errors.New("account not found")
var ErrUsernameTaken = errors.New("username already taken")
var ErrInsufficientFunds = errors.New("insufficient funds")

// Account is one row of the users table. Balance carries full precision;
// rounding to 2 decimals happens only when rendering a response.
type Account struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Balance      decimal.Decimal
	LastActive   time.Time
}

type Accounts interface {
	Create(ctx context.Context, username, passwordHash string, startingBalance decimal.Decimal) (*Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	LockAndGetBalance(tx *sql.Tx, id uuid.UUID) (decimal.Decimal, error)
	SetBalance(tx *sql.Tx, id uuid.UUID, balance decimal.Decimal) error
	CreditBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	TouchLastActive(ctx context.Context, id uuid.UUID) error
	ListActiveSince(ctx context.Context, since time.Time) ([]Account, error)
}
