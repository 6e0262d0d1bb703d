// Package auth handles registration and login. Login failures for an
// unknown username and for a wrong password are deliberately collapsed
// into one error so callers cannot enumerate usernames.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/wiet32522/LSCgambling/internal/repos/accounts"
	pgaccounts "github.com/wiet32522/LSCgambling/internal/repos/accounts/postgres"
)

const bcryptCost = 10

// StartingBalance is credited to every new account.
var StartingBalance = decimal.RequireFromString("1000.00")

var ErrInvalidCredentials = errors.New("invalid username or password")

type Service struct {
	accounts accounts.Accounts
}

func New(db *sql.DB) *Service {
	return &Service{accounts: pgaccounts.New(db)}
}

func (s *Service) Register(ctx context.Context, username, password string) (*accounts.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acc, err := s.accounts.Create(ctx, username, string(hash), StartingBalance)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	return acc, nil
}

// Authenticate verifies the password and marks the account active. Both
// unknown-username and wrong-password resolve to ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*accounts.Account, error) {
	acc, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, accounts.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("get account: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	err = s.accounts.TouchLastActive(ctx, acc.ID)
	if err != nil {
		// Login still succeeds; activity tracking only affects rain eligibility.
		slog.Warn("failed to update last_active", "accountID", acc.ID, "error", err)
	}

	return acc, nil
}
