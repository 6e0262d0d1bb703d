package wagering

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/wiet32522/LSCgambling/internal/infra/pgutils"
	"github.com/wiet32522/LSCgambling/internal/repos/accounts"
	pgaccounts "github.com/wiet32522/LSCgambling/internal/repos/accounts/postgres"
)

var one = decimal.NewFromInt(1)

// Engine settles bets. The read-decide-write sequence of PlaceBet runs as
// one database transaction holding a row lock on the account, so two
// concurrent bets from the same account cannot both spend the same balance.
type Engine struct {
	db       *sql.DB
	accounts accounts.Accounts
	roll     func() float64
}

func New(db *sql.DB) *Engine {
	return &Engine{
		db:       db,
		accounts: pgaccounts.New(db),
		roll:     func() float64 { return rand.Float64() * 100 },
	}
}

// PlaceBet resolves one bet and commits the resulting balance:
//
// 1) Validate amount and multiplier (no store access on failure).
// 2) Lock the account row and read the balance.
// 3) Reject with ErrInsufficientFunds if balance < betAmount.
// 4) Draw a roll in [0,100), decide win against 99/multiplier - houseEdge.
// 5) Write the post-settlement balance and commit.
//
// The debit and the conditional credit are one write; a failed transaction
// leaves the balance untouched.
func (e *Engine) PlaceBet(ctx context.Context, req BetRequest) (*BetSettlement, error) {
	if !req.BetAmount.IsPositive() {
		return nil, fmt.Errorf("bet amount must be positive: %w", ErrInvalidBet)
	}

	if !req.TargetMultiplier.GreaterThan(one) {
		return nil, fmt.Errorf("target multiplier must be greater than 1: %w", ErrInvalidBet)
	}

	var settlement BetSettlement

	err := pgutils.WithTx(ctx, e.db, func(tx *sql.Tx) error {
		balance, err := e.accounts.LockAndGetBalance(tx, req.AccountID)
		if err != nil {
			return fmt.Errorf("lock and get balance: %w", err)
		}

		if balance.LessThan(req.BetAmount) {
			return accounts.ErrInsufficientFunds
		}

		settlement = settle(balance, req, e.roll())

		err = e.accounts.SetBalance(tx, req.AccountID, settlement.NewBalance)
		if err != nil {
			return fmt.Errorf("set balance: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("place bet: %w", err)
	}

	return &settlement, nil
}

// settle computes the outcome for a bet against a locked balance. The win
// chance is a percentage compared against a [0,100) roll:
//
//	winChance = 99.0/targetMultiplier - houseEdge
//
// A fair game would use 100/targetMultiplier; the 99 numerator plus the
// subtracted edge is the operator's margin.
func settle(balance decimal.Decimal, req BetRequest, roll float64) BetSettlement {
	afterDebit := balance.Sub(req.BetAmount)

	winChance := 99.0/req.TargetMultiplier.InexactFloat64() - HouseEdge

	s := BetSettlement{
		RollResult:       roll,
		BetAmount:        req.BetAmount,
		TargetMultiplier: req.TargetMultiplier,
		Win:              roll < winChance,
		Winnings:         decimal.Zero,
		NewBalance:       afterDebit,
	}

	if s.Win {
		s.Winnings = req.BetAmount.Mul(req.TargetMultiplier)
		s.NewBalance = afterDebit.Add(s.Winnings)
	}

	return s
}
