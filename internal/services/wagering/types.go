package wagering

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HouseEdge is subtracted from the fair win chance, in percentage points.
// Together with the 99 numerator in the win-chance formula it defines the
// payout economics and must not change.
const HouseEdge = 0.01

var ErrInvalidBet = errors.New("invalid bet parameters")

// BetRequest is built per API call and consumed immediately, never stored.
type BetRequest struct {
	AccountID        uuid.UUID
	BetAmount        decimal.Decimal
	TargetMultiplier decimal.Decimal
}

// BetSettlement describes one resolved bet. NewBalance is the balance as
// committed; display rounding happens at the API layer.
type BetSettlement struct {
	RollResult       float64
	BetAmount        decimal.Decimal
	TargetMultiplier decimal.Decimal
	Win              bool
	Winnings         decimal.Decimal
	NewBalance       decimal.Decimal
}
