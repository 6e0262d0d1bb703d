package api

import (
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wiet32522/LSCgambling/internal/broadcast"
	"github.com/wiet32522/LSCgambling/internal/repos/accounts"
	"github.com/wiet32522/LSCgambling/internal/services/wagering"
)

type betRequest struct {
	UserID           string          `json:"userId" validate:"required"`
	BetAmount        decimal.Decimal `json:"betAmount"`
	TargetMultiplier decimal.Decimal `json:"targetMultiplier"`
}

type betOutcome struct {
	RollResult       float64 `json:"roll_result"`
	BetAmount        string  `json:"bet_amount"`
	TargetMultiplier string  `json:"target_multiplier"`
	Win              bool    `json:"win"`
	Winnings         string  `json:"winnings"`
	NewBalance       string  `json:"new_balance"`
}

// PlaceBetHandler handles POST /bet.
func (h *HandlerProvider) PlaceBetHandler(w http.ResponseWriter, r *http.Request) {
	var req betRequest

	err := decodeJSON(w, r, &req)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid bet parameters.")
		return
	}

	accountID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid bet parameters.")
		return
	}

	settlement, err := h.bets.PlaceBet(r.Context(), wagering.BetRequest{
		AccountID:        accountID,
		BetAmount:        req.BetAmount,
		TargetMultiplier: req.TargetMultiplier,
	})
	if err != nil {
		switch {
		case errors.Is(err, wagering.ErrInvalidBet):
			writeFailure(w, http.StatusBadRequest, "Invalid bet or multiplier.")
			return
		case errors.Is(err, accounts.ErrInsufficientFunds):
			writeFailure(w, http.StatusBadRequest, "Insufficient funds.")
			return
		case errors.Is(err, accounts.ErrAccountNotFound):
			writeFailure(w, http.StatusNotFound, "User not found.")
			return
		default:
			slog.Error("bet failed", "error", err)
			writeFailure(w, http.StatusInternalServerError, "An error occurred during the bet.")
			return
		}
	}

	newBalance := settlement.NewBalance.StringFixed(2)

	// Push the committed balance to the user's private channel; the HTTP
	// response already carries the outcome, so a lost push is non-fatal.
	err = h.broadcaster.Publish(r.Context(), broadcast.UserChannel(accountID), broadcast.EventBalanceUpdate,
		map[string]string{"new_balance": newBalance})
	if err != nil {
		slog.Warn("balance push failed", "accountID", accountID, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"outcome": betOutcome{
			RollResult:       math.Round(settlement.RollResult*100) / 100,
			BetAmount:        settlement.BetAmount.StringFixed(2),
			TargetMultiplier: settlement.TargetMultiplier.StringFixed(2),
			Win:              settlement.Win,
			Winnings:         settlement.Winnings.StringFixed(2),
			NewBalance:       newBalance,
		},
	})
}
