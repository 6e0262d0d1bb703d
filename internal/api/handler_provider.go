package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wiet32522/LSCgambling/internal/broadcast"
	"github.com/wiet32522/LSCgambling/internal/repos/accounts"
	"github.com/wiet32522/LSCgambling/internal/repos/chatmessages"
	"github.com/wiet32522/LSCgambling/internal/services/rain"
	"github.com/wiet32522/LSCgambling/internal/services/wagering"
)

var validate = validator.New()

// Narrow views of the services so handlers can be exercised against stubs.
type (
	BetPlacer interface {
		PlaceBet(ctx context.Context, req wagering.BetRequest) (*wagering.BetSettlement, error)
	}

	Authenticator interface {
		Register(ctx context.Context, username, password string) (*accounts.Account, error)
		Authenticate(ctx context.Context, username, password string) (*accounts.Account, error)
	}

	AccountFetcher interface {
		GetByID(ctx context.Context, id uuid.UUID) (*accounts.Account, error)
	}

	ChatRelay interface {
		Post(ctx context.Context, userID uuid.UUID, username, text string) (*chatmessages.Message, error)
		History(ctx context.Context) ([]chatmessages.Message, error)
	}

	RainJob interface {
		DistributePool(ctx context.Context, poolAmount decimal.Decimal) (*rain.Report, error)
	}

	SubscriptionAuthorizer interface {
		AuthorizeSubscription(socketID, channel string) (*broadcast.ChannelAuth, error)
	}
)

// HandlerProvider wires the services into HTTP handlers.
type HandlerProvider struct {
	bets        BetPlacer
	auth        Authenticator
	fetcher     AccountFetcher
	chat        ChatRelay
	rain        RainJob
	rainPool    decimal.Decimal
	channelAuth SubscriptionAuthorizer
	broadcaster broadcast.Broadcaster
}

func NewHandler(
	bets BetPlacer,
	auth Authenticator,
	fetcher AccountFetcher,
	chat ChatRelay,
	rainJob RainJob,
	rainPool decimal.Decimal,
	channelAuth SubscriptionAuthorizer,
	broadcaster broadcast.Broadcaster,
) *HandlerProvider {
	return &HandlerProvider{
		bets:        bets,
		auth:        auth,
		fetcher:     fetcher,
		chat:        chat,
		rain:        rainJob,
		rainPool:    rainPool,
		channelAuth: channelAuth,
		broadcaster: broadcaster,
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
		http.Error(w, `{"success":false,"message":"internal json encode failure"}`, http.StatusInternalServerError)
	}
}

// writeFailure emits the {"success":false,"message":...} envelope every
// error response uses. Internal detail never travels in msg.
func writeFailure(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "message": msg})
}

// decodeJSON reads a capped request body into dst and runs field validation.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}

		return errors.New("invalid JSON")
	}

	err = validate.Struct(dst)
	if err != nil {
		return errors.New("missing or invalid fields")
	}

	return nil
}

func userPayload(acc *accounts.Account) map[string]any {
	return map[string]any{
		"id":          acc.ID.String(),
		"username":    acc.Username,
		"lsc_balance": acc.Balance.StringFixed(2),
	}
}
