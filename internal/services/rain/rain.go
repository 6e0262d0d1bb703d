// Package rain distributes a fixed pool of LSC across eligible accounts.
package rain

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wiet32522/LSCgambling/internal/broadcast"
	"github.com/wiet32522/LSCgambling/internal/repos/accounts"
	pgaccounts "github.com/wiet32522/LSCgambling/internal/repos/accounts/postgres"
	"github.com/wiet32522/LSCgambling/internal/services/chat"
)

type CreditFailure struct {
	AccountID uuid.UUID
	Err       error
}

type Report struct {
	Recipients int
	PerUser    decimal.Decimal
	Failures   []CreditFailure
}

// Job credits every eligible account with an equal share of the pool.
type Job struct {
	accounts    accounts.Accounts
	broadcaster broadcast.Broadcaster

	// activeWindow bounds eligibility to accounts active within the
	// trailing window; zero means every account is eligible.
	activeWindow time.Duration
	now          func() time.Time
}

func New(db *sql.DB, b broadcast.Broadcaster, activeWindow time.Duration) *Job {
	return &Job{
		accounts:     pgaccounts.New(db),
		broadcaster:  b,
		activeWindow: activeWindow,
		now:          time.Now,
	}
}

// DistributePool splits poolAmount evenly across eligible accounts. Each
// credit is an independent atomic update; one account's failure is recorded
// in the report and does not stop the rest.
func (j *Job) DistributePool(ctx context.Context, poolAmount decimal.Decimal) (*Report, error) {
	var since time.Time
	if j.activeWindow > 0 {
		since = j.now().Add(-j.activeWindow)
	}

	eligible, err := j.accounts.ListActiveSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("list eligible accounts: %w", err)
	}

	if len(eligible) == 0 {
		slog.Info("no active users for rain")
		return &Report{Recipients: 0, PerUser: decimal.Zero}, nil
	}

	perUser := poolAmount.Div(decimal.NewFromInt(int64(len(eligible))))
	report := &Report{Recipients: len(eligible), PerUser: perUser}

	for _, acc := range eligible {
		newBalance, err := j.accounts.CreditBalance(ctx, acc.ID, perUser)
		if err != nil {
			slog.Error("rain credit failed", "accountID", acc.ID, "error", err)
			report.Failures = append(report.Failures, CreditFailure{AccountID: acc.ID, Err: err})

			continue
		}

		err = j.broadcaster.Publish(ctx, broadcast.UserChannel(acc.ID), broadcast.EventBalanceUpdate, map[string]string{
			"new_balance": newBalance.StringFixed(2),
			"message":     fmt.Sprintf("LSC RAIN! You received %s LSC!", perUser.StringFixed(2)),
		})
		if err != nil {
			// Credit is committed; only the push was lost.
			slog.Warn("rain notification failed", "accountID", acc.ID, "error", err)
		}
	}

	err = j.broadcaster.Publish(ctx, broadcast.ChatChannel, broadcast.EventNewMessage, map[string]string{
		"username":  "SYSTEM",
		"text":      fmt.Sprintf("LSC RAIN! %s LSC distributed to active players!", poolAmount.StringFixed(2)),
		"timestamp": chat.DisplayTimestamp(j.now().UTC()),
	})
	if err != nil {
		slog.Warn("rain announcement failed", "error", err)
	}

	return report, nil
}
