package rain

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/wiet32522/LSCgambling/internal/broadcast"
	"github.com/wiet32522/LSCgambling/internal/repos/accounts"
)

type fakeStore struct {
	accounts.Accounts

	listed    []accounts.Account
	lastSince time.Time

	balances  map[uuid.UUID]decimal.Decimal
	failFor   map[uuid.UUID]error
	creditLog []uuid.UUID
}

func (f *fakeStore) ListActiveSince(_ context.Context, since time.Time) ([]accounts.Account, error) {
	f.lastSince = since
	return f.listed, nil
}

func (f *fakeStore) CreditBalance(_ context.Context, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if err, ok := f.failFor[id]; ok {
		return decimal.Zero, err
	}

	f.creditLog = append(f.creditLog, id)
	f.balances[id] = f.balances[id].Add(amount)

	return f.balances[id], nil
}

type publishedEvent struct {
	Channel string
	Event   string
	Payload any
}

type fakeBroadcaster struct {
	events []publishedEvent
}

func (f *fakeBroadcaster) Publish(_ context.Context, channel, event string, payload any) error {
	f.events = append(f.events, publishedEvent{Channel: channel, Event: event, Payload: payload})
	return nil
}

func newTestJob(store *fakeStore, bc *fakeBroadcaster, window time.Duration) *Job {
	return &Job{
		accounts:     store,
		broadcaster:  bc,
		activeWindow: window,
		now:          func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func seedStore(n int) *fakeStore {
	store := &fakeStore{
		balances: make(map[uuid.UUID]decimal.Decimal),
		failFor:  make(map[uuid.UUID]error),
	}

	for i := 0; i < n; i++ {
		acc := accounts.Account{ID: uuid.New(), Username: fmt.Sprintf("user%d", i), Balance: decimal.Zero}
		store.listed = append(store.listed, acc)
		store.balances[acc.ID] = decimal.Zero
	}

	return store
}

func TestDistributePool_EvenSplit(t *testing.T) {
	t.Parallel()

	store := seedStore(5)
	bc := &fakeBroadcaster{}
	job := newTestJob(store, bc, 0)

	report, err := job.DistributePool(context.Background(), decimal.RequireFromString("50000.00"))
	require.NoError(t, err)

	require.Equal(t, 5, report.Recipients)
	require.Empty(t, report.Failures)
	require.Equal(t, "10000.00", report.PerUser.StringFixed(2))

	for _, acc := range store.listed {
		require.Equal(t, "10000.00", store.balances[acc.ID].StringFixed(2), "account %s", acc.Username)
	}

	// One private balance-update per account plus the SYSTEM announcement.
	require.Len(t, bc.events, 6)

	for i, acc := range store.listed {
		require.Equal(t, broadcast.UserChannel(acc.ID), bc.events[i].Channel)
		require.Equal(t, broadcast.EventBalanceUpdate, bc.events[i].Event)
	}

	last := bc.events[5]
	require.Equal(t, broadcast.ChatChannel, last.Channel)
	require.Equal(t, broadcast.EventNewMessage, last.Event)
	require.Equal(t, "SYSTEM", last.Payload.(map[string]string)["username"])
}

func TestDistributePool_NoEligibleAccounts(t *testing.T) {
	t.Parallel()

	store := seedStore(0)
	bc := &fakeBroadcaster{}
	job := newTestJob(store, bc, 0)

	report, err := job.DistributePool(context.Background(), decimal.RequireFromString("50000.00"))
	require.NoError(t, err)

	require.Equal(t, 0, report.Recipients)
	require.Empty(t, store.creditLog)
	require.Empty(t, bc.events)
}

func TestDistributePool_FailureIsolation(t *testing.T) {
	t.Parallel()

	store := seedStore(3)
	bc := &fakeBroadcaster{}
	job := newTestJob(store, bc, 0)

	broken := store.listed[1].ID
	store.failFor[broken] = errors.New("connection reset")

	report, err := job.DistributePool(context.Background(), decimal.RequireFromString("300.00"))
	require.NoError(t, err)

	// One failure recorded; the other two credits still landed.
	require.Equal(t, 3, report.Recipients)
	require.Len(t, report.Failures, 1)
	require.Equal(t, broken, report.Failures[0].AccountID)
	require.Len(t, store.creditLog, 2)

	require.Equal(t, "100.00", store.balances[store.listed[0].ID].StringFixed(2))
	require.True(t, store.balances[broken].IsZero())
	require.Equal(t, "100.00", store.balances[store.listed[2].ID].StringFixed(2))
}

func TestDistributePool_ActiveWindow(t *testing.T) {
	t.Parallel()

	store := seedStore(1)
	bc := &fakeBroadcaster{}

	t.Run("zero_window_lists_everyone", func(t *testing.T) {
		job := newTestJob(store, bc, 0)

		_, err := job.DistributePool(context.Background(), decimal.RequireFromString("10.00"))
		require.NoError(t, err)
		require.True(t, store.lastSince.IsZero())
	})

	t.Run("positive_window_bounds_eligibility", func(t *testing.T) {
		job := newTestJob(store, bc, time.Hour)

		_, err := job.DistributePool(context.Background(), decimal.RequireFromString("10.00"))
		require.NoError(t, err)
		require.Equal(t, job.now().Add(-time.Hour), store.lastSince)
	})
}
