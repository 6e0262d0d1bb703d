package chat

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wiet32522/LSCgambling/internal/broadcast"
	"github.com/wiet32522/LSCgambling/internal/repos/chatmessages"
	pgmessages "github.com/wiet32522/LSCgambling/internal/repos/chatmessages/postgres"
)

// HistoryLimit caps how many messages a history fetch returns.
const HistoryLimit = 50

// DisplayTimestamp renders the clock string shown next to a message.
func DisplayTimestamp(t time.Time) string {
	return t.Format("03:04 PM")
}

// Relay persists chat messages and fans them out on the shared channel.
type Relay struct {
	messages    chatmessages.Messages
	broadcaster broadcast.Broadcaster
	now         func() time.Time
}

func New(db *sql.DB, b broadcast.Broadcaster) *Relay {
	return &Relay{
		messages:    pgmessages.New(db),
		broadcaster: b,
		now:         time.Now,
	}
}

func (r *Relay) Post(ctx context.Context, userID uuid.UUID, username, text string) (*chatmessages.Message, error) {
	now := r.now().UTC()

	msg := &chatmessages.Message{
		ID:               uuid.New(),
		UserID:           userID,
		Username:         username,
		Text:             text,
		DisplayTimestamp: DisplayTimestamp(now),
		CreatedAt:        now,
	}

	err := r.messages.Insert(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("persist message: %w", err)
	}

	err = r.broadcaster.Publish(ctx, broadcast.ChatChannel, broadcast.EventNewMessage, msg)
	if err != nil {
		// The message is already stored; clients pick it up on the next
		// history fetch even if this delivery was lost.
		slog.Warn("failed to broadcast chat message", "messageID", msg.ID, "error", err)
	}

	return msg, nil
}

func (r *Relay) History(ctx context.Context) ([]chatmessages.Message, error) {
	msgs, err := r.messages.ListRecent(ctx, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	return msgs, nil
}
