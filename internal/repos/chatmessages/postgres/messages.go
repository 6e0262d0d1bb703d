package chatmessages

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wiet32522/LSCgambling/internal/repos/chatmessages"
)

var _ chatmessages.Messages = (*messagesRepo)(nil)

type messagesRepo struct{ db *sql.DB }

func New(db *sql.DB) *messagesRepo {
	return &messagesRepo{db: db}
}

func (r *messagesRepo) Insert(ctx context.Context, msg *chatmessages.Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, user_id, username, text, display_timestamp, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, msg.ID, msg.UserID, msg.Username, msg.Text, msg.DisplayTimestamp, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}

	return nil
}

func (r *messagesRepo) ListRecent(ctx context.Context, limit int) ([]chatmessages.Message, error) {
	// Newest first to apply the limit, then reversed so callers get oldest first.
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, username, text, display_timestamp, created_at
		FROM chat_messages
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	var out []chatmessages.Message

	for rows.Next() {
		var msg chatmessages.Message

		err = rows.Scan(&msg.ID, &msg.UserID, &msg.Username, &msg.Text, &msg.DisplayTimestamp, &msg.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}

		out = append(out, msg)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate chat messages: %w", err)
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return out, nil
}
