package chatmessages

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Message is append-only: rows are inserted and read, never updated.
type Message struct {
	ID               uuid.UUID `json:"-"`
	UserID           uuid.UUID `json:"userId"`
	Username         string    `json:"username"`
	Text             string    `json:"text"`
	DisplayTimestamp string    `json:"timestamp"`
	CreatedAt        time.Time `json:"createdAt"`
}

type Messages interface {
	Insert(ctx context.Context, msg *Message) error
	// ListRecent returns at most limit of the newest messages, oldest first.
	ListRecent(ctx context.Context, limit int) ([]Message, error)
}
