// Package broadcast fans events out to subscribed browser clients.
// Channel and event names follow the frontend contract: the shared chat
// channel plus one private channel per user.
package broadcast

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const (
	ChatChannel     = "chat-channel"
	EventNewMessage = "new-message"

	EventBalanceUpdate = "balance-update"
)

// UserChannel is the private channel carrying balance updates for one account.
func UserChannel(id uuid.UUID) string {
	return fmt.Sprintf("user-%s", id)
}

type Broadcaster interface {
	Publish(ctx context.Context, channel, event string, payload any) error
}
