package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

var _ Broadcaster = (*RedisBroadcaster)(nil)

// RedisBroadcaster publishes events over Redis pub/sub. The websocket
// gateway subscribed on the other side owns delivery to browsers.
type RedisBroadcaster struct {
	client *redis.Client
}

type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

func NewRedis(ctx context.Context, addr, password string) (*RedisBroadcaster, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisBroadcaster{client: client}, nil
}

func (b *RedisBroadcaster) Publish(ctx context.Context, channel, event string, payload any) error {
	raw, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		return fmt.Errorf("marshal event %q: %w", event, err)
	}

	err = b.client.Publish(ctx, channel, raw).Err()
	if err != nil {
		return fmt.Errorf("publish to %q: %w", channel, err)
	}

	return nil
}

func (b *RedisBroadcaster) Close() error {
	return b.client.Close()
}
