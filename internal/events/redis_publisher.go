package events

import (
	"context"
	"encoding/json"
	"fmt"
)

// ChannelPublisher is the subset of a pub/sub client used for fan-out.
type ChannelPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// RedisPublisher forwards events as JSON to a Redis channel.
type RedisPublisher struct {
	client  ChannelPublisher
	channel string
}

// NewRedisPublisher builds a publisher for channel.
func NewRedisPublisher(client ChannelPublisher, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Handle satisfies EventHandler.
func (p *RedisPublisher) Handle(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.Type, err)
	}
	if err := p.client.Publish(ctx, p.channel, payload); err != nil {
		return fmt.Errorf("publish event %s: %w", event.Type, err)
	}
	return nil
}
