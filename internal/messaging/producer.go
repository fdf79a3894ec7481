package messaging

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Producer publishes plain-text outcome notifications on the outbound
// channel. Delivery is fire and forget: no acknowledgement is consumed.
type Producer struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

func NewProducer(client *redis.Client, channel string, logger *zap.Logger) *Producer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Producer{client: client, channel: channel, logger: logger}
}

// Notify sends one text message on the outbound channel.
func (p *Producer) Notify(ctx context.Context, message string) error {
	if err := p.client.Publish(ctx, p.channel, message).Err(); err != nil {
		p.logger.Error("publish notification", zap.String("channel", p.channel), zap.Error(err))
		return fmt.Errorf("publish notification: %w", err)
	}
	p.logger.Debug("notification published", zap.String("channel", p.channel), zap.String("message", message))
	return nil
}
