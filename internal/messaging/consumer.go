package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fakestore-sync/internal/domain"
)

// Handler processes one inbound product event.
type Handler interface {
	SaveFromEvent(ctx context.Context, in domain.ProductPayload) error
}

// Consumer subscribes to the inbound product channel and hands each decoded
// payload to the handler. A failed event is logged and consumption
// continues; redelivery is the broker's concern, not ours.
type Consumer struct {
	client  *redis.Client
	channel string
	handler Handler
	logger  *zap.Logger
}

func NewConsumer(client *redis.Client, channel string, handler Handler, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{client: client, channel: channel, handler: handler, logger: logger}
}

// Run blocks consuming inbound events until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	pubsub := c.client.Subscribe(ctx, c.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", c.channel, err)
	}
	c.logger.Info("consuming inbound product events", zap.String("channel", c.channel))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("consumer stopped")
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				c.logger.Warn("inbound channel closed")
				return nil
			}
			c.handle(ctx, msg.Payload)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, payload string) {
	var in domain.ProductPayload
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		c.logger.Error("discarding undecodable product event", zap.String("payload", payload), zap.Error(err))
		return
	}
	if err := c.handler.SaveFromEvent(ctx, in); err != nil {
		c.logger.Error("product event failed", zap.String("name", in.Name), zap.Error(err))
	}
}
