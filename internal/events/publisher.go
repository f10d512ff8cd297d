// Package events publishes checkout lifecycle events to Kafka so the
// rest of the shop (notifications, analytics, reconciliation of stuck
// pending orders) can react. Publication is fire and forget: a broker
// problem is logged and never fails a checkout.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	EventOrderPlaced    = "order_placed"
	EventCheckoutFailed = "checkout_failed"
)

type Publisher struct {
	writer  *kafka.Writer
	timeout time.Duration
	log     *slog.Logger
}

func NewPublisher(brokers []string, topic string, log *slog.Logger) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{
		writer:  w,
		timeout: 5 * time.Second,
		log:     log,
	}
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) OrderPlaced(ctx context.Context, order *domain.Order) {
	payload := map[string]interface{}{
		"event_id":     uuid.NewString(),
		"order_id":     order.ID,
		"user_id":      order.UserID,
		"total_amount": order.TotalAmount,
		"placed_at":    time.Now().UTC(),
	}
	// order_id as key keeps per-order ordering
	p.publish(ctx, EventOrderPlaced, strconv.FormatInt(order.ID, 10), payload)
}

func (p *Publisher) CheckoutFailed(ctx context.Context, stage checkout.Stage, reason string) {
	payload := map[string]interface{}{
		"event_id":  uuid.NewString(),
		"stage":     stage.String(),
		"reason":    reason,
		"failed_at": time.Now().UTC(),
	}
	p.publish(ctx, EventCheckoutFailed, uuid.NewString(), payload)
}

func (p *Publisher) publish(ctx context.Context, eventType, key string, payload map[string]interface{}) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		p.log.Error("failed to marshal event payload", "event_type", eventType, "error", err)
		return
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(key),
		Value: payloadJSON,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}
	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		p.log.Error("failed to publish event", "event_type", eventType, "error", err)
	}
}
