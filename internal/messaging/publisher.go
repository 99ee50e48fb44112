package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"table-order/internal/logger"
	"table-order/internal/models"
)

// AMQP Type property values; consumers dispatch on these
const (
	TypeChangeEvent  = "change_event"
	TypeStatusUpdate = "status_update"
)

// Publisher emits storage-change events to the fanout exchange
type Publisher struct {
	conn   *Connection
	logger *logger.Logger
}

// NewPublisher creates a new event publisher
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: log,
	}
}

// PublishChange announces that a storage key has been written. Failures are
// logged and returned; callers treat them as non-fatal since the poll path
// bounds staleness anyway.
func (p *Publisher) PublishChange(ctx context.Context, event *models.ChangeEvent) error {
	return p.publish(ctx, TypeChangeEvent, event)
}

// PublishStatusUpdate announces an order status transition with its detail
func (p *Publisher) PublishStatusUpdate(ctx context.Context, msg *models.StatusUpdateMessage) error {
	return p.publish(ctx, TypeStatusUpdate, msg)
}

func (p *Publisher) publish(ctx context.Context, messageType string, message interface{}) error {
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Type:         messageType,
		Body:         body,
		DeliveryMode: amqp091.Transient,
		Timestamp:    time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.conn.Channel().PublishWithContext(
		ctx,
		StorageEventsExchange, // exchange
		"",                    // routing key (fanout)
		false,                 // mandatory
		false,                 // immediate
		publishing,
	)
	if err != nil {
		p.logger.Error("event_publish_failed",
			fmt.Sprintf("Failed to publish %s event", messageType),
			"", err, map[string]interface{}{
				"exchange":     StorageEventsExchange,
				"message_type": messageType,
			})
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.logger.Debug("event_published",
		fmt.Sprintf("Published %s event", messageType),
		"", map[string]interface{}{
			"exchange":     StorageEventsExchange,
			"message_type": messageType,
			"message_size": len(body),
		})

	return nil
}

// Close closes the publisher
func (p *Publisher) Close() error {
	return p.conn.Close()
}
