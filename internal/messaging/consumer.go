package messaging

import (
	"context"
	"fmt"

	"github.com/rabbitmq/amqp091-go"

	"table-order/internal/logger"
)

// MessageHandler processes one delivery. messageType is the AMQP Type
// property set by the publisher.
type MessageHandler func(ctx context.Context, messageType string, body []byte) error

// Consumer handles message consumption from RabbitMQ
type Consumer struct {
	conn        *Connection
	logger      *logger.Logger
	queueName   string
	consumerTag string
	prefetch    int
}

// NewConsumer creates a new message consumer
func NewConsumer(conn *Connection, log *logger.Logger, queueName, consumerTag string, prefetch int) *Consumer {
	return &Consumer{
		conn:        conn,
		logger:      log,
		queueName:   queueName,
		consumerTag: consumerTag,
		prefetch:    prefetch,
	}
}

// consumeResult says why the delivery loop stopped
type consumeResult int

const (
	consumeStopped consumeResult = iota
	consumeChannelClosed
)

// StartConsuming consumes messages from the queue until the context is
// cancelled. Handler errors nack the delivery without requeue; board state
// converges through the poll fallback. A closed delivery channel triggers a
// reconnect and resume, not an exit.
func (c *Consumer) StartConsuming(ctx context.Context, handler MessageHandler) error {
	if c.conn.IsClosed() {
		if err := c.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	err := c.conn.Channel().Qos(
		c.prefetch, // prefetch count
		0,          // prefetch size
		false,      // global
	)
	if err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := c.conn.Channel().Consume(
		c.queueName,   // queue
		c.consumerTag, // consumer
		false,         // auto-ack (we ack manually)
		false,         // exclusive
		false,         // no-local
		false,         // no-wait
		nil,           // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("consumer_started",
		fmt.Sprintf("Started consuming from queue %s", c.queueName),
		"", map[string]interface{}{
			"queue":    c.queueName,
			"consumer": c.consumerTag,
			"prefetch": c.prefetch,
		})

	if c.consume(ctx, msgs, handler) == consumeChannelClosed {
		c.logger.Error("consumer_channel_closed", "Message channel closed, attempting to reconnect", "", nil, map[string]interface{}{
			"queue": c.queueName,
		})
		if err := c.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect after channel closed: %w", err)
		}
		return c.StartConsuming(ctx, handler)
	}

	c.logger.Info("consumer_stopped", "Consumer stopped by context", "", map[string]interface{}{
		"queue": c.queueName,
	})
	return nil
}

// consume processes deliveries until the context is cancelled or the broker
// closes the delivery channel
func (c *Consumer) consume(ctx context.Context, msgs <-chan amqp091.Delivery, handler MessageHandler) consumeResult {
	for {
		select {
		case <-ctx.Done():
			return consumeStopped

		case delivery, ok := <-msgs:
			if !ok {
				return consumeChannelClosed
			}

			if err := handler(ctx, delivery.Type, delivery.Body); err != nil {
				c.logger.Error("message_handling_failed", "Handler returned error", "", err, map[string]interface{}{
					"queue":        c.queueName,
					"message_type": delivery.Type,
				})
				if nackErr := delivery.Nack(false, false); nackErr != nil {
					c.logger.Error("message_nack_failed", "Failed to nack message", "", nackErr, nil)
				}
				continue
			}

			if ackErr := delivery.Ack(false); ackErr != nil {
				c.logger.Error("message_ack_failed", "Failed to ack message", "", ackErr, nil)
			}
		}
	}
}
