package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"table-order/internal/logger"
)

func testConsumer() *Consumer {
	return &Consumer{
		conn:        &Connection{},
		logger:      logger.New("messaging-test"),
		queueName:   BoardUpdatesQueue,
		consumerTag: "test",
		prefetch:    1,
	}
}

func TestConsume_ClosedChannelSignalsResume(t *testing.T) {
	c := testConsumer()

	msgs := make(chan amqp091.Delivery)
	close(msgs)

	handler := func(ctx context.Context, messageType string, body []byte) error {
		t.Error("handler invoked for closed channel")
		return nil
	}

	// A broker restart closes the delivery channel; that must surface as a
	// resume signal, never as consumer exit.
	if got := c.consume(context.Background(), msgs, handler); got != consumeChannelClosed {
		t.Errorf("consume() = %v, want consumeChannelClosed", got)
	}
}

func TestConsume_ContextCancelStops(t *testing.T) {
	c := testConsumer()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	msgs := make(chan amqp091.Delivery)
	if got := c.consume(ctx, msgs, nil); got != consumeStopped {
		t.Errorf("consume() = %v, want consumeStopped", got)
	}
}

func TestConsume_DispatchesDeliveries(t *testing.T) {
	c := testConsumer()

	msgs := make(chan amqp091.Delivery, 2)
	msgs <- amqp091.Delivery{Type: TypeChangeEvent, Body: []byte(`{}`)}
	msgs <- amqp091.Delivery{Type: TypeStatusUpdate, Body: []byte(`{}`)}

	var seen []string
	handler := func(ctx context.Context, messageType string, body []byte) error {
		seen = append(seen, messageType)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	go func() {
		// Drain the buffered deliveries, then stop the loop.
		for len(msgs) > 0 {
			time.Sleep(time.Millisecond)
		}
		cancel()
	}()

	if got := c.consume(ctx, msgs, handler); got != consumeStopped {
		t.Errorf("consume() = %v, want consumeStopped", got)
	}
	if len(seen) != 2 || seen[0] != TypeChangeEvent || seen[1] != TypeStatusUpdate {
		t.Errorf("dispatched types = %v", seen)
	}
}
