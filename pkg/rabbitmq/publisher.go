// Package rabbitmq publishes library domain events to a topic exchange.
package rabbitmq

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ExchangeName is the topic exchange events are published to. Routing keys
// are event types such as "book.created".
const ExchangeName = "library.events"

const publishTimeout = 10 * time.Second

// Publisher publishes messages to the RabbitMQ exchange.
type Publisher struct {
	channel *amqp.Channel
	logger  *zap.Logger
}

// NewPublisher creates a new publisher and declares the topic exchange.
func NewPublisher(conn *Connection, logger *zap.Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	err = ch.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}

	return &Publisher{channel: ch, logger: logger.Named("Publisher")}, nil
}

// Publish sends a persistent JSON message with the given routing key.
func (p *Publisher) Publish(routingKey string, body []byte, correlationID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	p.logger.Debug("publishing event",
		zap.String("routing_key", routingKey), zap.String("correlation_id", correlationID))

	return p.channel.PublishWithContext(
		ctx,
		ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: correlationID,
			Body:          body,
			DeliveryMode:  amqp.Persistent,
			Timestamp:     time.Now(),
		},
	)
}

// Close closes the publisher channel.
func (p *Publisher) Close() error {
	if p.channel != nil {
		return p.channel.Close()
	}
	return nil
}
