package events

import (
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	ExchangeName = "mentorhub.events"
	ExchangeKind = "topic"
)

// Routing keys for lifecycle analytics events.
const (
	KeyBookingRequested = "booking.requested"
	KeyBookingAccepted  = "booking.accepted"
	KeyBookingDeclined  = "booking.declined"
	KeyBookingCancelled = "booking.cancelled"
	KeySessionStarted   = "session.started"
	KeySessionCompleted = "session.completed"
	KeyPaymentReceived  = "payment.received"
)

// Publisher is the analytics sink. Publishing is best-effort: callers log
// failures and move on, a lost event never fails a state transition.
type Publisher interface {
	Publish(routingKey string, payload any) error
	Close()
}

type amqpPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger
}

func NewPublisher(url string, logger *zap.Logger) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, ExchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	return &amqpPublisher{conn: conn, channel: ch, logger: logger}, nil
}

func (p *amqpPublisher) Publish(routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	if err := p.channel.Publish(
		ExchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now(),
			Body:        body,
		},
	); err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	p.logger.Debug("event published",
		zap.String("exchange", ExchangeName),
		zap.String("routing_key", routingKey))
	return nil
}

func (p *amqpPublisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// NopPublisher is used when AMQP_URL is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(string, any) error { return nil }
func (NopPublisher) Close()                    {}
