package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const exchangeName = "t-hub.events"

const (
	RoutingKeyTournamentCreated       = "events.tournament.created"
	RoutingKeyTournamentStatusUpdated = "events.tournament.status_updated"
	RoutingKeyTournamentRegistered    = "events.tournament.registered"
)

// Event is the envelope every message on the exchange carries.
type Event struct {
	EventType string      `json:"event_type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
	Close() error
}

type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Dial connects to the broker and declares the topic exchange.
func Dial(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp.Dial -> %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()

		return nil, fmt.Errorf("conn.Channel -> %w", err)
	}

	err = channel.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()

		return nil, fmt.Errorf("channel.ExchangeDeclare -> %w", err)
	}

	return &AMQPPublisher{
		conn:    conn,
		channel: channel,
	}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	body, err := json.Marshal(Event{
		EventType: routingKey,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("p.channel.PublishWithContext -> %w", err)
	}

	zap.L().Debug("event published", zap.String("routing_key", routingKey))

	return nil
}

func (p *AMQPPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return fmt.Errorf("p.channel.Close -> %w", err)
	}

	if err := p.conn.Close(); err != nil {
		return fmt.Errorf("p.conn.Close -> %w", err)
	}

	return nil
}

// NopPublisher drops every event. Used when the broker is unreachable
// so registrations keep working without it.
type NopPublisher struct{}

func NewNopPublisher() *NopPublisher {
	return &NopPublisher{}
}

func (p *NopPublisher) Publish(_ context.Context, _ string, _ interface{}) error {
	return nil
}

func (p *NopPublisher) Close() error {
	return nil
}
