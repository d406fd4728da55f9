package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/stratacloud/careers-backend/internal/config"
)

type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

var _ amqpChannel = (*amqp.Channel)(nil)

var dial = amqp.Dial

// AMQPPublisher publishes JSON events to a durable topic exchange, opening
// one channel per message.
type AMQPPublisher struct {
	openChannel func() (amqpChannel, error)
	closeConn   func() error
	exchange    string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := dial(url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}

	p := &AMQPPublisher{
		openChannel: func() (amqpChannel, error) { return conn.Channel() },
		closeConn:   conn.Close,
		exchange:    exchange,
	}

	ch, err := p.openChannel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error opening RabbitMQ channel: %w", err)
	}
	defer ch.Close()
	if err := declare(ch, exchange); err != nil {
		conn.Close()
		return nil, err
	}
	return p, nil
}

func declare(ch amqpChannel, exchange string) error {
	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ch, err := p.openChannel()
	if err != nil {
		return fmt.Errorf("error opening RabbitMQ channel: %w", err)
	}
	defer ch.Close()

	return ch.Publish(
		p.exchange,
		event.Type, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	return p.closeConn()
}

// Open connects to RABBITMQ_URL, falling back to the log publisher when no
// broker is configured or it cannot be reached.
func Open(cfg *config.Config) Publisher {
	if cfg.RabbitMQURL == "" {
		slog.Info("no broker configured, events go to the log")
		return LogPublisher{}
	}
	p, err := NewAMQPPublisher(cfg.RabbitMQURL, cfg.NotifyExchange)
	if err != nil {
		slog.Error("broker unavailable, events go to the log", "error", err)
		return LogPublisher{}
	}
	slog.Info("broker connected", "exchange", cfg.NotifyExchange)
	return p
}
