// Package ingest consumes learner events from RabbitMQ and applies them to
// the engine.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"github.com/abhisek/lexis/internal/metrics"
)

// ConsumerConfig names the broker objects the consumer declares.
type ConsumerConfig struct {
	URL      string
	Exchange string
	Queue    string
	Prefetch int
	Timeout  time.Duration // per message
}

type Consumer struct {
	cfg     ConsumerConfig
	conn    *amqp091.Connection
	channel *amqp091.Channel
	handler *Handler
	metrics *metrics.Metrics
	logger  *slog.Logger
	tag     string
}

// NewConsumer dials the broker and declares a durable topic exchange and a
// durable queue bound to every routing key.
func NewConsumer(cfg ConsumerConfig, h *Handler, m *metrics.Metrics, logger *slog.Logger) (*Consumer, error) {
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = 10
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := amqp091.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declare(channel, cfg); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &Consumer{
		cfg:     cfg,
		conn:    conn,
		channel: channel,
		handler: h,
		metrics: m,
		logger:  logger,
		tag:     "lexis-" + uuid.NewString(),
	}, nil
}

func declare(ch *amqp091.Channel, cfg ConsumerConfig) error {
	err := ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.Queue, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	for _, key := range RoutingKeys {
		if err := ch.QueueBind(q.Name, key, cfg.Exchange, false, nil); err != nil {
			return fmt.Errorf("bind queue %s: %w", key, err)
		}
	}
	return ch.Qos(cfg.Prefetch, 0, false)
}

// Run consumes until ctx is cancelled or the broker closes the channel.
// Deliveries are handled one at a time so that per-learner ordering in
// the queue is preserved.
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.channel.ConsumeWithContext(ctx,
		c.cfg.Queue, // queue
		c.tag,       // consumer
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	c.logger.Info("consumer started", "queue", c.cfg.Queue, "tag", c.tag)
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			c.deliver(ctx, msg)
		}
	}
}

func (c *Consumer) deliver(ctx context.Context, msg amqp091.Delivery) {
	mctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	outcome := c.handler.Handle(mctx, msg.RoutingKey, msg.Body)
	if c.metrics != nil {
		c.metrics.Message(msg.RoutingKey, string(outcome))
	}

	var err error
	switch outcome {
	case Ack:
		err = msg.Ack(false)
	case Reject:
		err = msg.Nack(false, false)
	default:
		err = msg.Nack(false, true)
	}
	if err != nil {
		c.logger.Error("settle delivery", "routing_key", msg.RoutingKey, "outcome", string(outcome), "error", err)
	}
}

// Close cancels the consumer and closes the channel and connection.
func (c *Consumer) Close() error {
	if c.channel != nil {
		_ = c.channel.Cancel(c.tag, false)
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
