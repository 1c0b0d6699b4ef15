package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/casefort/LitIntel/internal/config"
	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/logging"
	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/casefort/LitIntel/pkg/errors"
)

// Handler processes one decoded event.  Returning an error sends the message
// to the dead-letter topic (when a producer is attached) and moves on; the
// consumer never redelivers.
type Handler func(ctx context.Context, env *EventEnvelope) error

// readerIface abstracts kafka.Reader for tests.
type readerIface interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads one topic within a consumer group and dispatches each
// message to its handler.
type Consumer struct {
	reader     readerIface
	topic      string
	handler    Handler
	deadLetter *Producer // optional
	logger     logging.Logger
	metrics    *prometheus.EngineMetrics
}

// NewConsumer builds a group consumer for the topic.
func NewConsumer(cfg config.KafkaConfig, topic string, handler Handler, deadLetter *Producer, logger logging.Logger, metrics *prometheus.EngineMetrics) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, apperrors.InvalidParam("kafka consumer requires at least one broker")
	}
	if cfg.GroupID == "" {
		return nil, apperrors.InvalidParam("kafka consumer requires a group id")
	}
	if handler == nil {
		return nil, apperrors.InvalidParam("kafka consumer requires a handler")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	startOffset := kafka.LastOffset
	if cfg.AutoOffsetReset == "earliest" {
		startOffset = kafka.FirstOffset
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       topic,
		StartOffset: startOffset,
		MinBytes:    1,
		MaxBytes:    10 * 1024 * 1024,
		MaxWait:     time.Second,
	})
	return &Consumer{
		reader:     reader,
		topic:      topic,
		handler:    handler,
		deadLetter: deadLetter,
		logger:     logger.Named("kafka_consumer").With(logging.String("topic", topic)),
		metrics:    metrics,
	}, nil
}

// Run consumes until ctx is cancelled.  It always returns ctx.Err() on
// shutdown; fetch errors other than cancellation are logged and retried.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("fetch failed", logging.Err(err))
			continue
		}

		c.process(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.logger.Error("commit failed", logging.Err(err))
		}
	}
}

// process decodes and handles one message.  Poison messages (undecodable or
// rejected by the handler) are dead-lettered rather than retried.
func (c *Consumer) process(ctx context.Context, msg kafka.Message) {
	env, err := DecodeEnvelope(msg.Value)
	if err == nil {
		err = c.handler(ctx, env)
	}
	c.metrics.RecordEventConsumed(c.topic, err)
	if err == nil {
		return
	}

	c.logger.Error("message handling failed",
		logging.String("key", string(msg.Key)),
		logging.Err(err))
	if c.deadLetter != nil {
		if dlErr := c.deadLetter.DeadLetter(ctx, msg, err); dlErr != nil {
			c.logger.Error("dead-letter publish failed", logging.Err(dlErr))
		}
	}
}

// Close shuts the underlying reader down.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
