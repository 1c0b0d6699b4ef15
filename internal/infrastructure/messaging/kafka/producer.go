package kafka

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/casefort/LitIntel/internal/config"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/logging"
	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/casefort/LitIntel/pkg/errors"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// producerSource identifies this service in event envelopes.
const producerSource = "litintel"

// writerIface abstracts kafka.Writer so tests can capture messages.
type writerIface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes analysis events.  It satisfies engine.Publisher via
// AnalysisCompleted.
type Producer struct {
	writer  writerIface
	logger  logging.Logger
	metrics *prometheus.EngineMetrics
	closed  atomic.Bool
}

// NewProducer builds a producer over the configured brokers.
func NewProducer(cfg config.KafkaConfig, logger logging.Logger, metrics *prometheus.EngineMetrics) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, apperrors.InvalidParam("kafka producer requires at least one broker")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = time.Second
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	retries := cfg.ProducerRetries
	if retries <= 0 {
		retries = 3
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{}, // same case, same partition: per-case ordering
		BatchTimeout: batchTimeout,
		WriteTimeout: writeTimeout,
		MaxAttempts:  retries,
		RequiredAcks: kafka.RequireAll,
	}
	return &Producer{writer: writer, logger: logger.Named("kafka_producer"), metrics: metrics}, nil
}

// publish writes one envelope keyed by case so per-case order is preserved.
func (p *Producer) publish(ctx context.Context, topic string, caseID common.ID, env *EventEnvelope) error {
	if p.closed.Load() {
		return apperrors.InvalidState("kafka producer is closed")
	}

	data, err := json.Marshal(env)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to encode event envelope")
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(caseID),
		Value: data,
		Time:  env.Timestamp,
	})
	p.metrics.RecordEventPublished(topic, err)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeMessagingError, "failed to publish event").WithDetail(topic)
	}
	p.logger.Debug("event published",
		logging.String("topic", topic),
		logging.String("event_type", env.EventType),
		logging.String("case_id", string(caseID)))
	return nil
}

// AnalysisCompleted implements engine.Publisher.
func (p *Producer) AnalysisCompleted(ctx context.Context, a *insight.Analysis) error {
	env, err := NewEnvelope(TopicAnalysisCompleted, producerSource, CompletedPayloadFrom(a))
	if err != nil {
		return err
	}
	return p.publish(ctx, TopicAnalysisCompleted, a.CaseID, env)
}

// RequestAnalysis enqueues an analysis request for the worker.
func (p *Producer) RequestAnalysis(ctx context.Context, caseID common.ID, requestedBy string) error {
	env, err := NewEnvelope(TopicAnalysisRequested, producerSource, AnalysisRequestedPayload{
		CaseID:      caseID,
		RequestedBy: requestedBy,
		RequestedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return p.publish(ctx, TopicAnalysisRequested, caseID, env)
}

// CaseUpdated announces a case-data change.
func (p *Producer) CaseUpdated(ctx context.Context, caseID common.ID) error {
	env, err := NewEnvelope(TopicCaseUpdated, producerSource, CaseUpdatedPayload{
		CaseID:    caseID,
		ChangedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return p.publish(ctx, TopicCaseUpdated, caseID, env)
}

// DeadLetter forwards a poison message for later inspection.
func (p *Producer) DeadLetter(ctx context.Context, original kafka.Message, handleErr error) error {
	env, err := NewEnvelope(TopicDeadLetter, producerSource, map[string]string{
		"original_topic": original.Topic,
		"original_key":   string(original.Key),
		"error":          handleErr.Error(),
		"payload":        string(original.Value),
	})
	if err != nil {
		return err
	}
	return p.publish(ctx, TopicDeadLetter, common.ID(original.Key), env)
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.writer.Close()
}
