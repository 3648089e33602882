// Package events publishes domain events to Kafka.
//
// Publishing is best-effort: recommendation and import flows must not fail
// because the broker is down, so callers log publish errors and move on. The
// publisher can be disabled entirely, which turns Publish into a no-op.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/helixir/journal-recommender-service/internal/domain"
	"github.com/helixir/journal-recommender-service/internal/observability"
)

// Publisher sends domain events to a message broker.
type Publisher interface {
	// Publish sends the event. Implementations must be safe for concurrent use.
	Publish(ctx context.Context, event *domain.Event) error

	// Close releases broker resources.
	Close() error
}

// Config holds configuration for the Kafka publisher.
type Config struct {
	// Enabled toggles publishing. When false a no-op publisher is used.
	Enabled bool
	// Brokers is the list of Kafka broker addresses.
	Brokers []string
	// Topic is the Kafka topic events are written to.
	Topic string
	// WriteTimeout bounds a single write to the broker.
	WriteTimeout time.Duration
}

// NewPublisher creates a Publisher from the config. A disabled config yields
// a no-op publisher so call sites need no branching.
func NewPublisher(cfg Config, logger zerolog.Logger, metrics *observability.Metrics) Publisher {
	if !cfg.Enabled {
		return &noopPublisher{}
	}
	return NewKafkaPublisher(cfg, logger, metrics)
}

// Compile-time interface verification.
var (
	_ Publisher = (*KafkaPublisher)(nil)
	_ Publisher = (*noopPublisher)(nil)
)

// KafkaPublisher publishes events to a Kafka topic, keyed by aggregate ID so
// events for the same aggregate land on the same partition in order.
type KafkaPublisher struct {
	writer  *kafka.Writer
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// NewKafkaPublisher creates a publisher writing to the configured topic.
func NewKafkaPublisher(cfg Config, logger zerolog.Logger, metrics *observability.Metrics) *KafkaPublisher {
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: timeout,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{
		writer:  writer,
		logger:  logger.With().Str("component", "event_publisher").Logger(),
		metrics: metrics,
	}
}

// Publish writes the event to Kafka.
func (p *KafkaPublisher) Publish(ctx context.Context, event *domain.Event) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}

	msg := kafka.Message{
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
		},
		Time: event.CreatedAt,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		if p.metrics != nil {
			p.metrics.RecordEventFailed(event.EventType)
		}
		return fmt.Errorf("failed to publish %s event: %w", event.EventType, err)
	}

	if p.metrics != nil {
		p.metrics.RecordEventPublished(event.EventType)
	}
	p.logger.Debug().
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Str("aggregate_id", event.AggregateID).
		Msg("published event")

	return nil
}

// Close closes the underlying Kafka writer.
func (p *KafkaPublisher) Close() error {
	p.logger.Info().Msg("closing event publisher")
	return p.writer.Close()
}

// noopPublisher drops all events. Used when event publishing is disabled.
type noopPublisher struct{}

func (*noopPublisher) Publish(context.Context, *domain.Event) error { return nil }

func (*noopPublisher) Close() error { return nil }
