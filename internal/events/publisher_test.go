package events

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/journal-recommender-service/internal/domain"
)

func TestNewPublisher(t *testing.T) {
	t.Run("returns no-op publisher when disabled", func(t *testing.T) {
		pub := NewPublisher(Config{Enabled: false}, zerolog.Nop(), nil)
		_, ok := pub.(*noopPublisher)
		assert.True(t, ok)
	})

	t.Run("returns kafka publisher when enabled", func(t *testing.T) {
		pub := NewPublisher(Config{
			Enabled: true,
			Brokers: []string{"localhost:9092"},
			Topic:   "journal-events",
		}, zerolog.Nop(), nil)
		defer pub.Close()

		_, ok := pub.(*KafkaPublisher)
		assert.True(t, ok)
	})
}

func TestNoopPublisher(t *testing.T) {
	pub := &noopPublisher{}

	event, err := domain.NewEvent(
		domain.EventTypeRecommendationCreated,
		"some-aggregate-id",
		domain.AggregateTypeRecommendation,
		map[string]string{"key": "value"},
	)
	require.NoError(t, err)

	assert.NoError(t, pub.Publish(context.Background(), event))
	assert.NoError(t, pub.Close())
}

func TestKafkaPublisher_Publish(t *testing.T) {
	t.Run("rejects nil event", func(t *testing.T) {
		pub := NewKafkaPublisher(Config{
			Brokers:      []string{"localhost:9092"},
			Topic:        "journal-events",
			WriteTimeout: time.Second,
		}, zerolog.Nop(), nil)
		defer pub.Close()

		err := pub.Publish(context.Background(), nil)
		assert.Error(t, err)
	})
}
