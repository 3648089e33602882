package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event type constants for published events.
const (
	EventTypeRecommendationCreated = "recommendation.created"
	EventTypeJournalsImported      = "journals.imported"
)

// Aggregate type constants for published events.
const (
	AggregateTypeRecommendation = "recommendation"
	AggregateTypeJournalBatch   = "journal_batch"
)

// Event represents a domain event to be published to the message broker.
type Event struct {
	EventID       string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}

// NewEvent creates an event with the given parameters.
// The payload is JSON-serialized automatically.
func NewEvent(eventType, aggregateID, aggregateType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		EventID:       uuid.New().String(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Payload:       payloadBytes,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// RecommendationCreatedPayload is the payload for recommendation.created events.
type RecommendationCreatedPayload struct {
	RecommendationID uuid.UUID `json:"recommendation_id"`
	ManuscriptTitle  string    `json:"manuscript_title"`
	Keywords         []string  `json:"keywords"`
	JournalsScored   int       `json:"journals_scored"`
	MatchesReturned  int       `json:"matches_returned"`
	TopScore         int       `json:"top_score"`
}

// JournalsImportedPayload is the payload for journals.imported events.
type JournalsImportedPayload struct {
	BatchID   uuid.UUID `json:"batch_id"`
	Source    string    `json:"source"`
	Imported  int       `json:"imported"`
	Skipped   int       `json:"skipped"`
	WithScope int       `json:"with_scope"`
}
