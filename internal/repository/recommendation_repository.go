package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/helixir/journal-recommender-service/internal/domain"
)

// RecommendationRepository persists recommendation requests and their ranked
// matches.
type RecommendationRepository interface {
	// Create stores a recommendation and its ranked entries.
	// Returns domain.ErrAlreadyExists if the recommendation ID is taken.
	//
	// Create issues one statement per entry batch; callers that need
	// atomicity should run it inside database.DB.WithTransaction with a
	// transactional repository instance.
	Create(ctx context.Context, rec *domain.Recommendation) error

	// GetByID retrieves a recommendation with its ranked matches, including
	// the full journal aggregate for each entry.
	// Returns domain.ErrNotFound if no matching recommendation exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Recommendation, error)

	// List retrieves recommendation summaries (without entries) matching the
	// filter criteria, most recent first.
	// Returns the matching recommendations and total count for pagination.
	List(ctx context.Context, filter RecommendationFilter) ([]*domain.Recommendation, int64, error)
}

// RecommendationFilter specifies criteria for listing recommendations.
type RecommendationFilter struct {
	// CreatedAfter filters to recommendations created after this timestamp (optional).
	CreatedAfter *time.Time

	// CreatedBefore filters to recommendations created before this timestamp (optional).
	CreatedBefore *time.Time

	// Limit specifies maximum number of results (default: 100, max: 1000).
	Limit int

	// Offset specifies the starting position for pagination.
	Offset int
}

// Validate checks if the filter has valid values and sets defaults.
func (f *RecommendationFilter) Validate() error {
	applyPaginationDefaults(&f.Limit, &f.Offset)
	return nil
}
