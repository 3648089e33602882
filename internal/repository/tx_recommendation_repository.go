package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/helixir/journal-recommender-service/internal/database"
	"github.com/helixir/journal-recommender-service/internal/domain"
)

// Compile-time interface verification.
var _ RecommendationRepository = (*TxRecommendationRepository)(nil)

// TxRecommendationRepository wraps PgRecommendationRepository so Create runs
// inside a transaction: the recommendation row and its entries commit
// together or not at all. Reads go straight to the pool.
type TxRecommendationRepository struct {
	db    *database.DB
	reads *PgRecommendationRepository
}

// NewTxRecommendationRepository creates a transactional recommendation repository.
func NewTxRecommendationRepository(db *database.DB) *TxRecommendationRepository {
	return &TxRecommendationRepository{
		db:    db,
		reads: NewPgRecommendationRepository(db),
	}
}

// Create stores the recommendation and its entries atomically.
func (r *TxRecommendationRepository) Create(ctx context.Context, rec *domain.Recommendation) error {
	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		return NewPgRecommendationRepository(tx).Create(ctx, rec)
	})
}

// GetByID retrieves a recommendation with its ranked matches.
func (r *TxRecommendationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Recommendation, error) {
	return r.reads.GetByID(ctx, id)
}

// List retrieves recommendation summaries matching the filter criteria.
func (r *TxRecommendationRepository) List(ctx context.Context, filter RecommendationFilter) ([]*domain.Recommendation, int64, error) {
	return r.reads.List(ctx, filter)
}
