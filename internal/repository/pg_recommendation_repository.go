package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/helixir/journal-recommender-service/internal/domain"
)

// Compile-time interface verification.
var _ RecommendationRepository = (*PgRecommendationRepository)(nil)

// PgRecommendationRepository is a PostgreSQL implementation of RecommendationRepository.
type PgRecommendationRepository struct {
	db DBTX
}

// NewPgRecommendationRepository creates a new PostgreSQL recommendation repository.
func NewPgRecommendationRepository(db DBTX) *PgRecommendationRepository {
	return &PgRecommendationRepository{db: db}
}

// Create stores a recommendation and its ranked entries.
func (r *PgRecommendationRepository) Create(ctx context.Context, rec *domain.Recommendation) error {
	if rec == nil {
		return domain.NewValidationError("recommendation", "recommendation cannot be nil")
	}

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	keywords := rec.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	query := `
		INSERT INTO recommendations (id, manuscript_title, manuscript_abstract, keywords, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		rec.ID,
		rec.ManuscriptTitle,
		rec.ManuscriptAbstract,
		keywords,
		rec.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.NewAlreadyExistsError("recommendation", rec.ID.String())
		}
		return fmt.Errorf("failed to create recommendation: %w", err)
	}

	if len(rec.Matches) == 0 {
		return nil
	}

	// Bulk insert the ranked entries.
	var valueStrings []string
	var args []interface{}
	for i, match := range rec.Matches {
		if match.Journal == nil {
			return domain.NewValidationError("matches", fmt.Sprintf("match at index %d has no journal", i))
		}
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d, $%d)", i*4+1, i*4+2, i*4+3, i*4+4))
		args = append(args, rec.ID, match.Journal.ID, match.Score, match.Rank)
	}

	entriesQuery := fmt.Sprintf(`
		INSERT INTO recommendation_entries (recommendation_id, journal_id, score, rank)
		VALUES %s`,
		strings.Join(valueStrings, ", "))

	if _, err := r.db.Exec(ctx, entriesQuery, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domain.NewNotFoundError("journal", "referenced by recommendation entry")
		}
		return fmt.Errorf("failed to create recommendation entries: %w", err)
	}

	return nil
}

// GetByID retrieves a recommendation with its ranked matches.
func (r *PgRecommendationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Recommendation, error) {
	query := `
		SELECT id, manuscript_title, manuscript_abstract, keywords, created_at
		FROM recommendations
		WHERE id = $1`

	rec := &domain.Recommendation{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.ManuscriptTitle,
		&rec.ManuscriptAbstract,
		&rec.Keywords,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("recommendation", id.String())
		}
		return nil, fmt.Errorf("failed to get recommendation by ID: %w", err)
	}

	entriesQuery := fmt.Sprintf(`
		SELECT e.score, e.rank, %s
		%s
		INNER JOIN recommendation_entries e ON e.journal_id = j.id
		WHERE e.recommendation_id = $1
		ORDER BY e.rank`,
		journalSelectColumns, journalFromClause)

	rows, err := r.db.Query(ctx, entriesQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendation entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var match domain.ScoredMatch
		var dest journalScanDest
		scanDest := append([]interface{}{&match.Score, &match.Rank}, dest.destinations()...)
		if err := rows.Scan(scanDest...); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation entry: %w", err)
		}
		journal, err := dest.finalize()
		if err != nil {
			return nil, err
		}
		match.Journal = journal
		rec.Matches = append(rec.Matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recommendation entries: %w", err)
	}

	return rec, nil
}

// List retrieves recommendation summaries matching the filter criteria.
func (r *PgRecommendationRepository) List(ctx context.Context, filter RecommendationFilter) ([]*domain.Recommendation, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	// Build dynamic WHERE clause
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.CreatedAfter != nil {
		conditions = append(conditions, fmt.Sprintf("created_at > $%d", argIndex))
		args = append(args, *filter.CreatedAfter)
		argIndex++
	}

	if filter.CreatedBefore != nil {
		conditions = append(conditions, fmt.Sprintf("created_at < $%d", argIndex))
		args = append(args, *filter.CreatedBefore)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total matching records
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM recommendations %s", whereClause)
	var totalCount int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count recommendations: %w", err)
	}

	// Query with pagination
	selectQuery := fmt.Sprintf(`
		SELECT id, manuscript_title, manuscript_abstract, keywords, created_at
		FROM recommendations
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer rows.Close()

	recs := make([]*domain.Recommendation, 0, filter.Limit)
	for rows.Next() {
		rec := &domain.Recommendation{}
		if err := rows.Scan(&rec.ID, &rec.ManuscriptTitle, &rec.ManuscriptAbstract, &rec.Keywords, &rec.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating recommendations: %w", err)
	}

	return recs, totalCount, nil
}
