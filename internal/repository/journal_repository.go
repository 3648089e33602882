package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/helixir/journal-recommender-service/internal/domain"
)

// JournalRepository handles persistence of the journal registry.
// Journals are read-mostly reference data: writes happen through the bulk
// importer, reads through the recommender and the HTTP API.
type JournalRepository interface {
	// Upsert inserts a journal or updates the existing row with the same
	// source_id. The journal's scope, metrics, ISSNs, areas, and categories
	// are written alongside the base row; absent sub-records are removed.
	// On success the journal's ID and timestamps reflect the stored row.
	//
	// Upsert issues several statements; callers that need atomicity should
	// run it inside database.DB.WithTransaction with a transactional
	// repository instance.
	Upsert(ctx context.Context, journal *domain.Journal) error

	// GetByID retrieves a journal by its internal UUID.
	// Returns domain.ErrNotFound if no matching journal exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Journal, error)

	// GetBySourceID retrieves a journal by its SCImago source identifier.
	// Returns domain.ErrNotFound if no matching journal exists.
	GetBySourceID(ctx context.Context, sourceID int64) (*domain.Journal, error)

	// List retrieves journals matching the filter criteria.
	// Returns the matching journals and total count for pagination.
	// The total count reflects all matching records regardless of limit/offset.
	//
	// Results are ordered by scimago_rank (nulls last), then id. The order is
	// deterministic: the ranker's tie-break stability is anchored to it.
	List(ctx context.Context, filter JournalFilter) ([]*domain.Journal, int64, error)
}

// JournalFilter specifies criteria for listing journals via JournalRepository.List.
// All fields are optional; the zero filter matches every journal.
type JournalFilter struct {
	// Quartiles filters to journals whose overall SJR quartile is in the set.
	Quartiles []domain.Quartile

	// OpenAccess filters by open-access status.
	OpenAccess *bool

	// SJRMin filters to journals with SJR >= this value.
	SJRMin *float64

	// SJRMax filters to journals with SJR <= this value.
	SJRMax *float64

	// HIndexMin filters to journals with h-index >= this value.
	HIndexMin *int

	// HIndexMax filters to journals with h-index <= this value.
	HIndexMax *int

	// Publishers is an allowlist of publisher names.
	Publishers []string

	// Area filters to journals assigned a subject area containing this
	// substring (case-insensitive).
	Area string

	// TitleContains filters to journals whose title contains this substring
	// (case-insensitive).
	TitleContains string

	// Limit specifies maximum number of results (default: 100, max: 1000).
	Limit int

	// Offset specifies the starting position for pagination.
	Offset int
}

// Validate checks if the filter has valid values and sets defaults.
func (f *JournalFilter) Validate() error {
	for _, q := range f.Quartiles {
		if !domain.IsValidQuartile(q) {
			return domain.NewValidationError("quartiles", fmt.Sprintf("invalid quartile %q", q))
		}
	}
	applyPaginationDefaults(&f.Limit, &f.Offset)
	return nil
}
