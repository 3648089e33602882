package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/helixir/journal-recommender-service/internal/domain"
)

// Compile-time interface verification.
var _ JournalRepository = (*PgJournalRepository)(nil)

// PgJournalRepository is a PostgreSQL implementation of JournalRepository.
type PgJournalRepository struct {
	db DBTX
}

// NewPgJournalRepository creates a new PostgreSQL journal repository.
func NewPgJournalRepository(db DBTX) *PgJournalRepository {
	return &PgJournalRepository{db: db}
}

// journalSelectColumns lists the columns of the journal aggregate. The
// ISSN/area/category collections are gathered with correlated subqueries so a
// single query returns the full aggregate without N+1 fan-out.
const journalSelectColumns = `
	j.id, j.source_id, j.title, j.publisher, j.country, j.open_access, j.coverage, j.scimago_rank,
	s.scope_text,
	m.sjr, m.sjr_quartile, m.h_index, m.total_docs, m.total_docs_3years, m.citations_per_doc, m.total_citations_3years,
	COALESCE((SELECT array_agg(i.issn ORDER BY i.issn)
		FROM journal_issn i WHERE i.journal_id = j.id), '{}'),
	COALESCE((SELECT array_agg(sa.name ORDER BY ja.position, sa.name)
		FROM journal_areas ja JOIN subject_areas sa ON sa.id = ja.area_id
		WHERE ja.journal_id = j.id), '{}'),
	COALESCE((SELECT jsonb_agg(jsonb_build_object('name', c.name, 'quartile', jc.quartile) ORDER BY c.name)
		FROM journal_categories jc JOIN categories c ON c.id = jc.category_id
		WHERE jc.journal_id = j.id), '[]'),
	j.created_at, j.updated_at`

// journalFromClause joins the base row with its optional scope and metrics.
const journalFromClause = `
	FROM journals j
	LEFT JOIN journal_scopes s ON s.journal_id = j.id
	LEFT JOIN journal_metrics m ON m.journal_id = j.id`

// Upsert inserts a journal or updates the existing row with the same source_id.
func (r *PgJournalRepository) Upsert(ctx context.Context, journal *domain.Journal) error {
	if journal == nil {
		return domain.NewValidationError("journal", "journal cannot be nil")
	}
	if journal.Title == "" {
		return domain.NewValidationError("title", "title is required")
	}
	if journal.Metrics.SJRQuartile != nil && !domain.IsValidQuartile(*journal.Metrics.SJRQuartile) {
		return domain.NewValidationError("sjr_quartile", fmt.Sprintf("invalid quartile %q", *journal.Metrics.SJRQuartile))
	}

	if journal.ID == uuid.Nil {
		journal.ID = uuid.New()
	}
	now := time.Now().UTC()
	if journal.CreatedAt.IsZero() {
		journal.CreatedAt = now
	}
	journal.UpdatedAt = now

	query := `
		INSERT INTO journals (id, source_id, title, publisher, country, open_access, coverage, scimago_rank, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (source_id) DO UPDATE SET
			title = EXCLUDED.title,
			publisher = EXCLUDED.publisher,
			country = EXCLUDED.country,
			open_access = EXCLUDED.open_access,
			coverage = EXCLUDED.coverage,
			scimago_rank = EXCLUDED.scimago_rank,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		journal.ID,
		journal.SourceID,
		journal.Title,
		journal.Publisher,
		journal.Country,
		journal.OpenAccess,
		journal.Coverage,
		journal.ScimagoRank,
		journal.CreatedAt,
		journal.UpdatedAt,
	).Scan(&journal.ID, &journal.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert journal: %w", err)
	}

	if err := r.upsertScope(ctx, journal); err != nil {
		return err
	}
	if err := r.upsertMetrics(ctx, journal); err != nil {
		return err
	}
	if err := r.replaceISSNs(ctx, journal); err != nil {
		return err
	}
	if err := r.replaceAreas(ctx, journal); err != nil {
		return err
	}
	if err := r.replaceCategories(ctx, journal); err != nil {
		return err
	}

	return nil
}

// upsertScope writes or removes the journal's scope row.
func (r *PgJournalRepository) upsertScope(ctx context.Context, journal *domain.Journal) error {
	if !journal.HasScope() {
		if _, err := r.db.Exec(ctx, `DELETE FROM journal_scopes WHERE journal_id = $1`, journal.ID); err != nil {
			return fmt.Errorf("failed to delete journal scope: %w", err)
		}
		return nil
	}

	query := `
		INSERT INTO journal_scopes (journal_id, scope_text, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (journal_id) DO UPDATE SET
			scope_text = EXCLUDED.scope_text,
			updated_at = EXCLUDED.updated_at`
	if _, err := r.db.Exec(ctx, query, journal.ID, *journal.ScopeText, journal.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert journal scope: %w", err)
	}
	return nil
}

// upsertMetrics writes the journal's metrics row. All metric columns are
// nullable, so the row is written even when every metric is absent.
func (r *PgJournalRepository) upsertMetrics(ctx context.Context, journal *domain.Journal) error {
	m := journal.Metrics
	query := `
		INSERT INTO journal_metrics (journal_id, sjr, sjr_quartile, h_index, total_docs, total_docs_3years, citations_per_doc, total_citations_3years, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (journal_id) DO UPDATE SET
			sjr = EXCLUDED.sjr,
			sjr_quartile = EXCLUDED.sjr_quartile,
			h_index = EXCLUDED.h_index,
			total_docs = EXCLUDED.total_docs,
			total_docs_3years = EXCLUDED.total_docs_3years,
			citations_per_doc = EXCLUDED.citations_per_doc,
			total_citations_3years = EXCLUDED.total_citations_3years,
			updated_at = EXCLUDED.updated_at`

	var quartile *string
	if m.SJRQuartile != nil {
		q := string(*m.SJRQuartile)
		quartile = &q
	}

	if _, err := r.db.Exec(ctx, query,
		journal.ID,
		m.SJR,
		quartile,
		m.HIndex,
		m.TotalDocs,
		m.TotalDocs3Years,
		m.CitationsPerDoc,
		m.TotalCitations3Years,
		journal.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to upsert journal metrics: %w", err)
	}
	return nil
}

// replaceISSNs replaces the journal's ISSN set.
func (r *PgJournalRepository) replaceISSNs(ctx context.Context, journal *domain.Journal) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM journal_issn WHERE journal_id = $1`, journal.ID); err != nil {
		return fmt.Errorf("failed to delete journal ISSNs: %w", err)
	}
	for _, issn := range journal.ISSNs {
		if issn == "" {
			continue
		}
		query := `
			INSERT INTO journal_issn (journal_id, issn)
			VALUES ($1, $2)
			ON CONFLICT (journal_id, issn) DO NOTHING`
		if _, err := r.db.Exec(ctx, query, journal.ID, issn); err != nil {
			return fmt.Errorf("failed to insert journal ISSN: %w", err)
		}
	}
	return nil
}

// replaceAreas replaces the journal's subject-area links, preserving source order.
func (r *PgJournalRepository) replaceAreas(ctx context.Context, journal *domain.Journal) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM journal_areas WHERE journal_id = $1`, journal.ID); err != nil {
		return fmt.Errorf("failed to delete journal areas: %w", err)
	}
	for position, name := range journal.Areas {
		if name == "" {
			continue
		}
		var areaID int
		upsertArea := `
			INSERT INTO subject_areas (name)
			VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`
		if err := r.db.QueryRow(ctx, upsertArea, name).Scan(&areaID); err != nil {
			return fmt.Errorf("failed to upsert subject area: %w", err)
		}
		link := `
			INSERT INTO journal_areas (journal_id, area_id, position)
			VALUES ($1, $2, $3)
			ON CONFLICT (journal_id, area_id) DO UPDATE SET position = EXCLUDED.position`
		if _, err := r.db.Exec(ctx, link, journal.ID, areaID, position); err != nil {
			return fmt.Errorf("failed to link journal area: %w", err)
		}
	}
	return nil
}

// replaceCategories replaces the journal's category links with their quartiles.
func (r *PgJournalRepository) replaceCategories(ctx context.Context, journal *domain.Journal) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM journal_categories WHERE journal_id = $1`, journal.ID); err != nil {
		return fmt.Errorf("failed to delete journal categories: %w", err)
	}
	for _, category := range journal.Categories {
		if category.Name == "" {
			continue
		}
		var categoryID int
		upsertCategory := `
			INSERT INTO categories (name)
			VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`
		if err := r.db.QueryRow(ctx, upsertCategory, category.Name).Scan(&categoryID); err != nil {
			return fmt.Errorf("failed to upsert category: %w", err)
		}

		var quartile *string
		if category.Quartile != nil {
			q := string(*category.Quartile)
			quartile = &q
		}
		link := `
			INSERT INTO journal_categories (journal_id, category_id, quartile)
			VALUES ($1, $2, $3)
			ON CONFLICT (journal_id, category_id) DO UPDATE SET quartile = EXCLUDED.quartile`
		if _, err := r.db.Exec(ctx, link, journal.ID, categoryID, quartile); err != nil {
			return fmt.Errorf("failed to link journal category: %w", err)
		}
	}
	return nil
}

// GetByID retrieves a journal by its internal UUID.
func (r *PgJournalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Journal, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE j.id = $1`, journalSelectColumns, journalFromClause)

	row := r.db.QueryRow(ctx, query, id)
	journal, err := scanJournal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("journal", id.String())
		}
		return nil, fmt.Errorf("failed to get journal by ID: %w", err)
	}

	return journal, nil
}

// GetBySourceID retrieves a journal by its SCImago source identifier.
func (r *PgJournalRepository) GetBySourceID(ctx context.Context, sourceID int64) (*domain.Journal, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE j.source_id = $1`, journalSelectColumns, journalFromClause)

	row := r.db.QueryRow(ctx, query, sourceID)
	journal, err := scanJournal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("journal", fmt.Sprintf("source:%d", sourceID))
		}
		return nil, fmt.Errorf("failed to get journal by source ID: %w", err)
	}

	return journal, nil
}

// List retrieves journals matching the filter criteria.
func (r *PgJournalRepository) List(ctx context.Context, filter JournalFilter) ([]*domain.Journal, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	// Build dynamic WHERE clause
	var conditions []string
	var args []interface{}
	argIndex := 1

	if len(filter.Quartiles) > 0 {
		quartiles := make([]string, 0, len(filter.Quartiles))
		for _, q := range filter.Quartiles {
			quartiles = append(quartiles, string(q))
		}
		conditions = append(conditions, fmt.Sprintf("m.sjr_quartile = ANY($%d)", argIndex))
		args = append(args, quartiles)
		argIndex++
	}

	if filter.OpenAccess != nil {
		conditions = append(conditions, fmt.Sprintf("j.open_access = $%d", argIndex))
		args = append(args, *filter.OpenAccess)
		argIndex++
	}

	if filter.SJRMin != nil {
		conditions = append(conditions, fmt.Sprintf("m.sjr >= $%d", argIndex))
		args = append(args, *filter.SJRMin)
		argIndex++
	}

	if filter.SJRMax != nil {
		conditions = append(conditions, fmt.Sprintf("m.sjr <= $%d", argIndex))
		args = append(args, *filter.SJRMax)
		argIndex++
	}

	if filter.HIndexMin != nil {
		conditions = append(conditions, fmt.Sprintf("m.h_index >= $%d", argIndex))
		args = append(args, *filter.HIndexMin)
		argIndex++
	}

	if filter.HIndexMax != nil {
		conditions = append(conditions, fmt.Sprintf("m.h_index <= $%d", argIndex))
		args = append(args, *filter.HIndexMax)
		argIndex++
	}

	if len(filter.Publishers) > 0 {
		conditions = append(conditions, fmt.Sprintf("j.publisher = ANY($%d)", argIndex))
		args = append(args, filter.Publishers)
		argIndex++
	}

	if filter.Area != "" {
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM journal_areas ja
			JOIN subject_areas sa ON sa.id = ja.area_id
			WHERE ja.journal_id = j.id AND sa.name ILIKE $%d)`, argIndex))
		args = append(args, "%"+escapeLikePattern(filter.Area)+"%")
		argIndex++
	}

	if filter.TitleContains != "" {
		conditions = append(conditions, fmt.Sprintf("j.title ILIKE $%d", argIndex))
		args = append(args, "%"+escapeLikePattern(filter.TitleContains)+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total matching records
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s %s", journalFromClause, whereClause)
	var totalCount int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count journals: %w", err)
	}

	// Query with pagination. The order is deterministic (rank, then id): the
	// ranker's stable sort inherits its tie-break order from it.
	selectQuery := fmt.Sprintf(`
		SELECT %s
		%s
		%s
		ORDER BY j.scimago_rank ASC NULLS LAST, j.id
		LIMIT $%d OFFSET $%d`,
		journalSelectColumns, journalFromClause, whereClause, argIndex, argIndex+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list journals: %w", err)
	}
	defer rows.Close()

	journals := make([]*domain.Journal, 0, filter.Limit)
	for rows.Next() {
		journal, err := scanJournalFromRows(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan journal: %w", err)
		}
		journals = append(journals, journal)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating journals: %w", err)
	}

	return journals, totalCount, nil
}

// escapeLikePattern escapes LIKE special characters to prevent pattern injection.
func escapeLikePattern(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// journalCategoryRecord is the JSON shape produced by the category subquery.
type journalCategoryRecord struct {
	Name     string  `json:"name"`
	Quartile *string `json:"quartile"`
}

// journalScanDest holds the destination pointers for scanning a Journal row.
type journalScanDest struct {
	journal        domain.Journal
	quartile       *string
	categoriesJSON []byte
}

// destinations returns the slice of pointers for Scan operations.
func (d *journalScanDest) destinations() []interface{} {
	return []interface{}{
		&d.journal.ID, &d.journal.SourceID, &d.journal.Title, &d.journal.Publisher,
		&d.journal.Country, &d.journal.OpenAccess, &d.journal.Coverage, &d.journal.ScimagoRank,
		&d.journal.ScopeText,
		&d.journal.Metrics.SJR, &d.quartile, &d.journal.Metrics.HIndex,
		&d.journal.Metrics.TotalDocs, &d.journal.Metrics.TotalDocs3Years,
		&d.journal.Metrics.CitationsPerDoc, &d.journal.Metrics.TotalCitations3Years,
		&d.journal.ISSNs, &d.journal.Areas, &d.categoriesJSON,
		&d.journal.CreatedAt, &d.journal.UpdatedAt,
	}
}

// finalize converts the raw scan columns into domain types.
func (d *journalScanDest) finalize() (*domain.Journal, error) {
	if d.quartile != nil {
		q := domain.Quartile(*d.quartile)
		d.journal.Metrics.SJRQuartile = &q
	}

	var records []journalCategoryRecord
	if len(d.categoriesJSON) > 0 {
		if err := json.Unmarshal(d.categoriesJSON, &records); err != nil {
			return nil, fmt.Errorf("failed to decode journal categories: %w", err)
		}
	}
	d.journal.Categories = make([]domain.JournalCategory, 0, len(records))
	for _, rec := range records {
		category := domain.JournalCategory{Name: rec.Name}
		if rec.Quartile != nil {
			q := domain.Quartile(*rec.Quartile)
			category.Quartile = &q
		}
		d.journal.Categories = append(d.journal.Categories, category)
	}

	return &d.journal, nil
}

// scanJournal scans a single row into a Journal.
func scanJournal(row pgx.Row) (*domain.Journal, error) {
	var dest journalScanDest
	if err := row.Scan(dest.destinations()...); err != nil {
		return nil, err
	}
	return dest.finalize()
}

// scanJournalFromRows scans the current row from pgx.Rows into a Journal.
func scanJournalFromRows(rows pgx.Rows) (*domain.Journal, error) {
	var dest journalScanDest
	if err := rows.Scan(dest.destinations()...); err != nil {
		return nil, err
	}
	return dest.finalize()
}
