// Package importer loads journal registry exports into the database.
//
// The input is the JSON export produced by the registry tooling: a top-level
// document with the journal list plus the subject-area and category
// dictionaries. Imports are idempotent; journals are keyed by source_id and
// re-importing an export updates existing rows in place.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/helixir/journal-recommender-service/internal/database"
	"github.com/helixir/journal-recommender-service/internal/domain"
	"github.com/helixir/journal-recommender-service/internal/events"
	"github.com/helixir/journal-recommender-service/internal/observability"
	"github.com/helixir/journal-recommender-service/internal/repository"

	"github.com/jackc/pgx/v5"
)

// Default batch size for transactional upserts.
const DefaultBatchSize = 500

// Config holds importer configuration.
type Config struct {
	// BatchSize is the number of journals upserted per transaction.
	BatchSize int

	// LockKey is the advisory lock key guarding concurrent imports.
	LockKey int64
}

// Importer imports journal registry exports.
type Importer struct {
	db        *database.DB
	publisher events.Publisher
	metrics   *observability.Metrics
	logger    zerolog.Logger
	batchSize int
	lockKey   int64
}

// NewImporter creates an Importer. The metrics parameter may be nil.
func NewImporter(db *database.DB, publisher events.Publisher, metrics *observability.Metrics, logger zerolog.Logger, cfg Config) *Importer {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Importer{
		db:        db,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger.With().Str("component", "importer").Logger(),
		batchSize: batchSize,
		lockKey:   cfg.LockKey,
	}
}

// Summary reports the outcome of an import run.
type Summary struct {
	BatchID    uuid.UUID
	Source     string
	Total      int
	Imported   int
	Skipped    int
	WithScope  int
	OpenAccess int
	ByQuartile map[domain.Quartile]int
	Duration   time.Duration
}

// Export is the top-level structure of a registry export file.
type Export struct {
	ExportedAt string          `json:"exported_at"`
	Statistics json.RawMessage `json:"statistics"`
	Journals   []ExportJournal `json:"journals"`
}

// ExportJournal is one journal record in a registry export.
type ExportJournal struct {
	SourceID    int64            `json:"source_id"`
	Title       string           `json:"title"`
	Publisher   string           `json:"publisher"`
	Country     string           `json:"country"`
	OpenAccess  bool             `json:"open_access"`
	Coverage    string           `json:"coverage"`
	ScimagoRank *int             `json:"scimago_rank"`
	ScopeText   *string          `json:"scope_text"`
	Metrics     ExportMetrics    `json:"metrics"`
	ISSNs       []string         `json:"issns"`
	Categories  []ExportCategory `json:"categories"`
	Areas       []string         `json:"areas"`
}

// ExportMetrics carries the bibliometric indicators of an export record.
// All fields are nullable in the source data.
type ExportMetrics struct {
	SJR                  *float64 `json:"sjr"`
	SJRQuartile          *string  `json:"sjr_quartile"`
	HIndex               *int     `json:"h_index"`
	TotalDocs            *int     `json:"total_docs_2024"`
	TotalDocs3Years      *int     `json:"total_docs_3years"`
	CitationsPerDoc      *float64 `json:"citations_per_doc"`
	TotalCitations3Years *int     `json:"total_citations_3years"`
}

// ExportCategory is a subject category assignment. Exports carry categories
// either as objects or as legacy "Name (Q1)" strings; both forms decode.
type ExportCategory struct {
	Name     string  `json:"name"`
	Quartile *string `json:"quartile"`
}

var categoryPattern = regexp.MustCompile(`^(.+?)\s*\((Q[1-4])\)$`)

// UnmarshalJSON accepts both the object form and the legacy string form.
func (c *ExportCategory) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		name, quartile := parseCategoryString(s)
		c.Name = name
		c.Quartile = quartile
		return nil
	}

	type plain ExportCategory
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = ExportCategory(p)
	return nil
}

// parseCategoryString splits a "Name (Q1)" string into name and quartile.
// Strings without a recognized quartile suffix keep the whole text as the name.
func parseCategoryString(s string) (string, *string) {
	s = strings.TrimSpace(s)
	if m := categoryPattern.FindStringSubmatch(s); m != nil {
		q := m[2]
		return strings.TrimSpace(m[1]), &q
	}
	return s, nil
}

// splitList splits a semicolon-separated list and trims each element.
// Legacy exports carry areas and ISSN lists in this form.
func splitList(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ImportFile imports a registry export from a JSON file on disk.
func (i *Importer) ImportFile(ctx context.Context, path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()

	var export Export
	if err := json.NewDecoder(f).Decode(&export); err != nil {
		return nil, fmt.Errorf("decode export file: %w", err)
	}

	return i.Import(ctx, &export, path)
}

// Import upserts every journal in the export, in batches, each batch inside
// its own transaction. An advisory lock serializes concurrent imports; if the
// lock is held the import fails with domain.ErrAlreadyExists.
func (i *Importer) Import(ctx context.Context, export *Export, source string) (*Summary, error) {
	start := time.Now()

	acquired, err := i.db.AcquireAdvisoryLock(ctx, i.lockKey)
	if err != nil {
		return nil, fmt.Errorf("acquire import lock: %w", err)
	}
	if !acquired {
		return nil, fmt.Errorf("another import is running: %w", domain.ErrAlreadyExists)
	}
	defer func() {
		if releaseErr := i.db.ReleaseAdvisoryLock(context.WithoutCancel(ctx), i.lockKey); releaseErr != nil {
			i.logger.Warn().Err(releaseErr).Msg("failed to release import lock")
		}
	}()

	summary := &Summary{
		BatchID:    uuid.New(),
		Source:     source,
		Total:      len(export.Journals),
		ByQuartile: make(map[domain.Quartile]int),
	}

	i.logger.Info().
		Str("batch_id", summary.BatchID.String()).
		Str("source", source).
		Str("exported_at", export.ExportedAt).
		Int("total", summary.Total).
		Msg("import started")

	journals := make([]*domain.Journal, 0, i.batchSize)
	flush := func() error {
		if len(journals) == 0 {
			return nil
		}
		batch := journals
		journals = journals[:0]
		return i.db.WithTransaction(ctx, func(tx pgx.Tx) error {
			repo := repository.NewPgJournalRepository(tx)
			for _, j := range batch {
				if err := repo.Upsert(ctx, j); err != nil {
					return fmt.Errorf("upsert journal source_id=%d: %w", j.SourceID, err)
				}
			}
			return nil
		})
	}

	for idx := range export.Journals {
		rec := &export.Journals[idx]
		journal, ok := i.toDomain(rec)
		if !ok {
			summary.Skipped++
			continue
		}

		summary.Imported++
		if journal.HasScope() {
			summary.WithScope++
		}
		if journal.OpenAccess {
			summary.OpenAccess++
		}
		if journal.Metrics.SJRQuartile != nil {
			summary.ByQuartile[*journal.Metrics.SJRQuartile]++
		}

		journals = append(journals, journal)
		if len(journals) >= i.batchSize {
			if err := flush(); err != nil {
				i.recordFailure(start)
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		i.recordFailure(start)
		return nil, err
	}

	summary.Duration = time.Since(start)
	if i.metrics != nil {
		i.metrics.RecordImportCompleted(summary.Imported, summary.Skipped, summary.Duration.Seconds())
	}

	i.logger.Info().
		Str("batch_id", summary.BatchID.String()).
		Int("imported", summary.Imported).
		Int("skipped", summary.Skipped).
		Int("with_scope", summary.WithScope).
		Int("open_access", summary.OpenAccess).
		Int("q1", summary.ByQuartile[domain.QuartileQ1]).
		Int("q2", summary.ByQuartile[domain.QuartileQ2]).
		Int("q3", summary.ByQuartile[domain.QuartileQ3]).
		Int("q4", summary.ByQuartile[domain.QuartileQ4]).
		Dur("duration", summary.Duration).
		Msg("import completed")

	i.publishImported(ctx, summary)

	return summary, nil
}

// toDomain converts an export record to a domain journal. Records without a
// source_id or title cannot be keyed and are skipped.
func (i *Importer) toDomain(rec *ExportJournal) (*domain.Journal, bool) {
	title := strings.TrimSpace(rec.Title)
	if rec.SourceID == 0 || title == "" {
		i.logger.Warn().
			Int64("source_id", rec.SourceID).
			Str("title", rec.Title).
			Msg("skipping journal without source_id or title")
		return nil, false
	}

	j := domain.NewJournal(rec.SourceID, title)
	j.Publisher = strings.TrimSpace(rec.Publisher)
	j.Country = strings.TrimSpace(rec.Country)
	j.OpenAccess = rec.OpenAccess
	j.Coverage = strings.TrimSpace(rec.Coverage)
	j.ScimagoRank = rec.ScimagoRank

	if rec.ScopeText != nil {
		if scope := strings.TrimSpace(*rec.ScopeText); scope != "" {
			j.ScopeText = &scope
		}
	}

	j.Metrics = domain.JournalMetrics{
		SJR:                  rec.Metrics.SJR,
		SJRQuartile:          toQuartile(rec.Metrics.SJRQuartile),
		HIndex:               rec.Metrics.HIndex,
		TotalDocs:            rec.Metrics.TotalDocs,
		TotalDocs3Years:      rec.Metrics.TotalDocs3Years,
		CitationsPerDoc:      rec.Metrics.CitationsPerDoc,
		TotalCitations3Years: rec.Metrics.TotalCitations3Years,
	}

	for _, issn := range rec.ISSNs {
		// Legacy exports sometimes pack several ISSNs into one comma-separated entry.
		j.ISSNs = append(j.ISSNs, splitList(issn, ",")...)
	}
	for _, area := range rec.Areas {
		j.Areas = append(j.Areas, splitList(area, ";")...)
	}
	for _, cat := range rec.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			continue
		}
		j.Categories = append(j.Categories, domain.JournalCategory{
			Name:     name,
			Quartile: toQuartile(cat.Quartile),
		})
	}

	return j, true
}

// toQuartile converts a quartile string to the domain type, dropping
// unrecognized values rather than failing the record.
func toQuartile(s *string) *domain.Quartile {
	if s == nil {
		return nil
	}
	q := domain.Quartile(strings.ToUpper(strings.TrimSpace(*s)))
	if !domain.IsValidQuartile(q) {
		return nil
	}
	return &q
}

// recordFailure records import failure metrics.
func (i *Importer) recordFailure(start time.Time) {
	if i.metrics != nil {
		i.metrics.RecordImportFailed(time.Since(start).Seconds())
	}
}

// publishImported emits the journals.imported event. Publishing is
// best-effort: the import has already committed, so failures are only logged.
func (i *Importer) publishImported(ctx context.Context, summary *Summary) {
	if i.publisher == nil {
		return
	}

	event, err := domain.NewEvent(
		domain.EventTypeJournalsImported,
		summary.BatchID.String(),
		domain.AggregateTypeJournalBatch,
		domain.JournalsImportedPayload{
			BatchID:   summary.BatchID,
			Source:    summary.Source,
			Imported:  summary.Imported,
			Skipped:   summary.Skipped,
			WithScope: summary.WithScope,
		},
	)
	if err != nil {
		i.logger.Error().Err(err).Msg("failed to build journals.imported event")
		return
	}

	if err := i.publisher.Publish(ctx, event); err != nil {
		i.logger.Error().Err(err).
			Str("batch_id", summary.BatchID.String()).
			Msg("failed to publish journals.imported event")
	}
}
