// Package domain provides domain models and business logic for the Journal Recommender Service.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Quartile represents an SJR quartile band within a subject category.
// These values must match the database enum sjr_quartile.
type Quartile string

const (
	QuartileQ1 Quartile = "Q1"
	QuartileQ2 Quartile = "Q2"
	QuartileQ3 Quartile = "Q3"
	QuartileQ4 Quartile = "Q4"
)

// IsValidQuartile returns true if q is one of the four defined quartile bands.
func IsValidQuartile(q Quartile) bool {
	switch q {
	case QuartileQ1, QuartileQ2, QuartileQ3, QuartileQ4:
		return true
	default:
		return false
	}
}

// JournalMetrics holds the SCImago bibliometric indicators for a journal.
// All fields are nullable: source data frequently omits individual metrics,
// and an absent metric simply contributes nothing to scoring.
type JournalMetrics struct {
	// SJR is the SCImago Journal Rank prestige indicator.
	SJR *float64

	// SJRQuartile is the journal's quartile band (Q1 best, Q4 worst).
	SJRQuartile *Quartile

	// HIndex is the journal's h-index: h documents each cited at least h times.
	HIndex *int

	// TotalDocs is the number of documents published in the reference year.
	TotalDocs *int

	// TotalDocs3Years is the number of documents published in the past three years.
	TotalDocs3Years *int

	// CitationsPerDoc is the mean citations per document over two years.
	CitationsPerDoc *float64

	// TotalCitations3Years is the citation count over the past three years.
	TotalCitations3Years *int
}

// JournalCategory is a subject category assignment with its per-category
// quartile, e.g. "Applied Mathematics (Q1)". Quartile is nil when the source
// listed the category without a band.
type JournalCategory struct {
	Name     string
	Quartile *Quartile
}

// Journal represents an academic journal from the SCImago-derived registry.
// Journals are read-mostly reference data; the recommender never mutates them.
type Journal struct {
	// ID is the primary key for this journal.
	ID uuid.UUID

	// SourceID is the SCImago source identifier, unique per journal.
	SourceID int64

	// Title is the journal title.
	Title string

	// Publisher is the publishing house name.
	Publisher string

	// Country is the publisher's country, if known.
	Country string

	// OpenAccess indicates whether the journal is open access.
	OpenAccess bool

	// Coverage is the publication coverage range, e.g. "1996-2024".
	Coverage string

	// ScimagoRank is the journal's overall SCImago rank position, if known.
	ScimagoRank *int

	// ScopeText is the free-text aims-and-scope description. Nil when the
	// scope was never scraped for this journal.
	ScopeText *string

	// Metrics holds the bibliometric indicators.
	Metrics JournalMetrics

	// ISSNs are the journal's ISSN identifiers (print and electronic).
	ISSNs []string

	// Areas are the high-level subject areas, in source order.
	Areas []string

	// Categories are the subject categories with per-category quartiles.
	Categories []JournalCategory

	// CreatedAt records when the journal was first imported.
	CreatedAt time.Time

	// UpdatedAt records the last import that touched this journal.
	UpdatedAt time.Time
}

// Scope returns the scope text, or "" when absent.
func (j *Journal) Scope() string {
	if j.ScopeText == nil {
		return ""
	}
	return *j.ScopeText
}

// HasScope returns true if the journal has non-empty scope text.
func (j *Journal) HasScope() bool {
	return j.ScopeText != nil && *j.ScopeText != ""
}

// MatchText returns the lowercase concatenation of scope text, title, and
// subject areas. This is the text the scorer searches keywords against.
func (j *Journal) MatchText() string {
	parts := make([]string, 0, 2+len(j.Areas))
	parts = append(parts, j.Scope(), j.Title)
	parts = append(parts, j.Areas...)
	return strings.ToLower(strings.Join(parts, " "))
}

// NewJournal creates a Journal with a generated ID and timestamps set to now.
func NewJournal(sourceID int64, title string) *Journal {
	now := time.Now().UTC()
	return &Journal{
		ID:        uuid.New(),
		SourceID:  sourceID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
