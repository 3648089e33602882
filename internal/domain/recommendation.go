package domain

import (
	"time"

	"github.com/google/uuid"
)

// Score bounds for journal suitability scores.
const (
	MinScore = 0
	MaxScore = 100
)

// ScoredMatch pairs a journal with its suitability score and 1-based rank.
// Matches are transient per request; only the top-N are persisted with the
// recommendation they belong to.
type ScoredMatch struct {
	// Journal is the matched journal.
	Journal *Journal

	// Score is the suitability score in [0,100].
	Score int

	// Rank is the 1-based position after ranking. Zero until ranked.
	Rank int
}

// Recommendation is the persisted output of a single recommend request:
// the manuscript text it was computed for, the extracted keywords, and the
// ranked top-N matches.
type Recommendation struct {
	// ID is the primary key for this recommendation.
	ID uuid.UUID

	// ManuscriptTitle is the title the recommendation was computed for.
	ManuscriptTitle string

	// ManuscriptAbstract is the abstract the recommendation was computed for.
	ManuscriptAbstract string

	// Keywords are the extracted keywords, in discovery order.
	Keywords []string

	// Matches are the ranked matches, best first.
	Matches []ScoredMatch

	// CreatedAt records when the recommendation was computed.
	CreatedAt time.Time
}

// NewRecommendation creates a Recommendation with a generated ID.
func NewRecommendation(m Manuscript, keywords []string, matches []ScoredMatch) *Recommendation {
	return &Recommendation{
		ID:                 uuid.New(),
		ManuscriptTitle:    m.Title,
		ManuscriptAbstract: m.Abstract,
		Keywords:           keywords,
		Matches:            matches,
		CreatedAt:          time.Now().UTC(),
	}
}

// TopScore returns the best score in the recommendation, or 0 when empty.
func (r *Recommendation) TopScore() int {
	if len(r.Matches) == 0 {
		return 0
	}
	return r.Matches[0].Score
}
