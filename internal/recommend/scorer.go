package recommend

import (
	"math"
	"strings"

	"github.com/helixir/journal-recommender-service/internal/domain"
)

// Scoring weights. These are heuristic compatibility constants carried over
// from the original recommender; changing them changes every stored score, so
// they must not be re-tuned independently of the data.
const (
	keywordOverlapMax = 50.0

	quartileQ1Bonus = 20.0
	quartileQ2Bonus = 15.0
	quartileQ3Bonus = 10.0
	quartileQ4Bonus = 5.0

	hIndexHighThreshold = 100
	hIndexMidThreshold  = 50
	hIndexLowThreshold  = 20
	hIndexHighBonus     = 15.0
	hIndexMidBonus      = 10.0
	hIndexLowBonus      = 5.0

	scopeLongThreshold  = 200
	scopeShortThreshold = 100
	scopeLongBonus      = 15.0
	scopeShortBonus     = 10.0
	scopePresentBonus   = 5.0
)

// Scorer computes the 0-100 suitability score for a (journal, keywords) pair.
//
// The score is additive: a keyword-overlap term capped at 50 points, a
// quartile bonus, an h-index bonus, and a scope-completeness bonus. Missing
// metrics contribute zero; the scorer is pure and never fails.
type Scorer struct{}

// NewScorer creates a Scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// ScoreJournal returns the suitability score for the journal given the
// extracted keywords. The result is always in [domain.MinScore, domain.MaxScore].
func (s *Scorer) ScoreJournal(j *domain.Journal, keywords []string) int {
	total := s.keywordOverlapPoints(j, keywords)
	total += quartileBonus(j.Metrics.SJRQuartile)
	total += hIndexBonus(j.Metrics.HIndex)
	total += scopeBonus(j.Scope())

	score := int(math.Round(total))
	if score > domain.MaxScore {
		score = domain.MaxScore
	}
	if score < domain.MinScore {
		score = domain.MinScore
	}
	return score
}

// keywordOverlapPoints computes the keyword-overlap term.
//
// Each keyword is expanded through the synonym table into a deduplicated
// candidate set, preserving order. The number of candidates found as
// substrings in the journal's match text is divided by the ORIGINAL keyword
// count (synonym expansion can therefore push the ratio above 1), multiplied
// by the 50-point weight, and capped. Zero keywords use a denominator of 1,
// yielding zero points.
func (s *Scorer) keywordOverlapPoints(j *domain.Journal, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}

	candidates := expandKeywords(keywords)
	matchText := j.MatchText()

	matched := 0
	for _, candidate := range candidates {
		if strings.Contains(matchText, candidate) {
			matched++
		}
	}

	ratio := float64(matched) / float64(len(keywords))
	points := ratio * keywordOverlapMax
	if points > keywordOverlapMax {
		points = keywordOverlapMax
	}
	return points
}

// expandKeywords returns the ordered, deduplicated union of the keywords and
// their synonym-table expansions.
func expandKeywords(keywords []string) []string {
	expanded := make([]string, 0, len(keywords)*2)
	seen := make(map[string]struct{}, len(keywords)*2)

	add := func(term string) {
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		expanded = append(expanded, term)
	}

	for _, keyword := range keywords {
		add(keyword)
		for _, synonym := range synonymTable[keyword] {
			add(synonym)
		}
	}
	return expanded
}

func quartileBonus(q *domain.Quartile) float64 {
	if q == nil {
		return 0
	}
	switch *q {
	case domain.QuartileQ1:
		return quartileQ1Bonus
	case domain.QuartileQ2:
		return quartileQ2Bonus
	case domain.QuartileQ3:
		return quartileQ3Bonus
	case domain.QuartileQ4:
		return quartileQ4Bonus
	default:
		return 0
	}
}

func hIndexBonus(h *int) float64 {
	if h == nil {
		return 0
	}
	switch {
	case *h >= hIndexHighThreshold:
		return hIndexHighBonus
	case *h >= hIndexMidThreshold:
		return hIndexMidBonus
	case *h >= hIndexLowThreshold:
		return hIndexLowBonus
	default:
		return 0
	}
}

func scopeBonus(scope string) float64 {
	switch {
	case scope == "":
		return 0
	case len(scope) > scopeLongThreshold:
		return scopeLongBonus
	case len(scope) > scopeShortThreshold:
		return scopeShortBonus
	default:
		return scopePresentBonus
	}
}
