package recommend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/journal-recommender-service/internal/domain"
)

func scopedJournal(title, scope string, quartile *domain.Quartile, hIndex *int) *domain.Journal {
	j := domain.NewJournal(1, title)
	if scope != "" {
		j.ScopeText = &scope
	}
	j.Metrics.SJRQuartile = quartile
	j.Metrics.HIndex = hIndex
	return j
}

func quartilePtr(q domain.Quartile) *domain.Quartile { return &q }

func intPtr(v int) *int { return &v }

func TestScorer_ScoreJournal_FullOverlapTopJournal(t *testing.T) {
	extractor := NewExtractor()
	scorer := NewScorer()

	m := domain.Manuscript{
		Title:    "Quantum Gravity and Holography",
		Abstract: "We study gravitational fields and quantum particles",
	}
	keywords := extractor.ExtractKeywords(m)
	require.NotEmpty(t, keywords)

	scope := "The journal publishes quantum gravity research, particle physics, gravitational " +
		"theory, holography and related fields, covering gravitation, quantum particles, " +
		"emergent spacetime phenomena, and the interface between theoretical models and " +
		"observational constraints across the discipline."
	require.Greater(t, len(scope), scopeLongThreshold)

	journal := scopedJournal("Journal of Quantum Gravity", scope, quartilePtr(domain.QuartileQ1), intPtr(250))

	// Full overlap (50) + Q1 (20) + h-index >= 100 (15) + scope > 200 chars (15).
	assert.Equal(t, 100, scorer.ScoreJournal(journal, keywords))
}

func TestScorer_ScoreJournal_NoKeywords(t *testing.T) {
	scorer := NewScorer()

	scope := "A journal covering a moderately described set of research topics in the physical " +
		"sciences, with room for interdisciplinary work."
	require.Greater(t, len(scope), scopeShortThreshold)
	require.LessOrEqual(t, len(scope), scopeLongThreshold)

	journal := scopedJournal("Physical Sciences Review", scope, quartilePtr(domain.QuartileQ2), intPtr(60))

	// Bonuses only: Q2 (15) + h-index >= 50 (10) + scope > 100 chars (10).
	assert.Equal(t, 35, scorer.ScoreJournal(journal, []string{}))
	assert.Equal(t, 35, scorer.ScoreJournal(journal, nil))
}

func TestScorer_ScoreJournal_FullOverlapNoMetrics(t *testing.T) {
	scorer := NewScorer()

	journal := scopedJournal("Quantum and Particle Physics Letters", "", nil, nil)
	keywords := []string{"quantum", "particle"}

	// Overlap term only: matched 2/2 keywords in the title, no bonuses.
	assert.Equal(t, 50, scorer.ScoreJournal(journal, keywords))
}

func TestScorer_ScoreJournal_SynonymExpansion(t *testing.T) {
	scorer := NewScorer()

	// The title mentions gravitation but never the keyword itself.
	journal := scopedJournal("Annals of Gravitation", "", nil, nil)

	score := scorer.ScoreJournal(journal, []string{"gravity"})
	assert.Equal(t, 50, score, "synonym match should count as full overlap")
}

func TestScorer_ScoreJournal_PartialOverlap(t *testing.T) {
	scorer := NewScorer()

	journal := scopedJournal("Journal of Catalysis", "", nil, nil)

	// One of two keywords matches: 1/2 * 50 = 25.
	assert.Equal(t, 25, scorer.ScoreJournal(journal, []string{"catalysis", "volcanology"}))
}

func TestScorer_ScoreJournal_Range(t *testing.T) {
	scorer := NewScorer()

	longScope := "The journal spans quantum science, particle physics, gravity, cosmology, " +
		"astrophysics, thermodynamics, plasma physics, optics, magnetism, topology, algebra, " +
		"geometry, probability, statistics, optimization, catalysis, polymers, spectroscopy, " +
		"molecular science, and biochemistry in all their forms."

	journals := []*domain.Journal{
		scopedJournal("Empty Journal", "", nil, nil),
		scopedJournal("Everything Journal", longScope, quartilePtr(domain.QuartileQ1), intPtr(500)),
		scopedJournal("Mid Journal", "Optics.", quartilePtr(domain.QuartileQ3), intPtr(25)),
	}
	keywordSets := [][]string{
		nil,
		{"quantum"},
		{"quantum", "particle", "gravity", "cosmology", "astrophysics", "optics", "algebra"},
		{"nonexistentterm"},
	}

	for _, j := range journals {
		for _, keywords := range keywordSets {
			score := scorer.ScoreJournal(j, keywords)
			assert.GreaterOrEqual(t, score, domain.MinScore)
			assert.LessOrEqual(t, score, domain.MaxScore)
		}
	}
}

func TestScorer_ScoreJournal_QuartileOrdering(t *testing.T) {
	scorer := NewScorer()

	scope := "Gravity and cosmology research."
	keywords := []string{"gravity", "cosmology"}

	q1 := scopedJournal("Journal A", scope, quartilePtr(domain.QuartileQ1), intPtr(80))
	q4 := scopedJournal("Journal A", scope, quartilePtr(domain.QuartileQ4), intPtr(80))

	assert.GreaterOrEqual(t, scorer.ScoreJournal(q1, keywords), scorer.ScoreJournal(q4, keywords))
}

func TestScorer_ScoreJournal_OverlapMonotonicity(t *testing.T) {
	extractor := NewExtractor()
	scorer := NewScorer()

	scope := "Cosmology, gravity, and quantum field theory."
	journal := scopedJournal("Cosmology Letters", scope, nil, nil)

	base := domain.Manuscript{Title: "Quantum Gravity", Abstract: "A study of quantum effects"}
	extended := domain.Manuscript{Title: "Quantum Gravity", Abstract: "A study of quantum effects in cosmology"}

	baseScore := scorer.ScoreJournal(journal, extractor.ExtractKeywords(base))
	extendedScore := scorer.ScoreJournal(journal, extractor.ExtractKeywords(extended))

	assert.GreaterOrEqual(t, extendedScore, baseScore,
		"adding a matching term must not decrease the score")
}

func TestScorer_BonusThresholds(t *testing.T) {
	scorer := NewScorer()

	t.Run("h-index bands", func(t *testing.T) {
		tests := []struct {
			hIndex   *int
			expected int
		}{
			{intPtr(250), 15},
			{intPtr(100), 15},
			{intPtr(99), 10},
			{intPtr(50), 10},
			{intPtr(49), 5},
			{intPtr(20), 5},
			{intPtr(19), 0},
			{intPtr(0), 0},
			{nil, 0},
		}
		for _, tt := range tests {
			journal := scopedJournal("Bands Journal", "", nil, tt.hIndex)
			assert.Equal(t, tt.expected, scorer.ScoreJournal(journal, nil))
		}
	})

	t.Run("scope length bands", func(t *testing.T) {
		tests := []struct {
			scopeLen int
			expected int
		}{
			{0, 0},
			{1, 5},
			{100, 5},
			{101, 10},
			{200, 10},
			{201, 15},
			{500, 15},
		}
		for _, tt := range tests {
			journal := scopedJournal("Scope Journal", strings.Repeat("x", tt.scopeLen), nil, nil)
			assert.Equal(t, tt.expected, scorer.ScoreJournal(journal, nil), "scope length %d", tt.scopeLen)
		}
	})

	t.Run("quartile bands", func(t *testing.T) {
		tests := []struct {
			quartile *domain.Quartile
			expected int
		}{
			{quartilePtr(domain.QuartileQ1), 20},
			{quartilePtr(domain.QuartileQ2), 15},
			{quartilePtr(domain.QuartileQ3), 10},
			{quartilePtr(domain.QuartileQ4), 5},
			{nil, 0},
		}
		for _, tt := range tests {
			journal := scopedJournal("Quartile Journal", "", tt.quartile, nil)
			assert.Equal(t, tt.expected, scorer.ScoreJournal(journal, nil))
		}
	})
}
