package recommend

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/journal-recommender-service/internal/domain"
)

func TestExtractor_ExtractKeywords(t *testing.T) {
	extractor := NewExtractor()

	tests := []struct {
		name     string
		title    string
		abstract string
		expected []string
	}{
		{
			name:     "empty manuscript yields empty keyword set",
			title:    "",
			abstract: "",
			expected: []string{},
		},
		{
			name:     "whitespace-only manuscript yields empty keyword set",
			title:    "   ",
			abstract: "\t\n",
			expected: []string{},
		},
		{
			name:     "dictionary matches come first in scan order",
			title:    "Quantum Gravity and Holography",
			abstract: "We study gravitational fields and quantum particles",
			expected: []string{
				"quantum", "particle", "gravity",
				"holography", "gravitational", "fields", "particles",
			},
		},
		{
			name:     "dictionary matching ignores word boundaries",
			title:    "Cellular signaling pathways",
			abstract: "",
			expected: []string{"cell", "cellular", "signaling", "pathways"},
		},
		{
			name:     "stop words and short tokens are dropped from free text",
			title:    "Results about novel catalysis methods",
			abstract: "We present significant findings through various analysis",
			expected: []string{"catalysis"},
		},
		{
			name:     "title only",
			title:    "Deep Learning for Computer Vision",
			abstract: "",
			expected: []string{"deep learning", "computer vision", "learning", "computer", "vision"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractor.ExtractKeywords(domain.Manuscript{Title: tt.title, Abstract: tt.abstract})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractor_ExtractKeywords_Determinism(t *testing.T) {
	extractor := NewExtractor()
	m := domain.Manuscript{
		Title:    "Machine Learning in Genomics",
		Abstract: "We apply neural network models to genome assembly and gene expression profiling",
	}

	first := extractor.ExtractKeywords(m)
	second := extractor.ExtractKeywords(m)
	assert.Equal(t, first, second)
}

func TestExtractor_ExtractKeywords_Bounds(t *testing.T) {
	extractor := NewExtractor()

	t.Run("free-text tokens are capped", func(t *testing.T) {
		var words []string
		for i := 0; i < maxFreeTextTokens+5; i++ {
			words = append(words, fmt.Sprintf("neologism%02d", i))
		}
		m := domain.Manuscript{Abstract: strings.Join(words, " ")}

		got := extractor.ExtractKeywords(m)
		require.Len(t, got, maxFreeTextTokens)
		assert.Equal(t, "neologism00", got[0])
		assert.Equal(t, fmt.Sprintf("neologism%02d", maxFreeTextTokens-1), got[maxFreeTextTokens-1])
	})

	t.Run("total keyword set is capped", func(t *testing.T) {
		// Dense text hitting many dictionary terms plus long free-text tokens.
		abstract := "quantum particle photon relativity gravity cosmology astrophysics " +
			"thermodynamics superconductivity plasma optics semiconductor magnetism " +
			"topology algebra geometry probability statistics optimization stochastic " +
			"catalysis polymer spectroscopy molecular biochemistry"
		m := domain.Manuscript{Abstract: abstract}

		got := extractor.ExtractKeywords(m)
		assert.Len(t, got, maxKeywords)
	})

	t.Run("duplicate tokens still consume free-text slots", func(t *testing.T) {
		// Every token duplicates a dictionary match; the union adds nothing new.
		m := domain.Manuscript{Abstract: "quantum cosmology quantum cosmology"}

		got := extractor.ExtractKeywords(m)
		assert.Equal(t, []string{"quantum", "cosmology"}, got)
	})
}
