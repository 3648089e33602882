package recommend

import (
	"strings"

	"github.com/helixir/journal-recommender-service/internal/domain"
)

const (
	// maxKeywords bounds the total keyword set per manuscript.
	maxKeywords = 20

	// maxFreeTextTokens bounds how many free-text tokens survive the filter.
	maxFreeTextTokens = 10

	// minTokenLength is the exclusive lower bound on free-text token length.
	minTokenLength = 5
)

// Extractor derives a bounded, deduplicated keyword set from manuscript text.
//
// Extraction is deterministic: the same title and abstract always produce the
// same keyword sequence. Dictionary matches come first, in dictionary scan
// order, followed by free-text tokens in order of first appearance.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractKeywords returns up to maxKeywords lowercase keywords for the given
// manuscript.
//
// Dictionary terms are matched by substring containment against the combined
// lowercased text, without word-boundary checks, so "cell" also matches
// "cellular". Free-text tokens are whitespace-split words longer than
// minTokenLength characters that are not stop words; at most
// maxFreeTextTokens of them are kept, in first-seen order. The two lists are
// unioned dictionary-first and deduplicated before truncation.
//
// An empty manuscript yields an empty (possibly nil-length) slice, never an
// error. Callers must tolerate zero keywords.
func (e *Extractor) ExtractKeywords(m domain.Manuscript) []string {
	text := m.Text()
	if text == "" {
		return []string{}
	}

	keywords := make([]string, 0, maxKeywords)
	seen := make(map[string]struct{}, maxKeywords)

	appendUnique := func(term string) {
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		keywords = append(keywords, term)
	}

	// Dictionary scan: fixed order, substring containment.
	for _, term := range academicDictionary {
		if strings.Contains(text, term) {
			appendUnique(term)
		}
	}

	// Free-text tokens: length and stop-word filtered, deduplicated among
	// themselves, and capped before the union. A token that duplicates a
	// dictionary match still occupies one of the free-text slots.
	tokenSeen := make(map[string]struct{}, maxFreeTextTokens)
	survivors := 0
	for _, token := range strings.Fields(text) {
		if survivors >= maxFreeTextTokens {
			break
		}
		if len(token) <= minTokenLength {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		if _, ok := tokenSeen[token]; ok {
			continue
		}
		tokenSeen[token] = struct{}{}
		survivors++
		appendUnique(token)
	}

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}
