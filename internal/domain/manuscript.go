package domain

import (
	"regexp"
	"strings"
)

// whitespaceRegex matches one or more whitespace characters (spaces, tabs, newlines).
var whitespaceRegex = regexp.MustCompile(`\s+`)

// Manuscript is the ephemeral input to a recommendation request. The
// recommender never persists manuscripts on their own; the title and abstract
// are stored alongside the recommendation they produced.
type Manuscript struct {
	// Title is the manuscript title.
	Title string

	// Abstract is the manuscript abstract. May be empty; the extractor then
	// works from the title alone.
	Abstract string
}

// Text returns the lowercase, whitespace-collapsed concatenation of title and
// abstract. This is the text the keyword extractor scans.
func (m Manuscript) Text() string {
	combined := strings.TrimSpace(m.Title + " " + m.Abstract)
	if combined == "" {
		return ""
	}
	return whitespaceRegex.ReplaceAllString(strings.ToLower(combined), " ")
}

// IsEmpty returns true if both title and abstract are blank.
func (m Manuscript) IsEmpty() bool {
	return strings.TrimSpace(m.Title) == "" && strings.TrimSpace(m.Abstract) == ""
}
