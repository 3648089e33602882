package recommend

import (
	"sort"

	"github.com/helixir/journal-recommender-service/internal/domain"
)

// DefaultTopN is the number of matches returned when the caller does not
// specify a limit.
const DefaultTopN = 10

// RankTop sorts the scored matches by score descending, truncates to the top
// n, and assigns 1-based ranks.
//
// The sort is stable: matches with equal scores keep their input order. There
// is deliberately no secondary tie-break key. When n <= 0, DefaultTopN is
// used. The input slice is not modified.
func RankTop(matches []domain.ScoredMatch, n int) []domain.ScoredMatch {
	if n <= 0 {
		n = DefaultTopN
	}

	ranked := make([]domain.ScoredMatch, len(matches))
	copy(ranked, matches)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
