package httpserver

import (
	"time"

	"github.com/helixir/journal-recommender-service/internal/domain"
)

// Response types for JSON serialization.

type journalMetricsResponse struct {
	SJR                  *float64 `json:"sjr,omitempty"`
	SJRQuartile          *string  `json:"sjr_quartile,omitempty"`
	HIndex               *int     `json:"h_index,omitempty"`
	TotalDocs            *int     `json:"total_docs,omitempty"`
	TotalDocs3Years      *int     `json:"total_docs_3years,omitempty"`
	CitationsPerDoc      *float64 `json:"citations_per_doc,omitempty"`
	TotalCitations3Years *int     `json:"total_citations_3years,omitempty"`
}

type journalCategoryResponse struct {
	Name     string  `json:"name"`
	Quartile *string `json:"quartile,omitempty"`
}

type journalResponse struct {
	ID          string                    `json:"id"`
	SourceID    int64                     `json:"source_id"`
	Title       string                    `json:"title"`
	Publisher   string                    `json:"publisher,omitempty"`
	Country     string                    `json:"country,omitempty"`
	OpenAccess  bool                      `json:"open_access"`
	Coverage    string                    `json:"coverage,omitempty"`
	ScimagoRank *int                      `json:"scimago_rank,omitempty"`
	Scope       string                    `json:"scope,omitempty"`
	Metrics     journalMetricsResponse    `json:"metrics"`
	ISSNs       []string                  `json:"issns,omitempty"`
	Areas       []string                  `json:"areas,omitempty"`
	Categories  []journalCategoryResponse `json:"categories,omitempty"`
}

type listJournalsResponse struct {
	Journals      []journalResponse `json:"journals"`
	NextPageToken string            `json:"next_page_token,omitempty"`
	TotalCount    int               `json:"total_count"`
}

type scoredMatchResponse struct {
	Rank    int             `json:"rank"`
	Score   int             `json:"score"`
	Journal journalResponse `json:"journal"`
}

type recommendationResponse struct {
	RecommendationID   string                `json:"recommendation_id"`
	ManuscriptTitle    string                `json:"manuscript_title"`
	ManuscriptAbstract string                `json:"manuscript_abstract,omitempty"`
	Keywords           []string              `json:"keywords"`
	Matches            []scoredMatchResponse `json:"matches"`
	CreatedAt          time.Time             `json:"created_at"`
}

type recommendationSummaryResponse struct {
	RecommendationID string    `json:"recommendation_id"`
	ManuscriptTitle  string    `json:"manuscript_title"`
	Keywords         []string  `json:"keywords"`
	CreatedAt        time.Time `json:"created_at"`
}

type listRecommendationsResponse struct {
	Recommendations []recommendationSummaryResponse `json:"recommendations"`
	NextPageToken   string                          `json:"next_page_token,omitempty"`
	TotalCount      int                             `json:"total_count"`
}

// Converter functions

func domainJournalToResponse(j *domain.Journal) journalResponse {
	resp := journalResponse{
		ID:          j.ID.String(),
		SourceID:    j.SourceID,
		Title:       j.Title,
		Publisher:   j.Publisher,
		Country:     j.Country,
		OpenAccess:  j.OpenAccess,
		Coverage:    j.Coverage,
		ScimagoRank: j.ScimagoRank,
		Scope:       j.Scope(),
		ISSNs:       j.ISSNs,
		Areas:       j.Areas,
		Metrics: journalMetricsResponse{
			SJR:                  j.Metrics.SJR,
			HIndex:               j.Metrics.HIndex,
			TotalDocs:            j.Metrics.TotalDocs,
			TotalDocs3Years:      j.Metrics.TotalDocs3Years,
			CitationsPerDoc:      j.Metrics.CitationsPerDoc,
			TotalCitations3Years: j.Metrics.TotalCitations3Years,
		},
	}
	if j.Metrics.SJRQuartile != nil {
		q := string(*j.Metrics.SJRQuartile)
		resp.Metrics.SJRQuartile = &q
	}
	for _, c := range j.Categories {
		cat := journalCategoryResponse{Name: c.Name}
		if c.Quartile != nil {
			q := string(*c.Quartile)
			cat.Quartile = &q
		}
		resp.Categories = append(resp.Categories, cat)
	}
	return resp
}

func domainRecommendationToResponse(rec *domain.Recommendation) recommendationResponse {
	matches := make([]scoredMatchResponse, 0, len(rec.Matches))
	for _, m := range rec.Matches {
		matches = append(matches, scoredMatchResponse{
			Rank:    m.Rank,
			Score:   m.Score,
			Journal: domainJournalToResponse(m.Journal),
		})
	}

	keywords := rec.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	return recommendationResponse{
		RecommendationID:   rec.ID.String(),
		ManuscriptTitle:    rec.ManuscriptTitle,
		ManuscriptAbstract: rec.ManuscriptAbstract,
		Keywords:           keywords,
		Matches:            matches,
		CreatedAt:          rec.CreatedAt,
	}
}

func domainRecommendationToSummary(rec *domain.Recommendation) recommendationSummaryResponse {
	keywords := rec.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return recommendationSummaryResponse{
		RecommendationID: rec.ID.String(),
		ManuscriptTitle:  rec.ManuscriptTitle,
		Keywords:         keywords,
		CreatedAt:        rec.CreatedAt,
	}
}
