package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/helixir/journal-recommender-service/internal/domain"
	"github.com/helixir/journal-recommender-service/internal/events"
	"github.com/helixir/journal-recommender-service/internal/observability"
	"github.com/helixir/journal-recommender-service/internal/repository"
)

// scoringPageSize is the journal page size used when scoring the registry.
// Scoring walks every journal, so pages are as large as the repository allows.
const scoringPageSize = 1000

// Service runs the full recommendation pipeline: keyword extraction, scoring
// every journal in the registry, ranking, persistence, and event publication.
type Service struct {
	extractor       *Extractor
	scorer          *Scorer
	journals        repository.JournalRepository
	recommendations repository.RecommendationRepository
	publisher       events.Publisher
	metrics         *observability.Metrics
	logger          zerolog.Logger
	topN            int
}

// NewService creates a recommendation Service. When topN <= 0 DefaultTopN is
// used. The publisher may be a no-op; it must not be nil.
func NewService(
	journals repository.JournalRepository,
	recommendations repository.RecommendationRepository,
	publisher events.Publisher,
	metrics *observability.Metrics,
	logger zerolog.Logger,
	topN int,
) *Service {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Service{
		extractor:       NewExtractor(),
		scorer:          NewScorer(),
		journals:        journals,
		recommendations: recommendations,
		publisher:       publisher,
		metrics:         metrics,
		logger:          logger.With().Str("component", "recommend_service").Logger(),
		topN:            topN,
	}
}

// Options adjust a single recommend request. The zero value uses the
// service defaults and considers the whole registry.
type Options struct {
	// TopN overrides the service's configured top-N when > 0.
	TopN int

	// Filter restricts the journals considered for scoring. Pagination
	// fields are ignored; scoring always walks every matching journal.
	Filter repository.JournalFilter
}

// Recommend computes and persists a recommendation for the manuscript.
//
// An empty manuscript is not an error: it yields zero keywords, so every
// journal scores on its metric bonuses alone. The returned recommendation is
// already stored; event publication is best-effort and never fails the call.
func (s *Service) Recommend(ctx context.Context, m domain.Manuscript, opts Options) (*domain.Recommendation, error) {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.RecordRecommendationRequested()
	}

	rec, scored, err := s.compute(ctx, m, opts)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordRecommendationFailed(time.Since(start).Seconds())
		}
		return nil, err
	}

	if err := s.recommendations.Create(ctx, rec); err != nil {
		if s.metrics != nil {
			s.metrics.RecordRecommendationFailed(time.Since(start).Seconds())
		}
		return nil, fmt.Errorf("failed to store recommendation: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordRecommendationCompleted(time.Since(start).Seconds(), rec.TopScore())
	}

	logger := observability.WithRecommendationContext(s.logger, rec.ID.String(), len(rec.Keywords))
	logger.Info().
		Int("journals_scored", scored).
		Int("matches_returned", len(rec.Matches)).
		Int("top_score", rec.TopScore()).
		Dur("duration", time.Since(start)).
		Msg("recommendation completed")

	s.publishCreated(ctx, rec, scored)

	return rec, nil
}

// compute runs extraction, scoring, and ranking without persisting anything.
func (s *Service) compute(ctx context.Context, m domain.Manuscript, opts Options) (*domain.Recommendation, int, error) {
	keywords := s.extractor.ExtractKeywords(m)
	if s.metrics != nil {
		s.metrics.RecordKeywordsExtracted(len(keywords))
	}

	matches, err := s.scoreAll(ctx, keywords, opts.Filter)
	if err != nil {
		return nil, 0, err
	}
	if s.metrics != nil {
		s.metrics.RecordJournalsScored(len(matches))
	}

	topN := s.topN
	if opts.TopN > 0 {
		topN = opts.TopN
	}

	ranked := RankTop(matches, topN)
	return domain.NewRecommendation(m, keywords, ranked), len(matches), nil
}

// scoreAll pages through the journal registry and scores every journal
// matching the filter. Page order is the repository's deterministic order,
// which anchors the ranker's tie-break behavior.
func (s *Service) scoreAll(ctx context.Context, keywords []string, filter repository.JournalFilter) ([]domain.ScoredMatch, error) {
	matches := make([]domain.ScoredMatch, 0, scoringPageSize)
	filter.Limit = scoringPageSize
	filter.Offset = 0

	for {
		journals, total, err := s.journals.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list journals for scoring: %w", err)
		}

		for _, journal := range journals {
			matches = append(matches, domain.ScoredMatch{
				Journal: journal,
				Score:   s.scorer.ScoreJournal(journal, keywords),
			})
		}

		filter.Offset += len(journals)
		if len(journals) == 0 || int64(filter.Offset) >= total {
			return matches, nil
		}
	}
}

// publishCreated emits the recommendation.created event. Failures are logged,
// never returned.
func (s *Service) publishCreated(ctx context.Context, rec *domain.Recommendation, scored int) {
	event, err := domain.NewEvent(
		domain.EventTypeRecommendationCreated,
		rec.ID.String(),
		domain.AggregateTypeRecommendation,
		domain.RecommendationCreatedPayload{
			RecommendationID: rec.ID,
			ManuscriptTitle:  rec.ManuscriptTitle,
			Keywords:         rec.Keywords,
			JournalsScored:   scored,
			MatchesReturned:  len(rec.Matches),
			TopScore:         rec.TopScore(),
		},
	)
	if err != nil {
		s.logger.Error().Err(err).
			Str("recommendation_id", rec.ID.String()).
			Msg("failed to build recommendation.created event")
		return
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error().Err(err).
			Str("recommendation_id", rec.ID.String()).
			Msg("failed to publish recommendation.created event")
	}
}

// GetRecommendation retrieves a stored recommendation with its ranked matches.
func (s *Service) GetRecommendation(ctx context.Context, id uuid.UUID) (*domain.Recommendation, error) {
	return s.recommendations.GetByID(ctx, id)
}

// ListRecommendations retrieves stored recommendation summaries.
func (s *Service) ListRecommendations(ctx context.Context, filter repository.RecommendationFilter) ([]*domain.Recommendation, int64, error) {
	return s.recommendations.List(ctx, filter)
}
