package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the journal recommender service.
// Metrics are organized by subsystem: recommendations, keywords, scoring,
// imports, and event publishing. All counters and histograms are registered via
// promauto for automatic registration with the default Prometheus registry.
type Metrics struct {
	// RecommendationsRequested counts the total number of recommendation requests received.
	RecommendationsRequested prometheus.Counter

	// RecommendationsCompleted counts the total number of recommendations computed successfully.
	RecommendationsCompleted prometheus.Counter

	// RecommendationsFailed counts the total number of recommendation requests that failed.
	RecommendationsFailed prometheus.Counter

	// RecommendationDuration observes the end-to-end duration of recommendation requests in seconds.
	RecommendationDuration prometheus.Histogram

	// KeywordsExtracted counts the total number of keywords extracted across all requests.
	KeywordsExtracted prometheus.Counter

	// KeywordsPerManuscript observes the distribution of keyword counts per manuscript.
	KeywordsPerManuscript prometheus.Histogram

	// JournalsScored counts the total number of journals scored.
	JournalsScored prometheus.Counter

	// JournalsPerRequest observes the distribution of candidate journal counts per request.
	JournalsPerRequest prometheus.Histogram

	// TopScoreDistribution observes the distribution of the best score per recommendation.
	TopScoreDistribution prometheus.Histogram

	// JournalsImported counts journals written by the bulk importer.
	JournalsImported prometheus.Counter

	// JournalsImportSkipped counts journal records the importer skipped.
	JournalsImportSkipped prometheus.Counter

	// ImportsTotal counts import runs by outcome label ("completed", "failed").
	ImportsTotal *prometheus.CounterVec

	// ImportDuration observes the duration of import runs in seconds.
	ImportDuration prometheus.Histogram

	// EventsPublished counts events published to the broker, labeled by event type.
	EventsPublished *prometheus.CounterVec

	// EventsFailed counts events that could not be published, labeled by event type.
	EventsFailed *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		// Recommendations
		RecommendationsRequested: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_requested_total",
			Help:      "Total number of recommendation requests received",
		}),
		RecommendationsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_completed_total",
			Help:      "Total number of recommendations computed successfully",
		}),
		RecommendationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_failed_total",
			Help:      "Total number of recommendation requests that failed",
		}),
		RecommendationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendation_duration_seconds",
			Help:      "Duration of recommendation requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		// Keywords
		KeywordsExtracted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keywords_extracted_total",
			Help:      "Total number of keywords extracted",
		}),
		KeywordsPerManuscript: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "keywords_per_manuscript",
			Help:      "Number of keywords extracted per manuscript",
			Buckets:   []float64{0, 1, 2, 5, 10, 15, 20},
		}),

		// Scoring
		JournalsScored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journals_scored_total",
			Help:      "Total number of journals scored",
		}),
		JournalsPerRequest: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "journals_per_request",
			Help:      "Number of candidate journals scored per request",
			Buckets:   []float64{0, 10, 25, 50, 100, 200, 300, 500, 1000},
		}),
		TopScoreDistribution: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "top_score",
			Help:      "Best suitability score per recommendation",
			Buckets:   []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),

		// Imports
		JournalsImported: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journals_imported_total",
			Help:      "Total number of journals written by the importer",
		}),
		JournalsImportSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journals_import_skipped_total",
			Help:      "Total number of journal records skipped by the importer",
		}),
		ImportsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "Total number of import runs by outcome",
		}, []string{"outcome"}),
		ImportDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "import_duration_seconds",
			Help:      "Duration of import runs in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}),

		// Events
		EventsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of events published by event type",
		}, []string{"event_type"}),
		EventsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_failed_total",
			Help:      "Total number of events that failed to publish by event type",
		}, []string{"event_type"}),
	}
}

// RecordRecommendationRequested records that a recommendation request was received.
func (m *Metrics) RecordRecommendationRequested() {
	m.RecommendationsRequested.Inc()
}

// RecordRecommendationCompleted records a successful recommendation.
func (m *Metrics) RecordRecommendationCompleted(durationSeconds float64, topScore int) {
	m.RecommendationsCompleted.Inc()
	m.RecommendationDuration.Observe(durationSeconds)
	m.TopScoreDistribution.Observe(float64(topScore))
}

// RecordRecommendationFailed records a failed recommendation request.
func (m *Metrics) RecordRecommendationFailed(durationSeconds float64) {
	m.RecommendationsFailed.Inc()
	m.RecommendationDuration.Observe(durationSeconds)
}

// RecordKeywordsExtracted records keyword extraction results.
func (m *Metrics) RecordKeywordsExtracted(count int) {
	m.KeywordsExtracted.Add(float64(count))
	m.KeywordsPerManuscript.Observe(float64(count))
}

// RecordJournalsScored records the number of candidate journals scored in one request.
func (m *Metrics) RecordJournalsScored(count int) {
	m.JournalsScored.Add(float64(count))
	m.JournalsPerRequest.Observe(float64(count))
}

// RecordImportCompleted records a finished import run.
func (m *Metrics) RecordImportCompleted(imported, skipped int, durationSeconds float64) {
	m.JournalsImported.Add(float64(imported))
	m.JournalsImportSkipped.Add(float64(skipped))
	m.ImportsTotal.WithLabelValues("completed").Inc()
	m.ImportDuration.Observe(durationSeconds)
}

// RecordImportFailed records a failed import run.
func (m *Metrics) RecordImportFailed(durationSeconds float64) {
	m.ImportsTotal.WithLabelValues("failed").Inc()
	m.ImportDuration.Observe(durationSeconds)
}

// RecordEventPublished records a successfully published event.
func (m *Metrics) RecordEventPublished(eventType string) {
	m.EventsPublished.WithLabelValues(eventType).Inc()
}

// RecordEventFailed records an event that could not be published.
func (m *Metrics) RecordEventFailed(eventType string) {
	m.EventsFailed.WithLabelValues(eventType).Inc()
}
