package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Note: prometheus/promauto registers metrics globally, so we need to use
// unique namespaces per test to avoid registration conflicts.

func TestNewMetrics(t *testing.T) {
	// Use unique namespace to avoid conflicts with other tests
	m := NewMetrics("test_journal_recommender_new")

	assert.NotNil(t, m.RecommendationsRequested)
	assert.NotNil(t, m.RecommendationsCompleted)
	assert.NotNil(t, m.RecommendationsFailed)
	assert.NotNil(t, m.RecommendationDuration)
	assert.NotNil(t, m.KeywordsExtracted)
	assert.NotNil(t, m.KeywordsPerManuscript)
	assert.NotNil(t, m.JournalsScored)
	assert.NotNil(t, m.JournalsPerRequest)
	assert.NotNil(t, m.TopScoreDistribution)
	assert.NotNil(t, m.JournalsImported)
	assert.NotNil(t, m.ImportsTotal)
	assert.NotNil(t, m.EventsPublished)
	assert.NotNil(t, m.EventsFailed)
}

func TestRecordRecommendationRequested(t *testing.T) {
	m := NewMetrics("test_recommendation_requested")

	initial := testutil.ToFloat64(m.RecommendationsRequested)
	m.RecordRecommendationRequested()
	assert.Equal(t, initial+1, testutil.ToFloat64(m.RecommendationsRequested))
}

func TestRecordRecommendationCompleted(t *testing.T) {
	m := NewMetrics("test_recommendation_completed")

	initial := testutil.ToFloat64(m.RecommendationsCompleted)
	m.RecordRecommendationCompleted(0.05, 85)
	assert.Equal(t, initial+1, testutil.ToFloat64(m.RecommendationsCompleted))

	// Check histogram
	histCount, err := getHistogramSampleCount(m.RecommendationDuration)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), histCount)

	scoreCount, err := getHistogramSampleCount(m.TopScoreDistribution)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), scoreCount)
}

func TestRecordRecommendationFailed(t *testing.T) {
	m := NewMetrics("test_recommendation_failed")

	initial := testutil.ToFloat64(m.RecommendationsFailed)
	m.RecordRecommendationFailed(0.01)
	assert.Equal(t, initial+1, testutil.ToFloat64(m.RecommendationsFailed))
}

func TestRecordKeywordsExtracted(t *testing.T) {
	m := NewMetrics("test_keywords_extracted")

	initial := testutil.ToFloat64(m.KeywordsExtracted)
	m.RecordKeywordsExtracted(5)
	assert.Equal(t, initial+5, testutil.ToFloat64(m.KeywordsExtracted))

	histCount, err := getHistogramSampleCount(m.KeywordsPerManuscript)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), histCount)
}

func TestRecordJournalsScored(t *testing.T) {
	m := NewMetrics("test_journals_scored")

	initial := testutil.ToFloat64(m.JournalsScored)
	m.RecordJournalsScored(300)
	assert.Equal(t, initial+300, testutil.ToFloat64(m.JournalsScored))
}

func TestRecordImportCompleted(t *testing.T) {
	m := NewMetrics("test_import_completed")

	m.RecordImportCompleted(1500, 3, 42.0)
	assert.Equal(t, float64(1500), testutil.ToFloat64(m.JournalsImported))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.JournalsImportSkipped))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ImportsTotal.WithLabelValues("completed")))
}

func TestRecordImportFailed(t *testing.T) {
	m := NewMetrics("test_import_failed")

	m.RecordImportFailed(5.0)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ImportsTotal.WithLabelValues("failed")))
}

func TestRecordEventPublished(t *testing.T) {
	m := NewMetrics("test_event_published")

	m.RecordEventPublished("recommendation.created")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.EventsPublished.WithLabelValues("recommendation.created")))
}

func TestRecordEventFailed(t *testing.T) {
	m := NewMetrics("test_event_failed")

	m.RecordEventFailed("journals.imported")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.EventsFailed.WithLabelValues("journals.imported")))
}

// Helper to get histogram sample count
func getHistogramSampleCount(h prometheus.Histogram) (uint64, error) {
	ch := make(chan prometheus.Metric, 1)
	h.Collect(ch)
	close(ch)

	var m prometheus.Metric
	for m = range ch {
		break
	}

	var dto = &dto.Metric{}
	if err := m.Write(dto); err != nil {
		return 0, err
	}

	return dto.Histogram.GetSampleCount(), nil
}
