// Package observability provides logging and metrics support for the journal
// recommender service.
//
// # Overview
//
// The observability package provides:
//
//   - Structured logging with zerolog
//   - Prometheus metrics for recommendations, scoring, imports, and events
//   - Context helpers for propagating request identifiers
//
// # Logging
//
// Create a logger from configuration:
//
//	cfg := observability.LoggingConfig{
//	    Level:     "info",
//	    Format:    "json",
//	    Output:    "stdout",
//	    AddSource: true,
//	}
//
//	logger := observability.NewLogger(cfg)
//	logger.Info().Str("request_id", reqID).Msg("recommendation started")
//
// Add request context to a logger:
//
//	logger = observability.WithRequestContext(logger, requestID)
//
// # Metrics
//
// Initialize metrics:
//
//	metrics := observability.NewMetrics("journal_recommender")
//
// Record metrics:
//
//	metrics.RecordRecommendationRequested()
//	metrics.RecordKeywordsExtracted(len(keywords))
//	metrics.RecordJournalsScored(len(candidates))
//
// # Context Helpers
//
// Store and retrieve request context:
//
//	ctx = observability.WithRequestID(ctx, requestID)
//	reqID := observability.RequestIDFromContext(ctx)
//
// # Standard Fields
//
// Common fields used across the service:
//
//   - request_id: HTTP request identifier
//   - recommendation_id: Recommendation identifier
//   - journal_id: Journal identifier
//   - source_id: SCImago source identifier
//   - keyword_count: Number of extracted keywords
//
// # Thread Safety
//
// All components are safe for concurrent use from multiple goroutines.
package observability
