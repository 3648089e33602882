package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/helixir/journal-recommender-service/internal/domain"
	"github.com/helixir/journal-recommender-service/internal/observability"
	"github.com/helixir/journal-recommender-service/internal/recommend"
	"github.com/helixir/journal-recommender-service/internal/repository"
)

func TestCorrelationIDMiddleware_PropagatesHeader(t *testing.T) {
	var gotID string
	handler := correlationIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = observability.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-ID", "client-supplied-id")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "client-supplied-id", gotID)
	assert.Equal(t, "client-supplied-id", w.Header().Get("X-Correlation-ID"))
}

func TestCorrelationIDMiddleware_GeneratesID(t *testing.T) {
	var gotID string
	handler := correlationIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = observability.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.NotEmpty(t, gotID)
	assert.Equal(t, gotID, w.Header().Get("X-Correlation-ID"))
}

func TestJSONContentTypeMiddleware(t *testing.T) {
	handler := jsonContentTypeMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestRateLimitMiddleware_RejectsOverLimit(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(1), 2)
	handler := rateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
}

func TestRateLimitMiddleware_OnRecommendRoute(t *testing.T) {
	svc := &fakeRecommendationService{
		recommendFn: func(ctx context.Context, m domain.Manuscript, opts recommend.Options) (*domain.Recommendation, error) {
			return testRecommendation(m.Title), nil
		},
	}
	srv := newTestServer(svc, &fakeJournalRepository{})
	srv.limiter = rate.NewLimiter(rate.Limit(0.001), 1)
	srv.router = srv.buildRouter()

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(`{"title": "A Title", "abstract": "An abstract."}`))
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusCreated, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	// Read routes are not rate limited.
	svc.listFn = func(ctx context.Context, filter repository.RecommendationFilter) ([]*domain.Recommendation, int64, error) {
		return nil, 0, nil
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
