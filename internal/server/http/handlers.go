package httpserver

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/helixir/journal-recommender-service/internal/domain"
	"github.com/helixir/journal-recommender-service/internal/recommend"
	"github.com/helixir/journal-recommender-service/internal/repository"
)

// Pagination and validation constants.
const (
	defaultPageSize    = 50
	maxPageSize        = 100
	maxRequestBodySize = 1 << 20 // 1 MB limit for request bodies
)

// recommendRequest is the JSON request body for requesting a recommendation.
type recommendRequest struct {
	Title    string            `json:"title" validate:"required,max=2000"`
	Abstract string            `json:"abstract" validate:"required,max=50000"`
	Limit    int               `json:"limit" validate:"omitempty,min=1,max=50"`
	Filters  *recommendFilters `json:"filters"`
}

// recommendFilters optionally narrows the journals considered for scoring.
type recommendFilters struct {
	Quartiles  []string `json:"quartiles" validate:"omitempty,dive,oneof=Q1 Q2 Q3 Q4"`
	OpenAccess *bool    `json:"open_access"`
	SJRMin     *float64 `json:"sjr_min"`
	SJRMax     *float64 `json:"sjr_max"`
	HIndexMin  *int     `json:"h_index_min"`
	HIndexMax  *int     `json:"h_index_max"`
	Publishers []string `json:"publishers"`
	Area       string   `json:"area"`
}

// toOptions converts the request's limit and filters to service options.
func (r *recommendRequest) toOptions() recommend.Options {
	opts := recommend.Options{TopN: r.Limit}
	if r.Filters == nil {
		return opts
	}

	for _, q := range r.Filters.Quartiles {
		opts.Filter.Quartiles = append(opts.Filter.Quartiles, domain.Quartile(q))
	}
	opts.Filter.OpenAccess = r.Filters.OpenAccess
	opts.Filter.SJRMin = r.Filters.SJRMin
	opts.Filter.SJRMax = r.Filters.SJRMax
	opts.Filter.HIndexMin = r.Filters.HIndexMin
	opts.Filter.HIndexMax = r.Filters.HIndexMax
	opts.Filter.Publishers = r.Filters.Publishers
	opts.Filter.Area = r.Filters.Area
	return opts
}

// createRecommendation handles POST /recommendations.
// It runs the full pipeline and returns the persisted recommendation.
func (s *Server) createRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var req recommendRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON request body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Abstract = strings.TrimSpace(req.Abstract)
	if err := s.validate.Struct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	rec, err := s.service.Recommend(ctx, domain.Manuscript{
		Title:    req.Title,
		Abstract: req.Abstract,
	}, req.toOptions())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, domainRecommendationToResponse(rec))
}

// getRecommendation handles GET /recommendations/{recommendationID}.
func (s *Server) getRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recID, ok := parseUUID(w, chi.URLParam(r, "recommendationID"), "recommendation_id")
	if !ok {
		return
	}

	rec, err := s.service.GetRecommendation(ctx, recID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domainRecommendationToResponse(rec))
}

// listRecommendations handles GET /recommendations.
// It returns a paginated list of recommendation summaries, most recent first.
func (s *Server) listRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, offset := parsePaginationParams(r)
	filter := repository.RecommendationFilter{
		Limit:  limit,
		Offset: offset,
	}

	// Optional date filters.
	if createdAfter := r.URL.Query().Get("created_after"); createdAfter != "" {
		t, parseErr := time.Parse(time.RFC3339, createdAfter)
		if parseErr != nil {
			writeError(w, http.StatusBadRequest, "invalid created_after format: expected RFC3339")
			return
		}
		filter.CreatedAfter = &t
	}
	if createdBefore := r.URL.Query().Get("created_before"); createdBefore != "" {
		t, parseErr := time.Parse(time.RFC3339, createdBefore)
		if parseErr != nil {
			writeError(w, http.StatusBadRequest, "invalid created_before format: expected RFC3339")
			return
		}
		filter.CreatedBefore = &t
	}

	recs, totalCount, err := s.service.ListRecommendations(ctx, filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	summaries := make([]recommendationSummaryResponse, len(recs))
	for i, rec := range recs {
		summaries[i] = domainRecommendationToSummary(rec)
	}

	writeJSON(w, http.StatusOK, listRecommendationsResponse{
		Recommendations: summaries,
		NextPageToken:   encodeHTTPPageToken(offset, limit, int(totalCount)),
		TotalCount:      int(totalCount),
	})
}

// writeValidationError maps validator errors to a 400 response with a
// field-level message.
func writeValidationError(w http.ResponseWriter, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s is required", field))
		case "max":
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s is invalid", field))
		}
		return
	}
	writeError(w, http.StatusBadRequest, "invalid request")
}

// writeDomainError maps domain errors to appropriate HTTP status codes and
// writes a JSON error response. Internal error details are not leaked to clients.
func writeDomainError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, domain.ErrInvalidInput):
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
		} else {
			writeError(w, http.StatusBadRequest, "invalid input")
		}
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "resource already exists")
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "rate limited")
	case errors.Is(err, domain.ErrServiceUnavailable):
		writeError(w, http.StatusServiceUnavailable, "service unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseUUID parses a UUID from a string, writing a 400 error response if invalid.
// Returns the parsed UUID and true on success, or uuid.Nil and false on failure.
// The parse error details are not included to avoid echoing potentially malicious input.
func parseUUID(w http.ResponseWriter, s, fieldName string) (uuid.UUID, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s must be a valid UUID", fieldName))
		return uuid.Nil, false
	}
	return id, true
}

// parsePaginationParams extracts page_size and page_token from query parameters.
// It applies default and maximum bounds to the page size.
func parsePaginationParams(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	if pageSizeStr := r.URL.Query().Get("page_size"); pageSizeStr != "" {
		if parsed, err := strconv.Atoi(pageSizeStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	if pageToken := r.URL.Query().Get("page_token"); pageToken != "" {
		decoded, err := base64.StdEncoding.DecodeString(pageToken)
		if err == nil {
			if parsed, parseErr := strconv.Atoi(string(decoded)); parseErr == nil && parsed > 0 {
				offset = parsed
			}
		}
	}

	return limit, offset
}

// encodeHTTPPageToken encodes the next offset as a base64 page token.
// Returns an empty string if there are no more results.
func encodeHTTPPageToken(offset, limit, totalCount int) string {
	nextOffset := offset + limit
	if nextOffset < totalCount {
		return base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(nextOffset)))
	}
	return ""
}
