package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/helixir/journal-recommender-service/internal/domain"
	"github.com/helixir/journal-recommender-service/internal/repository"
)

// listJournals handles GET /journals.
// It returns a paginated, filtered view of the journal registry.
func (s *Server) listJournals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, offset := parsePaginationParams(r)
	filter := repository.JournalFilter{
		Limit:  limit,
		Offset: offset,
	}

	query := r.URL.Query()

	for _, q := range query["quartile"] {
		filter.Quartiles = append(filter.Quartiles, domain.Quartile(q))
	}

	if openAccess := query.Get("open_access"); openAccess != "" {
		parsed, err := strconv.ParseBool(openAccess)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid open_access value: expected true or false")
			return
		}
		filter.OpenAccess = &parsed
	}

	if sjrMin := query.Get("sjr_min"); sjrMin != "" {
		parsed, err := strconv.ParseFloat(sjrMin, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid sjr_min value")
			return
		}
		filter.SJRMin = &parsed
	}
	if sjrMax := query.Get("sjr_max"); sjrMax != "" {
		parsed, err := strconv.ParseFloat(sjrMax, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid sjr_max value")
			return
		}
		filter.SJRMax = &parsed
	}

	if hIndexMin := query.Get("h_index_min"); hIndexMin != "" {
		parsed, err := strconv.Atoi(hIndexMin)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid h_index_min value")
			return
		}
		filter.HIndexMin = &parsed
	}
	if hIndexMax := query.Get("h_index_max"); hIndexMax != "" {
		parsed, err := strconv.Atoi(hIndexMax)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid h_index_max value")
			return
		}
		filter.HIndexMax = &parsed
	}

	filter.Publishers = query["publisher"]
	filter.Area = query.Get("area")
	filter.TitleContains = query.Get("title")

	journals, totalCount, err := s.journalRepo.List(ctx, filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	responses := make([]journalResponse, len(journals))
	for i, j := range journals {
		responses[i] = domainJournalToResponse(j)
	}

	writeJSON(w, http.StatusOK, listJournalsResponse{
		Journals:      responses,
		NextPageToken: encodeHTTPPageToken(offset, limit, int(totalCount)),
		TotalCount:    int(totalCount),
	})
}

// getJournal handles GET /journals/{journalID}.
func (s *Server) getJournal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	journalID, ok := parseUUID(w, chi.URLParam(r, "journalID"), "journal_id")
	if !ok {
		return
	}

	journal, err := s.journalRepo.GetByID(ctx, journalID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domainJournalToResponse(journal))
}
