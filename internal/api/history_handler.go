package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/hrsys/candidate-api/internal/api/shared"
	"github.com/hrsys/candidate-api/internal/domain"
	"github.com/hrsys/candidate-api/internal/service"
	"github.com/hrsys/candidate-api/internal/store"
)

// HistoryHandler handles status-history HTTP requests (admin).
type HistoryHandler struct {
	candidateService service.CandidateService
	logger           *slog.Logger
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(candidateService service.CandidateService, logger *slog.Logger) *HistoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryHandler{
		candidateService: candidateService,
		logger:           logger.With(slog.String("component", "history_handler")),
	}
}

// List handles GET /api/status-history requests.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := historyListParams(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.candidateService.ListHistory(r.Context(), params)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	results := historyToResponses(entries)
	shared.RespondWithJSON(w, r, http.StatusOK, HistoryListResponse{
		Count:   len(results),
		Results: results,
	})
}

// historyListParams builds history list params from the request query.
func historyListParams(r *http.Request) (store.HistoryListParams, error) {
	q := r.URL.Query()
	params := store.HistoryListParams{
		AdminNameContains: q.Get("admin_name_contains"),
		CreatedAfter:      queryTime(q, "created_after"),
		CreatedBefore:     queryTime(q, "created_before"),
		Limit:             queryInt(q, "limit", 0),
		Offset:            queryInt(q, "offset", 0),
	}

	if raw := q.Get("candidate"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return store.HistoryListParams{}, errors.New("invalid candidate filter")
		}
		params.CandidateID = id
	}
	if raw := q.Get("status"); raw != "" {
		status := domain.ApplicationStatus(raw)
		if !status.IsValid() {
			return store.HistoryListParams{}, errors.New("invalid status filter")
		}
		params.Status = status
	}

	field, descending := parseOrdering(q.Get("ordering"))
	switch field {
	case "":
		// Store default applies: created_at descending.
	case store.OrderHistoryByCreatedAt, store.OrderHistoryByNewStatus:
		params.OrderBy = field
		params.Descending = descending
	default:
		return store.HistoryListParams{}, errors.New("invalid ordering field")
	}

	return params, nil
}
