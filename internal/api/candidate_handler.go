package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hrsys/candidate-api/internal/api/shared"
	"github.com/hrsys/candidate-api/internal/domain"
	"github.com/hrsys/candidate-api/internal/service"
	"github.com/hrsys/candidate-api/internal/store"
)

// maxRegistrationBytes bounds the whole multipart registration request.
// It leaves headroom above the resume size limit so an oversized file is
// rejected with a field error rather than a connection-level failure.
const maxRegistrationBytes = 10 << 20

// CandidateHandler handles candidate-related HTTP requests.
type CandidateHandler struct {
	candidateService service.CandidateService
	validator        *validator.Validate
	logger           *slog.Logger
}

// NewCandidateHandler creates a new CandidateHandler.
func NewCandidateHandler(candidateService service.CandidateService, logger *slog.Logger) *CandidateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CandidateHandler{
		candidateService: candidateService,
		validator:        validator.New(),
		logger:           logger.With(slog.String("component", "candidate_handler")),
	}
}

// Register handles POST /api/candidates requests. The body is
// multipart/form-data with the candidate fields plus a resume file part.
func (h *CandidateHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRegistrationBytes)
	if err := r.ParseMultipartForm(maxRegistrationBytes); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart form data")
		return
	}

	input, fieldErrors := h.registrationInput(r)
	if len(fieldErrors) > 0 {
		shared.RespondWithValidationErrors(w, r, fieldErrors)
		return
	}

	candidate, err := h.candidateService.Register(r.Context(), input)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, candidateToResponse(candidate, nil))
}

// registrationInput assembles a RegistrationInput from the multipart
// form. Parse failures on individual fields are collected as field
// errors; domain-level validation happens in the service.
func (h *CandidateHandler) registrationInput(r *http.Request) (service.RegistrationInput, domain.FieldErrors) {
	fieldErrors := domain.FieldErrors{}

	input := service.RegistrationInput{
		FullName:   r.FormValue("full_name"),
		Email:      r.FormValue("email"),
		Phone:      r.FormValue("phone"),
		Department: domain.Department(r.FormValue("department")),
	}

	if raw := r.FormValue("date_of_birth"); raw != "" {
		dob, err := time.Parse(dateOnlyFormat, raw)
		if err != nil {
			fieldErrors.Add("date_of_birth", "please provide a valid date of birth")
		} else {
			input.DateOfBirth = dob
		}
	}

	if raw := r.FormValue("years_of_experience"); raw != "" {
		years, err := parseYears(raw)
		if err != nil {
			fieldErrors.Add("years_of_experience", "years of experience must be a whole number")
		} else {
			input.YearsOfExperience = years
		}
	}

	file, header, err := r.FormFile("resume")
	if err == nil {
		input.Resume = service.ResumeUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     file,
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		fieldErrors.Add("resume", "resume file could not be read")
	}

	return input, fieldErrors
}

// StatusByEmail handles GET /api/candidates/status?email= requests, the
// public status lookup.
func (h *CandidateHandler) StatusByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		shared.RespondWithValidationErrors(w, r, map[string][]string{
			"email": {"email query parameter is required"},
		})
		return
	}

	candidate, history, err := h.candidateService.StatusByEmail(r.Context(), email)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, candidateToPublicStatus(candidate, history))
}

// List handles GET /api/candidates requests (admin).
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := candidateListParams(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	candidates, err := h.candidateService.ListCandidates(r.Context(), params)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	results := make([]CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, candidateToResponse(c, nil))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, CandidateListResponse{
		Count:   len(results),
		Results: results,
	})
}

// Get handles GET /api/candidates/{id} requests (admin).
func (h *CandidateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	candidate, history, err := h.candidateService.GetCandidate(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, candidateToResponse(candidate, history))
}

// UpdateStatus handles PATCH /api/candidates/{id} requests (admin).
func (h *CandidateHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithValidationErrors(w, r, validationErrorFields(err))
		return
	}

	candidate, err := h.candidateService.UpdateStatus(r.Context(), id, service.StatusUpdateInput{
		NewStatus:  domain.ApplicationStatus(req.Status),
		Feedback:   req.Feedback,
		AdminName:  req.AdminName,
		AdminEmail: req.AdminEmail,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, candidateToResponse(candidate, nil))
}

// ResumeURL handles GET /api/candidates/{id}/resume requests (admin).
func (h *CandidateHandler) ResumeURL(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	downloadURL, err := h.candidateService.ResumeURL(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ResumeURLResponse{
		ID:          id.String(),
		DownloadURL: downloadURL,
	})
}

// candidateListParams builds list params from the request query.
func candidateListParams(r *http.Request) (store.CandidateListParams, error) {
	q := r.URL.Query()
	params := store.CandidateListParams{
		FullName:      q.Get("full_name"),
		NameContains:  q.Get("name_contains"),
		NamePrefix:    q.Get("name_prefix"),
		Email:         q.Get("email"),
		EmailContains: q.Get("email_contains"),
		Limit:         queryInt(q, "limit", 0),
		Offset:        queryInt(q, "offset", 0),
	}

	if raw := q.Get("department"); raw != "" {
		dept := domain.Department(raw)
		if !dept.IsValid() {
			return store.CandidateListParams{}, errors.New("invalid department filter")
		}
		params.Department = dept
	}
	if raw := q.Get("status"); raw != "" {
		status := domain.ApplicationStatus(raw)
		if !status.IsValid() {
			return store.CandidateListParams{}, errors.New("invalid status filter")
		}
		params.Status = status
	}

	field, descending := parseOrdering(q.Get("ordering"))
	switch field {
	case "":
		// Store default applies: created_at descending.
	case store.OrderCandidatesByCreatedAt, store.OrderCandidatesByFullName, store.OrderCandidatesByExperience:
		params.OrderBy = field
		params.Descending = descending
	default:
		return store.CandidateListParams{}, errors.New("invalid ordering field")
	}

	return params, nil
}
