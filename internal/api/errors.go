package api

import (
	"errors"
	"net/http"

	"github.com/hrsys/candidate-api/internal/api/shared"
	"github.com/hrsys/candidate-api/internal/domain"
	"github.com/hrsys/candidate-api/internal/service"
	"github.com/hrsys/candidate-api/internal/store"
)

// HandleServiceError writes the HTTP response for an error returned by
// the candidate service. Field validation failures become a 400 with
// per-field reasons; transition violations a 400 with the violation
// message; not-found a 404. Anything else is a sanitized 500 with the
// details kept in the logs.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErrors domain.FieldErrors
	if errors.As(err, &fieldErrors) {
		shared.RespondWithValidationErrors(w, r, fieldErrors)
		return
	}

	var transitionErr *domain.TransitionError
	if errors.As(err, &transitionErr) {
		shared.RespondWithError(w, r, http.StatusBadRequest, transitionErr.Error())
		return
	}

	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}

// MapErrorToStatusCode maps internal errors to HTTP status codes so
// internal error types never leak to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrCandidateNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, service.ErrResumeNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err that does
// not expose internal details.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"

	case errors.Is(err, store.ErrCandidateNotFound),
		errors.Is(err, store.ErrNotFound):
		return "Candidate not found"

	case errors.Is(err, service.ErrResumeNotFound):
		return "Resume not found"

	case errors.Is(err, domain.ErrUnauthorized):
		return "permission denied"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidTransition):
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}
