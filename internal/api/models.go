package api

import (
	"time"

	"github.com/hrsys/candidate-api/internal/domain"
)

// dateOnlyFormat is the wire format for the date_of_birth field.
const dateOnlyFormat = "2006-01-02"

// UpdateStatusRequest is the body of the admin status update endpoint.
type UpdateStatusRequest struct {
	Status     string `json:"status"      validate:"required"`
	Feedback   string `json:"feedback"    validate:"required,max=1000"`
	AdminName  string `json:"admin_name"  validate:"required"`
	AdminEmail string `json:"admin_email" validate:"required,email"`
}

// CandidateResponse is the admin projection of a candidate.
type CandidateResponse struct {
	ID                   string                  `json:"id"`
	FullName             string                  `json:"full_name"`
	Email                string                  `json:"email"`
	Phone                string                  `json:"phone"`
	DateOfBirth          string                  `json:"date_of_birth"`
	Age                  int                     `json:"age"`
	YearsOfExperience    int                     `json:"years_of_experience"`
	Department           string                  `json:"department"`
	DepartmentDisplay    string                  `json:"department_display"`
	CurrentStatus        string                  `json:"current_status"`
	CurrentStatusDisplay string                  `json:"current_status_display"`
	CreatedAt            time.Time               `json:"created_at"`
	UpdatedAt            time.Time               `json:"updated_at"`
	StatusHistory        []StatusHistoryResponse `json:"status_history,omitempty"`
}

// PublicStatusResponse is the projection returned by the public status
// lookup. It omits email, date of birth, and the resume reference.
type PublicStatusResponse struct {
	ID                   string                  `json:"id"`
	FullName             string                  `json:"full_name"`
	Phone                string                  `json:"phone"`
	Department           string                  `json:"department"`
	YearsOfExperience    int                     `json:"years_of_experience"`
	CurrentStatus        string                  `json:"current_status"`
	CurrentStatusDisplay string                  `json:"current_status_display"`
	CreatedAt            time.Time               `json:"created_at"`
	StatusHistory        []StatusHistoryResponse `json:"status_history"`
}

// StatusHistoryResponse is the wire form of one audit row.
type StatusHistoryResponse struct {
	ID               string    `json:"id"`
	CandidateID      string    `json:"candidate_id"`
	PreviousStatus   *string   `json:"previous_status"`
	NewStatus        string    `json:"new_status"`
	NewStatusDisplay string    `json:"new_status_display"`
	Feedback         string    `json:"feedback"`
	AdminName        string    `json:"admin_name"`
	AdminEmail       string    `json:"admin_email"`
	CreatedAt        time.Time `json:"created_at"`
}

// CandidateListResponse wraps an admin candidate listing.
type CandidateListResponse struct {
	Count   int                 `json:"count"`
	Results []CandidateResponse `json:"results"`
}

// HistoryListResponse wraps an admin status-history listing.
type HistoryListResponse struct {
	Count   int                     `json:"count"`
	Results []StatusHistoryResponse `json:"results"`
}

// ResumeURLResponse is the body of the resume URL endpoint.
type ResumeURLResponse struct {
	ID          string `json:"id"`
	DownloadURL string `json:"download_url"`
}

// candidateToResponse converts a domain.Candidate to its admin wire form.
func candidateToResponse(c *domain.Candidate, history []*domain.StatusHistory) CandidateResponse {
	resp := CandidateResponse{
		ID:                   c.ID.String(),
		FullName:             c.FullName,
		Email:                c.Email,
		Phone:                c.Phone,
		DateOfBirth:          c.DateOfBirth.Format(dateOnlyFormat),
		Age:                  c.Age(),
		YearsOfExperience:    c.YearsOfExperience,
		Department:           string(c.Department),
		DepartmentDisplay:    c.Department.Display(),
		CurrentStatus:        string(c.CurrentStatus),
		CurrentStatusDisplay: c.CurrentStatus.Display(),
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
	if history != nil {
		resp.StatusHistory = historyToResponses(history)
	}
	return resp
}

// candidateToPublicStatus converts a candidate and its history to the
// public status projection.
func candidateToPublicStatus(c *domain.Candidate, history []*domain.StatusHistory) PublicStatusResponse {
	return PublicStatusResponse{
		ID:                   c.ID.String(),
		FullName:             c.FullName,
		Phone:                c.Phone,
		Department:           c.Department.Display(),
		YearsOfExperience:    c.YearsOfExperience,
		CurrentStatus:        string(c.CurrentStatus),
		CurrentStatusDisplay: c.CurrentStatus.Display(),
		CreatedAt:            c.CreatedAt,
		StatusHistory:        historyToResponses(history),
	}
}

// historyToResponses converts audit rows to their wire form. The result
// is never nil so empty histories serialize as [].
func historyToResponses(entries []*domain.StatusHistory) []StatusHistoryResponse {
	out := make([]StatusHistoryResponse, 0, len(entries))
	for _, e := range entries {
		resp := StatusHistoryResponse{
			ID:               e.ID.String(),
			CandidateID:      e.CandidateID.String(),
			NewStatus:        string(e.NewStatus),
			NewStatusDisplay: e.NewStatus.Display(),
			Feedback:         e.Feedback,
			AdminName:        e.AdminName,
			AdminEmail:       e.AdminEmail,
			CreatedAt:        e.CreatedAt,
		}
		if e.PreviousStatus != nil {
			prev := string(*e.PreviousStatus)
			resp.PreviousStatus = &prev
		}
		out = append(out, resp)
	}
	return out
}
