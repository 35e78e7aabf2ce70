package domain

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Identity the system uses for the history row it writes at
// registration time.
const (
	SystemAdminName  = "System"
	SystemAdminEmail = "admin@hr-system.me"

	// RegistrationFeedback is the fixed feedback text on the initial
	// history row.
	RegistrationFeedback = "Application submitted successfully"

	// MaxFeedbackLength bounds the feedback text on a history row.
	MaxFeedbackLength = 1000
)

// StatusHistory is one immutable audit row recording a single status
// change for a candidate. PreviousStatus is nil only on the row written
// at registration. Rows are append-only and never mutated or deleted.
type StatusHistory struct {
	ID             uuid.UUID          `json:"id"`
	CandidateID    uuid.UUID          `json:"candidate_id"`
	PreviousStatus *ApplicationStatus `json:"previous_status"`
	NewStatus      ApplicationStatus  `json:"new_status"`
	Feedback       string             `json:"feedback"`
	AdminName      string             `json:"admin_name"`
	AdminEmail     string             `json:"admin_email"`
	CreatedAt      time.Time          `json:"created_at"`
}

// NewStatusHistory creates an audit row for a transition from previous
// to newStatus. Pass nil previous for the registration row. Returns
// FieldErrors when the feedback or admin fields are rejected.
func NewStatusHistory(
	candidateID uuid.UUID,
	previous *ApplicationStatus,
	newStatus ApplicationStatus,
	feedback, adminName, adminEmail string,
) (*StatusHistory, error) {
	h := &StatusHistory{
		ID:             uuid.New(),
		CandidateID:    candidateID,
		PreviousStatus: previous,
		NewStatus:      newStatus,
		Feedback:       feedback,
		AdminName:      adminName,
		AdminEmail:     adminEmail,
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// NewRegistrationHistory creates the single history row every candidate
// receives at registration: no previous status, new status submitted,
// and the fixed system identity.
func NewRegistrationHistory(candidateID uuid.UUID) (*StatusHistory, error) {
	return NewStatusHistory(
		candidateID,
		nil,
		StatusSubmitted,
		RegistrationFeedback,
		SystemAdminName,
		SystemAdminEmail,
	)
}

// Validate checks the history row's field values. Returns FieldErrors
// when any field is rejected.
func (h *StatusHistory) Validate() error {
	fe := FieldErrors{}
	if h.ID == uuid.Nil {
		fe.Add("id", "id cannot be empty")
	}
	if h.CandidateID == uuid.Nil {
		fe.Add("candidate_id", "candidate id cannot be empty")
	}
	if h.PreviousStatus != nil && !h.PreviousStatus.IsValid() {
		fe.Add("previous_status", "invalid application status")
	}
	if !h.NewStatus.IsValid() {
		fe.Add("new_status", "invalid application status")
	}
	if h.Feedback == "" {
		fe.Add("feedback", "feedback is required")
	} else if utf8.RuneCountInString(h.Feedback) > MaxFeedbackLength {
		fe.Add("feedback", "feedback cannot exceed 1000 characters")
	}
	if h.AdminName == "" {
		fe.Add("admin_name", "admin name is required")
	}
	if h.AdminEmail == "" {
		fe.Add("admin_email", "admin email is required")
	} else if !validEmail(h.AdminEmail) {
		fe.Add("admin_email", "invalid email format")
	}
	if len(fe) > 0 {
		return fe
	}
	return nil
}
