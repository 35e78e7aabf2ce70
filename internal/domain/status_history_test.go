package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewRegistrationHistory(t *testing.T) {
	t.Parallel()
	candidateID := uuid.New()

	h, err := NewRegistrationHistory(candidateID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if h.CandidateID != candidateID {
		t.Errorf("Expected candidate ID %s, got %s", candidateID, h.CandidateID)
	}
	if h.PreviousStatus != nil {
		t.Errorf("Expected nil previous status on the registration row, got %v", *h.PreviousStatus)
	}
	if h.NewStatus != StatusSubmitted {
		t.Errorf("Expected new status submitted, got %s", h.NewStatus)
	}
	if h.Feedback != RegistrationFeedback {
		t.Errorf("Expected feedback %q, got %q", RegistrationFeedback, h.Feedback)
	}
	if h.AdminName != SystemAdminName || h.AdminEmail != SystemAdminEmail {
		t.Errorf("Expected the system identity, got %q <%s>", h.AdminName, h.AdminEmail)
	}
	if h.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt")
	}
}

func TestNewStatusHistory(t *testing.T) {
	t.Parallel()
	candidateID := uuid.New()
	prev := StatusSubmitted

	h, err := NewStatusHistory(candidateID, &prev, StatusUnderReview, "Moving forward", "Ada", "ada@hr-system.me")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if h.PreviousStatus == nil || *h.PreviousStatus != StatusSubmitted {
		t.Error("Expected previous status submitted")
	}
	if h.NewStatus != StatusUnderReview {
		t.Errorf("Expected new status under_review, got %s", h.NewStatus)
	}
}

func TestNewStatusHistoryValidation(t *testing.T) {
	t.Parallel()
	candidateID := uuid.New()
	prev := StatusSubmitted

	cases := []struct {
		name       string
		candidate  uuid.UUID
		previous   *ApplicationStatus
		newStatus  ApplicationStatus
		feedback   string
		adminName  string
		adminEmail string
		wantField  string
	}{
		{"missing candidate", uuid.Nil, &prev, StatusUnderReview, "ok", "Ada", "ada@hr-system.me", "candidate_id"},
		{"invalid new status", candidateID, &prev, "bogus", "ok", "Ada", "ada@hr-system.me", "new_status"},
		{"empty feedback", candidateID, &prev, StatusUnderReview, "", "Ada", "ada@hr-system.me", "feedback"},
		{
			"feedback too long",
			candidateID, &prev, StatusUnderReview,
			strings.Repeat("x", MaxFeedbackLength+1),
			"Ada", "ada@hr-system.me", "feedback",
		},
		{"empty admin name", candidateID, &prev, StatusUnderReview, "ok", "", "ada@hr-system.me", "admin_name"},
		{"empty admin email", candidateID, &prev, StatusUnderReview, "ok", "Ada", "", "admin_email"},
		{"bad admin email", candidateID, &prev, StatusUnderReview, "ok", "Ada", "not-an-email", "admin_email"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewStatusHistory(tc.candidate, tc.previous, tc.newStatus, tc.feedback, tc.adminName, tc.adminEmail)
			var fe FieldErrors
			if !errors.As(err, &fe) {
				t.Fatalf("Expected FieldErrors, got %v", err)
			}
			if _, ok := fe[tc.wantField]; !ok {
				t.Errorf("Expected a rejection on %q, got %v", tc.wantField, fe)
			}
		})
	}
}

func TestNewStatusHistoryFeedbackAtLimit(t *testing.T) {
	t.Parallel()
	prev := StatusSubmitted
	_, err := NewStatusHistory(uuid.New(), &prev, StatusRejected, strings.Repeat("x", MaxFeedbackLength), "Ada", "ada@hr-system.me")
	if err != nil {
		t.Errorf("Expected feedback of exactly %d characters to be accepted, got %v", MaxFeedbackLength, err)
	}
}

func TestNewStatusHistoryFeedbackCountsCharactersNotBytes(t *testing.T) {
	t.Parallel()
	prev := StatusSubmitted

	// Multibyte feedback at the limit: 1000 characters but 2000 bytes.
	_, err := NewStatusHistory(uuid.New(), &prev, StatusRejected, strings.Repeat("é", MaxFeedbackLength), "Ada", "ada@hr-system.me")
	if err != nil {
		t.Errorf("Expected %d multibyte characters to be accepted, got %v", MaxFeedbackLength, err)
	}

	_, err = NewStatusHistory(uuid.New(), &prev, StatusRejected, strings.Repeat("é", MaxFeedbackLength+1), "Ada", "ada@hr-system.me")
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("Expected FieldErrors for %d characters, got %v", MaxFeedbackLength+1, err)
	}
	if _, ok := fe["feedback"]; !ok {
		t.Errorf("Expected a rejection on feedback, got %v", fe)
	}
}
