package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hrsys/candidate-api/internal/domain/rules"
)

// Candidate represents a job applicant. Identity, contact details, and
// the resume reference are fixed at registration; only CurrentStatus
// and UpdatedAt change afterwards, and only through the status update
// workflow.
type Candidate struct {
	ID                uuid.UUID         `json:"id"`
	FullName          string            `json:"full_name"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone"`
	DateOfBirth       time.Time         `json:"date_of_birth"`
	YearsOfExperience int               `json:"years_of_experience"`
	Department        Department        `json:"department"`
	ResumePath        string            `json:"-"` // storage reference, resolved to a URL at the API boundary
	CurrentStatus     ApplicationStatus `json:"current_status"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// NewCandidate creates a Candidate in the submitted state. The resume
// metadata is validated here; storing the file and recording its
// reference is the caller's concern. Returns FieldErrors naming every
// rejected field when validation fails.
func NewCandidate(
	fullName, email, phone string,
	dateOfBirth time.Time,
	yearsOfExperience int,
	department Department,
	resume rules.FileMeta,
) (*Candidate, error) {
	now := time.Now().UTC()
	c := &Candidate{
		ID:                uuid.New(),
		FullName:          strings.TrimSpace(fullName),
		Email:             strings.TrimSpace(email),
		Phone:             strings.TrimSpace(phone),
		DateOfBirth:       dateOfBirth,
		YearsOfExperience: yearsOfExperience,
		Department:        department,
		CurrentStatus:     StatusSubmitted,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	fe := c.validateFields()
	if resume.Size == 0 {
		fe.Add("resume", "resume file is required")
	}
	if err := rules.FileSize.Validate(resume); err != nil {
		fe.Add("resume", err.Error())
	}
	if err := rules.FileType.Validate(resume); err != nil {
		fe.Add("resume", err.Error())
	}
	if len(fe) > 0 {
		return nil, fe
	}
	return c, nil
}

// Validate checks the candidate's current field values, including the
// status enumeration membership invariant. Returns FieldErrors when any
// field is rejected.
func (c *Candidate) Validate() error {
	fe := c.validateFields()
	if c.ResumePath == "" {
		fe.Add("resume", "resume file is required")
	}
	if len(fe) > 0 {
		return fe
	}
	return nil
}

func (c *Candidate) validateFields() FieldErrors {
	fe := FieldErrors{}
	if c.ID == uuid.Nil {
		fe.Add("id", "id cannot be empty")
	}
	if c.FullName == "" {
		fe.Add("full_name", "full name is required")
	}
	if c.Email == "" {
		fe.Add("email", "email is required")
	} else if !validEmail(c.Email) {
		fe.Add("email", "invalid email format")
	}
	if err := rules.Phone.Validate(c.Phone); err != nil {
		fe.Add("phone", err.Error())
	}
	if c.DateOfBirth.IsZero() {
		fe.Add("date_of_birth", "date of birth is required")
	} else if err := rules.AgeBounds.Validate(c.DateOfBirth); err != nil {
		fe.Add("date_of_birth", err.Error())
	}
	if err := rules.Experience.Validate(c.YearsOfExperience); err != nil {
		fe.Add("years_of_experience", err.Error())
	}
	if !c.Department.IsValid() {
		fe.Add("department", "department must be one of: it, hr, finance")
	}
	if !c.CurrentStatus.IsValid() {
		fe.Add("current_status", "invalid application status")
	}
	return fe
}

// Age returns the candidate's whole-year age today, or -1 when the date
// of birth is absent.
func (c *Candidate) Age() int {
	if c.DateOfBirth.IsZero() {
		return -1
	}
	return rules.Age(c.DateOfBirth, time.Now().UTC())
}

// validEmail reports whether s parses as a bare RFC 5322 address.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
