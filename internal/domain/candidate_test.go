package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hrsys/candidate-api/internal/domain/rules"
)

func validResumeMeta() rules.FileMeta {
	return rules.FileMeta{Size: 1024, ContentType: "application/pdf"}
}

func TestNewCandidate(t *testing.T) {
	t.Parallel()
	dob := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

	c, err := NewCandidate("Jane Doe", "jane@example.com", "+14155552671", dob, 5, DepartmentIT, validResumeMeta())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if c.ID == uuid.Nil {
		t.Error("Expected non-nil UUID")
	}
	if c.CurrentStatus != StatusSubmitted {
		t.Errorf("Expected new candidates to start submitted, got %s", c.CurrentStatus)
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}
	if c.ResumePath != "" {
		t.Error("Expected resume path to be unset until the file is stored")
	}
}

func TestNewCandidateTrimsWhitespace(t *testing.T) {
	t.Parallel()
	dob := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

	c, err := NewCandidate("  Jane Doe  ", " jane@example.com ", " +14155552671 ", dob, 5, DepartmentHR, validResumeMeta())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if c.FullName != "Jane Doe" || c.Email != "jane@example.com" || c.Phone != "+14155552671" {
		t.Errorf("Expected trimmed fields, got %q %q %q", c.FullName, c.Email, c.Phone)
	}
}

func TestNewCandidateValidation(t *testing.T) {
	t.Parallel()
	dob := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		fullName  string
		email     string
		phone     string
		dob       time.Time
		years     int
		dept      Department
		resume    rules.FileMeta
		wantField string
	}{
		{"empty name", "", "jane@example.com", "+14155552671", dob, 5, DepartmentIT, validResumeMeta(), "full_name"},
		{"empty email", "Jane", "", "+14155552671", dob, 5, DepartmentIT, validResumeMeta(), "email"},
		{"bad email", "Jane", "not-an-email", "+14155552671", dob, 5, DepartmentIT, validResumeMeta(), "email"},
		{"bad phone", "Jane", "jane@example.com", "012345", dob, 5, DepartmentIT, validResumeMeta(), "phone"},
		{"missing dob", "Jane", "jane@example.com", "+14155552671", time.Time{}, 5, DepartmentIT, validResumeMeta(), "date_of_birth"},
		{
			"too young",
			"Jane", "jane@example.com", "+14155552671",
			time.Now().UTC().AddDate(-15, 0, 0), 5, DepartmentIT, validResumeMeta(),
			"date_of_birth",
		},
		{"negative experience", "Jane", "jane@example.com", "+14155552671", dob, -1, DepartmentIT, validResumeMeta(), "years_of_experience"},
		{"excessive experience", "Jane", "jane@example.com", "+14155552671", dob, 51, DepartmentIT, validResumeMeta(), "years_of_experience"},
		{"bad department", "Jane", "jane@example.com", "+14155552671", dob, 5, Department("sales"), validResumeMeta(), "department"},
		{"missing resume", "Jane", "jane@example.com", "+14155552671", dob, 5, DepartmentIT, rules.FileMeta{}, "resume"},
		{
			"oversized resume",
			"Jane", "jane@example.com", "+14155552671", dob, 5, DepartmentIT,
			rules.FileMeta{Size: 5*1024*1024 + 1, ContentType: "application/pdf"},
			"resume",
		},
		{
			"wrong resume type",
			"Jane", "jane@example.com", "+14155552671", dob, 5, DepartmentIT,
			rules.FileMeta{Size: 1024, ContentType: "text/plain"},
			"resume",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewCandidate(tc.fullName, tc.email, tc.phone, tc.dob, tc.years, tc.dept, tc.resume)
			if err == nil {
				t.Fatal("Expected a validation error")
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Expected the error to match ErrValidation, got %v", err)
			}
			var fe FieldErrors
			if !errors.As(err, &fe) {
				t.Fatalf("Expected FieldErrors, got %T", err)
			}
			if _, ok := fe[tc.wantField]; !ok {
				t.Errorf("Expected a rejection on %q, got %v", tc.wantField, fe)
			}
		})
	}
}

func TestNewCandidateCollectsAllFieldErrors(t *testing.T) {
	t.Parallel()
	_, err := NewCandidate("", "bad", "bad", time.Time{}, -1, "sales", rules.FileMeta{})
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("Expected FieldErrors, got %T", err)
	}
	for _, field := range []string{"full_name", "email", "phone", "date_of_birth", "years_of_experience", "department", "resume"} {
		if _, ok := fe[field]; !ok {
			t.Errorf("Expected a rejection on %q, got %v", field, fe)
		}
	}
}

func TestCandidateValidateRequiresResumePath(t *testing.T) {
	t.Parallel()
	dob := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	c, err := NewCandidate("Jane Doe", "jane@example.com", "+14155552671", dob, 5, DepartmentFinance, validResumeMeta())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	err = c.Validate()
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("Expected FieldErrors for missing resume path, got %v", err)
	}
	if _, ok := fe["resume"]; !ok {
		t.Errorf("Expected a rejection on resume, got %v", fe)
	}

	c.ResumePath = "resumes/finance/abc/resume_20240101120000.pdf"
	if err := c.Validate(); err != nil {
		t.Errorf("Expected the candidate to validate once a resume is stored, got %v", err)
	}
}

func TestCandidateAge(t *testing.T) {
	t.Parallel()
	c := &Candidate{DateOfBirth: time.Now().UTC().AddDate(-30, 0, -1)}
	if got := c.Age(); got != 30 {
		t.Errorf("Expected age 30, got %d", got)
	}

	c = &Candidate{}
	if got := c.Age(); got != -1 {
		t.Errorf("Expected -1 for a missing date of birth, got %d", got)
	}
}

func TestFieldErrorsMessage(t *testing.T) {
	t.Parallel()
	fe := FieldErrors{}
	fe.Add("email", "email is required")
	fe.Add("phone", "invalid phone number format, use E.164 format")
	fe.Add("email", "second reason")

	msg := fe.Error()
	if !strings.HasPrefix(msg, "validation failed: ") {
		t.Errorf("Unexpected message prefix: %q", msg)
	}
	// Fields are sorted, so email precedes phone.
	if strings.Index(msg, "email") > strings.Index(msg, "phone") {
		t.Errorf("Expected deterministic field ordering: %q", msg)
	}
}

func TestTransitionError(t *testing.T) {
	t.Parallel()
	err := NewTransitionError(StatusSubmitted, StatusAccepted)
	want := "cannot transition from submitted to accepted. Valid transitions: under_review, rejected"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
	if !errors.Is(err, ErrInvalidTransition) {
		t.Error("Expected the error to match ErrInvalidTransition")
	}

	terminal := NewTransitionError(StatusRejected, StatusUnderReview)
	want = "cannot transition from rejected to under_review. Valid transitions: no valid transitions"
	if terminal.Error() != want {
		t.Errorf("Expected %q, got %q", want, terminal.Error())
	}
}
