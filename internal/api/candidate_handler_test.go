package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrsys/candidate-api/internal/domain"
	"github.com/hrsys/candidate-api/internal/service"
	"github.com/hrsys/candidate-api/internal/store"
)

// stubCandidateService implements service.CandidateService with
// overridable function fields.
type stubCandidateService struct {
	register      func(ctx context.Context, in service.RegistrationInput) (*domain.Candidate, error)
	updateStatus  func(ctx context.Context, id uuid.UUID, in service.StatusUpdateInput) (*domain.Candidate, error)
	statusByEmail func(ctx context.Context, email string) (*domain.Candidate, []*domain.StatusHistory, error)
	getCandidate  func(ctx context.Context, id uuid.UUID) (*domain.Candidate, []*domain.StatusHistory, error)
	list          func(ctx context.Context, params store.CandidateListParams) ([]*domain.Candidate, error)
	listHistory   func(ctx context.Context, params store.HistoryListParams) ([]*domain.StatusHistory, error)
	resumeURL     func(ctx context.Context, id uuid.UUID) (string, error)
}

func (s *stubCandidateService) Register(ctx context.Context, in service.RegistrationInput) (*domain.Candidate, error) {
	return s.register(ctx, in)
}

func (s *stubCandidateService) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	in service.StatusUpdateInput,
) (*domain.Candidate, error) {
	return s.updateStatus(ctx, id, in)
}

func (s *stubCandidateService) StatusByEmail(
	ctx context.Context,
	email string,
) (*domain.Candidate, []*domain.StatusHistory, error) {
	return s.statusByEmail(ctx, email)
}

func (s *stubCandidateService) GetCandidate(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Candidate, []*domain.StatusHistory, error) {
	return s.getCandidate(ctx, id)
}

func (s *stubCandidateService) ListCandidates(
	ctx context.Context,
	params store.CandidateListParams,
) ([]*domain.Candidate, error) {
	return s.list(ctx, params)
}

func (s *stubCandidateService) ListHistory(
	ctx context.Context,
	params store.HistoryListParams,
) ([]*domain.StatusHistory, error) {
	return s.listHistory(ctx, params)
}

func (s *stubCandidateService) ResumeURL(ctx context.Context, id uuid.UUID) (string, error) {
	return s.resumeURL(ctx, id)
}

func testCandidate() *domain.Candidate {
	now := time.Now().UTC()
	return &domain.Candidate{
		ID:                uuid.New(),
		FullName:          "Jane Doe",
		Email:             "jane@example.com",
		Phone:             "+14155552671",
		DateOfBirth:       time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		YearsOfExperience: 5,
		Department:        domain.DepartmentIT,
		ResumePath:        "resumes/it/x/resume.pdf",
		CurrentStatus:     domain.StatusSubmitted,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// registrationForm builds a multipart body with the standard valid
// fields, letting individual tests override or drop fields.
func registrationForm(t *testing.T, overrides map[string]string, includeResume bool) (*bytes.Buffer, string) {
	t.Helper()
	fields := map[string]string{
		"full_name":           "Jane Doe",
		"email":               "jane@example.com",
		"phone":               "+14155552671",
		"date_of_birth":       "1990-01-01",
		"years_of_experience": "5",
		"department":          "it",
	}
	for k, v := range overrides {
		if v == "" {
			delete(fields, k)
			continue
		}
		fields[k] = v
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if includeResume {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="resume"; filename="resume.pdf"`)
		header.Set("Content-Type", "application/pdf")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake pdf bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestRegisterHandler(t *testing.T) {
	t.Parallel()
	candidate := testCandidate()
	svc := &stubCandidateService{
		register: func(ctx context.Context, in service.RegistrationInput) (*domain.Candidate, error) {
			assert.Equal(t, "Jane Doe", in.FullName)
			assert.Equal(t, "jane@example.com", in.Email)
			assert.Equal(t, domain.DepartmentIT, in.Department)
			assert.Equal(t, 5, in.YearsOfExperience)
			assert.Equal(t, "resume.pdf", in.Resume.Filename)
			assert.Equal(t, "application/pdf", in.Resume.ContentType)
			return candidate, nil
		},
	}
	handler := NewCandidateHandler(svc, nil)

	body, contentType := registrationForm(t, nil, true)
	req := httptest.NewRequest(http.MethodPost, "/api/candidates", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp CandidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, candidate.ID.String(), resp.ID)
	assert.Equal(t, "submitted", resp.CurrentStatus)
	assert.Equal(t, "Submitted", resp.CurrentStatusDisplay)
	assert.Equal(t, "1990-01-01", resp.DateOfBirth)
}

func TestRegisterHandlerValidationErrors(t *testing.T) {
	t.Parallel()
	svc := &stubCandidateService{
		register: func(ctx context.Context, in service.RegistrationInput) (*domain.Candidate, error) {
			return nil, domain.NewFieldError("email", "candidate with this email already exists")
		},
	}
	handler := NewCandidateHandler(svc, nil)

	body, contentType := registrationForm(t, nil, true)
	req := httptest.NewRequest(http.MethodPost, "/api/candidates", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"candidate with this email already exists"}, resp.Errors["email"])
}

func TestRegisterHandlerBadDateOfBirth(t *testing.T) {
	t.Parallel()
	svc := &stubCandidateService{
		register: func(ctx context.Context, in service.RegistrationInput) (*domain.Candidate, error) {
			t.Fatal("service must not be called when form parsing fails")
			return nil, nil
		},
	}
	handler := NewCandidateHandler(svc, nil)

	body, contentType := registrationForm(t, map[string]string{"date_of_birth": "01/01/1990"}, true)
	req := httptest.NewRequest(http.MethodPost, "/api/candidates", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "date_of_birth")
}

func TestStatusByEmailHandler(t *testing.T) {
	t.Parallel()
	candidate := testCandidate()
	prev := domain.StatusSubmitted
	history := []*domain.StatusHistory{
		{
			ID:             uuid.New(),
			CandidateID:    candidate.ID,
			PreviousStatus: &prev,
			NewStatus:      domain.StatusUnderReview,
			Feedback:       "Screening passed",
			AdminName:      "Ada",
			AdminEmail:     "ada@hr-system.me",
			CreatedAt:      time.Now().UTC(),
		},
	}
	svc := &stubCandidateService{
		statusByEmail: func(ctx context.Context, email string) (*domain.Candidate, []*domain.StatusHistory, error) {
			assert.Equal(t, "jane@example.com", email)
			return candidate, history, nil
		},
	}
	handler := NewCandidateHandler(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/candidates/status?email=jane@example.com", nil)
	rec := httptest.NewRecorder()
	handler.StatusByEmail(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp PublicStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Information Technology", resp.Department)
	require.Len(t, resp.StatusHistory, 1)
	require.NotNil(t, resp.StatusHistory[0].PreviousStatus)
	assert.Equal(t, "submitted", *resp.StatusHistory[0].PreviousStatus)

	// The public projection never includes the email or date of birth.
	raw := rec.Body.String()
	assert.NotContains(t, raw, "jane@example.com")
	assert.NotContains(t, raw, "1990-01-01")
}

func TestStatusByEmailHandlerMissingParam(t *testing.T) {
	t.Parallel()
	handler := NewCandidateHandler(&stubCandidateService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/candidates/status", nil)
	rec := httptest.NewRecorder()
	handler.StatusByEmail(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email")
}

func TestStatusByEmailHandlerUnknownEmail(t *testing.T) {
	t.Parallel()
	svc := &stubCandidateService{
		statusByEmail: func(ctx context.Context, email string) (*domain.Candidate, []*domain.StatusHistory, error) {
			return nil, nil, domain.NewFieldError("email", "candidate with this email does not exist")
		},
	}
	handler := NewCandidateHandler(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/candidates/status?email=nobody@example.com", nil)
	rec := httptest.NewRecorder()
	handler.StatusByEmail(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "email")
}

// newChiRequest routes the request through a chi router so URL
// parameters resolve in handlers that read them.
func newChiRequest(
	t *testing.T,
	method, path string,
	body *bytes.Buffer,
	handler http.HandlerFunc,
	pattern string,
) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, handler)

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestUpdateStatusHandler(t *testing.T) {
	t.Parallel()
	candidate := testCandidate()
	candidate.CurrentStatus = domain.StatusUnderReview
	svc := &stubCandidateService{
		updateStatus: func(ctx context.Context, id uuid.UUID, in service.StatusUpdateInput) (*domain.Candidate, error) {
			assert.Equal(t, candidate.ID, id)
			assert.Equal(t, domain.StatusUnderReview, in.NewStatus)
			assert.Equal(t, "Screening passed", in.Feedback)
			return candidate, nil
		},
	}
	handler := NewCandidateHandler(svc, nil)

	body := bytes.NewBufferString(`{
		"status": "under_review",
		"feedback": "Screening passed",
		"admin_name": "Ada",
		"admin_email": "ada@hr-system.me"
	}`)
	rec := newChiRequest(t, http.MethodPatch, "/api/candidates/"+candidate.ID.String(), body,
		handler.UpdateStatus, "/api/candidates/{id}")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CandidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "under_review", resp.CurrentStatus)
}

func TestUpdateStatusHandlerInvalidTransition(t *testing.T) {
	t.Parallel()
	candidate := testCandidate()
	svc := &stubCandidateService{
		updateStatus: func(ctx context.Context, id uuid.UUID, in service.StatusUpdateInput) (*domain.Candidate, error) {
			return nil, domain.NewTransitionError(domain.StatusSubmitted, domain.StatusAccepted)
		},
	}
	handler := NewCandidateHandler(svc, nil)

	body := bytes.NewBufferString(`{
		"status": "accepted",
		"feedback": "Skipping ahead",
		"admin_name": "Ada",
		"admin_email": "ada@hr-system.me"
	}`)
	rec := newChiRequest(t, http.MethodPatch, "/api/candidates/"+candidate.ID.String(), body,
		handler.UpdateStatus, "/api/candidates/{id}")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot transition from submitted to accepted")
	assert.Contains(t, rec.Body.String(), "under_review, rejected")
}

func TestUpdateStatusHandlerMissingFields(t *testing.T) {
	t.Parallel()
	handler := NewCandidateHandler(&stubCandidateService{}, nil)

	body := bytes.NewBufferString(`{"status": "under_review"}`)
	rec := newChiRequest(t, http.MethodPatch, "/api/candidates/"+uuid.New().String(), body,
		handler.UpdateStatus, "/api/candidates/{id}")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "feedback")
	assert.Contains(t, resp.Errors, "admin_name")
	assert.Contains(t, resp.Errors, "admin_email")
}

func TestUpdateStatusHandlerBadUUID(t *testing.T) {
	t.Parallel()
	handler := NewCandidateHandler(&stubCandidateService{}, nil)

	body := bytes.NewBufferString(`{}`)
	rec := newChiRequest(t, http.MethodPatch, "/api/candidates/not-a-uuid", body,
		handler.UpdateStatus, "/api/candidates/{id}")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCandidateHandlerNotFound(t *testing.T) {
	t.Parallel()
	svc := &stubCandidateService{
		getCandidate: func(ctx context.Context, id uuid.UUID) (*domain.Candidate, []*domain.StatusHistory, error) {
			return nil, nil, store.ErrCandidateNotFound
		},
	}
	handler := NewCandidateHandler(svc, nil)

	rec := newChiRequest(t, http.MethodGet, "/api/candidates/"+uuid.New().String(), nil,
		handler.Get, "/api/candidates/{id}")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Candidate not found")
}

func TestListCandidatesHandler(t *testing.T) {
	t.Parallel()
	var captured store.CandidateListParams
	svc := &stubCandidateService{
		list: func(ctx context.Context, params store.CandidateListParams) ([]*domain.Candidate, error) {
			captured = params
			return []*domain.Candidate{testCandidate()}, nil
		},
	}
	handler := NewCandidateHandler(svc, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/candidates?department=it&status=submitted&name_contains=doe&ordering=-years_of_experience&limit=10&offset=20", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.DepartmentIT, captured.Department)
	assert.Equal(t, domain.StatusSubmitted, captured.Status)
	assert.Equal(t, "doe", captured.NameContains)
	assert.Equal(t, store.OrderCandidatesByExperience, captured.OrderBy)
	assert.True(t, captured.Descending)
	assert.Equal(t, 10, captured.Limit)
	assert.Equal(t, 20, captured.Offset)

	var resp CandidateListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestListCandidatesHandlerInvalidFilter(t *testing.T) {
	t.Parallel()
	handler := NewCandidateHandler(&stubCandidateService{}, nil)

	for _, query := range []string{"department=sales", "status=on_hold", "ordering=email"} {
		req := httptest.NewRequest(http.MethodGet, "/api/candidates?"+query, nil)
		rec := httptest.NewRecorder()
		handler.List(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %q", query)
	}
}

func TestResumeURLHandler(t *testing.T) {
	t.Parallel()
	id := uuid.New()
	svc := &stubCandidateService{
		resumeURL: func(ctx context.Context, gotID uuid.UUID) (string, error) {
			assert.Equal(t, id, gotID)
			return "http://localhost:8080/media/resumes/it/x/resume.pdf", nil
		},
	}
	handler := NewCandidateHandler(svc, nil)

	rec := newChiRequest(t, http.MethodGet, fmt.Sprintf("/api/candidates/%s/resume", id), nil,
		handler.ResumeURL, "/api/candidates/{id}/resume")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ResumeURLResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, id.String(), resp.ID)
	assert.True(t, strings.HasSuffix(resp.DownloadURL, "resume.pdf"))
}

func TestResumeURLHandlerNotFound(t *testing.T) {
	t.Parallel()
	svc := &stubCandidateService{
		resumeURL: func(ctx context.Context, id uuid.UUID) (string, error) {
			return "", service.ErrResumeNotFound
		},
	}
	handler := NewCandidateHandler(svc, nil)

	rec := newChiRequest(t, http.MethodGet, fmt.Sprintf("/api/candidates/%s/resume", uuid.New()), nil,
		handler.ResumeURL, "/api/candidates/{id}/resume")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Resume not found")
}
