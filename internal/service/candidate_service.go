package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hrsys/candidate-api/internal/domain"
	"github.com/hrsys/candidate-api/internal/domain/rules"
	"github.com/hrsys/candidate-api/internal/filestore"
	"github.com/hrsys/candidate-api/internal/notification"
	"github.com/hrsys/candidate-api/internal/store"
	"github.com/hrsys/candidate-api/internal/task"
)

// TaskRunner defines the interface for submitting background tasks.
type TaskRunner interface {
	Submit(ctx context.Context, t task.Task) error
}

// ResumeUpload carries an uploaded resume file into the registration
// workflow.
type ResumeUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// RegistrationInput is the candidate payload of the registration
// workflow. There is deliberately no status field: every candidate
// starts as submitted.
type RegistrationInput struct {
	FullName          string
	Email             string
	Phone             string
	DateOfBirth       time.Time
	YearsOfExperience int
	Department        domain.Department
	Resume            ResumeUpload
}

// StatusUpdateInput is the admin payload of the status update workflow.
type StatusUpdateInput struct {
	NewStatus  domain.ApplicationStatus
	Feedback   string
	AdminName  string
	AdminEmail string
}

// CandidateService provides the candidate workflows.
type CandidateService interface {
	// Register creates a candidate and its initial history row
	// atomically, stores the resume, and issues a confirmation
	// notification after commit.
	Register(ctx context.Context, in RegistrationInput) (*domain.Candidate, error)

	// UpdateStatus transitions a candidate to a new status, appending
	// one history row in the same transaction, and issues a status
	// change notification after commit.
	UpdateStatus(ctx context.Context, id uuid.UUID, in StatusUpdateInput) (*domain.Candidate, error)

	// StatusByEmail returns the candidate with the given email and its
	// full history, newest first. Unknown emails are a field-scoped
	// validation error, not a generic not-found.
	StatusByEmail(ctx context.Context, email string) (*domain.Candidate, []*domain.StatusHistory, error)

	// GetCandidate returns a candidate by ID with its full history.
	GetCandidate(ctx context.Context, id uuid.UUID) (*domain.Candidate, []*domain.StatusHistory, error)

	// ListCandidates returns candidates matching the given params.
	ListCandidates(ctx context.Context, params store.CandidateListParams) ([]*domain.Candidate, error)

	// ListHistory returns audit rows matching the given params.
	ListHistory(ctx context.Context, params store.HistoryListParams) ([]*domain.StatusHistory, error)

	// ResumeURL resolves a candidate's stored resume to a URL.
	// Returns ErrResumeNotFound when the candidate has none.
	ResumeURL(ctx context.Context, id uuid.UUID) (string, error)
}

type candidateServiceImpl struct {
	candidates store.CandidateStore
	history    store.StatusHistoryStore
	files      filestore.FileStore
	notifier   notification.Notifier
	tasks      TaskRunner
	tx         TransactionRunner
	logger     *slog.Logger
}

// NewCandidateService creates a CandidateService. It returns an error
// if any required dependency is nil.
func NewCandidateService(
	candidates store.CandidateStore,
	history store.StatusHistoryStore,
	files filestore.FileStore,
	notifier notification.Notifier,
	tasks TaskRunner,
	tx TransactionRunner,
	logger *slog.Logger,
) (CandidateService, error) {
	if candidates == nil {
		return nil, &CandidateServiceError{Operation: "create_service", Message: "candidates store cannot be nil"}
	}
	if history == nil {
		return nil, &CandidateServiceError{Operation: "create_service", Message: "history store cannot be nil"}
	}
	if files == nil {
		return nil, &CandidateServiceError{Operation: "create_service", Message: "file store cannot be nil"}
	}
	if notifier == nil {
		return nil, &CandidateServiceError{Operation: "create_service", Message: "notifier cannot be nil"}
	}
	if tasks == nil {
		return nil, &CandidateServiceError{Operation: "create_service", Message: "task runner cannot be nil"}
	}
	if tx == nil {
		return nil, &CandidateServiceError{Operation: "create_service", Message: "transaction runner cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &candidateServiceImpl{
		candidates: candidates,
		history:    history,
		files:      files,
		notifier:   notifier,
		tasks:      tasks,
		tx:         tx,
		logger:     logger.With(slog.String("component", "candidate_service")),
	}, nil
}

// Register implements CandidateService.Register.
func (s *candidateServiceImpl) Register(
	ctx context.Context,
	in RegistrationInput,
) (*domain.Candidate, error) {
	candidate, err := domain.NewCandidate(
		in.FullName,
		in.Email,
		in.Phone,
		in.DateOfBirth,
		in.YearsOfExperience,
		in.Department,
		rules.FileMeta{Size: in.Resume.Size, ContentType: in.Resume.ContentType},
	)
	if err != nil {
		return nil, err
	}

	resumeRef, err := s.files.Save(ctx, candidate.Department, candidate.ID, in.Resume.Filename, in.Resume.Content)
	if err != nil {
		s.logger.Error("failed to store resume",
			"error", err,
			"candidate_id", candidate.ID)
		return nil, &CandidateServiceError{
			Operation: "register",
			Message:   "failed to store resume",
			Err:       err,
		}
	}
	candidate.ResumePath = resumeRef

	initialHistory, err := domain.NewRegistrationHistory(candidate.ID)
	if err != nil {
		return nil, &CandidateServiceError{
			Operation: "register",
			Message:   "failed to build initial history row",
			Err:       err,
		}
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.candidates.WithTx(tx).Create(ctx, candidate); err != nil {
			return err
		}
		return s.history.WithTx(tx).Create(ctx, initialHistory)
	})
	if err != nil {
		// The stored resume has no owning row now; clean it up best-effort.
		if removeErr := s.files.Remove(ctx, resumeRef); removeErr != nil {
			s.logger.Error("failed to remove orphaned resume",
				"error", removeErr,
				"candidate_id", candidate.ID)
		}
		if fieldErr := uniquenessFieldError(err); fieldErr != nil {
			return nil, fieldErr
		}
		var fe domain.FieldErrors
		if errors.As(err, &fe) {
			return nil, fe
		}
		s.logger.Error("failed to register candidate",
			"error", err,
			"candidate_id", candidate.ID)
		return nil, &CandidateServiceError{
			Operation: "register",
			Message:   "failed to save candidate",
			Err:       err,
		}
	}

	s.logger.Info("candidate registered",
		"candidate_id", candidate.ID,
		"department", candidate.Department)

	s.notifyRegistration(ctx, candidate)
	return candidate, nil
}

// UpdateStatus implements CandidateService.UpdateStatus.
func (s *candidateServiceImpl) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	in StatusUpdateInput,
) (*domain.Candidate, error) {
	if !in.NewStatus.IsValid() {
		return nil, domain.NewFieldError("new_status", "invalid application status")
	}

	var (
		candidate      *domain.Candidate
		previousStatus domain.ApplicationStatus
	)
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txCandidates := s.candidates.WithTx(tx)

		// The row lock makes concurrent updates against one candidate
		// queue up; each waiter re-evaluates the transition against the
		// status the previous writer committed.
		c, err := txCandidates.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if !c.CurrentStatus.CanTransitionTo(in.NewStatus) {
			return domain.NewTransitionError(c.CurrentStatus, in.NewStatus)
		}

		previousStatus = c.CurrentStatus
		entry, err := domain.NewStatusHistory(
			c.ID,
			&previousStatus,
			in.NewStatus,
			in.Feedback,
			in.AdminName,
			in.AdminEmail,
		)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := txCandidates.UpdateStatus(ctx, c.ID, in.NewStatus, now); err != nil {
			return err
		}
		if err := s.history.WithTx(tx).Create(ctx, entry); err != nil {
			return err
		}

		c.CurrentStatus = in.NewStatus
		c.UpdatedAt = now
		candidate = c
		return nil
	})
	if err != nil {
		var fe domain.FieldErrors
		var te *domain.TransitionError
		switch {
		case errors.As(err, &fe):
			return nil, fe
		case errors.As(err, &te):
			return nil, te
		case store.IsNotFoundError(err):
			return nil, err
		}
		s.logger.Error("failed to update candidate status",
			"error", err,
			"candidate_id", id,
			"target_status", in.NewStatus)
		return nil, &CandidateServiceError{
			Operation: "update_status",
			Message:   "failed to update candidate status",
			Err:       err,
		}
	}

	s.logger.Info("candidate status updated",
		"candidate_id", candidate.ID,
		"previous_status", previousStatus,
		"new_status", candidate.CurrentStatus)

	s.notifyStatusUpdate(ctx, candidate, previousStatus, in)
	return candidate, nil
}

// StatusByEmail implements CandidateService.StatusByEmail.
func (s *candidateServiceImpl) StatusByEmail(
	ctx context.Context,
	email string,
) (*domain.Candidate, []*domain.StatusHistory, error) {
	candidate, err := s.candidates.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, nil, domain.NewFieldError("email", "candidate with this email does not exist")
		}
		return nil, nil, &CandidateServiceError{
			Operation: "status_by_email",
			Message:   "failed to look up candidate",
			Err:       err,
		}
	}

	history, err := s.history.ListByCandidate(ctx, candidate.ID)
	if err != nil {
		return nil, nil, &CandidateServiceError{
			Operation: "status_by_email",
			Message:   "failed to load status history",
			Err:       err,
		}
	}
	return candidate, history, nil
}

// GetCandidate implements CandidateService.GetCandidate.
func (s *candidateServiceImpl) GetCandidate(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Candidate, []*domain.StatusHistory, error) {
	candidate, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, nil, err
		}
		return nil, nil, &CandidateServiceError{
			Operation: "get_candidate",
			Message:   "failed to load candidate",
			Err:       err,
		}
	}

	history, err := s.history.ListByCandidate(ctx, candidate.ID)
	if err != nil {
		return nil, nil, &CandidateServiceError{
			Operation: "get_candidate",
			Message:   "failed to load status history",
			Err:       err,
		}
	}
	return candidate, history, nil
}

// ListCandidates implements CandidateService.ListCandidates.
func (s *candidateServiceImpl) ListCandidates(
	ctx context.Context,
	params store.CandidateListParams,
) ([]*domain.Candidate, error) {
	candidates, err := s.candidates.List(ctx, params)
	if err != nil {
		return nil, &CandidateServiceError{
			Operation: "list_candidates",
			Message:   "failed to list candidates",
			Err:       err,
		}
	}
	return candidates, nil
}

// ListHistory implements CandidateService.ListHistory.
func (s *candidateServiceImpl) ListHistory(
	ctx context.Context,
	params store.HistoryListParams,
) ([]*domain.StatusHistory, error) {
	entries, err := s.history.List(ctx, params)
	if err != nil {
		return nil, &CandidateServiceError{
			Operation: "list_history",
			Message:   "failed to list status history",
			Err:       err,
		}
	}
	return entries, nil
}

// ResumeURL implements CandidateService.ResumeURL.
func (s *candidateServiceImpl) ResumeURL(ctx context.Context, id uuid.UUID) (string, error) {
	candidate, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return "", err
		}
		return "", &CandidateServiceError{
			Operation: "resume_url",
			Message:   "failed to load candidate",
			Err:       err,
		}
	}
	if candidate.ResumePath == "" {
		return "", ErrResumeNotFound
	}
	return s.files.URL(candidate.ResumePath), nil
}

// uniquenessFieldError maps store uniqueness violations to the
// field-scoped validation errors the registration workflow surfaces.
func uniquenessFieldError(err error) error {
	switch {
	case errors.Is(err, store.ErrEmailExists):
		return domain.NewFieldError("email", "candidate with this email already exists")
	case errors.Is(err, store.ErrPhoneExists):
		return domain.NewFieldError("phone", "candidate with this phone already exists")
	}
	return nil
}

// notifyRegistration queues the registration confirmation email.
// Failure to queue only logs; the registration is already committed.
func (s *candidateServiceImpl) notifyRegistration(ctx context.Context, c *domain.Candidate) {
	msg := notification.Message{
		Template: notification.TemplateRegistrationConfirmation,
		Context: map[string]string{
			"recipient_name":    c.FullName,
			"recipient_email":   c.Email,
			"department":        c.Department.Display(),
			"registration_date": time.Now().UTC().Format("January 02, 2006"),
			"application_id":    c.ID.String(),
		},
		Subject:        "Application Received - HR System",
		RecipientEmail: c.Email,
		RecipientName:  c.FullName,
	}
	s.submitEmail(ctx, msg, c.ID)
}

// notifyStatusUpdate queues the status change email. Failure to queue
// only logs; the update is already committed.
func (s *candidateServiceImpl) notifyStatusUpdate(
	ctx context.Context,
	c *domain.Candidate,
	previous domain.ApplicationStatus,
	in StatusUpdateInput,
) {
	msg := notification.Message{
		Template: notification.TemplateStatusUpdate,
		Context: map[string]string{
			"recipient_name":  c.FullName,
			"recipient_email": c.Email,
			"previous_status": previous.Display(),
			"new_status":      in.NewStatus.Display(),
			"feedback":        in.Feedback,
			"admin_name":      in.AdminName,
			"update_date":     time.Now().UTC().Format("January 02, 2006 at 3:04 PM"),
			"application_id":  c.ID.String(),
		},
		Subject:        fmt.Sprintf("Application Status Updated - %s", in.NewStatus.Display()),
		RecipientEmail: c.Email,
		RecipientName:  c.FullName,
	}
	s.submitEmail(ctx, msg, c.ID)
}

func (s *candidateServiceImpl) submitEmail(ctx context.Context, msg notification.Message, candidateID uuid.UUID) {
	emailTask, err := task.NewEmailTask(s.notifier, msg)
	if err != nil {
		s.logger.Error("failed to build email task",
			"error", err,
			"template", msg.Template,
			"candidate_id", candidateID)
		return
	}
	if err := s.tasks.Submit(ctx, emailTask); err != nil {
		s.logger.Error("failed to queue email task",
			"error", err,
			"template", msg.Template,
			"candidate_id", candidateID)
		return
	}
	s.logger.Info("email queued",
		"template", msg.Template,
		"candidate_id", candidateID)
}
