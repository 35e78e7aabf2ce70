package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hrsys/candidate-api/internal/domain"
	"github.com/hrsys/candidate-api/internal/platform/logger"
	"github.com/hrsys/candidate-api/internal/store"
)

// candidateColumns is the select list shared by every candidate query.
const candidateColumns = `id, full_name, email, phone, date_of_birth,
	years_of_experience, department, resume_path, current_status,
	created_at, updated_at`

// CandidateStore implements store.CandidateStore using PostgreSQL.
type CandidateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCandidateStore creates a PostgreSQL implementation of the
// CandidateStore interface. The connection or transaction is managed by
// the caller. A nil logger falls back to the default.
func NewCandidateStore(db store.DBTX, logger *slog.Logger) *CandidateStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CandidateStore{
		db:     db,
		logger: logger.With(slog.String("component", "candidate_store")),
	}
}

var _ store.CandidateStore = (*CandidateStore)(nil)

// WithTx returns a CandidateStore bound to the given transaction.
func (s *CandidateStore) WithTx(tx *sql.Tx) store.CandidateStore {
	return &CandidateStore{db: tx, logger: s.logger}
}

// Create implements store.CandidateStore.Create. Uniqueness violations
// on email or phone surface as store.ErrEmailExists / ErrPhoneExists.
func (s *CandidateStore) Create(ctx context.Context, candidate *domain.Candidate) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := candidate.Validate(); err != nil {
		log.Warn("candidate validation failed during create",
			slog.String("error", err.Error()),
			slog.String("candidate_id", candidate.ID.String()))
		return err
	}

	query := `
		INSERT INTO candidates (id, full_name, email, phone, date_of_birth,
			years_of_experience, department, resume_path, current_status,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		candidate.ID,
		candidate.FullName,
		candidate.Email,
		candidate.Phone,
		candidate.DateOfBirth,
		candidate.YearsOfExperience,
		candidate.Department,
		candidate.ResumePath,
		candidate.CurrentStatus,
		candidate.CreatedAt,
		candidate.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Warn("uniqueness violation during candidate creation",
				slog.String("error", err.Error()),
				slog.String("candidate_id", candidate.ID.String()))
			return mapped
		}
		log.Error("failed to create candidate",
			slog.String("error", err.Error()),
			slog.String("candidate_id", candidate.ID.String()))
		return mapped
	}

	log.Info("candidate created",
		slog.String("candidate_id", candidate.ID.String()),
		slog.String("department", string(candidate.Department)))
	return nil
}

// GetByID implements store.CandidateStore.GetByID.
func (s *CandidateStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE id = $1`, candidateColumns)
	return s.getOne(ctx, query, id)
}

// GetByIDForUpdate implements store.CandidateStore.GetByIDForUpdate.
// The FOR UPDATE lock serializes concurrent status updates against the
// same candidate: the second transaction blocks until the first commits
// and then sees the committed status.
func (s *CandidateStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE id = $1 FOR UPDATE`, candidateColumns)
	return s.getOne(ctx, query, id)
}

// GetByEmail implements store.CandidateStore.GetByEmail.
func (s *CandidateStore) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE email = $1`, candidateColumns)
	return s.getOne(ctx, query, email)
}

func (s *CandidateStore) getOne(ctx context.Context, query string, arg any) (*domain.Candidate, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var c domain.Candidate
	var department, status string

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&c.ID,
		&c.FullName,
		&c.Email,
		&c.Phone,
		&c.DateOfBirth,
		&c.YearsOfExperience,
		&department,
		&c.ResumePath,
		&status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCandidateNotFound
		}
		log.Error("failed to get candidate", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	c.Department = domain.Department(department)
	c.CurrentStatus = domain.ApplicationStatus(status)
	return &c, nil
}

// UpdateStatus implements store.CandidateStore.UpdateStatus.
func (s *CandidateStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.ApplicationStatus,
	updatedAt time.Time,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.IsValid() {
		return domain.NewFieldError("new_status", "invalid application status")
	}

	query := `
		UPDATE candidates
		SET current_status = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, status, updatedAt, id)
	if err != nil {
		log.Error("failed to update candidate status",
			slog.String("error", err.Error()),
			slog.String("candidate_id", id.String()),
			slog.String("status", string(status)))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrCandidateNotFound); err != nil {
		return err
	}

	log.Info("candidate status updated",
		slog.String("candidate_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

// candidateOrderColumns whitelists the sortable columns for List.
var candidateOrderColumns = map[string]string{
	store.OrderCandidatesByCreatedAt:  "created_at",
	store.OrderCandidatesByFullName:   "full_name",
	store.OrderCandidatesByExperience: "years_of_experience",
}

// List implements store.CandidateStore.List.
func (s *CandidateStore) List(
	ctx context.Context,
	params store.CandidateListParams,
) ([]*domain.Candidate, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		conditions []string
		args       []any
	)
	addCondition := func(clause string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if params.Department != "" {
		addCondition("department = $%d", params.Department)
	}
	if params.Status != "" {
		addCondition("current_status = $%d", params.Status)
	}
	if params.FullName != "" {
		addCondition("full_name = $%d", params.FullName)
	}
	if params.NameContains != "" {
		addCondition("full_name ILIKE $%d", "%"+escapeLike(params.NameContains)+"%")
	}
	if params.NamePrefix != "" {
		addCondition("full_name ILIKE $%d", escapeLike(params.NamePrefix)+"%")
	}
	if params.Email != "" {
		addCondition("email = $%d", params.Email)
	}
	if params.EmailContains != "" {
		addCondition("email ILIKE $%d", "%"+escapeLike(params.EmailContains)+"%")
	}

	query := fmt.Sprintf(`SELECT %s FROM candidates`, candidateColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	orderColumn, ok := candidateOrderColumns[params.OrderBy]
	if !ok {
		orderColumn = "created_at"
		params.Descending = true
	}
	direction := "ASC"
	if params.Descending {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", orderColumn, direction)

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list candidates", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	candidates := []*domain.Candidate{}
	for rows.Next() {
		var c domain.Candidate
		var department, status string
		err := rows.Scan(
			&c.ID,
			&c.FullName,
			&c.Email,
			&c.Phone,
			&c.DateOfBirth,
			&c.YearsOfExperience,
			&department,
			&c.ResumePath,
			&status,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan candidate row", slog.String("error", err.Error()))
			return nil, err
		}
		c.Department = domain.Department(department)
		c.CurrentStatus = domain.ApplicationStatus(status)
		candidates = append(candidates, &c)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}
	return candidates, nil
}

// escapeLike escapes the ILIKE wildcard characters in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
