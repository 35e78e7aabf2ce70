package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/hrsys/candidate-api/internal/domain"
	"github.com/hrsys/candidate-api/internal/platform/logger"
	"github.com/hrsys/candidate-api/internal/store"
)

const historyColumns = `id, candidate_id, previous_status, new_status,
	feedback, admin_name, admin_email, created_at`

// StatusHistoryStore implements store.StatusHistoryStore using
// PostgreSQL. Rows are append-only; this type exposes no update or
// delete path.
type StatusHistoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewStatusHistoryStore creates a PostgreSQL implementation of the
// StatusHistoryStore interface. A nil logger falls back to the default.
func NewStatusHistoryStore(db store.DBTX, logger *slog.Logger) *StatusHistoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusHistoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "status_history_store")),
	}
}

var _ store.StatusHistoryStore = (*StatusHistoryStore)(nil)

// WithTx returns a StatusHistoryStore bound to the given transaction.
func (s *StatusHistoryStore) WithTx(tx *sql.Tx) store.StatusHistoryStore {
	return &StatusHistoryStore{db: tx, logger: s.logger}
}

// Create implements store.StatusHistoryStore.Create.
func (s *StatusHistoryStore) Create(ctx context.Context, history *domain.StatusHistory) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := history.Validate(); err != nil {
		log.Warn("history validation failed during create",
			slog.String("error", err.Error()),
			slog.String("history_id", history.ID.String()))
		return err
	}

	var previous *string
	if history.PreviousStatus != nil {
		v := string(*history.PreviousStatus)
		previous = &v
	}

	query := `
		INSERT INTO status_history (id, candidate_id, previous_status,
			new_status, feedback, admin_name, admin_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		history.ID,
		history.CandidateID,
		previous,
		history.NewStatus,
		history.Feedback,
		history.AdminName,
		history.AdminEmail,
		history.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during history creation",
				slog.String("error", err.Error()),
				slog.String("candidate_id", history.CandidateID.String()))
			return fmt.Errorf("%w: candidate %s", store.ErrCandidateNotFound, history.CandidateID)
		}
		log.Error("failed to create status history",
			slog.String("error", err.Error()),
			slog.String("history_id", history.ID.String()))
		return MapError(err)
	}

	log.Info("status history created",
		slog.String("history_id", history.ID.String()),
		slog.String("candidate_id", history.CandidateID.String()),
		slog.String("new_status", string(history.NewStatus)))
	return nil
}

// ListByCandidate implements store.StatusHistoryStore.ListByCandidate.
// Rows come back newest first, the display order of the audit trail.
func (s *StatusHistoryStore) ListByCandidate(
	ctx context.Context,
	candidateID uuid.UUID,
) ([]*domain.StatusHistory, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM status_history
		WHERE candidate_id = $1
		ORDER BY created_at DESC
	`, historyColumns)
	return s.query(ctx, query, candidateID)
}

var historyOrderColumns = map[string]string{
	store.OrderHistoryByCreatedAt: "created_at",
	store.OrderHistoryByNewStatus: "new_status",
}

// List implements store.StatusHistoryStore.List.
func (s *StatusHistoryStore) List(
	ctx context.Context,
	params store.HistoryListParams,
) ([]*domain.StatusHistory, error) {
	var (
		conditions []string
		args       []any
	)
	addCondition := func(clause string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if params.CandidateID != uuid.Nil {
		addCondition("candidate_id = $%d", params.CandidateID)
	}
	if params.Status != "" {
		addCondition("new_status = $%d", params.Status)
	}
	if params.AdminNameContains != "" {
		addCondition("admin_name ILIKE $%d", "%"+escapeLike(params.AdminNameContains)+"%")
	}
	if !params.CreatedAfter.IsZero() {
		addCondition("created_at >= $%d", params.CreatedAfter)
	}
	if !params.CreatedBefore.IsZero() {
		addCondition("created_at <= $%d", params.CreatedBefore)
	}

	query := fmt.Sprintf(`SELECT %s FROM status_history`, historyColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	orderColumn, ok := historyOrderColumns[params.OrderBy]
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

	return s.query(ctx, query, args...)
}

func (s *StatusHistoryStore) query(ctx context.Context, query string, args ...any) ([]*domain.StatusHistory, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query status history", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	entries := []*domain.StatusHistory{}
	for rows.Next() {
		var h domain.StatusHistory
		var previous sql.NullString
		var newStatus string
		err := rows.Scan(
			&h.ID,
			&h.CandidateID,
			&previous,
			&newStatus,
			&h.Feedback,
			&h.AdminName,
			&h.AdminEmail,
			&h.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan history row", slog.String("error", err.Error()))
			return nil, err
		}
		if previous.Valid {
			status := domain.ApplicationStatus(previous.String)
			h.PreviousStatus = &status
		}
		h.NewStatus = domain.ApplicationStatus(newStatus)
		entries = append(entries, &h)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}
	return entries, nil
}
