package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/hrsys/candidate-api/internal/domain"
)

// History ordering keys accepted by HistoryListParams.
const (
	OrderHistoryByCreatedAt = "created_at"
	OrderHistoryByNewStatus = "new_status"
)

// HistoryListParams carries the filter, ordering, and pagination
// options of the admin status-history listing. Zero values mean "no
// filter".
type HistoryListParams struct {
	CandidateID uuid.UUID
	Status      domain.ApplicationStatus
	// AdminNameContains matches case-insensitively.
	AdminNameContains string
	CreatedAfter      time.Time
	CreatedBefore     time.Time
	OrderBy           string
	Descending        bool
	Limit             int
	Offset            int
}

// StatusHistoryStore defines the interface for the append-only audit
// trail. There is deliberately no update or delete operation.
type StatusHistoryStore interface {
	// Create appends one audit row.
	Create(ctx context.Context, history *domain.StatusHistory) error

	// ListByCandidate retrieves every history row for a candidate,
	// newest first.
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*domain.StatusHistory, error)

	// List retrieves history rows matching the given params.
	List(ctx context.Context, params HistoryListParams) ([]*domain.StatusHistory, error)

	// WithTx returns a StatusHistoryStore bound to the given transaction.
	WithTx(tx *sql.Tx) StatusHistoryStore
}
