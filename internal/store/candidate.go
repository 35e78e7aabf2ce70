package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/hrsys/candidate-api/internal/domain"
)

// Candidate ordering keys accepted by ListParams. A leading "-" on the
// query value selects descending order.
const (
	OrderCandidatesByCreatedAt  = "created_at"
	OrderCandidatesByFullName   = "full_name"
	OrderCandidatesByExperience = "years_of_experience"
)

// CandidateListParams carries the filter, ordering, and pagination
// options of the admin candidate listing. Zero values mean "no filter".
type CandidateListParams struct {
	Department domain.Department
	Status     domain.ApplicationStatus
	// FullName matches exactly; NameContains and NamePrefix match
	// case-insensitively.
	FullName     string
	NameContains string
	NamePrefix   string
	// Email matches exactly; EmailContains matches case-insensitively.
	Email         string
	EmailContains string
	// OrderBy is one of the OrderCandidatesBy* keys; Descending flips
	// the direction. The default is created_at descending.
	OrderBy    string
	Descending bool
	Limit      int
	Offset     int
}

// CandidateStore defines the interface for candidate persistence.
type CandidateStore interface {
	// Create saves a new candidate.
	// Returns ErrEmailExists or ErrPhoneExists when the corresponding
	// uniqueness constraint is violated.
	Create(ctx context.Context, candidate *domain.Candidate) error

	// GetByID retrieves a candidate by ID.
	// Returns ErrCandidateNotFound if no candidate matches.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error)

	// GetByIDForUpdate retrieves a candidate by ID and takes a row lock
	// for the remainder of the enclosing transaction, serializing
	// concurrent status updates against the same candidate.
	// Returns ErrCandidateNotFound if no candidate matches.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Candidate, error)

	// GetByEmail retrieves a candidate by exact email.
	// Returns ErrCandidateNotFound if no candidate matches.
	GetByEmail(ctx context.Context, email string) (*domain.Candidate, error)

	// UpdateStatus sets the candidate's current status and updated
	// timestamp. No other column is ever mutated after creation.
	// Returns ErrCandidateNotFound if no candidate matches.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus, updatedAt time.Time) error

	// List retrieves candidates matching the given params.
	List(ctx context.Context, params CandidateListParams) ([]*domain.Candidate, error)

	// WithTx returns a CandidateStore bound to the given transaction so
	// multiple operations can share one atomic unit of work.
	WithTx(tx *sql.Tx) CandidateStore
}
