// Package task provides the background task runner the workflows hand
// post-commit work to. Dispatch is fire-and-forget: a task's outcome is
// logged but never propagated back to the workflow that submitted it.
package task

import (
	"context"

	"github.com/google/uuid"
)

// Task type identifiers.
const (
	// TaskTypeEmail represents the task type for notification emails.
	TaskTypeEmail = "email"
)

// Task represents a unit of background work to be processed.
type Task interface {
	// ID returns the task's unique identifier.
	ID() uuid.UUID

	// Type returns the task type identifier.
	Type() string

	// Execute runs the task logic.
	Execute(ctx context.Context) error
}
