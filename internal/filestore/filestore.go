// Package filestore defines the contract with the resume storage
// collaborator: accept a binary payload at registration time, return a
// retrievable reference.
package filestore

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/hrsys/candidate-api/internal/domain"
)

// FileStore stores resume files and resolves stored references to
// public URLs.
type FileStore interface {
	// Save writes the resume content and returns the storage reference
	// recorded on the candidate.
	Save(
		ctx context.Context,
		department domain.Department,
		candidateID uuid.UUID,
		filename string,
		content io.Reader,
	) (string, error)

	// URL resolves a storage reference to a retrievable URL.
	URL(ref string) string

	// Remove deletes a stored file. Used to clean up when registration
	// fails after the resume was already written.
	Remove(ctx context.Context, ref string) error
}
