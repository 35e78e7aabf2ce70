package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store. Entity-specific variants wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a
	// uniqueness constraint. Field-specific variants wrap it.
	ErrDuplicate = errors.New("entity already exists")

	// ErrTransactionFailed is returned when a transaction fails to
	// begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrCandidateNotFound indicates the requested candidate does not exist.
	ErrCandidateNotFound = fmt.Errorf("%w: candidate", ErrNotFound)

	// ErrEmailExists indicates a candidate with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrPhoneExists indicates a candidate with the given phone already exists.
	ErrPhoneExists = fmt.Errorf("%w: phone", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of uniqueness
// violation.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
