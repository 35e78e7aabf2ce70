package service

import (
	"errors"
	"fmt"
)

// Common sentinel errors for the candidate service.
var (
	// ErrResumeNotFound indicates the candidate has no stored resume.
	ErrResumeNotFound = errors.New("resume not found")
)

// CandidateServiceError wraps unexpected failures from the candidate
// service with the operation that produced them. Recoverable outcomes
// (field validation, transitions, not-found) are returned as their
// domain/store error types, never wrapped in this.
type CandidateServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *CandidateServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("candidate service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("candidate service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CandidateServiceError) Unwrap() error {
	return e.Err
}
