package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// FieldErrors wraps this so callers can detect the class with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition is the class of all status transition
	// rejections. TransitionError wraps this.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// FieldErrors maps a field name to the human-readable reasons it was
// rejected. It is the canonical shape of a recoverable validation
// failure: callers correct the named fields and resubmit.
type FieldErrors map[string][]string

// Add appends a reason for the given field.
func (e FieldErrors) Add(field, reason string) {
	e[field] = append(e[field], reason)
}

// Merge copies all reasons from other into e.
func (e FieldErrors) Merge(other FieldErrors) {
	for field, reasons := range other {
		e[field] = append(e[field], reasons...)
	}
}

// Error implements the error interface. Field names are sorted so the
// message is deterministic.
func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return ErrValidation.Error()
	}
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e[field], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Unwrap lets errors.Is(err, ErrValidation) match any FieldErrors.
func (e FieldErrors) Unwrap() error {
	return ErrValidation
}

// NewFieldError creates a FieldErrors with a single rejected field.
func NewFieldError(field, reason string) FieldErrors {
	fe := FieldErrors{}
	fe.Add(field, reason)
	return fe
}

// TransitionError reports a status change not permitted by the
// transition table. Valid holds the targets reachable from From; it is
// empty when From is terminal.
type TransitionError struct {
	From  ApplicationStatus
	To    ApplicationStatus
	Valid []ApplicationStatus
}

// Error implements the error interface.
func (e *TransitionError) Error() string {
	if len(e.Valid) == 0 {
		return fmt.Sprintf(
			"cannot transition from %s to %s. Valid transitions: no valid transitions",
			e.From, e.To,
		)
	}
	targets := make([]string, len(e.Valid))
	for i, s := range e.Valid {
		targets[i] = string(s)
	}
	return fmt.Sprintf(
		"cannot transition from %s to %s. Valid transitions: %s",
		e.From, e.To, strings.Join(targets, ", "),
	)
}

// Unwrap lets errors.Is(err, ErrInvalidTransition) match.
func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// NewTransitionError builds a TransitionError for the given pair,
// capturing the currently valid targets from the transition table.
func NewTransitionError(from, to ApplicationStatus) *TransitionError {
	return &TransitionError{From: from, To: to, Valid: ValidTransitions(from)}
}
