package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hrsys/candidate-api/internal/notification"
)

// Delivery retry contract with the notifier.
const (
	// emailMaxAttempts bounds delivery attempts per message.
	emailMaxAttempts = 3

	// emailRetryDelay is the pause between attempts.
	emailRetryDelay = time.Minute
)

// EmailTask delivers one notification message with bounded retries.
type EmailTask struct {
	id         uuid.UUID
	notifier   notification.Notifier
	message    notification.Message
	retryDelay time.Duration
}

// NewEmailTask creates a task that delivers msg through the notifier.
func NewEmailTask(notifier notification.Notifier, msg notification.Message) (*EmailTask, error) {
	if notifier == nil {
		return nil, fmt.Errorf("notifier cannot be nil")
	}
	if msg.RecipientEmail == "" {
		return nil, fmt.Errorf("recipient email cannot be empty")
	}
	return &EmailTask{
		id:         uuid.New(),
		notifier:   notifier,
		message:    msg,
		retryDelay: emailRetryDelay,
	}, nil
}

// ID implements Task.ID.
func (t *EmailTask) ID() uuid.UUID {
	return t.id
}

// Type implements Task.Type.
func (t *EmailTask) Type() string {
	return TaskTypeEmail
}

// Execute implements Task.Execute. It attempts delivery up to three
// times, pausing between attempts, and returns the last error when all
// attempts fail.
func (t *EmailTask) Execute(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= emailMaxAttempts; attempt++ {
		lastErr = t.notifier.Send(ctx, t.message)
		if lastErr == nil {
			return nil
		}
		if attempt == emailMaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(t.retryDelay):
		}
	}
	return fmt.Errorf("email delivery failed after %d attempts: %w", emailMaxAttempts, lastErr)
}
