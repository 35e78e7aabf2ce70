// Package notification defines the contract with the external email
// notifier. The workflows hand a Message to the task runner after
// commit; delivery outcome is consumed only for logging and never
// affects an already-committed workflow result.
package notification

import "context"

// Template identifiers for the messages the workflows send.
const (
	TemplateRegistrationConfirmation = "registration_confirmation"
	TemplateStatusUpdate             = "status_update"
)

// Message is one notification request: a template, its context values,
// and the recipient.
type Message struct {
	Template       string
	Context        map[string]string
	Subject        string
	RecipientEmail string
	RecipientName  string
}

// Notifier attempts delivery of a message. Implementations may block;
// callers dispatch through the task runner to keep workflows
// fire-and-forget.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
