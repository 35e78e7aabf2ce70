package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrsys/candidate-api/internal/notification"
)

// countingNotifier fails the first failures sends and succeeds after.
type countingNotifier struct {
	mu       sync.Mutex
	calls    int
	failures int
}

func (n *countingNotifier) Send(ctx context.Context, msg notification.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	if n.calls <= n.failures {
		return errors.New("smtp unavailable")
	}
	return nil
}

func testMessage() notification.Message {
	return notification.Message{
		Template:       notification.TemplateRegistrationConfirmation,
		Subject:        "Application Received - HR System",
		RecipientEmail: "jane@example.com",
		RecipientName:  "Jane Doe",
	}
}

func TestNewEmailTask(t *testing.T) {
	t.Parallel()

	task, err := NewEmailTask(&countingNotifier{}, testMessage())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, task.ID())
	assert.Equal(t, TaskTypeEmail, task.Type())

	_, err = NewEmailTask(nil, testMessage())
	assert.Error(t, err)

	msg := testMessage()
	msg.RecipientEmail = ""
	_, err = NewEmailTask(&countingNotifier{}, msg)
	assert.Error(t, err)
}

func TestEmailTaskSucceedsFirstAttempt(t *testing.T) {
	t.Parallel()
	notifier := &countingNotifier{}
	task, err := NewEmailTask(notifier, testMessage())
	require.NoError(t, err)

	require.NoError(t, task.Execute(context.Background()))
	assert.Equal(t, 1, notifier.calls)
}

func TestEmailTaskRetriesThenSucceeds(t *testing.T) {
	t.Parallel()
	notifier := &countingNotifier{failures: 2}
	task, err := NewEmailTask(notifier, testMessage())
	require.NoError(t, err)
	task.retryDelay = time.Millisecond

	require.NoError(t, task.Execute(context.Background()))
	assert.Equal(t, 3, notifier.calls)
}

func TestEmailTaskGivesUpAfterThreeAttempts(t *testing.T) {
	t.Parallel()
	notifier := &countingNotifier{failures: 10}
	task, err := NewEmailTask(notifier, testMessage())
	require.NoError(t, err)
	task.retryDelay = time.Millisecond

	err = task.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, 3, notifier.calls)
}

func TestEmailTaskStopsOnContextCancellation(t *testing.T) {
	t.Parallel()
	notifier := &countingNotifier{failures: 10}
	task, err := NewEmailTask(notifier, testMessage())
	require.NoError(t, err)
	task.retryDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = task.Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, notifier.calls)
}
