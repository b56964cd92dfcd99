package events

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewAttemptCompletedEvent(t *testing.T) {
	attemptID := uuid.New()
	examID := uuid.New()
	studentID := uuid.New()
	endedAt := time.Now()

	event := NewAttemptCompletedEvent(attemptID, examID, studentID, endedAt, 570, 320, 250)

	assert.Equal(t, EventAttemptCompleted, event.Type)
	assert.Equal(t, "exam-service", event.Source)
	assert.NotEmpty(t, event.ID)

	payload, ok := event.Data.(AttemptCompletedEvent)
	assert.True(t, ok)
	assert.Equal(t, attemptID, payload.AttemptID)
	assert.Equal(t, 570, payload.TotalScore)
	assert.Equal(t, 320, payload.RwScore)
	assert.Equal(t, 250, payload.MathScore)
}

func TestEventIDsAreUnique(t *testing.T) {
	a := NewAttemptStartedEvent(uuid.New(), uuid.New(), "Test", uuid.New(), time.Now())
	b := NewAttemptStartedEvent(uuid.New(), uuid.New(), "Test", uuid.New(), time.Now())

	assert.NotEqual(t, a.ID, b.ID)
}

func TestMockEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := NewMockEventPublisher(logger)

	event := NewAttemptStartedEvent(uuid.New(), uuid.New(), "Test", uuid.New(), time.Now())
	err := publisher.PublishAttemptEvent(context.Background(), event)

	assert.NoError(t, err)
	assert.Len(t, publisher.GetPublishedEvents(), 1)

	publisher.ClearEvents()
	assert.Empty(t, publisher.GetPublishedEvents())
}
