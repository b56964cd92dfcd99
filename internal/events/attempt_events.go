package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of attempt lifecycle events
type EventType string

const (
	EventAttemptStarted   EventType = "attempt.started"
	EventAttemptCompleted EventType = "attempt.completed"
)

// AttemptEvent is the base event structure for all attempt lifecycle events
type AttemptEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Attempt event payloads

type AttemptStartedEvent struct {
	AttemptID uuid.UUID `json:"attempt_id"`
	ExamID    uuid.UUID `json:"exam_id"`
	ExamTitle string    `json:"exam_title"`
	StudentID uuid.UUID `json:"student_id"`
	StartedAt time.Time `json:"started_at"`
}

type AttemptCompletedEvent struct {
	AttemptID  uuid.UUID `json:"attempt_id"`
	ExamID     uuid.UUID `json:"exam_id"`
	StudentID  uuid.UUID `json:"student_id"`
	EndedAt    time.Time `json:"ended_at"`
	TotalScore int       `json:"total_score"`
	RwScore    int       `json:"rw_score"`
	MathScore  int       `json:"math_score"`
}

// Event factory functions

func NewAttemptStartedEvent(attemptID, examID uuid.UUID, examTitle string, studentID uuid.UUID, startedAt time.Time) *AttemptEvent {
	return &AttemptEvent{
		ID:        generateEventID(),
		Type:      EventAttemptStarted,
		Timestamp: time.Now(),
		Source:    "exam-service",
		Version:   "1.0",
		Data: AttemptStartedEvent{
			AttemptID: attemptID,
			ExamID:    examID,
			ExamTitle: examTitle,
			StudentID: studentID,
			StartedAt: startedAt,
		},
	}
}

func NewAttemptCompletedEvent(attemptID, examID, studentID uuid.UUID, endedAt time.Time, total, rw, math int) *AttemptEvent {
	return &AttemptEvent{
		ID:        generateEventID(),
		Type:      EventAttemptCompleted,
		Timestamp: time.Now(),
		Source:    "exam-service",
		Version:   "1.0",
		Data: AttemptCompletedEvent{
			AttemptID:  attemptID,
			ExamID:     examID,
			StudentID:  studentID,
			EndedAt:    endedAt,
			TotalScore: total,
			RwScore:    rw,
			MathScore:  math,
		},
	}
}

func generateEventID() string {
	return uuid.NewString()
}
