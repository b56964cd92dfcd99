package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/satmock-platform/exam-service/internal/models"
)

// AttemptScores carries the three score fields that are persisted together
// with the completed status. There is never a state where some are written
// and others are not.
type AttemptScores struct {
	Total          int
	ReadingWriting int
	Math           int
}

// AttemptRepository persists exam attempts. All cross-instance coordination
// happens here, through the database, never through in-process locks.
type AttemptRepository interface {
	// CreateIfAbsent inserts the attempt unless a row for its
	// (student_id, exam_id) pair already exists, in which case the existing
	// row is returned unchanged. The boolean reports whether this call
	// created the row. Concurrent first-time starts both succeed and
	// observe the same attempt ID.
	CreateIfAbsent(ctx context.Context, attempt *models.ExamAttempt) (*models.ExamAttempt, bool, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.ExamAttempt, error)
	GetByIDWithDetails(ctx context.Context, id uuid.UUID) (*models.ExamAttempt, error)
	GetByStudentAndExam(ctx context.Context, studentID, examID uuid.UUID) (*models.ExamAttempt, error)
	GetByStudent(ctx context.Context, studentID uuid.UUID, filters AttemptFilters) ([]*models.ExamAttempt, int64, error)

	// Complete marks the attempt completed and writes end time plus all
	// three scores in a single UPDATE. Calling it on an already completed
	// attempt overwrites the stored scores (idempotent finish).
	Complete(ctx context.Context, id uuid.UUID, endedAt time.Time, scores AttemptScores) error

	// UpdatePosition records the client-reported section/module cursor.
	UpdatePosition(ctx context.Context, id uuid.UUID, section models.ExamSection, module int) error
}

// ResponseRepository is the durable response ledger.
type ResponseRepository interface {
	// Upsert inserts the response or, when a row for the
	// (attempt_id, question_id) pair exists, replaces selected_answer and
	// is_correct and adds time_spent_seconds to the stored accumulator.
	// The addition happens in the database so concurrent submissions for
	// the same question never lose an increment.
	Upsert(ctx context.Context, response *models.Response) error

	GetByAttempt(ctx context.Context, attemptID uuid.UUID) ([]*models.Response, error)
	// GetByAttemptWithQuestions joins each response to its question so the
	// scoring engine can see section tags. Responses whose question no
	// longer resolves keep a nil Question.
	GetByAttemptWithQuestions(ctx context.Context, attemptID uuid.UUID) ([]*models.Response, error)
	GetByAttemptAndQuestion(ctx context.Context, attemptID, questionID uuid.UUID) (*models.Response, error)
	CountByAttempt(ctx context.Context, attemptID uuid.UUID) (int64, error)
}
