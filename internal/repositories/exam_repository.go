package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/satmock-platform/exam-service/internal/models"
)

// ExamRepository reads the exam catalog. The attempt core never writes to
// it; authoring happens in a separate admin surface.
type ExamRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Exam, error)
	GetByIDWithQuestions(ctx context.Context, id uuid.UUID) (*models.Exam, error)
	List(ctx context.Context, filters ExamFilters) ([]*models.Exam, int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// QuestionRepository is the read-only Question Store: question ID → section,
// module, choices, correct answer.
type QuestionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Question, error)
	GetByExam(ctx context.Context, examID uuid.UUID) ([]*models.Question, error)
}
