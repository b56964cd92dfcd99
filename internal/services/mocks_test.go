package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/satmock-platform/exam-service/internal/models"
	"github.com/satmock-platform/exam-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// MockRepository aggregates the repository mocks behind the Repository interface
type MockRepository struct {
	examRepo     *MockExamRepository
	questionRepo *MockQuestionRepository
	attemptRepo  *MockAttemptRepository
	responseRepo *MockResponseRepository
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		examRepo:     &MockExamRepository{},
		questionRepo: &MockQuestionRepository{},
		attemptRepo:  &MockAttemptRepository{},
		responseRepo: &MockResponseRepository{},
	}
}

func (m *MockRepository) Exam() repositories.ExamRepository         { return m.examRepo }
func (m *MockRepository) Question() repositories.QuestionRepository { return m.questionRepo }
func (m *MockRepository) Attempt() repositories.AttemptRepository   { return m.attemptRepo }
func (m *MockRepository) Response() repositories.ResponseRepository { return m.responseRepo }

// MockExamRepository is a mock implementation of ExamRepository
type MockExamRepository struct {
	mock.Mock
}

func (m *MockExamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Exam, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exam), args.Error(1)
}

func (m *MockExamRepository) GetByIDWithQuestions(ctx context.Context, id uuid.UUID) (*models.Exam, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exam), args.Error(1)
}

func (m *MockExamRepository) List(ctx context.Context, filters repositories.ExamFilters) ([]*models.Exam, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Exam), args.Get(1).(int64), args.Error(2)
}

func (m *MockExamRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockQuestionRepository is a mock implementation of QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByExam(ctx context.Context, examID uuid.UUID) ([]*models.Question, error) {
	args := m.Called(ctx, examID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Question), args.Error(1)
}

// MockAttemptRepository is a mock implementation of AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) CreateIfAbsent(ctx context.Context, attempt *models.ExamAttempt) (*models.ExamAttempt, bool, error) {
	args := m.Called(ctx, attempt)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.ExamAttempt), args.Bool(1), args.Error(2)
}

func (m *MockAttemptRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ExamAttempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetByIDWithDetails(ctx context.Context, id uuid.UUID) (*models.ExamAttempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetByStudentAndExam(ctx context.Context, studentID, examID uuid.UUID) (*models.ExamAttempt, error) {
	args := m.Called(ctx, studentID, examID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetByStudent(ctx context.Context, studentID uuid.UUID, filters repositories.AttemptFilters) ([]*models.ExamAttempt, int64, error) {
	args := m.Called(ctx, studentID, filters)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.ExamAttempt), args.Get(1).(int64), args.Error(2)
}

func (m *MockAttemptRepository) Complete(ctx context.Context, id uuid.UUID, endedAt time.Time, scores repositories.AttemptScores) error {
	args := m.Called(ctx, id, endedAt, scores)
	return args.Error(0)
}

func (m *MockAttemptRepository) UpdatePosition(ctx context.Context, id uuid.UUID, section models.ExamSection, module int) error {
	args := m.Called(ctx, id, section, module)
	return args.Error(0)
}

// MockResponseRepository is a mock implementation of ResponseRepository
type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) Upsert(ctx context.Context, response *models.Response) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}

func (m *MockResponseRepository) GetByAttempt(ctx context.Context, attemptID uuid.UUID) ([]*models.Response, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Response), args.Error(1)
}

func (m *MockResponseRepository) GetByAttemptWithQuestions(ctx context.Context, attemptID uuid.UUID) ([]*models.Response, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Response), args.Error(1)
}

func (m *MockResponseRepository) GetByAttemptAndQuestion(ctx context.Context, attemptID, questionID uuid.UUID) (*models.Response, error) {
	args := m.Called(ctx, attemptID, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Response), args.Error(1)
}

func (m *MockResponseRepository) CountByAttempt(ctx context.Context, attemptID uuid.UUID) (int64, error) {
	args := m.Called(ctx, attemptID)
	return args.Get(0).(int64), args.Error(1)
}

// MockExamService is a mock implementation of ExamService
type MockExamService struct {
	mock.Mock
}

func (m *MockExamService) GetWithQuestions(ctx context.Context, examID uuid.UUID) (*models.Exam, error) {
	args := m.Called(ctx, examID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exam), args.Error(1)
}

func (m *MockExamService) ListForStudent(ctx context.Context, studentID uuid.UUID) (*ExamListResponse, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ExamListResponse), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
