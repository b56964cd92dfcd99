package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/satmock-platform/exam-service/internal/models"
	"github.com/satmock-platform/exam-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestExamService_GetWithQuestions(t *testing.T) {
	examID := uuid.New()

	t.Run("returns active exam", func(t *testing.T) {
		repo := newMockRepository()

		exam := &models.Exam{
			ID:       examID,
			Code:     "SAT-2026-A",
			Title:    "Practice Test A",
			IsActive: true,
			Questions: []models.Question{
				{ID: uuid.New(), ExamID: examID, Section: models.SectionMath, Module: 1},
			},
		}
		repo.examRepo.On("GetByIDWithQuestions", mock.Anything, examID).Return(exam, nil)

		service := NewExamService(repo, nil, testLogger())

		result, err := service.GetWithQuestions(context.Background(), examID)

		assert.NoError(t, err)
		assert.Equal(t, examID, result.ID)
		assert.Len(t, result.Questions, 1)
	})

	t.Run("inactive exam is treated as absent", func(t *testing.T) {
		repo := newMockRepository()

		repo.examRepo.On("GetByIDWithQuestions", mock.Anything, examID).Return(&models.Exam{
			ID:       examID,
			IsActive: false,
		}, nil)

		service := NewExamService(repo, nil, testLogger())

		_, err := service.GetWithQuestions(context.Background(), examID)

		assert.ErrorIs(t, err, ErrExamNotFound)
	})

	t.Run("missing exam", func(t *testing.T) {
		repo := newMockRepository()

		repo.examRepo.On("GetByIDWithQuestions", mock.Anything, examID).Return(nil, gorm.ErrRecordNotFound)

		service := NewExamService(repo, nil, testLogger())

		_, err := service.GetWithQuestions(context.Background(), examID)

		assert.ErrorIs(t, err, ErrExamNotFound)
	})
}

func TestExamService_ListForStudent(t *testing.T) {
	studentID := uuid.New()

	startedExamID := uuid.New()
	completedExamID := uuid.New()
	untouchedExamID := uuid.New()

	exams := []*models.Exam{
		{ID: startedExamID, Code: "SAT-A", Title: "Test A"},
		{ID: completedExamID, Code: "SAT-B", Title: "Test B"},
		{ID: untouchedExamID, Code: "SAT-C", Title: "Test C"},
	}

	score := 980
	endedAt := time.Now()
	attempts := []*models.ExamAttempt{
		{ID: uuid.New(), ExamID: startedExamID, StudentID: studentID, Status: models.AttemptInProgress},
		{ID: uuid.New(), ExamID: completedExamID, StudentID: studentID, Status: models.AttemptCompleted, Score: &score, EndedAt: &endedAt},
	}

	repo := newMockRepository()
	repo.examRepo.On("List", mock.Anything, mock.MatchedBy(func(f repositories.ExamFilters) bool {
		return f.ActiveOnly
	})).Return(exams, int64(3), nil)
	repo.attemptRepo.On("GetByStudent", mock.Anything, studentID, mock.Anything).Return(attempts, int64(2), nil)
	for _, exam := range exams {
		repo.questionRepo.On("GetByExam", mock.Anything, exam.ID).Return([]*models.Question{{}, {}}, nil)
	}

	service := NewExamService(repo, nil, testLogger())

	result, err := service.ListForStudent(context.Background(), studentID)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), result.Total)
	assert.Len(t, result.Exams, 3)

	byCode := make(map[string]ExamSummary)
	for _, summary := range result.Exams {
		byCode[summary.Code] = summary
	}

	assert.Equal(t, models.AttemptInProgress, byCode["SAT-A"].AttemptStatus)
	assert.Nil(t, byCode["SAT-A"].Score)

	assert.Equal(t, models.AttemptCompleted, byCode["SAT-B"].AttemptStatus)
	assert.Equal(t, &score, byCode["SAT-B"].Score)

	assert.Equal(t, models.AttemptNotStarted, byCode["SAT-C"].AttemptStatus)
	assert.Nil(t, byCode["SAT-C"].AttemptID)

	assert.Equal(t, 2, byCode["SAT-A"].QuestionCount)
}
