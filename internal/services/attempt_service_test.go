package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/satmock-platform/exam-service/internal/events"
	"github.com/satmock-platform/exam-service/internal/models"
	"github.com/satmock-platform/exam-service/internal/repositories"
	"github.com/satmock-platform/exam-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newAttemptServiceForTest(repo *MockRepository, examSvc *MockExamService, publisher *events.MockEventPublisher) AttemptService {
	logger := testLogger()
	if publisher == nil {
		publisher = events.NewMockEventPublisher(logger)
	}
	return NewAttemptService(repo, examSvc, publisher, logger, validator.New())
}

func TestAttemptService_Start(t *testing.T) {
	examID := uuid.New()
	studentID := uuid.New()

	exam := &models.Exam{
		ID:       examID,
		Code:     "SAT-2026-A",
		Title:    "Practice Test A",
		IsActive: true,
		Questions: []models.Question{
			{ID: uuid.New(), ExamID: examID, Section: models.SectionReadingWriting, Module: 1, Text: "Q1", CorrectAnswer: "B"},
			{ID: uuid.New(), ExamID: examID, Section: models.SectionMath, Module: 1, Text: "Q2", CorrectAnswer: "C"},
		},
	}

	t.Run("creates new attempt", func(t *testing.T) {
		repo := newMockRepository()
		examSvc := &MockExamService{}
		publisher := events.NewMockEventPublisher(testLogger())

		examSvc.On("GetWithQuestions", mock.Anything, examID).Return(exam, nil)
		repo.attemptRepo.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(a *models.ExamAttempt) bool {
			return a.ExamID == examID && a.StudentID == studentID && a.Status == models.AttemptInProgress
		})).Return(&models.ExamAttempt{
			ID:        uuid.New(),
			ExamID:    examID,
			StudentID: studentID,
			Status:    models.AttemptInProgress,
			StartedAt: time.Now(),
		}, true, nil)

		service := newAttemptServiceForTest(repo, examSvc, publisher)

		result, err := service.Start(context.Background(), examID, studentID)

		assert.NoError(t, err)
		assert.False(t, result.Resumed)
		assert.Len(t, result.Questions, 2)
		assert.Len(t, publisher.GetPublishedEvents(), 1)
		assert.Equal(t, events.EventAttemptStarted, publisher.GetPublishedEvents()[0].Type)
		repo.attemptRepo.AssertExpectations(t)
	})

	t.Run("returns existing attempt unchanged", func(t *testing.T) {
		repo := newMockRepository()
		examSvc := &MockExamService{}
		publisher := events.NewMockEventPublisher(testLogger())

		existing := &models.ExamAttempt{
			ID:        uuid.New(),
			ExamID:    examID,
			StudentID: studentID,
			Status:    models.AttemptInProgress,
			StartedAt: time.Now().Add(-10 * time.Minute),
		}

		examSvc.On("GetWithQuestions", mock.Anything, examID).Return(exam, nil)
		repo.attemptRepo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(existing, false, nil)

		service := newAttemptServiceForTest(repo, examSvc, publisher)

		result, err := service.Start(context.Background(), examID, studentID)

		assert.NoError(t, err)
		assert.True(t, result.Resumed)
		assert.Equal(t, existing.ID, result.AttemptID)
		assert.Empty(t, publisher.GetPublishedEvents(), "resume must not publish a started event")
	})

	t.Run("unknown exam", func(t *testing.T) {
		repo := newMockRepository()
		examSvc := &MockExamService{}

		examSvc.On("GetWithQuestions", mock.Anything, examID).Return(nil, ErrExamNotFound)

		service := newAttemptServiceForTest(repo, examSvc, nil)

		_, err := service.Start(context.Background(), examID, studentID)

		assert.ErrorIs(t, err, ErrExamNotFound)
	})
}

func TestAttemptService_SubmitAnswer(t *testing.T) {
	examID := uuid.New()
	studentID := uuid.New()
	attemptID := uuid.New()
	questionID := uuid.New()

	activeAttempt := &models.ExamAttempt{
		ID:        attemptID,
		ExamID:    examID,
		StudentID: studentID,
		Status:    models.AttemptInProgress,
		StartedAt: time.Now(),
	}

	question := &models.Question{
		ID:            questionID,
		ExamID:        examID,
		Section:       models.SectionMath,
		Module:        1,
		CorrectAnswer: "B",
	}

	t.Run("correct answer recorded", func(t *testing.T) {
		repo := newMockRepository()

		repo.attemptRepo.On("GetByID", mock.Anything, attemptID).Return(activeAttempt, nil)
		repo.questionRepo.On("GetByID", mock.Anything, questionID).Return(question, nil)
		repo.responseRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(r *models.Response) bool {
			return r.AttemptID == attemptID &&
				r.QuestionID == questionID &&
				r.SelectedAnswer == "B" &&
				r.IsCorrect &&
				r.TimeSpentSeconds == 42
		})).Return(nil)

		service := newAttemptServiceForTest(repo, &MockExamService{}, nil)

		err := service.SubmitAnswer(context.Background(), attemptID, &SubmitAnswerRequest{
			QuestionID:       questionID,
			SelectedAnswer:   "B",
			TimeSpentSeconds: 42,
		}, studentID)

		assert.NoError(t, err)
		repo.responseRepo.AssertExpectations(t)
	})

	t.Run("wrong answer graded incorrect", func(t *testing.T) {
		repo := newMockRepository()

		repo.attemptRepo.On("GetByID", mock.Anything, attemptID).Return(activeAttempt, nil)
		repo.questionRepo.On("GetByID", mock.Anything, questionID).Return(question, nil)
		repo.responseRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(r *models.Response) bool {
			return !r.IsCorrect && r.SelectedAnswer == "D"
		})).Return(nil)

		service := newAttemptServiceForTest(repo, &MockExamService{}, nil)

		err := service.SubmitAnswer(context.Background(), attemptID, &SubmitAnswerRequest{
			QuestionID:     questionID,
			SelectedAnswer: "D",
		}, studentID)

		assert.NoError(t, err)
	})

	t.Run("unknown question graded incorrect but accepted", func(t *testing.T) {
		repo := newMockRepository()

		repo.attemptRepo.On("GetByID", mock.Anything, attemptID).Return(activeAttempt, nil)
		repo.questionRepo.On("GetByID", mock.Anything, questionID).Return(nil, gorm.ErrRecordNotFound)
		repo.responseRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(r *models.Response) bool {
			return !r.IsCorrect
		})).Return(nil)

		service := newAttemptServiceForTest(repo, &MockExamService{}, nil)

		err := service.SubmitAnswer(context.Background(), attemptID, &SubmitAnswerRequest{
			QuestionID:     questionID,
			SelectedAnswer: "A",
		}, studentID)

		assert.NoError(t, err)
		repo.responseRepo.AssertExpectations(t)
	})

	t.Run("question from another exam rejected", func(t *testing.T) {
		repo := newMockRepository()

		foreign := &models.Question{ID: questionID, ExamID: uuid.New(), CorrectAnswer: "A"}
		repo.attemptRepo.On("GetByID", mock.Anything, attemptID).Return(activeAttempt, nil)
		repo.questionRepo.On("GetByID", mock.Anything, questionID).Return(foreign, nil)

		service := newAttemptServiceForTest(repo, &MockExamService{}, nil)

		err := service.SubmitAnswer(context.Background(), attemptID, &SubmitAnswerRequest{
			QuestionID:     questionID,
			SelectedAnswer: "A",
		}, studentID)

		assert.ErrorIs(t, err, ErrQuestionNotInExam)
	})

	t.Run("completed attempt rejects submissions", func(t *testing.T) {
		repo := newMockRepository()

		completed := &models.ExamAttempt{
			ID:        attemptID,
			ExamID:    examID,
			StudentID: studentID,
			Status:    models.AttemptCompleted,
		}
		repo.attemptRepo.On("GetByID", mock.Anything, attemptID).Return(completed, nil)

		service := newAttemptServiceForTest(repo, &MockExamService{}, nil)

		err := service.SubmitAnswer(context.Background(), attemptID, &SubmitAnswerRequest{
			QuestionID:     questionID,
			SelectedAnswer: "A",
		}, studentID)

		assert.ErrorIs(t, err, ErrAttemptAlreadyCompleted)
	})

	t.Run("foreign attempt denied", func(t *testing.T) {
		repo := newMockRepository()

		repo.attemptRepo.On("GetByID", mock.Anything, attemptID).Return(activeAttempt, nil)

		service := newAttemptServiceForTest(repo, &MockExamService{}, nil)

		err := service.SubmitAnswer(context.Background(), attemptID, &SubmitAnswerRequest{
			QuestionID:     questionID,
			SelectedAnswer: "A",
		}, uuid.New())

		var permErr *PermissionError
		assert.ErrorAs(t, err, &permErr)
	})

	t.Run("validation failure", func(t *testing.T) {
		repo := newMockRepository()
		service := newAttemptServiceForTest(repo, &MockExamService{}, nil)

		err := service.SubmitAnswer(context.Background(), attemptID, &SubmitAnswerRequest{
			QuestionID: questionID,
			// SelectedAnswer missing
		}, studentID)

		assert.Error(t, err)
		var validationErrors ValidationErrors
		assert.ErrorAs(t, err, &validationErrors)
	})
}

func TestAttemptService_Finish(t *testing.T) {
	examID := uuid.New()
	studentID := uuid.New()
	attemptID := uuid.New()

	responses := []*models.Response{
		{IsCorrect: true, Question: &models.Question{Section: models.SectionReadingWriting}},
		{IsCorrect: true, Question: &models.Question{Section: models.SectionReadingWriting}},
		{IsCorrect: true, Question: &models.Question{Section: models.SectionMath}},
		{IsCorrect: false, Question: &models.Question{Section: models.SectionMath}},
	}

	t.Run("scores and completes", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher(testLogger())

		attempt := &models.ExamAttempt{
			ID:        attemptID,
			ExamID:    examID,
			StudentID: studentID,
			Status:    models.AttemptInProgress,
			StartedAt: time.Now().Add(-time.Hour),
		}

		repo.attemptRepo.On("GetByID", mock.Anything, attemptID).Return(attempt, nil)
		repo.responseRepo.On("GetByAttemptWithQuestions", mock.Anything, attemptID).Return(responses, nil)
		repo.attemptRepo.On("Complete", mock.Anything, attemptID, mock.Anything, repositories.AttemptScores{
			Total:          430,
			ReadingWriting: 220,
			Math:           210,
		}).Return(nil)

		service := newAttemptServiceForTest(repo, &MockExamService{}, publisher)

		result, err := service.Finish(context.Background(), attemptID, studentID)

		assert.NoError(t, err)
		assert.Equal(t, 430, result.TotalScore)
		assert.Equal(t, 220, result.RwScore)
		assert.Equal(t, 210, result.MathScore)
		assert.Len(t, publisher.GetPublishedEvents(), 1)
		assert.Equal(t, events.EventAttemptCompleted, publisher.GetPublishedEvents()[0].Type)
		repo.attemptRepo.AssertExpectations(t)
	})

	t.Run("finishing again returns same scores without republishing", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher(testLogger())

		endedAt := time.Now().Add(-5 * time.Minute)
		completed := &models.ExamAttempt{
			ID:        attemptID,
			ExamID:    examID,
			StudentID: studentID,
			Status:    models.AttemptCompleted,
			EndedAt:   &endedAt,
		}

		repo.attemptRepo.On("GetByID", mock.Anything, attemptID).Return(completed, nil)
		repo.responseRepo.On("GetByAttemptWithQuestions", mock.Anything, attemptID).Return(responses, nil)
		repo.attemptRepo.On("Complete", mock.Anything, attemptID, endedAt, mock.Anything).Return(nil)

		service := newAttemptServiceForTest(repo, &MockExamService{}, publisher)

		result, err := service.Finish(context.Background(), attemptID, studentID)

		assert.NoError(t, err)
		assert.Equal(t, 430, result.TotalScore)
		assert.Equal(t, endedAt, result.EndedAt)
		assert.Empty(t, publisher.GetPublishedEvents())
	})

	t.Run("unknown attempt", func(t *testing.T) {
		repo := newMockRepository()

		repo.attemptRepo.On("GetByID", mock.Anything, attemptID).Return(nil, gorm.ErrRecordNotFound)

		service := newAttemptServiceForTest(repo, &MockExamService{}, nil)

		_, err := service.Finish(context.Background(), attemptID, studentID)

		assert.ErrorIs(t, err, ErrAttemptNotFound)
	})

	t.Run("foreign attempt denied", func(t *testing.T) {
		repo := newMockRepository()

		attempt := &models.ExamAttempt{
			ID:        attemptID,
			ExamID:    examID,
			StudentID: studentID,
			Status:    models.AttemptInProgress,
		}
		repo.attemptRepo.On("GetByID", mock.Anything, attemptID).Return(attempt, nil)

		service := newAttemptServiceForTest(repo, &MockExamService{}, nil)

		_, err := service.Finish(context.Background(), attemptID, uuid.New())

		var permErr *PermissionError
		assert.ErrorAs(t, err, &permErr)
	})
}

func TestAttemptService_GetByStudent(t *testing.T) {
	studentID := uuid.New()
	examID := uuid.New()

	score := 570
	rw := 320
	math := 250
	endedAt := time.Now()

	attempts := []*models.ExamAttempt{
		{
			ID:        uuid.New(),
			ExamID:    examID,
			StudentID: studentID,
			Status:    models.AttemptCompleted,
			StartedAt: time.Now().Add(-2 * time.Hour),
			EndedAt:   &endedAt,
			Score:     &score,
			RwScore:   &rw,
			MathScore: &math,
			Exam:      &models.Exam{ID: examID, Title: "Practice Test A"},
		},
	}

	repo := newMockRepository()
	repo.attemptRepo.On("GetByStudent", mock.Anything, studentID, mock.MatchedBy(func(f repositories.AttemptFilters) bool {
		return f.Limit == 20
	})).Return(attempts, int64(1), nil)
	repo.responseRepo.On("CountByAttempt", mock.Anything, attempts[0].ID).Return(int64(98), nil)

	service := newAttemptServiceForTest(repo, &MockExamService{}, nil)

	result, err := service.GetByStudent(context.Background(), studentID, &ListAttemptsRequest{})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	assert.Len(t, result.Attempts, 1)

	view := result.Attempts[0]
	assert.Equal(t, "Practice Test A", view.ExamTitle)
	assert.Equal(t, 98, view.AnsweredCount)
	assert.Equal(t, &score, view.TotalScore)
}

func TestAttemptService_UpdatePosition(t *testing.T) {
	examID := uuid.New()
	studentID := uuid.New()
	attemptID := uuid.New()

	attempt := &models.ExamAttempt{
		ID:        attemptID,
		ExamID:    examID,
		StudentID: studentID,
		Status:    models.AttemptInProgress,
	}

	repo := newMockRepository()
	repo.attemptRepo.On("GetByID", mock.Anything, attemptID).Return(attempt, nil)
	repo.attemptRepo.On("UpdatePosition", mock.Anything, attemptID, models.SectionMath, 2).Return(nil)

	service := newAttemptServiceForTest(repo, &MockExamService{}, nil)

	err := service.UpdatePosition(context.Background(), attemptID, &UpdatePositionRequest{
		Section: models.SectionMath,
		Module:  2,
	}, studentID)

	assert.NoError(t, err)
	repo.attemptRepo.AssertExpectations(t)
}
