package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/satmock-platform/exam-service/internal/cache"
	"github.com/satmock-platform/exam-service/internal/models"
	"github.com/satmock-platform/exam-service/internal/repositories"
)

const (
	examQuestionsCacheKey = "exam:questions:"
	examQuestionsCacheTTL = 10 * time.Minute
)

// ExamService reads the exam catalog. Exams and questions are immutable
// from this service's point of view, which is what makes them cacheable.
type ExamService interface {
	// GetWithQuestions returns an active exam with its full question set
	// for delivery to a student. Correct answers are not guaranteed to be
	// populated; answer checking reads the question store directly.
	GetWithQuestions(ctx context.Context, examID uuid.UUID) (*models.Exam, error)
	ListForStudent(ctx context.Context, studentID uuid.UUID) (*ExamListResponse, error)
}

type examService struct {
	repo   repositories.Repository
	cache  cache.CacheService
	logger *slog.Logger
}

func NewExamService(repo repositories.Repository, cacheService cache.CacheService, logger *slog.Logger) ExamService {
	return &examService{
		repo:   repo,
		cache:  cacheService,
		logger: logger,
	}
}

func (s *examService) GetWithQuestions(ctx context.Context, examID uuid.UUID) (*models.Exam, error) {
	if exam, ok := s.fromCache(ctx, examID); ok {
		return exam, nil
	}

	exam, err := s.repo.Exam().GetByIDWithQuestions(ctx, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}

	// Inactive exams are indistinguishable from absent ones to students.
	if !exam.IsActive {
		return nil, ErrExamNotFound
	}

	s.toCache(ctx, examID, exam)
	return exam, nil
}

func (s *examService) ListForStudent(ctx context.Context, studentID uuid.UUID) (*ExamListResponse, error) {
	exams, total, err := s.repo.Exam().List(ctx, repositories.ExamFilters{
		ActiveOnly: true,
		SortBy:     "created_at",
		SortOrder:  "asc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}

	attempts, _, err := s.repo.Attempt().GetByStudent(ctx, studentID, repositories.AttemptFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	attemptsByExam := make(map[uuid.UUID]*models.ExamAttempt, len(attempts))
	for _, attempt := range attempts {
		attemptsByExam[attempt.ExamID] = attempt
	}

	summaries := make([]ExamSummary, 0, len(exams))
	for _, exam := range exams {
		count, err := s.countQuestions(ctx, exam.ID)
		if err != nil {
			return nil, err
		}

		summary := ExamSummary{
			ID:            exam.ID,
			Code:          exam.Code,
			Title:         exam.Title,
			QuestionCount: count,
			AttemptStatus: models.AttemptNotStarted,
		}
		if attempt, ok := attemptsByExam[exam.ID]; ok {
			summary.AttemptStatus = attempt.Status
			attemptID := attempt.ID
			summary.AttemptID = &attemptID
			if attempt.IsCompleted() {
				summary.Score = attempt.Score
			}
		}
		summaries = append(summaries, summary)
	}

	return &ExamListResponse{
		Exams: summaries,
		Total: total,
	}, nil
}

func (s *examService) countQuestions(ctx context.Context, examID uuid.UUID) (int, error) {
	questions, err := s.repo.Question().GetByExam(ctx, examID)
	if err != nil {
		return 0, fmt.Errorf("failed to load questions: %w", err)
	}
	return len(questions), nil
}

// Cache access is best-effort: a broken cache degrades to database reads.

func (s *examService) fromCache(ctx context.Context, examID uuid.UUID) (*models.Exam, bool) {
	if s.cache == nil {
		return nil, false
	}
	var exam models.Exam
	err := s.cache.Get(ctx, examQuestionsCacheKey+examID.String(), &exam)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Exam cache read failed", "exam_id", examID, "error", err)
		}
		return nil, false
	}
	return &exam, true
}

func (s *examService) toCache(ctx context.Context, examID uuid.UUID, exam *models.Exam) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, examQuestionsCacheKey+examID.String(), exam, examQuestionsCacheTTL); err != nil {
		s.logger.Warn("Exam cache write failed", "exam_id", examID, "error", err)
	}
}
