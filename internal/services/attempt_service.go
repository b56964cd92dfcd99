package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/satmock-platform/exam-service/internal/events"
	"github.com/satmock-platform/exam-service/internal/models"
	"github.com/satmock-platform/exam-service/internal/repositories"
	"github.com/satmock-platform/exam-service/internal/validator"
)

// AttemptService drives the attempt lifecycle: start (or resume), answer
// submission, position tracking, and finishing with score computation.
type AttemptService interface {
	Start(ctx context.Context, examID, studentID uuid.UUID) (*StartAttemptResponse, error)
	SubmitAnswer(ctx context.Context, attemptID uuid.UUID, req *SubmitAnswerRequest, studentID uuid.UUID) error
	UpdatePosition(ctx context.Context, attemptID uuid.UUID, req *UpdatePositionRequest, studentID uuid.UUID) error
	Finish(ctx context.Context, attemptID, studentID uuid.UUID) (*ScoreResult, error)
	GetByID(ctx context.Context, attemptID, studentID uuid.UUID) (*AttemptView, error)
	GetByStudent(ctx context.Context, studentID uuid.UUID, req *ListAttemptsRequest) (*AttemptListResponse, error)
}

type attemptService struct {
	repo      repositories.Repository
	examSvc   ExamService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	policy    ScorePolicy
}

func NewAttemptService(repo repositories.Repository, examSvc ExamService, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) AttemptService {
	return &attemptService{
		repo:      repo,
		examSvc:   examSvc,
		publisher: publisher,
		logger:    logger,
		validator: v,
		policy:    DefaultScorePolicy,
	}
}

// ===== CORE ATTEMPT OPERATIONS =====

// Start is find-or-create: a student gets at most one attempt per exam,
// and calling Start again returns the existing attempt unchanged.
func (s *attemptService) Start(ctx context.Context, examID, studentID uuid.UUID) (*StartAttemptResponse, error) {
	s.logger.Info("Starting exam attempt",
		"exam_id", examID,
		"student_id", studentID)

	exam, err := s.examSvc.GetWithQuestions(ctx, examID)
	if err != nil {
		return nil, err
	}

	attempt := &models.ExamAttempt{
		ExamID:    examID,
		StudentID: studentID,
		Status:    models.AttemptInProgress,
		StartedAt: time.Now(),
	}

	attempt, created, err := s.repo.Attempt().CreateIfAbsent(ctx, attempt)
	if err != nil {
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}

	if created {
		s.logger.Info("Exam attempt started",
			"attempt_id", attempt.ID,
			"exam_id", examID,
			"student_id", studentID)
		s.publishEvent(ctx, events.NewAttemptStartedEvent(
			attempt.ID, examID, exam.Title, studentID, attempt.StartedAt))
	} else {
		s.logger.Info("Resuming existing attempt",
			"attempt_id", attempt.ID,
			"status", attempt.Status)
	}

	questions := make([]QuestionView, 0, len(exam.Questions))
	for i := range exam.Questions {
		questions = append(questions, buildQuestionView(&exam.Questions[i]))
	}

	return &StartAttemptResponse{
		AttemptID: attempt.ID,
		ExamID:    examID,
		Status:    attempt.Status,
		StartedAt: attempt.StartedAt,
		Resumed:   !created,
		Questions: questions,
	}, nil
}

// SubmitAnswer records the student's current answer for one question.
// Resubmitting replaces the selected answer and adds to the time
// accumulator. Submissions against a completed attempt are rejected.
func (s *attemptService) SubmitAnswer(ctx context.Context, attemptID uuid.UUID, req *SubmitAnswerRequest, studentID uuid.UUID) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	attempt, err := s.getOwnedAttempt(ctx, attemptID, studentID, "submit answer")
	if err != nil {
		return err
	}
	if attempt.IsCompleted() {
		return ErrAttemptAlreadyCompleted
	}

	// Correctness is evaluated fresh on every submission; an unresolvable
	// question is graded incorrect rather than failing the request.
	isCorrect := false
	question, err := s.repo.Question().GetByID(ctx, req.QuestionID)
	switch {
	case err == nil:
		if question.ExamID != attempt.ExamID {
			return ErrQuestionNotInExam
		}
		isCorrect = question.CorrectAnswer == req.SelectedAnswer
	case repositories.IsNotFoundError(err):
		s.logger.Warn("Submitted answer references unknown question",
			"attempt_id", attemptID,
			"question_id", req.QuestionID)
	default:
		return fmt.Errorf("failed to get question: %w", err)
	}

	response := &models.Response{
		AttemptID:        attemptID,
		QuestionID:       req.QuestionID,
		SelectedAnswer:   req.SelectedAnswer,
		IsCorrect:        isCorrect,
		TimeSpentSeconds: req.TimeSpentSeconds,
	}

	if err := s.repo.Response().Upsert(ctx, response); err != nil {
		return fmt.Errorf("failed to save response: %w", err)
	}

	s.logger.Debug("Answer recorded",
		"attempt_id", attemptID,
		"question_id", req.QuestionID,
		"is_correct", isCorrect)

	return nil
}

// UpdatePosition records where the student is in the exam so the UI can be
// restored on resume.
func (s *attemptService) UpdatePosition(ctx context.Context, attemptID uuid.UUID, req *UpdatePositionRequest, studentID uuid.UUID) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	attempt, err := s.getOwnedAttempt(ctx, attemptID, studentID, "update position")
	if err != nil {
		return err
	}
	if attempt.IsCompleted() {
		return ErrAttemptAlreadyCompleted
	}

	if err := s.repo.Attempt().UpdatePosition(ctx, attemptID, req.Section, req.Module); err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}
	return nil
}

// Finish scores the attempt from its full response set and marks it
// completed. Scoring is deterministic, so finishing an already completed
// attempt recomputes the same scores and is safe to repeat.
func (s *attemptService) Finish(ctx context.Context, attemptID, studentID uuid.UUID) (*ScoreResult, error) {
	s.logger.Info("Finishing exam attempt",
		"attempt_id", attemptID,
		"student_id", studentID)

	attempt, err := s.getOwnedAttempt(ctx, attemptID, studentID, "finish")
	if err != nil {
		return nil, err
	}

	responses, err := s.repo.Response().GetByAttemptWithQuestions(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	scores := s.policy.Compute(responses)

	endedAt := time.Now()
	if attempt.IsCompleted() && attempt.EndedAt != nil {
		endedAt = *attempt.EndedAt
	}

	err = s.repo.Attempt().Complete(ctx, attemptID, endedAt, repositories.AttemptScores{
		Total:          scores.Total,
		ReadingWriting: scores.ReadingWriting,
		Math:           scores.Math,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to complete attempt: %w", err)
	}

	s.logger.Info("Exam attempt completed",
		"attempt_id", attemptID,
		"total_score", scores.Total,
		"rw_score", scores.ReadingWriting,
		"math_score", scores.Math)

	if !attempt.IsCompleted() {
		s.publishEvent(ctx, events.NewAttemptCompletedEvent(
			attemptID, attempt.ExamID, studentID, endedAt,
			scores.Total, scores.ReadingWriting, scores.Math))
	}

	return &ScoreResult{
		AttemptID:  attemptID,
		TotalScore: scores.Total,
		RwScore:    scores.ReadingWriting,
		MathScore:  scores.Math,
		EndedAt:    endedAt,
	}, nil
}

// ===== QUERIES =====

func (s *attemptService) GetByID(ctx context.Context, attemptID, studentID uuid.UUID) (*AttemptView, error) {
	attempt, err := s.repo.Attempt().GetByIDWithDetails(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}

	if attempt.StudentID != studentID {
		return nil, NewPermissionError(studentID.String(), attemptID.String(), "attempt", "view", "not owned by student")
	}

	view := buildAttemptView(attempt, len(attempt.Responses))
	return &view, nil
}

func (s *attemptService) GetByStudent(ctx context.Context, studentID uuid.UUID, req *ListAttemptsRequest) (*AttemptListResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit == 0 {
		limit = 20
	}

	filters := repositories.AttemptFilters{
		Status:    models.AttemptStatus(req.Status),
		ExamID:    req.ExamID,
		DateFrom:  req.DateFrom,
		DateTo:    req.DateTo,
		Limit:     limit,
		Offset:    req.Offset,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	attempts, total, err := s.repo.Attempt().GetByStudent(ctx, studentID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	views := make([]AttemptView, 0, len(attempts))
	for _, attempt := range attempts {
		count, err := s.repo.Response().CountByAttempt(ctx, attempt.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count responses: %w", err)
		}
		views = append(views, buildAttemptView(attempt, int(count)))
	}

	return &AttemptListResponse{
		Attempts: views,
		Total:    total,
		Limit:    limit,
		Offset:   req.Offset,
	}, nil
}

// ===== HELPERS =====

func (s *attemptService) getOwnedAttempt(ctx context.Context, attemptID, studentID uuid.UUID, action string) (*models.ExamAttempt, error) {
	attempt, err := s.repo.Attempt().GetByID(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}

	if attempt.StudentID != studentID {
		return nil, NewPermissionError(studentID.String(), attemptID.String(), "attempt", action, "not owned by student")
	}
	return attempt, nil
}

// publishEvent delivers best-effort: publishing failures are logged, never
// surfaced to the student.
func (s *attemptService) publishEvent(ctx context.Context, event *events.AttemptEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishAttemptEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish attempt event",
			"event_type", event.Type,
			"error", err)
	}
}
