package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/satmock-platform/exam-service/internal/models"
	"gorm.io/datatypes"
)

// ===== REQUEST DTOs =====

type SubmitAnswerRequest struct {
	QuestionID       uuid.UUID `json:"question_id" validate:"required"`
	SelectedAnswer   string    `json:"selected_answer" validate:"required"`
	TimeSpentSeconds int       `json:"time_spent_seconds" validate:"min=0"`
}

type UpdatePositionRequest struct {
	Section models.ExamSection `json:"section" validate:"required,exam_section"`
	Module  int                `json:"module" validate:"required,exam_module"`
}

type ListAttemptsRequest struct {
	Status    string     `json:"status" validate:"omitempty,oneof=in_progress completed"`
	ExamID    *uuid.UUID `json:"exam_id"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit" validate:"min=0,max=100"`
	Offset    int        `json:"offset" validate:"min=0"`
	SortBy    string     `json:"sort_by" validate:"omitempty,oneof=started_at ended_at score"`
	SortOrder string     `json:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// ===== RESPONSE DTOs =====

// QuestionView is a question as delivered to a student mid-attempt. The
// correct answer and explanation never appear here.
type QuestionView struct {
	ID         uuid.UUID               `json:"id"`
	Section    models.ExamSection      `json:"section"`
	Module     int                     `json:"module"`
	Text       string                  `json:"text"`
	Choices    datatypes.JSON          `json:"choices"`
	Difficulty *models.DifficultyLevel `json:"difficulty,omitempty"`
}

// StartAttemptResponse is returned by Start whether the attempt was just
// created or resumed. Resumed reports which case it was.
type StartAttemptResponse struct {
	AttemptID uuid.UUID            `json:"attempt_id"`
	ExamID    uuid.UUID            `json:"exam_id"`
	Status    models.AttemptStatus `json:"status"`
	StartedAt time.Time            `json:"started_at"`
	Resumed   bool                 `json:"resumed"`
	Questions []QuestionView       `json:"questions"`
}

// ScoreResult is the outcome of finishing an attempt.
type ScoreResult struct {
	AttemptID  uuid.UUID `json:"attempt_id"`
	TotalScore int       `json:"total_score"`
	RwScore    int       `json:"rw_score"`
	MathScore  int       `json:"math_score"`
	EndedAt    time.Time `json:"ended_at"`
}

// AttemptView is an attempt as seen by its owner. Scores are only present
// once the attempt is completed.
type AttemptView struct {
	ID             uuid.UUID            `json:"id"`
	ExamID         uuid.UUID            `json:"exam_id"`
	ExamTitle      string               `json:"exam_title,omitempty"`
	Status         models.AttemptStatus `json:"status"`
	StartedAt      time.Time            `json:"started_at"`
	EndedAt        *time.Time           `json:"ended_at,omitempty"`
	TotalScore     *int                 `json:"total_score,omitempty"`
	RwScore        *int                 `json:"rw_score,omitempty"`
	MathScore      *int                 `json:"math_score,omitempty"`
	CurrentSection *models.ExamSection  `json:"current_section,omitempty"`
	CurrentModule  *int                 `json:"current_module,omitempty"`
	AnsweredCount  int                  `json:"answered_count"`
}

type AttemptListResponse struct {
	Attempts []AttemptView `json:"attempts"`
	Total    int64         `json:"total"`
	Limit    int           `json:"limit"`
	Offset   int           `json:"offset"`
}

// ExamSummary is a catalog entry, annotated per student with the status of
// their attempt on that exam.
type ExamSummary struct {
	ID            uuid.UUID            `json:"id"`
	Code          string               `json:"code"`
	Title         string               `json:"title"`
	QuestionCount int                  `json:"question_count"`
	AttemptStatus models.AttemptStatus `json:"attempt_status"`
	AttemptID     *uuid.UUID           `json:"attempt_id,omitempty"`
	Score         *int                 `json:"score,omitempty"`
}

type ExamListResponse struct {
	Exams []ExamSummary `json:"exams"`
	Total int64         `json:"total"`
}

// ===== DTO BUILDERS =====

func buildQuestionView(q *models.Question) QuestionView {
	return QuestionView{
		ID:         q.ID,
		Section:    q.Section,
		Module:     q.Module,
		Text:       q.Text,
		Choices:    q.Choices,
		Difficulty: q.Difficulty,
	}
}

func buildAttemptView(attempt *models.ExamAttempt, answeredCount int) AttemptView {
	view := AttemptView{
		ID:             attempt.ID,
		ExamID:         attempt.ExamID,
		Status:         attempt.Status,
		StartedAt:      attempt.StartedAt,
		EndedAt:        attempt.EndedAt,
		CurrentSection: attempt.CurrentSection,
		CurrentModule:  attempt.CurrentModule,
		AnsweredCount:  answeredCount,
	}
	if attempt.Exam != nil {
		view.ExamTitle = attempt.Exam.Title
	}
	if attempt.IsCompleted() {
		view.TotalScore = attempt.Score
		view.RwScore = attempt.RwScore
		view.MathScore = attempt.MathScore
	}
	return view
}
