package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttemptStatus string

const (
	// AttemptNotStarted is virtual: it is represented by the absence of a
	// row and never stored.
	AttemptNotStarted AttemptStatus = "not_started"
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
)

// ExamAttempt is one student's single try at one exam. The unique index on
// (student_id, exam_id) is the at-most-one-attempt guarantee; concurrent
// first-time starts race on it and the loser adopts the winner's row.
//
// EndedAt and the three score fields are nil while in_progress and are all
// written together with the completed status, so there is no observable
// partial-score state.
type ExamAttempt struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	StudentID uuid.UUID `json:"student_id" gorm:"type:uuid;not null;uniqueIndex:idx_attempts_student_exam;index"`
	ExamID    uuid.UUID `json:"exam_id" gorm:"type:uuid;not null;uniqueIndex:idx_attempts_student_exam"`

	Status    AttemptStatus `json:"status" gorm:"not null;default:in_progress;size:20;index"`
	StartedAt time.Time     `json:"started_at" gorm:"not null"`
	EndedAt   *time.Time    `json:"ended_at,omitempty"`

	Score     *int `json:"score,omitempty"`
	RwScore   *int `json:"rw_score,omitempty"`
	MathScore *int `json:"math_score,omitempty"`

	// Client-reported position, used to restore the UI on resume.
	CurrentSection *ExamSection `json:"current_section,omitempty" gorm:"size:20"`
	CurrentModule  *int         `json:"current_module,omitempty"`

	// Relations
	Exam      *Exam      `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
	Responses []Response `json:"responses,omitempty" gorm:"foreignKey:AttemptID"`
}

func (ExamAttempt) TableName() string {
	return "exam_attempts"
}

func (a *ExamAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// IsCompleted reports whether the attempt has reached its terminal state.
func (a *ExamAttempt) IsCompleted() bool {
	return a.Status == AttemptCompleted
}

// Response is the student's current answer to one question within one
// attempt, unique per (attempt_id, question_id). SelectedAnswer and
// IsCorrect are last-write-wins; TimeSpentSeconds only ever accumulates.
type Response struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	AttemptID  uuid.UUID `json:"attempt_id" gorm:"type:uuid;not null;uniqueIndex:idx_responses_attempt_question;index"`
	QuestionID uuid.UUID `json:"question_id" gorm:"type:uuid;not null;uniqueIndex:idx_responses_attempt_question"`

	SelectedAnswer   string `json:"selected_answer" gorm:"not null;size:255"`
	IsCorrect        bool   `json:"is_correct" gorm:"not null;default:false"`
	TimeSpentSeconds int    `json:"time_spent_seconds" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Question *Question `json:"-" gorm:"foreignKey:QuestionID"`
}

func (Response) TableName() string {
	return "responses"
}

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
