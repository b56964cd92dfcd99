package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ExamSection string

const (
	SectionReadingWriting ExamSection = "ReadingWriting"
	SectionMath           ExamSection = "Math"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "Easy"
	DifficultyMedium DifficultyLevel = "Medium"
	DifficultyHard   DifficultyLevel = "Hard"
)

// Exam is the catalog entry students start attempts against. The attempt
// core treats exams and their questions as immutable.
type Exam struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Code     string    `json:"code" gorm:"not null;size:50;uniqueIndex" validate:"required,min=1,max=50"`
	Title    string    `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	IsActive bool      `json:"is_active" gorm:"default:true;index"`

	CreatedBy *uuid.UUID `json:"created_by" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at"`

	// Relations
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:ExamID"`
}

func (Exam) TableName() string {
	return "exams"
}

func (e *Exam) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Question belongs to exactly one exam. Choices are stored as a jsonb array
// of answer strings; CorrectAnswer is never serialized to students.
type Question struct {
	ID      uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	ExamID  uuid.UUID   `json:"exam_id" gorm:"type:uuid;not null;index"`
	Section ExamSection `json:"section" gorm:"not null;size:20;index" validate:"required,exam_section"`
	Module  int         `json:"module" gorm:"not null" validate:"required,exam_module"`
	Text    string      `json:"text" gorm:"type:text;not null" validate:"required"`

	Choices       datatypes.JSON `json:"choices" gorm:"type:jsonb;not null"`
	CorrectAnswer string         `json:"-" gorm:"not null;size:255"`

	// Optional authoring metadata
	Explanation *string          `json:"explanation,omitempty" gorm:"type:text"`
	Difficulty  *DifficultyLevel `json:"difficulty,omitempty" gorm:"size:20"`
	Domain      *string          `json:"domain,omitempty" gorm:"size:100"`
	Skill       *string          `json:"skill,omitempty" gorm:"size:100"`

	CreatedAt time.Time `json:"created_at"`

	Exam *Exam `json:"-" gorm:"foreignKey:ExamID"`
}

func (Question) TableName() string {
	return "questions"
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
