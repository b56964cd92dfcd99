package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/satmock-platform/exam-service/internal/models"
)

// Repository aggregates all repository interfaces behind one handle so
// services take a single dependency.
type Repository interface {
	Exam() ExamRepository
	Question() QuestionRepository
	Attempt() AttemptRepository
	Response() ResponseRepository
}

// ===== SHARED FILTER STRUCTS =====

type AttemptFilters struct {
	Status    models.AttemptStatus `json:"status"`
	ExamID    *uuid.UUID           `json:"exam_id"`
	StudentID *uuid.UUID           `json:"student_id"`
	DateFrom  *time.Time           `json:"date_from"`
	DateTo    *time.Time           `json:"date_to"`
	Limit     int                  `json:"limit"`
	Offset    int                  `json:"offset"`
	SortBy    string               `json:"sort_by"`    // "started_at", "ended_at", "score"
	SortOrder string               `json:"sort_order"` // "asc", "desc"
}

type ExamFilters struct {
	ActiveOnly bool   `json:"active_only"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	SortBy     string `json:"sort_by"`
	SortOrder  string `json:"sort_order"`
}
