package postgres

import (
	"github.com/satmock-platform/exam-service/internal/models"
	"github.com/satmock-platform/exam-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	exam     repositories.ExamRepository
	question repositories.QuestionRepository
	attempt  repositories.AttemptRepository
	response repositories.ResponseRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		exam:     NewExamPostgreSQL(db),
		question: NewQuestionPostgreSQL(db),
		attempt:  NewAttemptPostgreSQL(db),
		response: NewResponsePostgreSQL(db),
	}
}

func (r *repository) Exam() repositories.ExamRepository         { return r.exam }
func (r *repository) Question() repositories.QuestionRepository { return r.question }
func (r *repository) Attempt() repositories.AttemptRepository   { return r.attempt }
func (r *repository) Response() repositories.ResponseRepository { return r.response }

// AutoMigrate creates the schema, including the two uniqueness constraints
// the attempt core depends on: (student_id, exam_id) on exam_attempts and
// (attempt_id, question_id) on responses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Exam{},
		&models.Question{},
		&models.ExamAttempt{},
		&models.Response{},
	)
}

// applyPaginationAndSort applies shared list semantics. Only a fixed set of
// sort columns is accepted to keep user input out of the ORDER BY clause.
func applyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	switch sortBy {
	case "started_at", "ended_at", "score", "created_at", "code", "title":
	default:
		sortBy = "created_at"
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	query = query.Order(sortBy + " " + sortOrder)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
