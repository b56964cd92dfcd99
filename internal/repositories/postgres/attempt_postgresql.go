package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/satmock-platform/exam-service/internal/models"
	"github.com/satmock-platform/exam-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptPostgreSQL struct {
	db *gorm.DB
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{db: db}
}

// CreateIfAbsent relies on the unique index over (student_id, exam_id).
// ON CONFLICT DO NOTHING makes the concurrent-start race harmless: the
// loser's insert affects zero rows and we refetch the winner's attempt.
func (a AttemptPostgreSQL) CreateIfAbsent(ctx context.Context, attempt *models.ExamAttempt) (*models.ExamAttempt, bool, error) {
	result := a.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "exam_id"}},
			DoNothing: true,
		}).
		Create(attempt)
	if result.Error != nil {
		return nil, false, result.Error
	}

	if result.RowsAffected > 0 {
		return attempt, true, nil
	}

	existing, err := a.GetByStudentAndExam(ctx, attempt.StudentID, attempt.ExamID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (a AttemptPostgreSQL) GetByID(ctx context.Context, id uuid.UUID) (*models.ExamAttempt, error) {
	var attempt models.ExamAttempt
	if err := a.db.WithContext(ctx).First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (a AttemptPostgreSQL) GetByIDWithDetails(ctx context.Context, id uuid.UUID) (*models.ExamAttempt, error) {
	var attempt models.ExamAttempt
	if err := a.db.WithContext(ctx).
		Preload("Exam").
		Preload("Responses").
		First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (a AttemptPostgreSQL) GetByStudentAndExam(ctx context.Context, studentID, examID uuid.UUID) (*models.ExamAttempt, error) {
	var attempt models.ExamAttempt
	if err := a.db.WithContext(ctx).
		Where("student_id = ? AND exam_id = ?", studentID, examID).
		First(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (a AttemptPostgreSQL) GetByStudent(ctx context.Context, studentID uuid.UUID, filters repositories.AttemptFilters) ([]*models.ExamAttempt, int64, error) {
	var attempts []*models.ExamAttempt
	var total int64

	query := a.db.WithContext(ctx).
		Model(&models.ExamAttempt{}).
		Where("student_id = ?", studentID)

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.ExamID != nil {
		query = query.Where("exam_id = ?", *filters.ExamID)
	}
	if filters.DateFrom != nil {
		query = query.Where("started_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("started_at <= ?", *filters.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "started_at"
	}
	query = applyPaginationAndSort(query, sortBy, filters.SortOrder, filters.Limit, filters.Offset)
	if err := query.Preload("Exam").Find(&attempts).Error; err != nil {
		return nil, 0, err
	}

	return attempts, total, nil
}

// Complete writes status, end time and all three scores in one UPDATE so a
// reader never observes a completed attempt without its scores.
func (a AttemptPostgreSQL) Complete(ctx context.Context, id uuid.UUID, endedAt time.Time, scores repositories.AttemptScores) error {
	result := a.db.WithContext(ctx).
		Model(&models.ExamAttempt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     models.AttemptCompleted,
			"ended_at":   endedAt,
			"score":      scores.Total,
			"rw_score":   scores.ReadingWriting,
			"math_score": scores.Math,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a AttemptPostgreSQL) UpdatePosition(ctx context.Context, id uuid.UUID, section models.ExamSection, module int) error {
	result := a.db.WithContext(ctx).
		Model(&models.ExamAttempt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_section": section,
			"current_module":  module,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
