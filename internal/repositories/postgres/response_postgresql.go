package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/satmock-platform/exam-service/internal/models"
	"github.com/satmock-platform/exam-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResponsePostgreSQL struct {
	db *gorm.DB
}

func NewResponsePostgreSQL(db *gorm.DB) repositories.ResponseRepository {
	return &ResponsePostgreSQL{db: db}
}

// Upsert leans on the unique index over (attempt_id, question_id). The
// time accumulator is added on the database side, so two concurrent
// submissions for the same question each land their increment.
func (r ResponsePostgreSQL) Upsert(ctx context.Context, response *models.Response) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"selected_answer":    response.SelectedAnswer,
				"is_correct":         response.IsCorrect,
				"time_spent_seconds": gorm.Expr("responses.time_spent_seconds + EXCLUDED.time_spent_seconds"),
				"updated_at":         gorm.Expr("NOW()"),
			}),
		}).
		Create(response).Error
}

func (r ResponsePostgreSQL) GetByAttempt(ctx context.Context, attemptID uuid.UUID) ([]*models.Response, error) {
	var responses []*models.Response
	if err := r.db.WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Order("created_at").
		Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

func (r ResponsePostgreSQL) GetByAttemptWithQuestions(ctx context.Context, attemptID uuid.UUID) ([]*models.Response, error) {
	var responses []*models.Response
	if err := r.db.WithContext(ctx).
		Preload("Question").
		Where("attempt_id = ?", attemptID).
		Order("created_at").
		Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

func (r ResponsePostgreSQL) GetByAttemptAndQuestion(ctx context.Context, attemptID, questionID uuid.UUID) (*models.Response, error) {
	var response models.Response
	if err := r.db.WithContext(ctx).
		Where("attempt_id = ? AND question_id = ?", attemptID, questionID).
		First(&response).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

func (r ResponsePostgreSQL) CountByAttempt(ctx context.Context, attemptID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Response{}).
		Where("attempt_id = ?", attemptID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
