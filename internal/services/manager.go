package services

import (
	"log/slog"

	"github.com/satmock-platform/exam-service/internal/cache"
	"github.com/satmock-platform/exam-service/internal/events"
	"github.com/satmock-platform/exam-service/internal/repositories"
	"github.com/satmock-platform/exam-service/internal/validator"
)

// ServiceManager aggregates all services behind one handle so the handler
// layer takes a single dependency.
type ServiceManager interface {
	Attempt() AttemptService
	Exam() ExamService
}

type serviceManager struct {
	attempt AttemptService
	exam    ExamService
}

func NewServiceManager(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) ServiceManager {
	examSvc := NewExamService(repo, cacheService, logger)
	return &serviceManager{
		attempt: NewAttemptService(repo, examSvc, publisher, logger, v),
		exam:    examSvc,
	}
}

func (m *serviceManager) Attempt() AttemptService { return m.attempt }
func (m *serviceManager) Exam() ExamService       { return m.exam }
