package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/satmock-platform/exam-service/internal/services"
	"github.com/satmock-platform/exam-service/internal/utils"
)

type HandlerManager struct {
	attemptHandler *AttemptHandler
	examHandler    *ExamHandler
	jwtSecret      string
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	jwtSecret string,
) *HandlerManager {
	return &HandlerManager{
		attemptHandler: NewAttemptHandler(serviceManager.Attempt(), logger),
		examHandler:    NewExamHandler(serviceManager.Exam(), logger),
		jwtSecret:      jwtSecret,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "exam-service",
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(AuthMiddleware(hm.jwtSecret))
	{
		exams := v1.Group("/exams")
		{
			exams.GET("", hm.examHandler.ListExams)
			exams.POST("/:exam_id/attempts/start", hm.attemptHandler.StartAttempt)
		}

		attempts := v1.Group("/attempts")
		{
			attempts.GET("", hm.attemptHandler.ListAttempts)
			attempts.GET("/:id", hm.attemptHandler.GetAttempt)
			attempts.POST("/:id/answers", hm.attemptHandler.SubmitAnswer)
			attempts.PUT("/:id/position", hm.attemptHandler.UpdatePosition)
			attempts.POST("/:id/finish", hm.attemptHandler.FinishAttempt)
		}
	}
}
