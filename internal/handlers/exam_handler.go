package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/satmock-platform/exam-service/internal/services"
	"github.com/satmock-platform/exam-service/internal/utils"
)

type ExamHandler struct {
	BaseHandler
	examService services.ExamService
}

func NewExamHandler(examService services.ExamService, logger utils.Logger) *ExamHandler {
	return &ExamHandler{
		BaseHandler: NewBaseHandler(logger),
		examService: examService,
	}
}

// ListExams returns the active exam catalog annotated with the student's
// attempt status per exam
// @Summary List exams
// @Tags exams
// @Produce json
// @Success 200 {object} services.ExamListResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /exams [get]
func (h *ExamHandler) ListExams(c *gin.Context) {
	studentID, ok := CurrentStudentID(c)
	if !ok {
		return
	}

	result, err := h.examService.ListForStudent(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
