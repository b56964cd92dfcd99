package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/satmock-platform/exam-service/internal/services"
	"github.com/satmock-platform/exam-service/internal/utils"
)

type AttemptHandler struct {
	BaseHandler
	attemptService services.AttemptService
}

func NewAttemptHandler(attemptService services.AttemptService, logger utils.Logger) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler:    NewBaseHandler(logger),
		attemptService: attemptService,
	}
}

// StartAttempt starts a new attempt or resumes the existing one
// @Summary Start exam attempt
// @Description Starts a new attempt for the exam, or returns the student's existing attempt
// @Tags attempts
// @Accept json
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Success 200 {object} services.StartAttemptResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /exams/{exam_id}/attempts/start [post]
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	examID := ParseUUIDParam(c, "exam_id")
	if examID == uuid.Nil {
		return
	}

	studentID, ok := CurrentStudentID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Starting exam attempt", "exam_id", examID)

	result, err := h.attemptService.Start(c.Request.Context(), examID, studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Resumed {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// SubmitAnswer records or replaces the answer to one question
// @Summary Submit answer
// @Description Records the student's answer for a question; resubmission replaces the answer and accumulates time spent
// @Tags attempts
// @Accept json
// @Produce json
// @Param id path string true "Attempt ID"
// @Param answer body services.SubmitAnswerRequest true "Answer data"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /attempts/{id}/answers [post]
func (h *AttemptHandler) SubmitAnswer(c *gin.Context) {
	attemptID := ParseUUIDParam(c, "id")
	if attemptID == uuid.Nil {
		return
	}

	studentID, ok := CurrentStudentID(c)
	if !ok {
		return
	}

	var req services.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if err := h.attemptService.SubmitAnswer(c.Request.Context(), attemptID, &req, studentID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Answer recorded",
	})
}

// UpdatePosition records the student's current section and module
// @Summary Update attempt position
// @Tags attempts
// @Accept json
// @Produce json
// @Param id path string true "Attempt ID"
// @Param position body services.UpdatePositionRequest true "Position data"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /attempts/{id}/position [put]
func (h *AttemptHandler) UpdatePosition(c *gin.Context) {
	attemptID := ParseUUIDParam(c, "id")
	if attemptID == uuid.Nil {
		return
	}

	studentID, ok := CurrentStudentID(c)
	if !ok {
		return
	}

	var req services.UpdatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if err := h.attemptService.UpdatePosition(c.Request.Context(), attemptID, &req, studentID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Position updated",
	})
}

// FinishAttempt completes the attempt and returns its scores
// @Summary Finish exam attempt
// @Description Scores the attempt from its responses and marks it completed; repeating the call returns the same scores
// @Tags attempts
// @Accept json
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} services.ScoreResult
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /attempts/{id}/finish [post]
func (h *AttemptHandler) FinishAttempt(c *gin.Context) {
	attemptID := ParseUUIDParam(c, "id")
	if attemptID == uuid.Nil {
		return
	}

	studentID, ok := CurrentStudentID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Finishing exam attempt", "attempt_id", attemptID)

	result, err := h.attemptService.Finish(c.Request.Context(), attemptID, studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAttempt returns one attempt with its current state and scores
// @Summary Get attempt
// @Tags attempts
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} services.AttemptView
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /attempts/{id} [get]
func (h *AttemptHandler) GetAttempt(c *gin.Context) {
	attemptID := ParseUUIDParam(c, "id")
	if attemptID == uuid.Nil {
		return
	}

	studentID, ok := CurrentStudentID(c)
	if !ok {
		return
	}

	result, err := h.attemptService.GetByID(c.Request.Context(), attemptID, studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListAttempts returns the authenticated student's attempt history
// @Summary List attempts
// @Tags attempts
// @Produce json
// @Param status query string false "Filter by status" Enums(in_progress, completed)
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} services.AttemptListResponse
// @Failure 400 {object} ErrorResponse
// @Router /attempts [get]
func (h *AttemptHandler) ListAttempts(c *gin.Context) {
	studentID, ok := CurrentStudentID(c)
	if !ok {
		return
	}

	req := services.ListAttemptsRequest{
		Status:    c.Query("status"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if examIDStr := c.Query("exam_id"); examIDStr != "" {
		examID, err := uuid.Parse(examIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid exam_id",
				Details: "must be a valid UUID",
			})
			return
		}
		req.ExamID = &examID
	}

	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid date_from",
				Details: "must be RFC3339",
			})
			return
		}
		req.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid date_to",
				Details: "must be RFC3339",
			})
			return
		}
		req.DateTo = &t
	}

	var parseErr error
	req.Limit, parseErr = parseIntQuery(c, "limit", 20)
	if parseErr != nil {
		return
	}
	req.Offset, parseErr = parseIntQuery(c, "offset", 0)
	if parseErr != nil {
		return
	}

	result, err := h.attemptService.GetByStudent(c.Request.Context(), studentID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
