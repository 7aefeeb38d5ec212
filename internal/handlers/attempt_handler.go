package handlers

import (
	"net/http"

	"github.com/edupulse/assessment-portal/internal/services"
	"github.com/edupulse/assessment-portal/internal/utils"
	"github.com/gin-gonic/gin"
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

type startAttemptRequest struct {
	AssessmentID uint `json:"assessment_id" binding:"required"`
}

// StartAttempt opens (or resumes) the caller's attempt on an assessment
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	user := h.requireUser(c)
	if user == nil {
		return
	}

	var req startAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	attempt, err := h.attemptService.Start(c.Request.Context(), req.AssessmentID, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, attempt)
}

// SubmitAttempt scores and finalizes the caller's in-progress attempt
func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	user := h.requireUser(c)
	if user == nil {
		return
	}

	var req services.SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	result, err := h.attemptService.Submit(c.Request.Context(), &req, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAttempt retrieves one attempt; students may only read their own
func (h *AttemptHandler) GetAttempt(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	user := h.requireUser(c)
	if user == nil {
		return
	}

	attempt, err := h.attemptService.GetByID(c.Request.Context(), id, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, attempt)
}

// GetCurrentAttempt returns the caller's in-progress attempt for an assessment
func (h *AttemptHandler) GetCurrentAttempt(c *gin.Context) {
	assessmentID := h.parseIDParam(c, "assessment_id")
	if assessmentID == 0 {
		return
	}
	user := h.requireUser(c)
	if user == nil {
		return
	}

	attempt, err := h.attemptService.GetCurrent(c.Request.Context(), assessmentID, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, attempt)
}
