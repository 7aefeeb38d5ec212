package handlers

import (
	"net/http"
	"strconv"

	"github.com/edupulse/assessment-portal/internal/models"
	"github.com/edupulse/assessment-portal/internal/services"
	"github.com/edupulse/assessment-portal/internal/utils"
	"github.com/gin-gonic/gin"
)

type AssessmentHandler struct {
	BaseHandler
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(assessmentService services.AssessmentService, logger utils.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assessmentService: assessmentService,
	}
}

// CreateAssessment creates a new draft assessment
func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	user := h.requireUser(c)
	if user == nil {
		return
	}

	var req services.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	assessment, err := h.assessmentService.Create(c.Request.Context(), &req, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assessment)
}

// GetAssessment retrieves one assessment
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	user := h.requireUser(c)
	if user == nil {
		return
	}

	assessment, err := h.assessmentService.GetByID(c.Request.Context(), id, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// ListAssessments lists assessments visible to the caller. Students only ever see
// published assessments assigned to their cohort.
func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	user := h.requireUser(c)
	if user == nil {
		return
	}

	req := services.ListAssessmentsRequest{
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if status := c.Query("status"); status != "" {
		s := models.AssessmentStatus(status)
		req.Status = &s
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		req.Limit = limit
	}
	if offset, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		req.Offset = offset
	}

	assessments, total, err := h.assessmentService.List(c.Request.Context(), &req, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assessments": assessments,
		"total":       total,
		"limit":       req.Limit,
		"offset":      req.Offset,
	})
}

// UpdateAssessment replaces the assessment document
func (h *AssessmentHandler) UpdateAssessment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	user := h.requireUser(c)
	if user == nil {
		return
	}

	var req services.UpdateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	assessment, err := h.assessmentService.Update(c.Request.Context(), id, &req, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// DeleteAssessment removes an assessment that has no attempts
func (h *AssessmentHandler) DeleteAssessment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	user := h.requireUser(c)
	if user == nil {
		return
	}

	if err := h.assessmentService.Delete(c.Request.Context(), id, user); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Assessment deleted"})
}

// PublishAssessment transitions draft to published
func (h *AssessmentHandler) PublishAssessment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	user := h.requireUser(c)
	if user == nil {
		return
	}

	assessment, err := h.assessmentService.Publish(c.Request.Context(), id, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// ArchiveAssessment transitions published to archived
func (h *AssessmentHandler) ArchiveAssessment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	user := h.requireUser(c)
	if user == nil {
		return
	}

	assessment, err := h.assessmentService.Archive(c.Request.Context(), id, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessment)
}
