package handlers

import (
	"net/http"

	"github.com/edupulse/assessment-portal/internal/services"
	"github.com/edupulse/assessment-portal/internal/utils"
	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	BaseHandler
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService, logger utils.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      NewBaseHandler(logger),
		analyticsService: analyticsService,
	}
}

// GetAssessmentAnalytics serves the cohort report for one assessment (staff only)
func (h *AnalyticsHandler) GetAssessmentAnalytics(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	user := h.requireUser(c)
	if user == nil {
		return
	}

	report, err := h.analyticsService.GetAssessmentAnalytics(c.Request.Context(), id, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetStudentAnalytics serves a student's cross-assessment report. Students may
// read their own; staff may read anyone's.
func (h *AnalyticsHandler) GetStudentAnalytics(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid id",
			Details: "student id cannot be empty",
		})
		return
	}
	user := h.requireUser(c)
	if user == nil {
		return
	}

	report, err := h.analyticsService.GetStudentAnalytics(c.Request.Context(), studentID, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
