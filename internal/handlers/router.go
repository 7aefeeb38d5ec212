package handlers

import (
	"net/http"

	"github.com/edupulse/assessment-portal/internal/repositories"
	"github.com/edupulse/assessment-portal/internal/services"
	"github.com/edupulse/assessment-portal/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	repo              repositories.Repository
	logger            utils.Logger
	assessmentHandler *AssessmentHandler
	attemptHandler    *AttemptHandler
	analyticsHandler  *AnalyticsHandler
}

func NewHandlerManager(
	repo repositories.Repository,
	assessmentService services.AssessmentService,
	attemptService services.AttemptService,
	analyticsService services.AnalyticsService,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		repo:              repo,
		logger:            logger,
		assessmentHandler: NewAssessmentHandler(assessmentService, logger),
		attemptHandler:    NewAttemptHandler(attemptService, logger),
		analyticsHandler:  NewAnalyticsHandler(analyticsService, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "assessment-portal",
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(AuthMiddleware(hm.repo, hm.logger))
	{
		assessments := v1.Group("/assessments")
		{
			assessments.POST("", hm.assessmentHandler.CreateAssessment)
			assessments.GET("", hm.assessmentHandler.ListAssessments)
			assessments.GET("/:id", hm.assessmentHandler.GetAssessment)
			assessments.PUT("/:id", hm.assessmentHandler.UpdateAssessment)
			assessments.DELETE("/:id", hm.assessmentHandler.DeleteAssessment)
			assessments.POST("/:id/publish", hm.assessmentHandler.PublishAssessment)
			assessments.POST("/:id/archive", hm.assessmentHandler.ArchiveAssessment)
		}

		attempts := v1.Group("/attempts")
		{
			attempts.POST("/start", hm.attemptHandler.StartAttempt)
			attempts.POST("/submit", hm.attemptHandler.SubmitAttempt)
			attempts.GET("/:id", hm.attemptHandler.GetAttempt)
			attempts.GET("/current/:assessment_id", hm.attemptHandler.GetCurrentAttempt)
		}

		analytics := v1.Group("/analytics")
		{
			analytics.GET("/assessments/:id", StaffOnly(), hm.analyticsHandler.GetAssessmentAnalytics)
			analytics.GET("/students/:id", hm.analyticsHandler.GetStudentAnalytics)
		}
	}
}
