package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/edupulse/assessment-portal/internal/models"
	"github.com/edupulse/assessment-portal/internal/services"
	"github.com/edupulse/assessment-portal/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides the logging and error translation shared by all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", c.GetHeader("X-Request-ID"),
	}
	if user := currentUser(c); user != nil {
		fields = append(fields, "user_id", user.ID)
	}
	fields = append(fields, additionalFields...)
	h.logger.LogError(err, message, fields...)
}

// parseIDParam parses a numeric path parameter, responding 400 and returning 0 on
// a malformed value.
func (h *BaseHandler) parseIDParam(c *gin.Context, param string) uint {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "must be a positive integer",
		})
		return 0
	}
	return uint(id)
}

// currentUser returns the authenticated user placed in the context by AuthMiddleware.
func currentUser(c *gin.Context) *models.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// requireUser fetches the authenticated user, responding 401 when absent.
func (h *BaseHandler) requireUser(c *gin.Context) *models.User {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
	}
	return user
}

// handleServiceError maps service errors to HTTP status codes.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Access denied",
			Details: map[string]interface{}{
				"resource": permissionError.Resource,
				"action":   permissionError.Action,
				"reason":   permissionError.Reason,
			},
		})
		return
	}

	switch {
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
	case services.IsUnauthorized(err):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: err.Error()})
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	case services.IsConflict(err):
		c.JSON(http.StatusConflict, ErrorResponse{Message: err.Error()})
	default:
		h.LogError(c, err, "Unhandled service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
