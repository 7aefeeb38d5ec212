package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/edupulse/assessment-portal/internal/models"
	"github.com/edupulse/assessment-portal/internal/repositories"
	"github.com/edupulse/assessment-portal/internal/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the Casdoor-issued bearer token and loads the caller
// into the request context. The identity is mirrored into the local users table on
// every request so cohort eligibility counts see current academic profiles.
func AuthMiddleware(repo repositories.Repository, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Missing bearer token",
			})
			return
		}

		claims, err := casdoorsdk.ParseJwtToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid token",
			})
			return
		}

		user := userFromClaims(claims)
		if err := repo.User().Upsert(c.Request.Context(), user); err != nil {
			// Stale profile data is tolerable; a failed sync must not block the request.
			logger.Warn("User sync failed", "user_id", user.ID, "error", err)
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

func userFromClaims(claims *casdoorsdk.Claims) *models.User {
	now := time.Now()
	user := &models.User{
		ID:          claims.User.Id,
		FullName:    claims.User.DisplayName,
		Email:       claims.User.Email,
		Role:        roleFromClaims(claims),
		IsActive:    !claims.User.IsForbidden,
		LastLoginAt: &now,
	}

	props := claims.User.Properties
	if course := models.Course(props["course"]); course.IsValid() {
		user.Course = &course
	}
	if spec := props["pgdm_specialization"]; spec != "" {
		user.PGDMSpecialization = &spec
	}
	if roll := props["roll_number"]; roll != "" {
		user.RollNumber = &roll
	}
	return user
}

func roleFromClaims(claims *casdoorsdk.Claims) models.UserRole {
	switch models.UserRole(claims.User.Properties["role"]) {
	case models.RoleSuperAdmin:
		return models.RoleSuperAdmin
	case models.RoleAdmin:
		return models.RoleAdmin
	case models.RoleStudent:
		return models.RoleStudent
	}
	if claims.User.IsAdmin {
		return models.RoleAdmin
	}
	return models.RoleStudent
}

// StaffOnly rejects callers without an admin role before the handler runs.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "User not authenticated",
			})
			return
		}
		if !user.IsStaff() {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Staff role required",
			})
			return
		}
		c.Next()
	}
}
