package services

import (
	"errors"
	"fmt"

	apperrors "github.com/edupulse/assessment-portal/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrConflict         = errors.New("resource conflict")

	// Assessment specific errors
	ErrAssessmentNotFound     = errors.New("assessment not found")
	ErrAssessmentNotEditable  = errors.New("assessment cannot be edited in current status")
	ErrAssessmentNotDeletable = errors.New("assessment cannot be deleted - has existing attempts")
	ErrAssessmentNotPublished = errors.New("assessment is not published")
	ErrInvalidStatusChange    = errors.New("invalid assessment status transition")
	ErrScaleConfiguration     = errors.New("invalid rating scale configuration")

	// Attempt specific errors
	ErrAttemptNotFound         = errors.New("attempt not found")
	ErrAttemptNotInProgress    = errors.New("no attempt in progress for this assessment")
	ErrAttemptAlreadySubmitted = errors.New("attempt already submitted")
	ErrNotEligible             = errors.New("student does not match assessment criteria")

	// User errors
	ErrUserNotFound = errors.New("user not found")
)

// ===== CUSTOM ERROR TYPES =====

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type PermissionError struct {
	UserID     string `json:"user_id"`
	ResourceID uint   `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (pe *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s %d - %s",
		pe.UserID, pe.Action, pe.Resource, pe.ResourceID, pe.Reason)
}

func NewPermissionError(userID string, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAssessmentNotFound) ||
		errors.Is(err, ErrAttemptNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden) || errors.Is(err, ErrNotEligible) {
		return true
	}
	var pe *PermissionError
	return errors.As(err, &pe)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrScaleConfiguration) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrAssessmentNotDeletable) ||
		errors.Is(err, ErrAssessmentNotEditable) ||
		errors.Is(err, ErrInvalidStatusChange) ||
		errors.Is(err, ErrAttemptNotInProgress) ||
		errors.Is(err, ErrAttemptAlreadySubmitted)
}
