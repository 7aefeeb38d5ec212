package repositories

import (
	"errors"

	"github.com/edupulse/assessment-portal/internal/models"
	"gorm.io/gorm"
)

// Repository aggregates all persistence interfaces behind one constructor.
type Repository interface {
	Assessment() AssessmentRepository
	Attempt() AttemptRepository
	User() UserRepository
}

// IsNotFoundError reports whether an error is the store's record-not-found
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// ===== SHARED FILTER STRUCTS =====

type AssessmentFilters struct {
	Status    *models.AssessmentStatus `json:"status"`
	CreatedBy *string                  `json:"created_by"`
	Course    *models.Course           `json:"course"`
	Limit     int                      `json:"limit"`
	Offset    int                      `json:"offset"`
	SortBy    string                   `json:"sort_by"`    // "created_at", "title"
	SortOrder string                   `json:"sort_order"` // "asc", "desc"
}

type AttemptFilters struct {
	Status       *models.AttemptStatus `json:"status"`
	StudentID    *string               `json:"student_id"`
	AssessmentID *uint                 `json:"assessment_id"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}
