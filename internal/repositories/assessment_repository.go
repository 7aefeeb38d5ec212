package repositories

import (
	"context"

	"github.com/edupulse/assessment-portal/internal/models"
)

// AssessmentRepository persists assessment documents. Update replaces the whole
// document; nested sections/criteria/stats travel as jsonb values.
type AssessmentRepository interface {
	Create(ctx context.Context, assessment *models.Assessment) error
	GetByID(ctx context.Context, id uint) (*models.Assessment, error)
	Update(ctx context.Context, assessment *models.Assessment) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters AssessmentFilters) ([]*models.Assessment, int64, error)

	UpdateStatus(ctx context.Context, id uint, status models.AssessmentStatus) error

	// UpdateStats overwrites only the denormalized cohort stats blob, leaving the
	// rest of the document untouched so a stats refresh cannot race an edit.
	UpdateStats(ctx context.Context, id uint, stats models.CohortStats) error
}
