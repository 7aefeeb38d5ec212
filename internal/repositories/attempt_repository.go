package repositories

import (
	"context"
	"time"

	"github.com/edupulse/assessment-portal/internal/models"
)

// SubmitPatch carries everything the submission transition writes in one
// conditional update.
type SubmitPatch struct {
	Answers              map[string]int
	SectionScores        []models.SectionScore
	OverallPercentage    float64
	OverallAverageRating float64
	TimeSpent            int
	CompletedAt          time.Time
}

// AttemptRepository persists attempt records.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.AttemptRecord) error
	GetByID(ctx context.Context, id uint) (*models.AttemptRecord, error)
	List(ctx context.Context, filters AttemptFilters) ([]*models.AttemptRecord, int64, error)

	// GetInProgress returns the student's in_progress attempt for the assessment,
	// or nil when none exists.
	GetInProgress(ctx context.Context, assessmentID uint, studentID string) (*models.AttemptRecord, error)

	GetByAssessment(ctx context.Context, assessmentID uint) ([]*models.AttemptRecord, error)
	GetByStudent(ctx context.Context, studentID string) ([]*models.AttemptRecord, error)

	// CompleteAttempt performs the in_progress -> completed transition as a single
	// conditional update. It returns false when no in_progress row matched, which
	// covers both submit-without-start and a concurrent duplicate submit: only one
	// caller observes true.
	CompleteAttempt(ctx context.Context, assessmentID uint, studentID string, patch SubmitPatch) (bool, error)

	HasAttempts(ctx context.Context, assessmentID uint) (bool, error)
}
