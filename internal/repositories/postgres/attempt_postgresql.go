package postgres

import (
	"context"

	"github.com/edupulse/assessment-portal/internal/models"
	"github.com/edupulse/assessment-portal/internal/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AttemptPostgreSQL struct {
	db *gorm.DB
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{db: db}
}

func (a AttemptPostgreSQL) Create(ctx context.Context, attempt *models.AttemptRecord) error {
	return a.db.WithContext(ctx).Create(attempt).Error
}

func (a AttemptPostgreSQL) GetByID(ctx context.Context, id uint) (*models.AttemptRecord, error) {
	var attempt models.AttemptRecord
	if err := a.db.WithContext(ctx).First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (a AttemptPostgreSQL) List(ctx context.Context, filters repositories.AttemptFilters) ([]*models.AttemptRecord, int64, error) {
	var attempts []*models.AttemptRecord
	var total int64

	query := a.db.WithContext(ctx).Model(&models.AttemptRecord{})
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.AssessmentID != nil {
		query = query.Where("assessment_id = ?", *filters.AssessmentID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Order("created_at desc").Find(&attempts).Error; err != nil {
		return nil, 0, err
	}

	return attempts, total, nil
}

func (a AttemptPostgreSQL) GetInProgress(ctx context.Context, assessmentID uint, studentID string) (*models.AttemptRecord, error) {
	var attempt models.AttemptRecord
	err := a.db.WithContext(ctx).
		Where("assessment_id = ? AND student_id = ? AND status = ?",
			assessmentID, studentID, models.AttemptInProgress).
		First(&attempt).Error
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return &attempt, nil
}

func (a AttemptPostgreSQL) GetByAssessment(ctx context.Context, assessmentID uint) ([]*models.AttemptRecord, error) {
	var attempts []*models.AttemptRecord
	if err := a.db.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("created_at asc").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (a AttemptPostgreSQL) GetByStudent(ctx context.Context, studentID string) ([]*models.AttemptRecord, error) {
	var attempts []*models.AttemptRecord
	if err := a.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at asc").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

// CompleteAttempt runs the submission transition as one conditional UPDATE. The
// status predicate makes it at-most-once: a concurrent duplicate submit loses the
// race, matches zero rows and reports false.
func (a AttemptPostgreSQL) CompleteAttempt(ctx context.Context, assessmentID uint, studentID string, patch repositories.SubmitPatch) (bool, error) {
	result := a.db.WithContext(ctx).
		Model(&models.AttemptRecord{}).
		Where("assessment_id = ? AND student_id = ? AND status = ?",
			assessmentID, studentID, models.AttemptInProgress).
		Updates(map[string]interface{}{
			"status":                 models.AttemptCompleted,
			"answers":                datatypes.NewJSONType(patch.Answers),
			"section_scores":         datatypes.NewJSONType(patch.SectionScores),
			"overall_percentage":     patch.OverallPercentage,
			"overall_average_rating": patch.OverallAverageRating,
			"time_spent":             patch.TimeSpent,
			"completed_at":           patch.CompletedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (a AttemptPostgreSQL) HasAttempts(ctx context.Context, assessmentID uint) (bool, error) {
	var count int64
	if err := a.db.WithContext(ctx).
		Model(&models.AttemptRecord{}).
		Where("assessment_id = ?", assessmentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
