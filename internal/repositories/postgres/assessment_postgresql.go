package postgres

import (
	"context"

	"github.com/edupulse/assessment-portal/internal/models"
	"github.com/edupulse/assessment-portal/internal/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AssessmentPostgreSQL struct {
	db *gorm.DB
}

func NewAssessmentPostgreSQL(db *gorm.DB) repositories.AssessmentRepository {
	return &AssessmentPostgreSQL{db: db}
}

func (a AssessmentPostgreSQL) Create(ctx context.Context, assessment *models.Assessment) error {
	return a.db.WithContext(ctx).Create(assessment).Error
}

func (a AssessmentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := a.db.WithContext(ctx).First(&assessment, id).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (a AssessmentPostgreSQL) Update(ctx context.Context, assessment *models.Assessment) error {
	// Save replaces the full document, jsonb columns included.
	return a.db.WithContext(ctx).Save(assessment).Error
}

func (a AssessmentPostgreSQL) Delete(ctx context.Context, id uint) error {
	return a.db.WithContext(ctx).Delete(&models.Assessment{}, id).Error
}

func (a AssessmentPostgreSQL) List(ctx context.Context, filters repositories.AssessmentFilters) ([]*models.Assessment, int64, error) {
	var assessments []*models.Assessment
	var total int64

	query := a.db.WithContext(ctx).Model(&models.Assessment{})
	query = a.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = a.applyPaginationAndSort(query, filters)
	if err := query.Find(&assessments).Error; err != nil {
		return nil, 0, err
	}

	return assessments, total, nil
}

func (a AssessmentPostgreSQL) UpdateStatus(ctx context.Context, id uint, status models.AssessmentStatus) error {
	return a.db.WithContext(ctx).
		Model(&models.Assessment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (a AssessmentPostgreSQL) UpdateStats(ctx context.Context, id uint, stats models.CohortStats) error {
	return a.db.WithContext(ctx).
		Model(&models.Assessment{}).
		Where("id = ?", id).
		Update("stats", datatypes.NewJSONType(stats)).Error
}

func (a AssessmentPostgreSQL) applyFilters(query *gorm.DB, filters repositories.AssessmentFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.CreatedBy != nil {
		query = query.Where("created_by = ?", *filters.CreatedBy)
	}
	if filters.Course != nil {
		// criteria is a jsonb document; match assessments whose course list
		// contains the student's course.
		query = query.Where("criteria -> 'courses' @> ?", datatypes.JSON(`["`+string(*filters.Course)+`"]`))
	}
	return query
}

func (a AssessmentPostgreSQL) applyPaginationAndSort(query *gorm.DB, filters repositories.AssessmentFilters) *gorm.DB {
	sortBy := filters.SortBy
	switch sortBy {
	case "title", "created_at", "updated_at":
	default:
		sortBy = "created_at"
	}
	order := "desc"
	if filters.SortOrder == "asc" {
		order = "asc"
	}
	query = query.Order(sortBy + " " + order)

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}
