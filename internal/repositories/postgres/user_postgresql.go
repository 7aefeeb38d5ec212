package postgres

import (
	"context"

	"github.com/edupulse/assessment-portal/internal/models"
	"github.com/edupulse/assessment-portal/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

func (u UserPostgreSQL) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u UserPostgreSQL) Upsert(ctx context.Context, user *models.User) error {
	return u.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"full_name", "email", "role", "course", "pgdm_specialization", "last_login_at", "updated_at"}),
		}).
		Create(user).Error
}

func (u UserPostgreSQL) CountEligibleStudents(ctx context.Context, criteria models.Criteria) (int64, error) {
	if len(criteria.Courses) == 0 {
		return 0, nil
	}

	query := u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ? AND is_active = true", models.RoleStudent).
		Where("course IN ?", criteria.Courses)

	// Specialization filtering only narrows PGDM students; other courses have none.
	if len(criteria.PGDMSpecializations) > 0 {
		query = query.Where("course <> ? OR pgdm_specialization IN ?", models.CoursePGDM, criteria.PGDMSpecializations)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
