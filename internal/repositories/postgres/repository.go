package postgres

import (
	"github.com/edupulse/assessment-portal/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	assessment repositories.AssessmentRepository
	attempt    repositories.AttemptRepository
	user       repositories.UserRepository
}

// NewRepository builds the gorm-backed repository aggregate.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		assessment: NewAssessmentPostgreSQL(db),
		attempt:    NewAttemptPostgreSQL(db),
		user:       NewUserPostgreSQL(db),
	}
}

func (r *repository) Assessment() repositories.AssessmentRepository {
	return r.assessment
}

func (r *repository) Attempt() repositories.AttemptRepository {
	return r.attempt
}

func (r *repository) User() repositories.UserRepository {
	return r.user
}
