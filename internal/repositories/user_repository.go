package repositories

import (
	"context"

	"github.com/edupulse/assessment-portal/internal/models"
)

// UserRepository reads the user directory synced from the identity provider.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error

	// CountEligibleStudents counts active students whose course falls inside the
	// assessment criteria.
	CountEligibleStudents(ctx context.Context, criteria models.Criteria) (int64, error)
}
