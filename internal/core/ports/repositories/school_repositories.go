package repositories

import (
	"context"
	"time"

	"github.com/uniformes-app/backoffice/internal/core/domain"
)

// SchoolRepositoryFacade defines persistence operations for schools (tenants).
type SchoolRepositoryFacade interface {
	SaveSchool(ctx context.Context, school domain.School) error
	FindSchoolByID(ctx context.Context, schoolID string) (*domain.School, error)
	ListSchools(ctx context.Context, limit int, offset int) ([]domain.School, error)
	UpdateSchool(ctx context.Context, school domain.School) error
	DeactivateSchool(ctx context.Context, schoolID string, userID string, now time.Time) error
}

// UserRepositoryFacade defines persistence operations for back-office users.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
}
