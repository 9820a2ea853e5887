package services

import (
	"context"

	"github.com/uniformes-app/backoffice/internal/core/domain"
	"github.com/uniformes-app/backoffice/internal/dto"
)

// SchoolSvcFacade manages tenants (schools).
type SchoolSvcFacade interface {
	CreateSchool(ctx context.Context, req dto.CreateSchoolRequest, userID string) (*domain.School, error)
	GetSchoolByID(ctx context.Context, schoolID string) (*domain.School, error)
	ListSchools(ctx context.Context, limit int, offset int) ([]domain.School, error)
	UpdateSchool(ctx context.Context, schoolID string, req dto.UpdateSchoolRequest, userID string) (*domain.School, error)
	DeactivateSchool(ctx context.Context, schoolID string, userID string) error
}

// UserSvcFacade manages back-office users.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// AuthenticateUser verifies email/password credentials.
	AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error)

	// FindOrCreateGoogleUser maps a verified Google identity onto a local user.
	FindOrCreateGoogleUser(ctx context.Context, email string, name string) (*domain.User, error)
}
