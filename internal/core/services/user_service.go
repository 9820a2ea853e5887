package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uniformes-app/backoffice/internal/apperrors"
	"github.com/uniformes-app/backoffice/internal/core/domain"
	portsrepo "github.com/uniformes-app/backoffice/internal/core/ports/repositories"
	portssvc "github.com/uniformes-app/backoffice/internal/core/ports/services"
	"github.com/uniformes-app/backoffice/internal/dto"
	"github.com/uniformes-app/backoffice/internal/middleware"
	"github.com/uniformes-app/backoffice/internal/utils"
)

type UserService struct {
	userRepo portsrepo.UserRepositoryFacade
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade) *UserService {
	return &UserService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	userID := uuid.NewString()
	if creatorUserID == "" {
		// Self-registration audits the user as their own creator.
		creatorUserID = userID
	}
	user := domain.User{
		UserID:       userID,
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(creatorUserID, now),
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("email %s is already registered: %w", user.Email, apperrors.ErrDuplicate)
		}
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("User created", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// AuthenticateUser checks the password against the stored bcrypt hash. It
// returns ErrUnauthorized for a missing user, a bad password, or a
// Google-only account, without revealing which one failed.
func (s *UserService) AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
		}
		logger.Error("Failed to look up user for login", slog.String("error", err.Error()))
		return nil, err
	}

	if !user.IsActive {
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	return user, nil
}

// FindOrCreateGoogleUser returns the local user for a verified Google
// identity, provisioning one on first sign-in.
func (s *UserService) FindOrCreateGoogleUser(ctx context.Context, email string, name string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		if !user.IsActive {
			return nil, fmt.Errorf("account is deactivated: %w", apperrors.ErrUnauthorized)
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	newUser := domain.User{
		UserID:       uuid.NewString(),
		Name:         name,
		Email:        email,
		AuthProvider: domain.ProviderGoogle,
		IsActive:     true,
	}
	newUser.AuditFields = domain.NewAuditFields(newUser.UserID, now)

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Concurrent first sign-in; the other request won.
			return s.userRepo.FindUserByEmail(ctx, email)
		}
		logger.Error("Failed to provision Google user", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Google user provisioned", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}
