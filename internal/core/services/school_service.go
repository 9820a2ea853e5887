package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uniformes-app/backoffice/internal/apperrors"
	"github.com/uniformes-app/backoffice/internal/core/domain"
	portsrepo "github.com/uniformes-app/backoffice/internal/core/ports/repositories"
	portssvc "github.com/uniformes-app/backoffice/internal/core/ports/services"
	"github.com/uniformes-app/backoffice/internal/dto"
	"github.com/uniformes-app/backoffice/internal/middleware"
)

// SchoolService manages the tenants of the business: the schools whose
// uniforms it sells.
type SchoolService struct {
	schoolRepo portsrepo.SchoolRepositoryFacade
}

func NewSchoolService(repo portsrepo.SchoolRepositoryFacade) *SchoolService {
	return &SchoolService{schoolRepo: repo}
}

// Ensure SchoolService implements the facade.
var _ portssvc.SchoolSvcFacade = (*SchoolService)(nil)

func (s *SchoolService) CreateSchool(ctx context.Context, req dto.CreateSchoolRequest, userID string) (*domain.School, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	school := domain.School{
		SchoolID:    uuid.NewString(),
		Name:        req.Name,
		City:        req.City,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	if err := s.schoolRepo.SaveSchool(ctx, school); err != nil {
		logger.Error("Failed to save school", slog.String("error", err.Error()), slog.String("school_id", school.SchoolID))
		return nil, err
	}

	logger.Info("School created", slog.String("school_id", school.SchoolID), slog.String("name", school.Name))
	return &school, nil
}

func (s *SchoolService) GetSchoolByID(ctx context.Context, schoolID string) (*domain.School, error) {
	return s.schoolRepo.FindSchoolByID(ctx, schoolID)
}

func (s *SchoolService) ListSchools(ctx context.Context, limit int, offset int) ([]domain.School, error) {
	return s.schoolRepo.ListSchools(ctx, limit, offset)
}

func (s *SchoolService) UpdateSchool(ctx context.Context, schoolID string, req dto.UpdateSchoolRequest, userID string) (*domain.School, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	school, err := s.schoolRepo.FindSchoolByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		school.Name = *req.Name
	}
	if req.City != nil {
		school.City = *req.City
	}
	if req.ContactName != nil {
		school.ContactName = *req.ContactName
	}
	if req.Phone != nil {
		school.Phone = *req.Phone
	}
	school.Touch(userID, time.Now())

	if err := s.schoolRepo.UpdateSchool(ctx, *school); err != nil {
		logger.Error("Failed to update school", slog.String("error", err.Error()), slog.String("school_id", schoolID))
		return nil, err
	}
	return school, nil
}

func (s *SchoolService) DeactivateSchool(ctx context.Context, schoolID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.schoolRepo.DeactivateSchool(ctx, schoolID, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to deactivate school", slog.String("error", err.Error()), slog.String("school_id", schoolID))
		}
		return err
	}
	logger.Info("School deactivated", slog.String("school_id", schoolID))
	return nil
}
