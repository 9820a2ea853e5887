package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uniformes-app/backoffice/internal/apperrors"
	"github.com/uniformes-app/backoffice/internal/core/domain"
	portsrepo "github.com/uniformes-app/backoffice/internal/core/ports/repositories"
	"github.com/uniformes-app/backoffice/internal/models"
	"github.com/uniformes-app/backoffice/internal/utils/mapping"
)

const schoolColumns = `school_id, name, city, contact_name, phone, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxSchoolRepository struct {
	BaseRepository
}

// newPgxSchoolRepository creates a new repository for school (tenant) data.
func newPgxSchoolRepository(pool DBPool) *PgxSchoolRepository {
	return &PgxSchoolRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSchoolRepository implements portsrepo.SchoolRepositoryFacade
var _ portsrepo.SchoolRepositoryFacade = (*PgxSchoolRepository)(nil)

func scanSchool(row rowScanner) (models.School, error) {
	var m models.School
	err := row.Scan(
		&m.SchoolID,
		&m.Name,
		&m.City,
		&m.ContactName,
		&m.Phone,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveSchool inserts a new school.
func (r *PgxSchoolRepository) SaveSchool(ctx context.Context, school domain.School) error {
	m := mapping.ToModelSchool(school)

	query := `
		INSERT INTO schools (` + schoolColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SchoolID,
		m.Name,
		m.City,
		m.ContactName,
		m.Phone,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: school with ID %s already exists", apperrors.ErrDuplicate, m.SchoolID)
		}
		return fmt.Errorf("failed to save school %s: %w", m.SchoolID, err)
	}
	return nil
}

// FindSchoolByID retrieves a school by its ID.
func (r *PgxSchoolRepository) FindSchoolByID(ctx context.Context, schoolID string) (*domain.School, error) {
	query := `SELECT ` + schoolColumns + ` FROM schools WHERE school_id = $1;`

	m, err := scanSchool(r.Pool.QueryRow(ctx, query, schoolID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find school by ID %s: %w", schoolID, err)
	}

	d := mapping.ToDomainSchool(m)
	return &d, nil
}

// ListSchools retrieves a paginated list of active schools.
func (r *PgxSchoolRepository) ListSchools(ctx context.Context, limit int, offset int) ([]domain.School, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + schoolColumns + ` FROM schools
		WHERE is_active = TRUE
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query schools: %w", err)
	}
	defer rows.Close()

	schools := []domain.School{}
	for rows.Next() {
		m, err := scanSchool(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan school row: %w", err)
		}
		schools = append(schools, mapping.ToDomainSchool(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating school rows: %w", rows.Err())
	}

	return schools, nil
}

// UpdateSchool updates an existing school.
func (r *PgxSchoolRepository) UpdateSchool(ctx context.Context, school domain.School) error {
	m := mapping.ToModelSchool(school)

	query := `
		UPDATE schools
		SET name = $2, city = $3, contact_name = $4, phone = $5, last_updated_at = $6, last_updated_by = $7
		WHERE school_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.SchoolID,
		m.Name,
		m.City,
		m.ContactName,
		m.Phone,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update school %s: %w", m.SchoolID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateSchool marks a school as inactive. Its ledger history stays put.
func (r *PgxSchoolRepository) DeactivateSchool(ctx context.Context, schoolID string, userID string, now time.Time) error {
	query := `
		UPDATE schools
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE school_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, schoolID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate school %s: %w", schoolID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindSchoolByID(ctx, schoolID); errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: school %s is already inactive", apperrors.ErrConflict, schoolID)
	}
	return nil
}
