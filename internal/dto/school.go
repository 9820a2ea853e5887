package dto

import (
	"time"

	"github.com/uniformes-app/backoffice/internal/core/domain"
)

// CreateSchoolRequest defines the data needed to register a school (tenant).
type CreateSchoolRequest struct {
	Name        string `json:"name" binding:"required"`
	City        string `json:"city"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
}

// UpdateSchoolRequest defines the fields that may be updated on a school.
// Pointers distinguish "not provided" from zero values.
type UpdateSchoolRequest struct {
	Name        *string `json:"name"`
	City        *string `json:"city"`
	ContactName *string `json:"contactName"`
	Phone       *string `json:"phone"`
}

// SchoolResponse defines the data returned for a school.
type SchoolResponse struct {
	SchoolID    string    `json:"schoolID"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	ContactName string    `json:"contactName"`
	Phone       string    `json:"phone"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToSchoolResponse converts a domain.School to SchoolResponse.
func ToSchoolResponse(s *domain.School) SchoolResponse {
	return SchoolResponse{
		SchoolID:    s.SchoolID,
		Name:        s.Name,
		City:        s.City,
		ContactName: s.ContactName,
		Phone:       s.Phone,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
	}
}
