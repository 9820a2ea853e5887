package mapping

import (
	"github.com/uniformes-app/backoffice/internal/core/domain"
	"github.com/uniformes-app/backoffice/internal/models"
)

// ToModelSchool converts a domain School to a model School.
func ToModelSchool(d domain.School) models.School {
	return models.School{
		SchoolID:    d.SchoolID,
		Name:        d.Name,
		City:        d.City,
		ContactName: d.ContactName,
		Phone:       d.Phone,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSchool converts a model School to a domain School.
func ToDomainSchool(m models.School) domain.School {
	return domain.School{
		SchoolID:    m.SchoolID,
		Name:        m.Name,
		City:        m.City,
		ContactName: m.ContactName,
		Phone:       m.Phone,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelUser converts a domain User to a model User.
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		AuthProvider: string(d.AuthProvider),
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		AuthProvider: domain.AuthProvider(m.AuthProvider),
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
