package models

// School represents a tenant row.
type School struct {
	SchoolID    string `db:"school_id"`
	Name        string `db:"name"`
	City        string `db:"city"`
	ContactName string `db:"contact_name"`
	Phone       string `db:"phone"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
