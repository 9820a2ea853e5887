package domain

// School is one tenant of the business: a school whose uniforms we sell.
// Each school has its own ledger scope, inventory, sales and orders. The
// business-wide ledger is the Global scope, not a school.
type School struct {
	SchoolID    string
	Name        string
	City        string
	ContactName string
	Phone       string
	IsActive    bool
	AuditFields
}
