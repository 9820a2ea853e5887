package domain

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User is a back-office staff member. The user's ID feeds every audit field
// (created_by, adjusted_by) in the ledger.
type User struct {
	UserID       string
	Name         string
	Email        string
	PasswordHash string `json:"-"`
	AuthProvider AuthProvider
	IsActive     bool
	AuditFields
}
