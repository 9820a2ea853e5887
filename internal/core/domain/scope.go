package domain

// Scope identifies which ledger a record belongs to: a single school's ledger
// or the business-wide (global) one. It replaces the nullable school_id checks
// that would otherwise leak into every query. The zero value is the global scope.
type Scope struct {
	schoolID *string
}

// GlobalScope returns the business-wide scope.
func GlobalScope() Scope {
	return Scope{}
}

// SchoolScope returns the scope of a single school's ledger.
func SchoolScope(schoolID string) Scope {
	return Scope{schoolID: &schoolID}
}

// IsGlobal reports whether this is the business-wide scope.
func (s Scope) IsGlobal() bool {
	return s.schoolID == nil
}

// SchoolID returns the owning school ID and true, or ("", false) for the
// global scope.
func (s Scope) SchoolID() (string, bool) {
	if s.schoolID == nil {
		return "", false
	}
	return *s.schoolID, true
}

// Equal reports whether two scopes select the same ledger.
func (s Scope) Equal(other Scope) bool {
	if s.schoolID == nil || other.schoolID == nil {
		return s.schoolID == nil && other.schoolID == nil
	}
	return *s.schoolID == *other.schoolID
}

// String renders the scope for log output.
func (s Scope) String() string {
	if s.schoolID == nil {
		return "global"
	}
	return "school:" + *s.schoolID
}

// ScopeFromSchoolID rebuilds a Scope from the nullable school reference the
// school_id column has in the database.
func ScopeFromSchoolID(schoolID *string) Scope {
	if schoolID == nil || *schoolID == "" {
		return GlobalScope()
	}
	id := *schoolID
	return Scope{schoolID: &id}
}

// NullableSchoolID returns the scope as a nullable school reference for
// persistence. Only repositories should need this.
func (s Scope) NullableSchoolID() *string {
	if s.schoolID == nil {
		return nil
	}
	id := *s.schoolID
	return &id
}
