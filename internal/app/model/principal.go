package model

// PrincipalKind distinguishes human actors from automatic transitions in the
// audit trail. Audit consumers must never have to compare sentinel strings.
type PrincipalKind string

const (
	PrincipalKindUser   PrincipalKind = "user"
	PrincipalKindSystem PrincipalKind = "system"
)

// Principal is the acting identity attached to every mutating operation.
type Principal struct {
	Kind   PrincipalKind
	UserID *uint
	Role   UserRole
}

// UserPrincipal builds a principal for an authenticated user.
func UserPrincipal(userID uint, role UserRole) Principal {
	id := userID
	return Principal{Kind: PrincipalKindUser, UserID: &id, Role: role}
}

// SystemPrincipal builds the principal for automatic transitions (seal
// recomputation, expiry checks).
func SystemPrincipal() Principal {
	return Principal{Kind: PrincipalKindSystem}
}

// IsSystem reports whether the principal is the automatic system actor.
func (p Principal) IsSystem() bool {
	return p.Kind == PrincipalKindSystem
}
