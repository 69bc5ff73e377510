package models

// Role is the fixed permission category of a user. Stored as text, but every
// write path must go through ParseRole so free-text roles never reach the
// database.
type Role string

const (
	RoleUser       Role = "user"
	RoleMarketing  Role = "marketing"
	RoleOwner      Role = "owner"
	RoleAthlete    Role = "athlete"
	RoleSuperAdmin Role = "superadmin"
	RoleScout      Role = "scout"
)

// ValidRoles returns every role the platform recognizes, in a stable order.
func ValidRoles() []Role {
	return []Role{RoleUser, RoleMarketing, RoleOwner, RoleAthlete, RoleSuperAdmin, RoleScout}
}

// ParseRole maps a raw string to a Role. The second result reports whether
// the input named a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	for _, v := range ValidRoles() {
		if r == v {
			return r, true
		}
	}
	return "", false
}

// In reports whether r is a member of the given allowed set.
func (r Role) In(allowed []Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// Named policy sets consumed by the authorization middleware. Handlers must
// use these instead of re-deriving allowed-role lists ad hoc.

// SuperAdminOnly permits only superadmin.
func SuperAdminOnly() []Role { return []Role{RoleSuperAdmin} }

// MarketingOrHigher permits marketing, owner, and superadmin.
func MarketingOrHigher() []Role { return []Role{RoleMarketing, RoleOwner, RoleSuperAdmin} }

// OwnerOrHigher permits owner and superadmin.
func OwnerOrHigher() []Role { return []Role{RoleOwner, RoleSuperAdmin} }

// ScoutOnly permits only scout. Superadmin is deliberately excluded: coupon
// creation and affiliate codes belong to scouts alone.
func ScoutOnly() []Role { return []Role{RoleScout} }

// AnyAuthenticated permits every known role.
func AnyAuthenticated() []Role { return ValidRoles() }
