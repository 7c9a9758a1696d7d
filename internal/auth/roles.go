package auth

// UserRole is the user's role
type UserRole = string

const (
	// RoleGuest can only view public resources
	RoleGuest UserRole = "guest"
	// RoleMember is a regular wallet account holder
	RoleMember UserRole = "member"
	// RoleAdmin manages site content and companies
	RoleAdmin UserRole = "admin"
	// RoleOwner has full control, including destructive operations
	RoleOwner UserRole = "owner"
)

var roleHierarchy = map[UserRole]int{
	RoleGuest:  0,
	RoleMember: 1,
	RoleAdmin:  2,
	RoleOwner:  3,
}

// IsValidRole checks if the role is one of the predefined valid roles
func IsValidRole(r UserRole) bool {
	_, ok := roleHierarchy[r]
	return ok
}

// RoleIsAtLeast checks if role meets the minimum required level. Unknown
// roles never satisfy any minimum.
func RoleIsAtLeast(r, minRole UserRole) bool {
	currentLevel, ok := roleHierarchy[r]
	if !ok {
		return false
	}
	minLevel, ok := roleHierarchy[minRole]
	if !ok {
		return false
	}
	return currentLevel >= minLevel
}

// ParseRole safely parses a string into a UserRole
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, IsValidRole(role)
}
