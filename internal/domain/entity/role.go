// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the fleet role bound to a user account. It governs which
// dashboard a user lands on and which store actions are permitted.
type Role string

const (
	// RoleOwner indicates a car owner.
	RoleOwner Role = "owner"
	// RoleManager indicates a fleet manager.
	RoleManager Role = "manager"
	// RoleDriver indicates a driver.
	RoleDriver Role = "driver"
	// RoleAdmin indicates a system administrator.
	RoleAdmin Role = "admin"
	// RoleGuest is the logged-out fallback role.
	RoleGuest Role = "guest"
)

// roleRank is the permission total order: admin > owner > manager > driver.
// Guest and unknown roles rank zero and are denied everywhere.
var roleRank = map[Role]int{
	RoleAdmin:   4,
	RoleOwner:   3,
	RoleManager: 2,
	RoleDriver:  1,
}

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is one of the registerable fleet roles.
// Guest is deliberately excluded: it is derived state, never stored.
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleDriver, RoleAdmin:
		return true
	default:
		return false
	}
}

// HasRole reports whether userRole matches required exactly, or is a member
// of required when more than one role is given.
func HasRole(userRole Role, required ...Role) bool {
	if userRole == "" {
		return false
	}

	return slices.Contains(required, userRole)
}

// HasPermission reports whether userRole ranks at or above requiredLevel in
// the role hierarchy. Unknown or empty roles are always denied.
func HasPermission(userRole, requiredLevel Role) bool {
	userRank, ok := roleRank[userRole]
	if !ok {
		return false
	}

	return userRank >= roleRank[requiredLevel]
}

// DashboardPath maps a role to its role-scoped dashboard route. Admins reuse
// the owner dashboard; anything unrecognized routes back to login.
func DashboardPath(role Role) string {
	switch role {
	case RoleOwner, RoleAdmin:
		return "/owner/dashboard"
	case RoleManager:
		return "/manager/dashboard"
	case RoleDriver:
		return "/driver/dashboard"
	default:
		return "/auth/login"
	}
}

// FormatRoleName returns the human-readable display name for a role.
func FormatRoleName(role Role) string {
	switch role {
	case RoleOwner:
		return "Car Owner"
	case RoleManager:
		return "Fleet Manager"
	case RoleDriver:
		return "Driver"
	case RoleAdmin:
		return "Administrator"
	default:
		return role.String()
	}
}
