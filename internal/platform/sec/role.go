// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level carried in an access token.
type UserRole string

const (
	// Operators of the instance; may read any shelf for support purposes.
	RoleAdmin UserRole = "admin"

	// Default role: owns and curates a single personal shelf.
	RoleCollector UserRole = "collector"

	// Read-only access, e.g. a shared link to someone else's shelf.
	RoleGuest UserRole = "guest"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleCollector:
		return 20
	case RoleGuest:
		return 10
	default:
		return 0
	}
}
