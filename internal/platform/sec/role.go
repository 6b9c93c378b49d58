// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Full visibility: dashboard, analytics, and finance views
	RoleManager UserRole = "manager"

	// Default role; limited to the products workspace and account pages
	RoleStoreKeeper UserRole = "store_keeper"
)

// RoleNames returns the known role literals, for validation messages.
func RoleNames() []string {
	return []string{string(RoleManager), string(RoleStoreKeeper)}
}

// Valid reports whether the role is one of the known role literals.
func (r UserRole) Valid() bool {
	return r == RoleManager || r == RoleStoreKeeper
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-20) allows for future intermediate roles
	switch r {
	case RoleManager:
		return 20
	case RoleStoreKeeper:
		return 10
	default:
		return 0
	}
}
