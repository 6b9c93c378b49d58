// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grossstore/grossstore/internal/platform/sec"
)

func managerSession() *sec.Session {
	return &sec.Session{UserID: 1, Email: "manager@grossstore.com", Role: sec.RoleManager}
}

func keeperSession() *sec.Session {
	return &sec.Session{UserID: 2, Email: "keeper@grossstore.com", Role: sec.RoleStoreKeeper}
}

/*
TestEvaluateAccess walks the full decision matrix: every session state
against every requirement.
*/
func TestEvaluateAccess(t *testing.T) {
	tests := []struct {
		name        string
		state       sec.SessionState
		requirement sec.Requirement
		want        sec.Decision
	}{
		// Public routes admit everyone, resolved or not.
		{"public_anonymous", sec.Anonymous(), sec.RequirePublic, sec.DecisionAllow},
		{"public_manager", sec.Resolved(managerSession()), sec.RequirePublic, sec.DecisionAllow},
		{"public_unresolved", sec.Unresolved(), sec.RequirePublic, sec.DecisionAllow},

		// Unresolved restores hold instead of redirecting.
		{"authenticated_unresolved", sec.Unresolved(), sec.RequireAuthenticated, sec.DecisionPending},
		{"manager_unresolved", sec.Unresolved(), sec.RequireManager, sec.DecisionPending},

		// Anonymous visitors bounce to login.
		{"authenticated_anonymous", sec.Anonymous(), sec.RequireAuthenticated, sec.DecisionRedirectToLogin},
		{"manager_anonymous", sec.Anonymous(), sec.RequireManager, sec.DecisionRedirectToLogin},

		// Logged-in accounts.
		{"authenticated_keeper", sec.Resolved(keeperSession()), sec.RequireAuthenticated, sec.DecisionAllow},
		{"authenticated_manager", sec.Resolved(managerSession()), sec.RequireAuthenticated, sec.DecisionAllow},
		{"manager_route_keeper", sec.Resolved(keeperSession()), sec.RequireManager, sec.DecisionRedirectToDefault},
		{"manager_route_manager", sec.Resolved(managerSession()), sec.RequireManager, sec.DecisionAllow},

		// Unknown requirements fail closed.
		{"unknown_requirement", sec.Resolved(managerSession()), sec.Requirement("vip"), sec.DecisionRedirectToLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.EvaluateAccess(tt.state, tt.requirement))
		})
	}
}

/*
TestEvaluateAccess_UnknownRole verifies an account with a role outside the
hierarchy never reaches a manager view.
*/
func TestEvaluateAccess_UnknownRole(t *testing.T) {
	state := sec.Resolved(&sec.Session{UserID: 9, Role: sec.UserRole("intern")})

	assert.Equal(t, sec.DecisionAllow, sec.EvaluateAccess(state, sec.RequireAuthenticated))
	assert.Equal(t, sec.DecisionRedirectToDefault, sec.EvaluateAccess(state, sec.RequireManager))
}
