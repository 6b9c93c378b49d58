// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grossstore/grossstore/internal/platform/sec"
)

/*
TestUserRole_Valid checks the known role literals.
*/
func TestUserRole_Valid(t *testing.T) {
	assert.True(t, sec.RoleManager.Valid())
	assert.True(t, sec.RoleStoreKeeper.Valid())
	assert.False(t, sec.UserRole("admin").Valid())
	assert.False(t, sec.UserRole("").Valid())
}

/*
TestUserRole_AtLeast verifies the role hierarchy comparisons.
*/
func TestUserRole_AtLeast(t *testing.T) {
	tests := []struct {
		name   string
		role   sec.UserRole
		target sec.UserRole
		want   bool
	}{
		{"manager_meets_manager", sec.RoleManager, sec.RoleManager, true},
		{"manager_meets_keeper", sec.RoleManager, sec.RoleStoreKeeper, true},
		{"keeper_below_manager", sec.RoleStoreKeeper, sec.RoleManager, false},
		{"keeper_meets_keeper", sec.RoleStoreKeeper, sec.RoleStoreKeeper, true},
		{"unknown_below_everything", sec.UserRole("intern"), sec.RoleStoreKeeper, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.target))
		})
	}
}
