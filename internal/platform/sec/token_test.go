// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grossstore/grossstore/internal/platform/sec"
)

/*
TestGenerateSecureToken verifies length and uniqueness of minted tokens.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.Len(t, first, 64) // hex doubles the byte length

	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

/*
TestHashToken verifies the digest is stable and never echoes its input.
*/
func TestHashToken(t *testing.T) {
	digest := sec.HashToken("raw-token")

	assert.Len(t, digest, 64)
	assert.Equal(t, digest, sec.HashToken("raw-token"))
	assert.NotEqual(t, digest, sec.HashToken("other-token"))
	assert.NotContains(t, digest, "raw-token")
}

/*
TestPasswordHashing verifies the bcrypt round trip.
*/
func TestPasswordHashing(t *testing.T) {
	hash, err := sec.HashPassword("manager123")
	require.NoError(t, err)
	assert.NotEqual(t, "manager123", hash)

	assert.True(t, sec.CheckPasswordHash("manager123", hash))
	assert.False(t, sec.CheckPasswordHash("manager124", hash))
	assert.False(t, sec.CheckPasswordHash("manager123", "not-a-hash"))
}
