// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// We keep it short (15m) to minimize the impact of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// SessionTTL is the duration a persisted session record remains valid.
	// Long-lived (30 days) to provide a good user experience, mirroring how
	// the dashboard keeps its localStorage session around.
	SessionTTL = 30 * 24 * time.Hour

	// SessionTokenLength is the byte length of the random session token.
	SessionTokenLength = 32
)

// # Demo Fixtures

// Seed credentials for the two built-in demo accounts. They are a demo
// fixture, not a security boundary; the plaintext passwords are hashed at
// seed time and never stored.
const (
	SeedManagerEmail    = "manager@grossstore.com"
	SeedManagerPassword = "manager123"
	SeedManagerName     = "John Manager"

	SeedKeeperEmail    = "keeper@grossstore.com"
	SeedKeeperPassword = "keeper123"
	SeedKeeperName     = "Jane Keeper"
)
