// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

/*
Package auth implements the identity directory and session management layer.

It defines the core domain entities (User, the [sec.Session] snapshot) and the
logic for authentication, registration, social-login provisioning, and the
persisted session lifecycle.

# Architecture

This layer is the "Truth" of the system. The directory is in-memory by
contract: the platform is a demo backend and accounts do not survive a
restart. The only cross-restart state is the session record in Redis.
*/
package auth

import (
	"time"

	"github.com/grossstore/grossstore/internal/platform/sec"
)

// # Domain Entities

// Provider identifies where an account originated.
type Provider string

const (
	ProviderLocal    Provider = "local"
	ProviderGoogle   Provider = "google"
	ProviderFacebook Provider = "facebook"
)

// User represents a registered account in the identity directory.
//
// IDs are small integers assigned monotonically (max existing + 1), matching
// the directory's demo-fixture nature.
type User struct {
	ID           int          `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Name         string       `json:"name"`
	Role         sec.UserRole `json:"role"`
	Provider     Provider     `json:"provider,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// NewSession builds the public session snapshot for a user.
//
// This is the single place credentials are stripped. Every login path —
// local, Google, Facebook — goes through it, so no call site can
// accidentally persist a credential hash with the session.
func NewSession(user *User) *sec.Session {
	return &sec.Session{
		UserID:   user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role,
		Provider: string(user.Provider),
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldName        = "name"
	FieldRole        = "role"
	FieldAccessToken = "access_token"
	FieldUser        = "user"
	FieldMessage     = "message"
)
