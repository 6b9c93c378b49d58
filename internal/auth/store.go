// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package auth

import (
	"context"
	"time"

	"github.com/grossstore/grossstore/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for the identity directory.
type UserRepository interface {

	/*
		FindByEmail returns the account with the given email. Emails are
		matched case-sensitively, exactly as stored.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound when no account carries the email
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new account and assigns its ID
		(max existing ID + 1, or 1 for an empty directory).

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict when the email is already taken
	*/
	Create(context context.Context, user *User) error

	/*
		Count returns the number of accounts in the directory.

		Parameters:
		  - context: context.Context

		Returns:
		  - int: Directory size
		  - error: Retrieval failures
	*/
	Count(context context.Context) (int, error)
}

// # Session Data Access

// SessionRepository defines the contract for persisted session records.
//
// A record is the public snapshot of an account — never a credential — keyed
// by the hash of an opaque token held only by the client.
type SessionRepository interface {

	/*
		Save writes the session record through to storage before returning.
		Writing the same record twice is a harmless no-op in effect.

		Parameters:
		  - context: context.Context
		  - token: string (raw token; implementations store by its hash)
		  - session: *sec.Session
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Save(context context.Context, token string, session *sec.Session, ttl time.Duration) error

	/*
		Find restores the session for a raw token.

		Description: Best effort — an absent or malformed record yields
		(nil, nil), never an error. A non-nil error means the backend could
		not answer at all and the caller must treat the restore as pending.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - *sec.Session: Restored snapshot, or nil for logged-out
		  - error: Backend connectivity failures only
	*/
	Find(context context.Context, token string) (*sec.Session, error)

	/*
		Delete removes the session record. Deleting an absent record is not
		an error (logout is idempotent).

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, token string) error
}
