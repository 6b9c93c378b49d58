// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package auth

import (
	"context"
	"sync"
	"time"

	"github.com/grossstore/grossstore/internal/platform/apperr"
	"github.com/grossstore/grossstore/internal/platform/sec"
)

// MemoryUserRepository implements UserRepository with an in-memory account
// list. This is the system's directory of record — there is no database
// behind it by design.
//
// # Concurrency
//
// All methods are safe for concurrent use; the slice is guarded by a RWMutex
// and Create re-validates email uniqueness under the write lock, so the
// uniqueness invariant holds even if a caller's own check-then-create raced.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	users   []*User
	latency time.Duration
}

// NewMemoryUserRepository creates a directory pre-populated with the given
// accounts. The latency parameter simulates network delay on every
// operation (0 disables it; tests do).
func NewMemoryUserRepository(latency time.Duration, seed ...*User) *MemoryUserRepository {
	repository := &MemoryUserRepository{latency: latency}

	for _, user := range seed {
		clone := *user
		if clone.ID == 0 {
			clone.ID = repository.nextIDLocked()
		}
		repository.users = append(repository.users, &clone)
	}

	return repository
}

// SeedUsers returns the two built-in demo accounts with their passwords
// bcrypt-hashed.
func SeedUsers() ([]*User, error) {
	managerHash, err := sec.HashPassword(SeedManagerPassword)
	if err != nil {
		return nil, err
	}

	keeperHash, err := sec.HashPassword(SeedKeeperPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return []*User{
		{
			ID:           1,
			Email:        SeedManagerEmail,
			PasswordHash: managerHash,
			Name:         SeedManagerName,
			Role:         sec.RoleManager,
			Provider:     ProviderLocal,
			CreatedAt:    now,
		},
		{
			ID:           2,
			Email:        SeedKeeperEmail,
			PasswordHash: keeperHash,
			Name:         SeedKeeperName,
			Role:         sec.RoleStoreKeeper,
			Provider:     ProviderLocal,
			CreatedAt:    now,
		},
	}, nil
}

/*
FindByEmail returns the account with the given email.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Copy of the stored entity
  - error: apperr.NotFound when absent
*/
func (repository *MemoryUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	repository.simulateLatency()

	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, user := range repository.users {
		if user.Email == email {
			// Return a copy so callers cannot mutate directory state.
			clone := *user
			return &clone, nil
		}
	}

	return nil, apperr.NotFound("User")
}

/*
Create persists a brand-new account and assigns its monotonic ID.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.Conflict when the email is already registered
*/
func (repository *MemoryUserRepository) Create(context context.Context, user *User) error {
	repository.simulateLatency()

	repository.mu.Lock()
	defer repository.mu.Unlock()

	// Uniqueness is enforced here, under the write lock, as the final word.
	for _, existing := range repository.users {
		if existing.Email == user.Email {
			return apperr.Conflict("Email is already registered")
		}
	}

	user.ID = repository.nextIDLocked()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	clone := *user
	repository.users = append(repository.users, &clone)
	return nil
}

/*
Count returns the number of accounts in the directory.
*/
func (repository *MemoryUserRepository) Count(context context.Context) (int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	return len(repository.users), nil
}

// nextIDLocked computes max existing ID + 1 (1 for an empty directory).
// Callers must hold the write lock (or be inside the constructor).
func (repository *MemoryUserRepository) nextIDLocked() int {
	maxID := 0
	for _, user := range repository.users {
		if user.ID > maxID {
			maxID = user.ID
		}
	}
	return maxID + 1
}

// simulateLatency blocks for the configured mock delay.
//
// Operations are non-cancelable once started: the delay always elapses and
// the operation completes even if the initiating request has moved on, which
// mirrors how the mock API behaves. Late results are simply ignored by
// whoever stopped waiting.
func (repository *MemoryUserRepository) simulateLatency() {
	if repository.latency > 0 {
		time.Sleep(repository.latency)
	}
}
