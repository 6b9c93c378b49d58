// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/grossstore/grossstore/internal/platform/apperr"
	"github.com/grossstore/grossstore/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given
	// session snapshot.
	GenerateAccessToken(session *sec.Session, timeToLive time.Duration) (string, error)
}

// Service implements the authentication use cases.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider

	// emailLocks serializes check-then-create sequences per email.
	//
	// Directory operations carry simulated latency, so a naive
	// find-then-create is a genuine race: two social callbacks for the
	// same new email could both pass the existence check and mint two
	// accounts. Holding a per-email lock across the whole sequence
	// guarantees at most one identity per email.
	emailLocks keyedMutex
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, sessionRepo SessionRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
	}
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	// SessionToken is the opaque cookie value; its hash keys the record.
	SessionToken string

	// SessionExpiresAt is when the persisted record lapses.
	SessionExpiresAt time.Time

	// AccessToken is a short-lived JWT for API clients.
	AccessToken string

	// Session is the public snapshot, credential already stripped.
	Session *sec.Session
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and establishes a session.

Description: Looks up the account by exact email, verifies the password with
a constant-time bcrypt comparison, and writes the session record through to
storage before returning.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Established session and tokens
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {

	user, err := service.userRepository.FindByEmail(context, input.Email)

	// Unknown email and wrong password produce the identical generic
	// message, so responses cannot be used to enumerate accounts.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	return service.establish(context, user)
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     sec.UserRole
}

/*
Register validates, hashes, and persists a brand new account, then logs the
new member straight in.

Description: The existence check and the insert run under the per-email
lock so a racing duplicate signup cannot slip between them. On conflict the
directory is left exactly as it was.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *LoginSession: Established session for the new account
  - err: Conflict (if the email exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*LoginSession, error) {

	role := input.Role
	if role == "" {
		role = sec.RoleStoreKeeper
	}

	unlock := service.emailLocks.lock(input.Email)
	defer unlock()

	// Verify email uniqueness. Return a client-safe Conflict err.
	if _, err := service.userRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Name:         input.Name,
		Role:         role,
		Provider:     ProviderLocal,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return service.establish(context, user)
}

// # Social Login

/*
SocialLogin provisions or reuses an account for an OAuth callback and
establishes a session.

Description: Upsert-on-read. An existing identity with the email is reused
unchanged (login path); otherwise a new identity is minted with role fixed
to store_keeper, the provider as origin, and no credential. The whole
check-then-insert runs under the per-email lock, so duplicate callback
fires for the same new email create exactly one identity.

Parameters:
  - context: context.Context
  - provider: Provider (google or facebook)
  - email: string
  - name: string

Returns:
  - *LoginSession: Established session
  - err: Storage failures
*/
func (service *Service) SocialLogin(context context.Context, provider Provider, email, name string) (*LoginSession, error) {

	unlock := service.emailLocks.lock(email)
	defer unlock()

	user, err := service.userRepository.FindByEmail(context, email)
	if err == nil {
		// Existing identity: reuse unchanged, regardless of its origin.
		return service.establish(context, user)
	}

	user = &User{
		Email:    email,
		Name:     name,
		Role:     sec.RoleStoreKeeper,
		Provider: provider,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_social_provision_failed: %w", err)
	}

	return service.establish(context, user)
}

// # Session Lifecycle

/*
Logout destroys the persisted session record.

Description: Idempotent — clearing an already-cleared session succeeds.

Parameters:
  - context: context.Context
  - sessionToken: string

Returns:
  - err: Deletion failures
*/
func (service *Service) Logout(context context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}

	if err := service.sessionRepository.Delete(context, sessionToken); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

/*
Restore resolves the session snapshot for a raw token.

Description: Satisfies the session middleware's restorer contract. Absent
or corrupt records come back as (nil, nil); only backend failures error,
which the middleware maps to a pending (not logged-out) state.

Parameters:
  - context: context.Context
  - sessionToken: string

Returns:
  - *sec.Session: Restored snapshot, or nil
  - err: Backend connectivity failures
*/
func (service *Service) Restore(context context.Context, sessionToken string) (*sec.Session, error) {
	return service.sessionRepository.Find(context, sessionToken)
}

// establish mints the session token, strips the credential, and writes the
// record through to storage before returning.
func (service *Service) establish(context context.Context, user *User) (*LoginSession, error) {

	sessionToken, err := sec.GenerateSecureToken(SessionTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_session_token_failed: %w", err)
	}

	session := NewSession(user)

	// Write-through: the record must be durable before the caller sees
	// success, so a crash right after never loses an established session.
	if err := service.sessionRepository.Save(context, sessionToken, session, SessionTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(session, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginSession{
		SessionToken:     sessionToken,
		SessionExpiresAt: time.Now().Add(SessionTTL),
		AccessToken:      accessToken,
		Session:          session,
	}, nil
}

// # Keyed Mutual Exclusion

// keyedMutex hands out one mutex per key, dropping entries once the last
// holder releases. The zero value is ready to use.
type keyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyedMutexEntry
}

type keyedMutexEntry struct {
	mu   sync.Mutex
	refs int
}

// lock acquires the mutex for key and returns its release function.
func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.entries == nil {
		k.entries = make(map[string]*keyedMutexEntry)
	}
	entry, ok := k.entries[key]
	if !ok {
		entry = &keyedMutexEntry{}
		k.entries[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.entries, key)
		}
		k.mu.Unlock()
	}
}
