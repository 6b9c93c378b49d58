// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package auth_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grossstore/grossstore/internal/auth"
	"github.com/grossstore/grossstore/internal/platform/apperr"
	"github.com/grossstore/grossstore/internal/platform/sec"
)

// newTestService wires a Service against a fresh directory (zero latency)
// and a miniredis-backed session store.
func newTestService(t *testing.T) (*auth.Service, *auth.MemoryUserRepository, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	seed, err := auth.SeedUsers()
	require.NoError(t, err)

	users := auth.NewMemoryUserRepository(0, seed...)
	sessions := auth.NewSessionRepository(client)

	tokens, err := sec.NewTokenService("test-secret-key", "grossstore.com")
	require.NoError(t, err)

	return auth.NewService(users, sessions, tokens), users, server
}

/*
TestService_Login_Success verifies a seed account can authenticate and that
the established session carries no credential material.
*/
func TestService_Login_Success(t *testing.T) {
	service, _, server := newTestService(t)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email:    auth.SeedManagerEmail,
		Password: auth.SeedManagerPassword,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, session.SessionToken)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, auth.SeedManagerEmail, session.Session.Email)
	assert.Equal(t, sec.RoleManager, session.Session.Role)

	// The raw persisted record must never contain a password or hash.
	keys := server.Keys()
	require.Len(t, keys, 1)
	raw, err := server.Get(keys[0])
	require.NoError(t, err)
	assert.NotContains(t, raw, "password")
	assert.NotContains(t, raw, auth.SeedManagerPassword)
	assert.NotContains(t, strings.ToLower(raw), "hash")
}

/*
TestService_Login_InvalidCredentials verifies that unknown emails and wrong
passwords produce the identical generic error, so responses cannot be used
to enumerate accounts.
*/
func TestService_Login_InvalidCredentials(t *testing.T) {
	service, _, _ := newTestService(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown_email", "nobody@grossstore.com", "whatever123"},
		{"wrong_password", auth.SeedManagerEmail, "not-the-password"},
	}

	var messages []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), auth.LoginInput{
				Email:    tt.email,
				Password: tt.password,
			})

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, 401, ae.HTTPStatus)
			messages = append(messages, ae.Message)
		})
	}

	require.Len(t, messages, 2)
	assert.Equal(t, messages[0], messages[1])
}

/*
TestService_Register verifies enrollment, the default role, and auto-login.
*/
func TestService_Register(t *testing.T) {
	service, users, _ := newTestService(t)

	session, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    "new@grossstore.com",
		Password: "secret123",
		Name:     "New Member",
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleStoreKeeper, session.Session.Role)
	assert.NotEmpty(t, session.SessionToken)

	// Seed IDs are 1 and 2; the directory assigns max+1.
	assert.Equal(t, 3, session.Session.UserID)

	count, err := users.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

/*
TestService_Register_Duplicate verifies a conflicting signup is rejected and
leaves the directory untouched.
*/
func TestService_Register_Duplicate(t *testing.T) {
	service, users, _ := newTestService(t)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    auth.SeedKeeperEmail,
		Password: "secret123",
		Name:     "Impostor",
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 409, ae.HTTPStatus)

	count, err := users.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

/*
TestService_SocialLogin_Existing verifies an already-known email is reused
unchanged: same identity, same role, origin untouched.
*/
func TestService_SocialLogin_Existing(t *testing.T) {
	service, users, _ := newTestService(t)

	session, err := service.SocialLogin(
		context.Background(), auth.ProviderGoogle, auth.SeedManagerEmail, "Someone Else")

	require.NoError(t, err)
	assert.Equal(t, 1, session.Session.UserID)
	assert.Equal(t, auth.SeedManagerName, session.Session.Name)
	assert.Equal(t, sec.RoleManager, session.Session.Role)
	assert.Equal(t, string(auth.ProviderLocal), session.Session.Provider)

	count, err := users.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

/*
TestService_SocialLogin_ProvisionsNew verifies a first-time social login
mints a store_keeper identity bound to the provider.
*/
func TestService_SocialLogin_ProvisionsNew(t *testing.T) {
	service, users, _ := newTestService(t)

	session, err := service.SocialLogin(
		context.Background(), auth.ProviderFacebook, "user@facebook.com", "Facebook User")

	require.NoError(t, err)
	assert.Equal(t, 3, session.Session.UserID)
	assert.Equal(t, sec.RoleStoreKeeper, session.Session.Role)
	assert.Equal(t, string(auth.ProviderFacebook), session.Session.Provider)

	count, err := users.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

/*
TestService_SocialLogin_ConcurrentProvision fires two concurrent callbacks
for the same brand-new email and asserts exactly one identity is created.
*/
func TestService_SocialLogin_ConcurrentProvision(t *testing.T) {
	service, users, _ := newTestService(t)

	const email = "user@google.com"

	var wg sync.WaitGroup
	results := make([]*auth.LoginSession, 2)
	errs := make([]error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = service.SocialLogin(
				context.Background(), auth.ProviderGoogle, email, "Google User")
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	// Both callbacks resolve to the same single identity.
	assert.Equal(t, results[0].Session.UserID, results[1].Session.UserID)

	count, err := users.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

/*
TestService_Logout_Idempotent verifies logging out twice succeeds both times
and the session stops restoring.
*/
func TestService_Logout_Idempotent(t *testing.T) {
	service, _, _ := newTestService(t)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email:    auth.SeedKeeperEmail,
		Password: auth.SeedKeeperPassword,
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.SessionToken))
	require.NoError(t, service.Logout(context.Background(), session.SessionToken))

	restored, err := service.Restore(context.Background(), session.SessionToken)
	require.NoError(t, err)
	assert.Nil(t, restored)
}

/*
TestService_Restore verifies the persisted record round trips through the
session backend.
*/
func TestService_Restore(t *testing.T) {
	service, _, _ := newTestService(t)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email:    auth.SeedManagerEmail,
		Password: auth.SeedManagerPassword,
	})
	require.NoError(t, err)

	restored, err := service.Restore(context.Background(), session.SessionToken)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, session.Session.UserID, restored.UserID)
	assert.Equal(t, session.Session.Email, restored.Email)
	assert.Equal(t, session.Session.Role, restored.Role)
}
