// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grossstore/grossstore/internal/auth"
	"github.com/grossstore/grossstore/internal/platform/constants"
	"github.com/grossstore/grossstore/internal/platform/sec"
)

func newTestSessionRepository(t *testing.T) (*auth.RedisSessionRepository, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return auth.NewSessionRepository(client), server
}

/*
TestRedisSessionRepository_RoundTrip verifies Save/Find and that records are
keyed by the token hash, never the raw token.
*/
func TestRedisSessionRepository_RoundTrip(t *testing.T) {
	repository, server := newTestSessionRepository(t)

	session := &sec.Session{
		UserID: 1,
		Email:  "manager@grossstore.com",
		Name:   "John Manager",
		Role:   sec.RoleManager,
	}

	token := "raw-opaque-token"
	require.NoError(t, repository.Save(context.Background(), token, session, time.Hour))

	restored, err := repository.Find(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, session.UserID, restored.UserID)
	assert.Equal(t, session.Role, restored.Role)

	keys := server.Keys()
	require.Len(t, keys, 1)
	assert.NotContains(t, keys[0], token)
	assert.Equal(t, constants.RedisPrefixSession+sec.HashToken(token), keys[0])
}

/*
TestRedisSessionRepository_Find_Absent verifies an unknown token reads as
logged-out, not as an error.
*/
func TestRedisSessionRepository_Find_Absent(t *testing.T) {
	repository, _ := newTestSessionRepository(t)

	restored, err := repository.Find(context.Background(), "never-saved")
	require.NoError(t, err)
	assert.Nil(t, restored)
}

/*
TestRedisSessionRepository_Find_Corrupt verifies a record that fails to
parse silently reads as logged-out.
*/
func TestRedisSessionRepository_Find_Corrupt(t *testing.T) {
	repository, server := newTestSessionRepository(t)

	token := "corrupted-token"
	require.NoError(t,
		server.Set(constants.RedisPrefixSession+sec.HashToken(token), "{not-json"))

	restored, err := repository.Find(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, restored)
}

/*
TestRedisSessionRepository_Find_BackendDown verifies backend failures
surface as errors so restores can be treated as pending, not logged-out.
*/
func TestRedisSessionRepository_Find_BackendDown(t *testing.T) {
	repository, server := newTestSessionRepository(t)
	server.Close()

	_, err := repository.Find(context.Background(), "any-token")
	require.Error(t, err)
}

/*
TestRedisSessionRepository_Delete_Idempotent verifies deleting an absent
record succeeds.
*/
func TestRedisSessionRepository_Delete_Idempotent(t *testing.T) {
	repository, _ := newTestSessionRepository(t)

	require.NoError(t, repository.Delete(context.Background(), "never-saved"))

	session := &sec.Session{UserID: 2, Email: "keeper@grossstore.com", Role: sec.RoleStoreKeeper}
	require.NoError(t, repository.Save(context.Background(), "tok", session, time.Hour))
	require.NoError(t, repository.Delete(context.Background(), "tok"))
	require.NoError(t, repository.Delete(context.Background(), "tok"))

	restored, err := repository.Find(context.Background(), "tok")
	require.NoError(t, err)
	assert.Nil(t, restored)
}
