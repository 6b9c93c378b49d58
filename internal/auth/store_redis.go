// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/grossstore/grossstore/internal/platform/constants"
	"github.com/grossstore/grossstore/internal/platform/sec"
)

// RedisSessionRepository implements SessionRepository using Redis.
//
// Records live at "auth:session:<sha256(token)>" as the JSON object
// {id, email, name, role, provider?} — by construction no secret field can
// appear, because only [sec.Session] snapshots are marshalled.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

/*
Save writes the session record through to Redis before returning.

Parameters:
  - context: context.Context
  - token: string (raw; stored under its SHA-256 hash)
  - session: *sec.Session
  - ttl: time.Duration

Returns:
  - error: Marshalling or persistence failures
*/
func (repository *RedisSessionRepository) Save(context context.Context, token string, session *sec.Session, ttl time.Duration) error {

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_marshal_failed: %w", err)
	}

	key := sessionKey(token)
	if err := repository.client.Set(context, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_save_failed: %w", err)
	}

	return nil
}

/*
Find restores the session record for a raw token.

Description: Best effort. An absent key or a record that fails to parse is
reported as logged-out (nil, nil) — corrupt state must never block startup
or surface to the user. Only backend connectivity failures return an error,
which the caller maps to a pending (not logged-out) state.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *sec.Session: Restored snapshot, or nil
  - error: Connectivity failures only
*/
func (repository *RedisSessionRepository) Find(context context.Context, token string) (*sec.Session, error) {

	key := sessionKey(token)
	payload, err := repository.client.Get(context, key).Bytes()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_session_find_failed: %w", err)
	}

	var session sec.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		// Corrupt record: silently treat as logged-out.
		return nil, nil
	}

	return &session, nil
}

/*
Delete removes the session record. Missing keys are not an error, keeping
logout idempotent.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) Delete(context context.Context, token string) error {

	key := sessionKey(token)
	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	return nil
}

// sessionKey derives the storage key for a raw token.
func sessionKey(token string) string {
	return constants.RedisPrefixSession + sec.HashToken(token)
}
