// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

// The authorization middlewares in this file are deliberately thin: every
// admission decision is delegated to [sec.EvaluateAccess]. Handlers and
// views never compare roles themselves — they consume the gate's output.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/grossstore/grossstore/internal/platform/apperr"
	"github.com/grossstore/grossstore/internal/platform/constants"
	"github.com/grossstore/grossstore/internal/platform/ctxutil"
	"github.com/grossstore/grossstore/internal/platform/respond"
	"github.com/grossstore/grossstore/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify bearer tokens.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the `sec`
// TokenService implementation, allowing us to easily inject mocks during
// unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// SessionRestorer defines the interface needed to restore a persisted session.
//
// Restore returns (nil, nil) for an anonymous or corrupt record; an error
// means the backend could not answer and the restore is unresolved.
type SessionRestorer interface {
	Restore(ctx context.Context, token string) (*sec.Session, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Inject [*sec.AuthClaims] into the request context for downstream use.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(parts[1])
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// ResolveSession restores the persisted session once per request and stores
// the outcome as a [sec.SessionState] in the context.
//
// # Flow
//  1. A verified bearer token (if any) already identifies the account —
//     synthesize the session state from its claims, no backend round trip.
//  2. Otherwise read the session cookie; no cookie means a resolved
//     anonymous state.
//  3. Restore from the backend. A missing or corrupt record is anonymous
//     (never an error); a backend failure leaves the state unresolved so
//     the gate reports Pending instead of bouncing the user to login.
func ResolveSession(restorer SessionRestorer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			state := resolveState(restorer, request)
			ctx := ctxutil.WithSession(request.Context(), state)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

func resolveState(restorer SessionRestorer, request *http.Request) sec.SessionState {

	// 1. Bearer claims win: the token signature already proves identity.
	if claims := ctxutil.GetAuthUser(request.Context()); claims != nil {
		return sec.Resolved(claims.Snapshot())
	}

	// 2. No cookie: resolved, anonymous.
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return sec.Anonymous()
	}

	// 3. Restore from the session backend.
	session, err := restorer.Restore(request.Context(), cookie.Value)
	if err != nil {
		return sec.Unresolved()
	}
	if session == nil {
		return sec.Anonymous()
	}
	return sec.Resolved(session)
}

// Guard admits, redirects, or holds page requests per the access gate.
//
// # Mapping
//   - Allow             → next handler
//   - RedirectToLogin   → 302 to /login
//   - RedirectToDefault → 302 to /products (the non-manager landing view)
//   - Pending           → 503 + Retry-After; the restore has not resolved
//     and redirecting now would be premature
//
// Must be registered AFTER [ResolveSession].
func Guard(requirement sec.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			state := ctxutil.GetSession(request.Context())

			switch sec.EvaluateAccess(state, requirement) {
			case sec.DecisionAllow:
				next.ServeHTTP(writer, request)
			case sec.DecisionRedirectToLogin:
				http.Redirect(writer, request, constants.PathLogin, http.StatusFound)
			case sec.DecisionRedirectToDefault:
				http.Redirect(writer, request, constants.PathDefault, http.StatusFound)
			default:
				writer.Header().Set(constants.HeaderRetryAfter, "1")
				respond.Error(writer, request, apperr.ServiceUnavailable("Session restore in progress, retry shortly"))
			}
		})
	}
}

// GuardAPI is the JSON-API flavour of [Guard]: same gate, status codes
// instead of redirects.
//
// # Mapping
//   - RedirectToLogin   → 401 (the API client must authenticate)
//   - RedirectToDefault → 403 (authenticated but under-privileged)
//   - Pending           → 503 + Retry-After
func GuardAPI(requirement sec.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			state := ctxutil.GetSession(request.Context())

			switch sec.EvaluateAccess(state, requirement) {
			case sec.DecisionAllow:
				next.ServeHTTP(writer, request)
			case sec.DecisionRedirectToLogin:
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			case sec.DecisionRedirectToDefault:
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
			default:
				writer.Header().Set(constants.HeaderRetryAfter, "1")
				respond.Error(writer, request, apperr.ServiceUnavailable("Session restore in progress, retry shortly"))
			}
		})
	}
}
