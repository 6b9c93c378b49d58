// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grossstore/grossstore/internal/api"
	"github.com/grossstore/grossstore/internal/auth"
	"github.com/grossstore/grossstore/internal/inventory"
	"github.com/grossstore/grossstore/internal/platform/config"
	"github.com/grossstore/grossstore/internal/platform/constants"
	"github.com/grossstore/grossstore/internal/platform/sec"
)

// testServer is a fully wired router over in-memory stores and miniredis.
type testServer struct {
	router  http.Handler
	redis   *miniredis.Miniredis
	service *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		ServerPort:         "0",
		Environment:        "development",
		RedisURL:           "redis://" + server.Addr(),
		SessionSecret:      "test-secret-key",
		MockLatencyMS:      0,
		LiveSampleInterval: time.Hour,
	}

	jwtSvc, err := sec.NewTokenService(cfg.SessionSecret, constants.AuthIssuer)
	require.NoError(t, err)

	seedUsers, err := auth.SeedUsers()
	require.NoError(t, err)

	userRepository := auth.NewMemoryUserRepository(0, seedUsers...)
	sessionRepository := auth.NewSessionRepository(client)
	authService := auth.NewService(userRepository, sessionRepository, jwtSvc)

	catalog := inventory.NewMemoryRepository(0, inventory.SeedProducts(), inventory.SeedActivity())
	inventoryService := inventory.NewService(catalog)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	liveSampler := inventory.NewLiveSampler(inventoryService, time.Hour, log)
	liveSampler.Start(ctx)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckSessionBackend: func() error { return client.Ping(context.Background()).Err() },
	}, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Inventory: inventory.NewHandler(inventoryService, liveSampler),
	}

	srv := api.NewServer(ctx, cfg, log, jwtSvc, authService, handlers)

	return &testServer{router: srv.Router(), redis: server, service: authService}
}

// login establishes a session for the given seed account and returns the
// session cookie plus the JWT access token.
func (ts *testServer) login(t *testing.T, email, password string) (*http.Cookie, string) {
	t.Helper()

	body := strings.NewReader(`{"email":"` + email + `","password":"` + password + `"}`)
	request := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	recorder := httptest.NewRecorder()
	ts.router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var cookie *http.Cookie
	for _, c := range recorder.Result().Cookies() {
		if c.Name == constants.SessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	var envelope struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	return cookie, envelope.Data.AccessToken
}

func (ts *testServer) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		request.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	ts.router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestServer_RootRedirect verifies "/" unconditionally bounces to the login
page, session or not.
*/
func TestServer_RootRedirect(t *testing.T) {
	ts := newTestServer(t)

	response := ts.get("/", nil)
	assert.Equal(t, http.StatusFound, response.Code)
	assert.Equal(t, constants.PathLogin, response.Header().Get("Location"))

	cookie, _ := ts.login(t, auth.SeedManagerEmail, auth.SeedManagerPassword)
	response = ts.get("/", cookie)
	assert.Equal(t, http.StatusFound, response.Code)
	assert.Equal(t, constants.PathLogin, response.Header().Get("Location"))
}

/*
TestServer_PageGuards walks the route table's decision matrix: anonymous
visitors bounce to login, under-privileged members bounce to the default
page, managers pass.
*/
func TestServer_PageGuards(t *testing.T) {
	ts := newTestServer(t)

	managerCookie, _ := ts.login(t, auth.SeedManagerEmail, auth.SeedManagerPassword)
	keeperCookie, _ := ts.login(t, auth.SeedKeeperEmail, auth.SeedKeeperPassword)

	tests := []struct {
		name         string
		path         string
		cookie       *http.Cookie
		wantStatus   int
		wantLocation string
	}{
		{"login_is_public", "/login", nil, http.StatusOK, ""},
		{"dashboard_anonymous", "/dashboard", nil, http.StatusFound, constants.PathLogin},
		{"dashboard_keeper", "/dashboard", keeperCookie, http.StatusFound, constants.PathDefault},
		{"dashboard_manager", "/dashboard", managerCookie, http.StatusOK, ""},
		{"products_anonymous", "/products", nil, http.StatusFound, constants.PathLogin},
		{"products_keeper", "/products", keeperCookie, http.StatusOK, ""},
		{"products_manager", "/products", managerCookie, http.StatusOK, ""},
		{"analytics_keeper", "/analytics/traffic", keeperCookie, http.StatusFound, constants.PathDefault},
		{"finances_keeper", "/finances/payout", keeperCookie, http.StatusFound, constants.PathDefault},
		{"finances_manager", "/finances/payment", managerCookie, http.StatusOK, ""},
		{"account_keeper", "/account/profile", keeperCookie, http.StatusOK, ""},
		{"help_anonymous", "/help", nil, http.StatusFound, constants.PathLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := ts.get(tt.path, tt.cookie)
			assert.Equal(t, tt.wantStatus, response.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, response.Header().Get("Location"))
			}
		})
	}
}

/*
TestServer_PendingSession verifies that a session-backend outage holds the
request (503 + Retry-After) instead of bouncing the visitor to login.
*/
func TestServer_PendingSession(t *testing.T) {
	ts := newTestServer(t)

	cookie, _ := ts.login(t, auth.SeedKeeperEmail, auth.SeedKeeperPassword)

	ts.redis.Close()

	response := ts.get("/products", cookie)
	assert.Equal(t, http.StatusServiceUnavailable, response.Code)
	assert.Equal(t, "1", response.Header().Get(constants.HeaderRetryAfter))
	assert.NotContains(t, response.Header().Get("Location"), constants.PathLogin)

	// Public pages stay reachable during the outage.
	response = ts.get("/login", cookie)
	assert.Equal(t, http.StatusOK, response.Code)
}

/*
TestServer_APIGuards verifies the JSON surface maps the same gate to status
codes: 401 anonymous, 403 under-privileged, 200 admitted.
*/
func TestServer_APIGuards(t *testing.T) {
	ts := newTestServer(t)

	managerCookie, _ := ts.login(t, auth.SeedManagerEmail, auth.SeedManagerPassword)
	keeperCookie, _ := ts.login(t, auth.SeedKeeperEmail, auth.SeedKeeperPassword)

	tests := []struct {
		name       string
		path       string
		cookie     *http.Cookie
		wantStatus int
	}{
		{"products_anonymous", "/api/v1/products", nil, http.StatusUnauthorized},
		{"products_keeper", "/api/v1/products", keeperCookie, http.StatusOK},
		{"stats_keeper", "/api/v1/stats", keeperCookie, http.StatusForbidden},
		{"stats_manager", "/api/v1/stats", managerCookie, http.StatusOK},
		{"activity_manager", "/api/v1/activity", managerCookie, http.StatusOK},
		{"charts_manager", "/api/v1/charts", managerCookie, http.StatusOK},
		{"live_manager", "/api/v1/live", managerCookie, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := ts.get(tt.path, tt.cookie)
			assert.Equal(t, tt.wantStatus, response.Code)
		})
	}
}

/*
TestServer_BearerToken verifies a JWT access token admits API requests with
no cookie and no session-backend round trip.
*/
func TestServer_BearerToken(t *testing.T) {
	ts := newTestServer(t)

	_, accessToken := ts.login(t, auth.SeedManagerEmail, auth.SeedManagerPassword)

	// The backend being down must not matter: the claims carry identity.
	ts.redis.Close()

	request := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	request.Header.Set("Authorization", "Bearer "+accessToken)
	recorder := httptest.NewRecorder()
	ts.router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestServer_SocialCallback verifies the mock OAuth completion: a code mints
a session and lands on the default page, no code bounces back to login.
*/
func TestServer_SocialCallback(t *testing.T) {
	ts := newTestServer(t)

	t.Run("with_code", func(t *testing.T) {
		response := ts.get("/auth/google/callback?code=mock-code", nil)
		require.Equal(t, http.StatusFound, response.Code)
		assert.Equal(t, constants.PathDefault, response.Header().Get("Location"))

		var cookie *http.Cookie
		for _, c := range response.Result().Cookies() {
			if c.Name == constants.SessionCookieName {
				cookie = c
			}
		}
		require.NotNil(t, cookie)

		// The minted session is a store keeper bound to the provider.
		session, err := ts.service.Restore(context.Background(), cookie.Value)
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, "user@google.com", session.Email)
		assert.Equal(t, sec.RoleStoreKeeper, session.Role)
		assert.Equal(t, "google", session.Provider)
	})

	t.Run("missing_code", func(t *testing.T) {
		response := ts.get("/auth/facebook/callback", nil)
		require.Equal(t, http.StatusFound, response.Code)
		assert.Equal(t, constants.PathLogin, response.Header().Get("Location"))
	})

	t.Run("unknown_provider", func(t *testing.T) {
		response := ts.get("/auth/github/callback?code=mock-code", nil)
		require.Equal(t, http.StatusFound, response.Code)
		assert.Equal(t, constants.PathLogin, response.Header().Get("Location"))
	})
}

/*
TestServer_LogoutFlow verifies logout clears the cookie and the old session
stops admitting requests.
*/
func TestServer_LogoutFlow(t *testing.T) {
	ts := newTestServer(t)

	cookie, _ := ts.login(t, auth.SeedKeeperEmail, auth.SeedKeeperPassword)

	request := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	request.AddCookie(cookie)
	recorder := httptest.NewRecorder()
	ts.router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	var cleared *http.Cookie
	for _, c := range recorder.Result().Cookies() {
		if c.Name == constants.SessionCookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	response := ts.get("/products", cookie)
	assert.Equal(t, http.StatusFound, response.Code)
	assert.Equal(t, constants.PathLogin, response.Header().Get("Location"))
}

/*
TestServer_Health verifies the probes and the readiness degradation when
the session backend goes away.
*/
func TestServer_Health(t *testing.T) {
	ts := newTestServer(t)

	response := ts.get("/health", nil)
	assert.Equal(t, http.StatusOK, response.Code)

	response = ts.get("/ready", nil)
	assert.Equal(t, http.StatusOK, response.Code)

	ts.redis.Close()

	response = ts.get("/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, response.Code)
}
