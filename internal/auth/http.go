// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/grossstore/grossstore/internal/platform/constants"
	requestutil "github.com/grossstore/grossstore/internal/platform/request"
	"github.com/grossstore/grossstore/internal/platform/respond"
	"github.com/grossstore/grossstore/internal/platform/sec"
	"github.com/grossstore/grossstore/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the user lifecycle entry points (Login, Registration,
// Logout, social-login callbacks) and the current-session probe.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /login    : Authenticates and establishes a session.
//   - POST /register : Creates a new account and logs it straight in.
//   - POST /logout   : Destroys the current session.
//   - GET  /me       : Returns the restored session snapshot.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Post("/register", handler.register)
	router.Post("/logout", handler.logout)
	router.Get("/me", handler.me)

	return router
}

// # Request Payloads

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

/*
Login authenticates a member and establishes a session.

POST /api/v1/auth/login

Description: Verifies credentials against the directory, persists the session
record, and injects the opaque session cookie into the response.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: Session: Access token and session snapshot
  - 401: ErrUnauthorized: Invalid credentials (identical for unknown email
    and wrong password)
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setSessionCookie(writer, session)

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldUser:        session.Session,
	})
}

/*
Register handles the creation of a new member account.

POST /api/v1/auth/register

Description: Validates input, enrolls the account (role defaults to
store_keeper when omitted), and logs the new member straight in.

Request:
  - Body: registerRequest (Email, Password, Name, Role?)

Response:
  - 201: Session: Access token and session snapshot
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 6).
		Required(FieldName, input.Name)

	if input.Role != "" {
		validator.OneOf(FieldRole, input.Role, sec.RoleNames()...)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
		Role:     sec.UserRole(input.Role),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setSessionCookie(writer, session)

	respond.Created(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldUser:        session.Session,
	})
}

/*
Logout terminates the current session.

POST /api/v1/auth/logout

Description: Destroys the persisted session record (if any) and clears the
session cookie. Logging out twice succeeds both times.

Response:
  - 204: No Content: Session terminated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.SessionCookieName)

	if err == nil && cookie != nil && cookie.Value != "" {
		_ = handler.authService.Logout(request.Context(), cookie.Value)
	}

	clearSessionCookie(writer)

	respond.NoContent(writer)
}

/*
Me returns the session snapshot restored for this request.

GET /api/v1/auth/me

Response:
  - 200: Session snapshot
  - 401: ErrUnauthorized: No session established
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	session, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldUser: session,
	})
}

// # Social Login Callback

/*
SocialCallback completes a mock OAuth round trip.

GET /auth/{provider}/callback?code=...

Description: A page endpoint, not an API one — it answers with redirects.
With a code present, a deterministic mock identity for the provider
("user@{provider}.com") is provisioned or reused, the session cookie is set,
and the browser is sent to the default page. Without a code the round trip
failed and the browser goes back to the login page.

Response:
  - 302 → /products: Session established
  - 302 → /login: Missing code or unknown provider
*/
func (handler *Handler) SocialCallback(writer http.ResponseWriter, request *http.Request) {

	provider := Provider(chi.URLParam(request, "provider"))
	if provider != ProviderGoogle && provider != ProviderFacebook {
		http.Redirect(writer, request, constants.PathLogin, http.StatusFound)
		return
	}

	if request.URL.Query().Get("code") == "" {
		http.Redirect(writer, request, constants.PathLogin, http.StatusFound)
		return
	}

	// The provider round trip is mocked, so the identity is derived from the
	// provider name instead of an exchanged profile.
	email := "user@" + string(provider) + ".com"
	name := cases.Title(language.English).String(string(provider)) + " User"

	session, err := handler.authService.SocialLogin(request.Context(), provider, email, name)
	if err != nil {
		http.Redirect(writer, request, constants.PathLogin, http.StatusFound)
		return
	}

	setSessionCookie(writer, session)

	http.Redirect(writer, request, constants.PathDefault, http.StatusFound)
}

// # Cookie Helpers

// setSessionCookie injects the opaque session cookie into the response.
func setSessionCookie(writer http.ResponseWriter, session *LoginSession) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    session.SessionToken,
		Path:     constants.SessionCookiePath,
		Expires:  session.SessionExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie removes the session cookie from the client.
func clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
