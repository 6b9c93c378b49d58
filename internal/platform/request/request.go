// Copyright (c) 2026 GrossStore. All rights reserved.
// Author: dev@grossstore.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/grossstore/grossstore/internal/platform/apperr"
	"github.com/grossstore/grossstore/internal/platform/ctxutil"
	"github.com/grossstore/grossstore/internal/platform/sec"
	"github.com/grossstore/grossstore/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntID retrieves a named URL parameter and parses it as a positive integer ID.

Returns:
  - int: Parsed identifier
  - error: apperr.ValidationError if the parameter is not a positive integer
*/
func IntID(request *http.Request, name string) (int, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, apperr.ValidationError("Invalid identifier", apperr.FieldError{
			Field:   name,
			Message: "Must be a positive integer",
		})
	}

	return id, nil
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
Session extracts the resolved session state from the request context.
*/
func Session(request *http.Request) sec.SessionState {
	return ctxutil.GetSession(request.Context())
}

/*
RequiredSession ensures the request carries an established session and returns it.

Returns:
  - *sec.Session: The current session snapshot
  - error: apperr.Unauthorized if the visitor is anonymous
*/
func RequiredSession(request *http.Request) (*sec.Session, error) {
	state := ctxutil.GetSession(request.Context())

	if !state.Resolved || state.Session == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return state.Session, nil
}
