// Copyright (c) 2026 ApnaBasera. All rights reserved.

package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apnabasera/basera/internal/platform/apperr"
	"github.com/apnabasera/basera/internal/platform/ctxutil"
	"github.com/apnabasera/basera/internal/platform/middleware"
	"github.com/apnabasera/basera/internal/platform/sec"
)

// # Test Doubles

type fakeVerifier struct {
	claims *sec.AuthClaims
	err    error
}

func (verifier *fakeVerifier) VerifyToken(_ string) (*sec.AuthClaims, error) {
	return verifier.claims, verifier.err
}

type fakeResolver struct {
	principal *sec.Principal
	err       error
}

func (resolver *fakeResolver) ResolvePrincipal(_ context.Context, _ *sec.AuthClaims) (*sec.Principal, error) {
	return resolver.principal, resolver.err
}

// decodeMessage unwraps the single-field error envelope.
func decodeMessage(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body["message"]
}

// # Authenticate

func TestAuthenticate_MissingOrMalformedHeader(t *testing.T) {
	verifier := &fakeVerifier{claims: &sec.AuthClaims{UserID: "u1"}}
	resolver := &fakeResolver{principal: &sec.Principal{ID: "u1"}}

	handler := middleware.Authenticate(verifier, resolver)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"no_header", ""},
		{"wrong_scheme", "Basic dXNlcjpwYXNz"},
		{"bearer_without_token", "Bearer"},
		{"bearer_empty_token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Equal(t, "Not authorized, no token", decodeMessage(t, recorder))
		})
	}
}

func TestAuthenticate_BadToken(t *testing.T) {
	verifier := &fakeVerifier{err: assert.AnError}
	resolver := &fakeResolver{}

	handler := middleware.Authenticate(verifier, resolver)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run with a bad token")
	}))

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer forged.token.here")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Not authorized, token failed", decodeMessage(t, recorder))
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	verifier := &fakeVerifier{claims: &sec.AuthClaims{UserID: "gone"}}
	resolver := &fakeResolver{err: apperr.Unauthorized("Not authorized, user not found")}

	handler := middleware.Authenticate(verifier, resolver)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run for a deleted account")
	}))

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer valid.but.stale")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Not authorized, user not found", decodeMessage(t, recorder))
}

func TestAuthenticate_InjectsPrincipal(t *testing.T) {
	principal := &sec.Principal{ID: "u1", Email: "asha@example.com", Role: sec.RoleUser}
	verifier := &fakeVerifier{claims: &sec.AuthClaims{UserID: "u1"}}
	resolver := &fakeResolver{principal: principal}

	var seen *sec.Principal
	handler := middleware.Authenticate(verifier, resolver)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetPrincipal(request.Context())
		writer.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer good.token.here")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "u1", seen.ID)
}

// # RequireAdmin

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		principal  *sec.Principal
		wantStatus int
	}{
		{"admin_passes", &sec.Principal{ID: sec.AdminUserID, Role: sec.RoleAdmin}, http.StatusOK},
		{"user_blocked", &sec.Principal{ID: "u1", Role: sec.RoleUser}, http.StatusForbidden},
		{"anonymous_blocked", nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.RequireAdmin(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
				writer.WriteHeader(http.StatusOK)
			}))

			request := httptest.NewRequest(http.MethodDelete, "/api/houses/some-id", nil)
			if tt.principal != nil {
				request = request.WithContext(ctxutil.WithPrincipal(request.Context(), tt.principal))
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantStatus == http.StatusForbidden {
				assert.Equal(t, "Admin resource. Access denied.", decodeMessage(t, recorder))
			}
		})
	}
}
