// Copyright (c) 2026 ApnaBasera. All rights reserved.

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apnabasera/basera/internal/platform/middleware"
)

// # Test Doubles

type fakeAppConfig struct {
	development bool
	origin      string
}

func (cfg *fakeAppConfig) IsDevelopment() bool   { return cfg.development }
func (cfg *fakeAppConfig) AllowedOrigin() string { return cfg.origin }

func corsHandler(cfg middleware.AppConfig) http.Handler {
	return middleware.CORS(cfg)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))
}

// # CORS

func TestCORS_AllowedOriginHeaders(t *testing.T) {
	cfg := &fakeAppConfig{origin: "http://localhost:5173"}

	request := httptest.NewRequest(http.MethodGet, "/api/houses", nil)
	request.Header.Set("Origin", "http://localhost:5173")
	recorder := httptest.NewRecorder()

	corsHandler(cfg).ServeHTTP(recorder, request)

	header := recorder.Header()
	assert.Equal(t, "http://localhost:5173", header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", header.Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, header.Get("Access-Control-Allow-Headers"), "X-Chat-Session")

	// Browsers hide non-safelisted response headers unless exposed; the chat
	// session header must stay readable so clients can continue a session.
	assert.Contains(t, header.Get("Access-Control-Expose-Headers"), "X-Chat-Session")
	assert.Contains(t, header.Get("Access-Control-Expose-Headers"), "X-Request-ID")
}

func TestCORS_DisallowedOriginInProduction(t *testing.T) {
	cfg := &fakeAppConfig{origin: "http://localhost:5173"}

	request := httptest.NewRequest(http.MethodGet, "/api/houses", nil)
	request.Header.Set("Origin", "http://evil.example")
	recorder := httptest.NewRecorder()

	corsHandler(cfg).ServeHTTP(recorder, request)

	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, recorder.Header().Get("Access-Control-Expose-Headers"))
}

func TestCORS_DevelopmentAllowsAnyOrigin(t *testing.T) {
	cfg := &fakeAppConfig{development: true, origin: "http://localhost:5173"}

	request := httptest.NewRequest(http.MethodGet, "/api/houses", nil)
	request.Header.Set("Origin", "http://anywhere.example")
	recorder := httptest.NewRecorder()

	corsHandler(cfg).ServeHTTP(recorder, request)

	header := recorder.Header()
	assert.Equal(t, "http://anywhere.example", header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, header.Get("Access-Control-Expose-Headers"), "X-Chat-Session")
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	cfg := &fakeAppConfig{origin: "http://localhost:5173"}

	request := httptest.NewRequest(http.MethodOptions, "/api/houses", nil)
	request.Header.Set("Origin", "http://localhost:5173")
	recorder := httptest.NewRecorder()

	handled := false
	middleware.CORS(cfg)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		handled = true
	})).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.False(t, handled)
}
