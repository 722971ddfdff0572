// Copyright (c) 2026 ApnaBasera. All rights reserved.

package sec_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apnabasera/basera/internal/platform/sec"
)

/*
TestTokenService_RoundTrip verifies that a generated token carries the exact
claim values back through verification.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := sec.NewTokenService("unit-test-secret")

	token, err := service.GenerateToken("user-123", "Asha", "asha@example.com", sec.RoleUser, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "Asha", claims.Name)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, string(sec.RoleUser), claims.Role)
}

/*
TestTokenService_ClaimWireNames pins the JSON claim names: {id, name, email,
role, iat, exp}. Clients decode these directly, so the names are contract.
*/
func TestTokenService_ClaimWireNames(t *testing.T) {
	service := sec.NewTokenService("unit-test-secret")

	token, err := service.GenerateToken("user-123", "Asha", "asha@example.com", sec.RoleUser, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payloadJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(payloadJSON, &payload))

	assert.Equal(t, "user-123", payload["id"])
	assert.Equal(t, "Asha", payload["name"])
	assert.Equal(t, "asha@example.com", payload["email"])
	assert.Equal(t, "user", payload["role"])
	assert.Contains(t, payload, "iat")
	assert.Contains(t, payload, "exp")
}

/*
TestTokenService_OmitsEmptyName checks that locally issued login tokens (no
display name) do not carry a "name" claim at all.
*/
func TestTokenService_OmitsEmptyName(t *testing.T) {
	service := sec.NewTokenService("unit-test-secret")

	token, err := service.GenerateToken("user-123", "", "asha@example.com", sec.RoleUser, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payloadJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(payloadJSON, &payload))

	assert.NotContains(t, payload, "name")
}

/*
TestTokenService_RejectsExpired uses a negative TTL to produce an already
expired token.
*/
func TestTokenService_RejectsExpired(t *testing.T) {
	service := sec.NewTokenService("unit-test-secret")

	token, err := service.GenerateToken("user-123", "", "asha@example.com", sec.RoleUser, -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsWrongSecret verifies that tokens signed under a
different server secret never verify.
*/
func TestTokenService_RejectsWrongSecret(t *testing.T) {
	issuer := sec.NewTokenService("secret-a")
	verifier := sec.NewTokenService("secret-b")

	token, err := issuer.GenerateToken("user-123", "", "asha@example.com", sec.RoleUser, time.Hour)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsGarbage covers malformed token strings.
*/
func TestTokenService_RejectsGarbage(t *testing.T) {
	service := sec.NewTokenService("unit-test-secret")

	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		_, err := service.VerifyToken(tokenString)
		assert.Error(t, err, "token %q must not verify", tokenString)
	}
}

/*
TestTokenService_ResetTokenRoundTrip verifies reset tokens against the secret
derived from the current password hash.
*/
func TestTokenService_ResetTokenRoundTrip(t *testing.T) {
	service := sec.NewTokenService("unit-test-secret")

	token, err := service.GenerateResetToken("user-123", "asha@example.com", "$2a$10$currenthash", 15*time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyResetToken(token, "$2a$10$currenthash")
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
}

/*
TestTokenService_ResetTokenInvalidatesOnPasswordChange is the single-use
property: once the stored hash changes, outstanding reset tokens stop
verifying because the derived secret no longer matches.
*/
func TestTokenService_ResetTokenInvalidatesOnPasswordChange(t *testing.T) {
	service := sec.NewTokenService("unit-test-secret")

	token, err := service.GenerateResetToken("user-123", "asha@example.com", "$2a$10$oldhash", 15*time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyResetToken(token, "$2a$10$newhash")
	assert.Error(t, err)
}

/*
TestTokenService_ResetTokenRejectsExpired pins expiry enforcement on the
derived-secret path: an expired reset token fails even against the matching
password hash.
*/
func TestTokenService_ResetTokenRejectsExpired(t *testing.T) {
	service := sec.NewTokenService("unit-test-secret")

	token, err := service.GenerateResetToken("user-123", "asha@example.com", "$2a$10$currenthash", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyResetToken(token, "$2a$10$currenthash")
	assert.Error(t, err)
}

/*
TestTokenService_ResetTokenNotALoginToken ensures a reset token cannot be
replayed as a bearer token.
*/
func TestTokenService_ResetTokenNotALoginToken(t *testing.T) {
	service := sec.NewTokenService("unit-test-secret")

	token, err := service.GenerateResetToken("user-123", "asha@example.com", "$2a$10$hash", 15*time.Minute)
	require.NoError(t, err)

	// The bearer path uses the bare server secret; the derived secret differs.
	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}
