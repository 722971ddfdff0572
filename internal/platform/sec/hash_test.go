// Copyright (c) 2026 ApnaBasera. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apnabasera/basera/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip hashes and verifies a password.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
}

/*
TestHashPassword_UniqueSalts checks that two hashes of the same plaintext
differ (per-call random salt).
*/
func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := sec.HashPassword("same-password")
	require.NoError(t, err)

	second, err := sec.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

/*
TestCheckPasswordHash_MalformedHash treats a garbage stored hash as a
mismatch, never a panic.
*/
func TestCheckPasswordHash_MalformedHash(t *testing.T) {
	assert.False(t, sec.CheckPasswordHash("anything", "not-a-bcrypt-hash"))
	assert.False(t, sec.CheckPasswordHash("anything", ""))
}

/*
TestGenerateSecureToken checks length and hex alphabet.
*/
func TestGenerateSecureToken(t *testing.T) {
	token, err := sec.GenerateSecureToken(8)
	require.NoError(t, err)

	// n bytes hex-encode to 2n characters.
	assert.Len(t, token, 16)

	other, err := sec.GenerateSecureToken(8)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}
