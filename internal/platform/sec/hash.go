// Copyright (c) 2026 ApnaBasera. All rights reserved.

package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the bcrypt work factor used for all stored hashes.
//
// Fixed at 10 rounds-equivalent to stay interoperable with hashes produced
// by earlier deployments of the platform.
const PasswordHashCost = bcrypt.DefaultCost

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// A fresh random salt is generated per call and embedded in the returned
// digest, so two hashes of the same plaintext never match.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), PasswordHashCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
//
// bcrypt performs the comparison in constant time; the boolean result is the
// only output (no error distinction between "malformed hash" and "mismatch").
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}

// GenerateSecureToken returns a hex-encoded random string of n bytes.
//
// Used for unusable placeholder passwords on federated sign-up and for
// chat session identifiers.
func GenerateSecureToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
