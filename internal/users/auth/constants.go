// Copyright (c) 2026 ApnaBasera. All rights reserved.

package auth

import "time"

// # Authentication Constraints

const (
	// UserTokenTTL is the duration a regular user's bearer token remains valid.
	UserTokenTTL = 7 * 24 * time.Hour

	// AdminTokenTTL is the duration an admin bearer token remains valid.
	// Deliberately shorter than the user TTL: the admin credential pair is
	// static, so a leaked admin token is only good for a day.
	AdminTokenTTL = 24 * time.Hour

	// ResetTokenTTL is the duration a password reset link remains valid.
	ResetTokenTTL = 15 * time.Minute

	// FederatedPasswordLength is the byte length of the random password
	// assigned to accounts created via federated sign-in. The plaintext is
	// discarded immediately; only its hash is stored.
	FederatedPasswordLength = 8

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 6
)
