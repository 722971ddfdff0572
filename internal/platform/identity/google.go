// Copyright (c) 2026 ApnaBasera. All rights reserved.

// Package identity verifies federated login credentials from external
// identity providers.
//
// # Architecture
//
// The auth service depends on the small [Verifier] interface rather than on
// Google's SDK directly, so federated login can be unit tested with a fake.
package identity

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// Identity is the subset of provider claims the platform cares about.
type Identity struct {
	Name  string
	Email string
}

// Verifier validates a provider-issued credential and extracts the identity.
type Verifier interface {
	Verify(ctx context.Context, credential string) (*Identity, error)
}

// GoogleVerifier validates Google ID tokens against the configured OAuth
// client ID.
type GoogleVerifier struct {
	clientID string
}

// NewGoogleVerifier creates a verifier bound to a single OAuth client ID.
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

// Verify checks the token's signature, audience and expiry with Google's
// public keys, then extracts the display name and email claims.
func (verifier *GoogleVerifier) Verify(ctx context.Context, credential string) (*Identity, error) {
	payload, err := idtoken.Validate(ctx, credential, verifier.clientID)
	if err != nil {
		return nil, fmt.Errorf("identity: google token validation failed: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("identity: google token has no email claim")
	}

	name, _ := payload.Claims["name"].(string)

	return &Identity{Name: name, Email: email}, nil
}
