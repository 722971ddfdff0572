// Copyright (c) 2026 ApnaBasera. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces ([middleware.TokenVerifier]).
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside a bearer token.
//
// # Claim shape
//
// The wire claims are exactly {id, name?, email, role, iat, exp}. The names
// are part of the public contract: tokens issued by earlier deployments must
// keep verifying, and tokens issued here must keep working against clients
// that decode them.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// ResetClaims is the payload of a password-reset token: {email, id, iat, exp}.
type ResetClaims struct {
	jwt.RegisteredClaims

	Email  string `json:"email"`
	UserID string `json:"id"`
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// # Two effective secrets
//
// Login tokens are signed with the standing server secret. Password-reset
// tokens are signed with serverSecret + the user's current password hash:
// changing the password changes the derived secret, which invalidates every
// outstanding reset token without a revocation list.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a new TokenService around the server-held secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// GenerateToken creates a signed bearer token for a principal-shaped payload.
//
// # Parameters
//   - userID: The account id (or the admin sentinel).
//   - name: Display name; empty for locally issued login tokens.
//   - email: The account email.
//   - role: "user" or "admin".
//   - timeToLive: The duration before the token expires.
func (service *TokenService) GenerateToken(userID, name, email string, role UserRole, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
		Name:   name,
		Email:  email,
		Role:   string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a bearer token string.
//
// Malformed, expired, and wrongly-signed tokens all return a single opaque
// error; callers must not distinguish them to the client.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}

// GenerateResetToken creates a password-reset token bound to the user's
// current password hash.
//
// The effective signing secret is serverSecret + passwordHash. This exact
// derivation is a compatibility requirement: reset links issued by earlier
// deployments must verify here and vice versa.
func (service *TokenService) GenerateResetToken(userID, email, passwordHash string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := ResetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Email:  email,
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.derivedSecret(passwordHash))
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign reset token: %w", err)
	}

	return signedToken, nil
}

// VerifyResetToken verifies a reset token against the secret derived from the
// user's *current* password hash.
//
// Once the password changes the derivation no longer matches, so tokens are
// effectively single-use without a stored "used" flag.
func (service *TokenService) VerifyResetToken(tokenString, passwordHash string) (*ResetClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ResetClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.derivedSecret(passwordHash), nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid reset token: %w", err)
	}

	claims, ok := token.Claims.(*ResetClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid reset token claims")
	}

	return claims, nil
}

// derivedSecret concatenates the server secret with a password hash.
func (service *TokenService) derivedSecret(passwordHash string) []byte {
	derived := make([]byte, 0, len(service.secret)+len(passwordHash))
	derived = append(derived, service.secret...)
	derived = append(derived, passwordHash...)
	return derived
}
