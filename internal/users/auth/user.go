// Copyright (c) 2026 ApnaBasera. All rights reserved.

/*
Package auth implements the user identity layer for ApnaBasera.

It defines the core domain entity (User) and the logic for registration,
credential and federated login, the admin bypass, and password recovery.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/apnabasera/basera/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the ApnaBasera platform.
//
// The admin identity is NOT a User: it lives in process configuration and is
// synthesized per-request from verified token claims.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicUser is the registration response projection: no role, no timestamps.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionUser is the login/federated response projection, role included.
type SessionUser struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Email string       `json:"email"`
	Role  sec.UserRole `json:"role"`
}

// Public returns the registration projection of the user.
func (user *User) Public() *PublicUser {
	return &PublicUser{ID: user.ID, Name: user.Name, Email: user.Email}
}

// Session returns the login projection of the user. Stored users always
// carry the "user" role.
func (user *User) Session() *SessionUser {
	return &SessionUser{ID: user.ID, Name: user.Name, Email: user.Email, Role: sec.RoleUser}
}
