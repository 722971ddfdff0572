// Copyright (c) 2026 ApnaBasera. All rights reserved.

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access. Never persisted in the credential store;
	// the admin identity exists only inside signed tokens.
	RoleAdmin UserRole = "admin"

	// Default role for every registered account.
	RoleUser UserRole = "user"
)

// AdminUserID is the fixed sentinel id carried in admin token claims.
//
// The verifier trusts this sentinel (plus a valid signature) instead of a
// credential-store row. Single-tenant-admin assumption: there is exactly one
// admin identity, anchored by the configured admin email/password pair.
const AdminUserID = "admin_user"

// AdminDisplayName is the display name synthesized for the admin principal.
const AdminDisplayName = "Admin"
