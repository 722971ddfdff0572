// Copyright (c) 2026 ApnaBasera. All rights reserved.

package sec

// Principal is the resolved identity attached to an authenticated request.
//
// It is request-scoped and never persisted. For regular users it mirrors a
// credential-store row; for the admin it is synthesized entirely from
// verified token claims (there is no admin row to mirror).
type Principal struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// IsAdmin reports whether the principal carries the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// AdminPrincipal synthesizes the admin identity from verified token claims.
//
// Only the email varies; id, name and role are fixed by convention.
func AdminPrincipal(email string) *Principal {
	return &Principal{
		ID:    AdminUserID,
		Name:  AdminDisplayName,
		Email: email,
		Role:  RoleAdmin,
	}
}
