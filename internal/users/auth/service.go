// Copyright (c) 2026 ApnaBasera. All rights reserved.

/*
Auth service: orchestration of the identity lifecycle.

It handles registration, credential login with the configured admin bypass,
Google federated sign-in, and hash-bound password recovery.

Architecture:

  - Service: Orchestrates business logic (Register, Login, GoogleSignIn, recovery).
  - Repository: Abstracted interface for Postgres (Users).
  - Security: Leverages bcrypt hashing and HS256-signed JWTs.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/apnabasera/basera/internal/platform/apperr"
	"github.com/apnabasera/basera/internal/platform/identity"
	"github.com/apnabasera/basera/internal/platform/mail"
	"github.com/apnabasera/basera/internal/platform/sec"
	"github.com/apnabasera/basera/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing and checking security tokens.
//
// [sec.TokenService] is the production implementation; tests inject fakes.
type TokenProvider interface {
	// GenerateToken creates a signed bearer token for the given identity.
	GenerateToken(userID, name, email string, role sec.UserRole, timeToLive time.Duration) (string, error)

	// GenerateResetToken creates a reset token bound to the user's current
	// password hash.
	GenerateResetToken(userID, email, passwordHash string, timeToLive time.Duration) (string, error)

	// VerifyResetToken verifies a reset token against the secret derived
	// from the user's current password hash.
	VerifyResetToken(tokenString, passwordHash string) (*sec.ResetClaims, error)
}

// AdminCredentials is the statically configured admin credential pair.
//
// # Security
//
// The comparison in [Service.Login] is verbatim string equality against
// these values. There is no admin row in the credential store.
type AdminCredentials struct {
	Email    string
	Password string
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, the admin
// bypass, or the reset-token derivation must be reviewed carefully.
type Service struct {
	userRepository   UserRepository
	tokenProvider    TokenProvider
	identityVerifier identity.Verifier
	mailer           mail.Mailer
	admin            AdminCredentials
	frontendURL      string
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	tokenProv TokenProvider,
	identityVerifier identity.Verifier,
	mailer mail.Mailer,
	admin AdminCredentials,
	frontendURL string,
) *Service {
	return &Service{
		userRepository:   userRepo,
		tokenProvider:    tokenProv,
		identityVerifier: identityVerifier,
		mailer:           mailer,
		admin:            admin,
		frontendURL:      frontendURL,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Checks email uniqueness, hashes the password with bcrypt, and
persists the new account with a time-sortable ID.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *PublicUser: Created account projection (no role, no timestamps)
  - error: Conflict (if email is taken) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*PublicUser, error) {
	email := NormalizeEmail(input.Email)

	// Verify email uniqueness. Return a client-safe Conflict error.
	// The unique index on users.email backs this up against races.
	existing, err := service.userRepository.FindByEmail(context, email)
	if err == nil && existing != nil {
		return nil, apperr.Conflict("User already exists with this email.")
	}
	if err != nil && !isNotFound(err) {
		return nil, apperr.InternalWithMessage(err, "Server error during registration.")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.InternalWithMessage(err, "Server error during registration.")
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuidv7.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hashedPassword,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, apperr.InternalWithMessage(err, "Server error during registration.")
	}

	return user.Public(), nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult represents a successfully established identity.
type LoginResult struct {
	Message string
	Token   string
	User    *SessionUser
}

/*
Login validates user credentials and issues a bearer token.

Description: Checks the configured admin bypass FIRST — a verbatim match of
both email and password mints an admin token without touching the credential
store. Otherwise the account is looked up and the password compared against
its bcrypt hash.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Token, user projection, and the contract message
  - error: AuthFailed or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {

	// ── 1. Admin Bypass ───────────────────────────────────────────────────
	// Verbatim comparison against the configured pair. The admin email is
	// NOT normalized and the password is NOT hashed: both must match the
	// environment values exactly. No store lookup happens on this path.
	if input.Email == service.admin.Email && input.Password == service.admin.Password {
		token, err := service.tokenProvider.GenerateToken(
			sec.AdminUserID, "", service.admin.Email, sec.RoleAdmin, AdminTokenTTL,
		)
		if err != nil {
			return nil, apperr.InternalWithMessage(err, "Server error during login.")
		}

		return &LoginResult{
			Message: "Admin login successful!",
			Token:   token,
			User: &SessionUser{
				ID:    sec.AdminUserID,
				Name:  sec.AdminDisplayName,
				Email: service.admin.Email,
				Role:  sec.RoleAdmin,
			},
		}, nil
	}

	// ── 2. Credential Lookup ──────────────────────────────────────────────
	user, err := service.userRepository.FindByEmail(context, NormalizeEmail(input.Email))
	if err != nil {
		if isNotFound(err) {
			// Generic message to prevent account enumeration.
			return nil, apperr.AuthFailed("Invalid credentials. Please try again.")
		}
		return nil, apperr.InternalWithMessage(err, "Server error during login.")
	}

	// ── 3. Password Verification ──────────────────────────────────────────
	// bcrypt comparison is constant-time; the failure message is identical
	// to the unknown-account case above.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.AuthFailed("Invalid credentials. Please try again.")
	}

	// ── 4. Token Issue ────────────────────────────────────────────────────
	// Credential login tokens carry no name claim.
	token, err := service.tokenProvider.GenerateToken(user.ID, "", user.Email, sec.RoleUser, UserTokenTTL)
	if err != nil {
		return nil, apperr.InternalWithMessage(err, "Server error during login.")
	}

	return &LoginResult{
		Message: "Login successful!",
		Token:   token,
		User:    user.Session(),
	}, nil
}

/*
GoogleSignIn authenticates a user via a Google-issued ID token, creating the
account on first sign-in.

Description: Verifies the credential with Google's public keys, then finds or
creates the account. First-time federated accounts get a random unusable
password hash, so the email cannot be claimed later via /register and the
local login path stays closed until a password reset.

Parameters:
  - context: context.Context
  - credential: string (Google ID token)

Returns:
  - *LoginResult: Token, user projection, and the contract message
  - error: AuthFailed (any verification or provisioning failure)
*/
func (service *Service) GoogleSignIn(context context.Context, credential string) (*LoginResult, error) {

	// ── 1. Credential Verification ────────────────────────────────────────
	googleIdentity, err := service.identityVerifier.Verify(context, credential)
	if err != nil {
		return nil, apperr.AuthFailed("Google authentication failed.")
	}

	email := NormalizeEmail(googleIdentity.Email)

	// ── 2. Find or Create ─────────────────────────────────────────────────
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		if !isNotFound(err) {
			return nil, apperr.AuthFailed("Google authentication failed.")
		}

		user, err = service.provisionFederatedUser(context, googleIdentity.Name, email)
		if err != nil {
			return nil, apperr.AuthFailed("Google authentication failed.")
		}
	}

	// ── 3. Token Issue ────────────────────────────────────────────────────
	// Federated tokens DO carry the name claim.
	token, err := service.tokenProvider.GenerateToken(user.ID, user.Name, user.Email, sec.RoleUser, UserTokenTTL)
	if err != nil {
		return nil, apperr.AuthFailed("Google authentication failed.")
	}

	return &LoginResult{
		Message: "Google sign-in successful!",
		Token:   token,
		User:    user.Session(),
	}, nil
}

// provisionFederatedUser creates an account for a first-time federated
// sign-in with a random, immediately discarded password.
func (service *Service) provisionFederatedUser(context context.Context, name, email string) (*User, error) {
	randomPassword, err := sec.GenerateSecureToken(FederatedPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_federated_password_failed: %w", err)
	}

	hashedPassword, err := sec.HashPassword(randomPassword)
	if err != nil {
		return nil, fmt.Errorf("auth_service_federated_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuidv7.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_federated_create_failed: %w", err)
	}

	return user, nil
}

// # Password Recovery

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Looks up the account, signs a short-lived reset token with the
secret derived from the CURRENT password hash, and hands the reset link to
the mailer. An unknown email is silently accepted: the handler returns the
same acknowledgement either way to prevent account enumeration.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: Mail or signing failures (never "not found")
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) error {
	user, err := service.userRepository.FindByEmail(context, NormalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			// Enumeration-safe: pretend success.
			return nil
		}
		return apperr.InternalWithMessage(err, "Error processing request.")
	}

	// The signing secret embeds the current hash: once the password changes,
	// every outstanding link dies.
	token, err := service.tokenProvider.GenerateResetToken(user.ID, user.Email, user.PasswordHash, ResetTokenTTL)
	if err != nil {
		return apperr.InternalWithMessage(err, "Error processing request.")
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s/%s", service.frontendURL, user.ID, token)

	if err := service.mailer.SendPasswordReset(context, mail.ResetEmail{
		To:        user.Email,
		Name:      user.Name,
		ResetLink: resetLink,
	}); err != nil {
		return apperr.InternalWithMessage(err, "Error processing request.")
	}

	return nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the reset token against the secret derived from the
user's CURRENT password hash, then stores the new hash. A missing user, a
bad signature, and an expired token all collapse into the same client error.

Parameters:
  - context: context.Context
  - userID: string (from the reset link path)
  - token: string (from the reset link path)
  - newPassword: string

Returns:
  - error: InvalidOrExpired or storage failures
*/
func (service *Service) ResetPassword(context context.Context, userID, token, newPassword string) error {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		if isNotFound(err) {
			return apperr.InvalidOrExpired("Invalid or expired reset link.")
		}
		return apperr.InternalWithMessage(err, "Error resetting password.")
	}

	// Signature failures and expiry are indistinguishable to the client.
	if _, err := service.tokenProvider.VerifyResetToken(token, user.PasswordHash); err != nil {
		return apperr.InvalidOrExpired("Invalid or expired reset link.")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return apperr.InternalWithMessage(err, "Error resetting password.")
	}

	// Storing the new hash changes the derived secret, which retires every
	// outstanding reset token for this account.
	if err := service.userRepository.UpdatePassword(context, user.ID, hashedPassword); err != nil {
		return apperr.InternalWithMessage(err, "Error resetting password.")
	}

	return nil
}

// # Identity Resolution

/*
ResolvePrincipal turns verified bearer-token claims into a request principal.

Description: The admin sentinel (role "admin" AND id "admin_user") is
synthesized from the claims alone — the token signature already proved the
server minted it. Regular users are re-read from the credential store so
deleted accounts stop working immediately.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (already signature-verified)

Returns:
  - *sec.Principal: Resolved request identity
  - error: Unauthorized if the account no longer exists
*/
func (service *Service) ResolvePrincipal(context context.Context, claims *sec.AuthClaims) (*sec.Principal, error) {
	if claims.Role == string(sec.RoleAdmin) && claims.UserID == sec.AdminUserID {
		return sec.AdminPrincipal(claims.Email), nil
	}

	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Not authorized, user not found")
	}

	return &sec.Principal{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  sec.RoleUser,
	}, nil
}

// # Helpers

// NormalizeEmail lowercases and trims an email for storage and lookup.
// The admin bypass deliberately does NOT use this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isNotFound reports whether err is a client-safe NOT_FOUND application error.
func isNotFound(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.Code == "NOT_FOUND"
}
