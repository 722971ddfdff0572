// Copyright (c) 2026 ApnaBasera. All rights reserved.

// Authentication and authorization middleware for the ApnaBasera API.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. Verification and identity
// resolution are injected as small interfaces so the chain can be unit
// tested without a real token service or credential store.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/apnabasera/basera/internal/platform/apperr"
	"github.com/apnabasera/basera/internal/platform/constants"
	"github.com/apnabasera/basera/internal/platform/ctxutil"
	"github.com/apnabasera/basera/internal/platform/respond"
	"github.com/apnabasera/basera/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify bearer tokens.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from [sec.TokenService],
// allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// PrincipalResolver turns verified claims into a request principal.
//
// The auth service implements this: the admin sentinel is synthesized from
// the claims alone, while regular users are re-read from the credential
// store so deleted accounts stop working immediately.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, claims *sec.AuthClaims) (*sec.Principal, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header,
// then resolves and injects the request principal.
//
// # Flow
//  1. Require an 'Authorization: Bearer <token>' header.
//  2. Parse and verify the JWT via [TokenVerifier].
//  3. Resolve the principal via [PrincipalResolver].
//  4. Inject [*sec.Principal] into the request context for downstream use.
//
// This middleware BLOCKS anonymous requests; it only guards routes that
// require a signed-in identity. The rejection messages are part of the
// public contract.
func Authenticate(verifier TokenVerifier, resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Header Presence ────────────────────────────────────────────
			if !strings.HasPrefix(authHeader, "Bearer") {
				respond.Error(writer, request, apperr.Unauthorized("Not authorized, no token"))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[1] == "" {
				respond.Error(writer, request, apperr.Unauthorized("Not authorized, no token"))
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(parts[1])
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Not authorized, token failed"))
				return
			}

			// ── 3. Identity Resolution ────────────────────────────────────────
			principal, err := resolver.ResolvePrincipal(request.Context(), claims)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAdmin blocks requests whose principal does not carry the admin role.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		principal := ctxutil.GetPrincipal(request.Context())
		if !principal.IsAdmin() {
			respond.Error(writer, request, apperr.Forbidden("Admin resource. Access denied."))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
