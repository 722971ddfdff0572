// Copyright (c) 2026 ApnaBasera. All rights reserved.

/*
HTTP delivery layer for user identity management.

It implements the gateway for the authentication lifecycle — from account
creation to federated login and password recovery.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Contract: Response messages and status codes are load-bearing; clients
    branch on the exact message strings.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/apnabasera/basera/internal/platform/request"
	"github.com/apnabasera/basera/internal/platform/respond"
	"github.com/apnabasera/basera/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the user lifecycle entry points
// (Registration, Login, Google sign-in, Password Reset).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register                  : Creates a new account.
//   - POST /login                     : Authenticates and returns a JWT.
//   - POST /google                    : Federated sign-in via Google ID token.
//   - POST /forgot-password           : Initiates password recovery.
//   - POST /reset-password/{id}/{token} : Completes password recovery.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/google", handler.google)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password/{id}/{token}", handler.resetPassword)

	return router
}

// # Request Payloads

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleRequest struct {
	Credential string `json:"credential"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// # Response Payloads

type registerResponse struct {
	Message string      `json:"message"`
	User    *PublicUser `json:"user"`
}

type sessionResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *SessionUser `json:"user"`
}

/*
register handles the creation of a new user account.

POST /api/auth/register

Description: Validates input, checks for identity conflicts, and persists
a new user profile to the database.

Request:
  - Body: registerRequest (Name, Email, Password)

Response:
  - 201: registerResponse: Created user projection
  - 400: Validation failure (first violated rule) or duplicate email
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(input.Name, "Name is required").
		Email(input.Email, "Please include a valid email").
		MinLen(input.Password, MinPasswordLength, "Password must be 6 or more characters")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, registerResponse{
		Message: "User registered successfully! Please login.",
		User:    user,
	})
}

/*
login authenticates a user and issues a bearer token.

POST /api/auth/login

Description: Verifies credentials (or the configured admin pair) and returns
a signed JWT with the session user projection.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: sessionResponse: Token and user profile
  - 400: Validation failure or invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Email(input.Email, "Please include a valid email").
		Required(input.Password, "Password is required")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessionResponse{
		Message: result.Message,
		Token:   result.Token,
		User:    result.User,
	})
}

/*
google authenticates a user via a Google-issued ID token.

POST /api/auth/google

Description: Verifies the credential with Google and signs the user in,
creating the account on first sign-in.

Request:
  - Body: googleRequest (Credential)

Response:
  - 200: sessionResponse: Token and user profile
  - 400: "Google authentication failed."
*/
func (handler *Handler) google(writer http.ResponseWriter, request *http.Request) {
	var input googleRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	result, err := handler.authService.GoogleSignIn(request.Context(), input.Credential)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessionResponse{
		Message: result.Message,
		Token:   result.Token,
		User:    result.User,
	})
}

/*
forgotPassword initiates the password recovery flow.

POST /api/auth/forgot-password

Description: Sends a password reset link to the provided email if the account
exists. The acknowledgement is identical whether or not the account exists.

Request:
  - Body: forgotPasswordRequest (Email)

Response:
  - 200: Generic acknowledgement (enumeration-safe)
  - 400: Invalid email format
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Email(input.Email, "Please include a valid email")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.RequestPasswordReset(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "If a user with that email exists, a password reset link has been sent.")
}

/*
resetPassword completes the password recovery flow.

POST /api/auth/reset-password/{id}/{token}

Description: Verifies the reset token against the secret derived from the
user's current password hash and stores the new password.

Request:
  - Path: id (user ID from the reset link), token (signed reset token)
  - Body: resetPasswordRequest (Password)

Response:
  - 200: "Password has been reset successfully. You can now login."
  - 400: Weak password or invalid/expired reset link
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.MinLen(input.Password, MinPasswordLength, "Password must be 6 or more characters")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID := requestutil.Param(request, "id")
	token := requestutil.Param(request, "token")

	if err := handler.authService.ResetPassword(request.Context(), userID, token, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Password has been reset successfully. You can now login.")
}
