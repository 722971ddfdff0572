// Copyright (c) 2026 ApnaBasera. All rights reserved.

// Package mail defines the outbound email boundary.
//
// Delivery itself is out of scope for the API server; the auth service only
// needs a [Mailer] to hand the reset link to. Production deployments plug in
// a real transport, development and tests run on [LogMailer].
package mail

import (
	"context"
	"log/slog"
)

// ResetEmail carries everything needed to render a password-reset message.
type ResetEmail struct {
	To        string
	Name      string
	ResetLink string
}

// Mailer sends transactional email.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email ResetEmail) error
}

// LogMailer writes the reset link to the structured log instead of sending
// mail. Never enable in production.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a mailer that logs instead of delivering.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// SendPasswordReset logs the reset link at INFO level.
func (mailer *LogMailer) SendPasswordReset(ctx context.Context, email ResetEmail) error {
	mailer.logger.InfoContext(ctx, "password_reset_email",
		slog.String("to", email.To),
		slog.String("name", email.Name),
		slog.String("reset_link", email.ResetLink),
	)
	return nil
}
