// Copyright (c) 2026 ApnaBasera. All rights reserved.

// Package validate provides a chainable Validator that collects rule
// violations before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used exclusively in the service layer — never in handlers or
// storage. Every rule carries its own client-facing message, and [Validator.Err]
// surfaces the FIRST violated rule: clients receive one message per failed
// request, in declaration order.
package validate

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/apnabasera/basera/internal/platform/apperr"
)

// ErrInvalidJSON is returned when the request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator collects rule violations via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	messages []string
}

// Required fails with the given message if the trimmed value is empty.
func (v *Validator) Required(value, message string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(message)
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(value string, min int, message string) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(message)
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(value string, max int, message string) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(message)
	}
	return v
}

// Email fails if the value is not a valid RFC 5322 email address.
func (v *Validator) Email(value, message string) *Validator {
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(message)
	}
	return v
}

// Positive fails if the value is not strictly greater than zero.
func (v *Validator) Positive(value float64, message string) *Validator {
	if value <= 0 {
		v.add(message)
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(value string, allowed []string, message string) *Validator {
	for _, candidate := range allowed {
		if value == candidate {
			return v
		}
	}
	v.add(message)
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom(len(password) < 6, "Password must be at least 6 characters long")
func (v *Validator) Custom(failed bool, message string) *Validator {
	if failed {
		v.add(message)
	}
	return v
}

// Err returns a 400 [apperr.AppError] carrying the first violated rule's
// message, or nil if all rules passed.
//
// This is the only output method — call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.messages) == 0 {
		return nil
	}
	return apperr.ValidationError(v.messages[0])
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.messages) > 0
}

// add appends a violation message to the internal slice.
func (v *Validator) add(message string) {
	v.messages = append(v.messages, message)
}
