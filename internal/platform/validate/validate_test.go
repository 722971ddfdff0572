// Copyright (c) 2026 ApnaBasera. All rights reserved.

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apnabasera/basera/internal/platform/apperr"
	"github.com/apnabasera/basera/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "ApnaBasera", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.value, "Name is required")

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, "Name is required", ae.Message)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email(tt.email, "Please include a valid email")

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Positive and TestValidator_OneOf cover the numeric and enum rules.
*/
func TestValidator_Positive(t *testing.T) {
	v := &validate.Validator{}
	v.Positive(10, "Price must be a positive number")
	assert.False(t, v.HasErrors())

	v.Positive(0, "Price must be a positive number")
	assert.True(t, v.HasErrors())

	v = &validate.Validator{}
	v.Positive(-3.5, "Price must be a positive number")
	assert.True(t, v.HasErrors())
}

func TestValidator_OneOf(t *testing.T) {
	allowed := []string{"PG", "Flat", "Hostel"}

	v := &validate.Validator{}
	v.OneOf("Flat", allowed, "Type must be one of: PG, Flat, Hostel")
	assert.False(t, v.HasErrors())

	v.OneOf("Villa", allowed, "Type must be one of: PG, Flat, Hostel")
	require.Error(t, v.Err())
	assert.Equal(t, "Type must be one of: PG, Flat, Hostel", v.Err().Error())
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("Asha", "Name is required").
		MinLen("hunter22", 6, "Password must be 6 or more characters").
		MaxLen("Asha", 100, "Name is too long").
		Email("asha@example.com", "Please include a valid email").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_FirstViolationWins: with multiple failed rules, the client sees
only the first message, in declaration order.
*/
func TestValidator_FirstViolationWins(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("", "Name is required").                            // Fails first
		Email("not-an-email", "Please include a valid email").       // Fails
		MinLen("abc", 6, "Password must be 6 or more characters").   // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	assert.Equal(t, "Name is required", ae.Message)
	assert.Equal(t, 400, ae.HTTPStatus)
}

/*
TestValidator_Custom covers the arbitrary-condition escape hatch.
*/
func TestValidator_Custom(t *testing.T) {
	v := &validate.Validator{}
	v.Custom(false, "should not fire")
	assert.False(t, v.HasErrors())

	v.Custom(true, "All required fields must be provided (title, location, price, type, beds, baths)")
	require.Error(t, v.Err())
	assert.Equal(t, "All required fields must be provided (title, location, price, type, beds, baths)", v.Err().Error())
}
