// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// Services validate their inputs with it before touching storage; handlers and
// stores never do.
package validate

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/shelfy/internal/platform/apperr"
)

// ErrInvalidJSON is returned when the request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// FloatRange fails if the value is outside the [min, max] range (inclusive).
// NaN always fails.
func (v *Validator) FloatRange(field string, value, min, max float64) *Validator {
	if !(value >= min && value <= max) {
		v.add(field, fmt.Sprintf("Must be between %g and %g", min, max))
	}
	return v
}

// NonNegative fails if the value is below zero. NaN always fails.
func (v *Validator) NonNegative(field string, value float64) *Validator {
	if !(value >= 0) {
		v.add(field, "Must not be negative")
	}
	return v
}

// Positive fails if the value is below one.
func (v *Validator) Positive(field string, value int) *Validator {
	if value < 1 {
		v.add(field, "Must be positive")
	}
	return v
}

// HTTPURL fails if the value is not an absolute http(s) URL.
func (v *Validator) HTTPURL(field, value string) *Validator {
	parsed, err := url.Parse(value)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		v.add(field, "Must be an absolute http(s) URL")
	}
	return v
}

// Tags fails if there are more than max tags or any tag exceeds maxLen characters.
// Only the first offending tag is reported.
func (v *Validator) Tags(field string, tags []string, max, maxLen int) *Validator {
	if len(tags) > max {
		v.add(field, fmt.Sprintf("At most %d tags", max))
		return v
	}
	for _, tag := range tags {
		if utf8.RuneCountInString(tag) > maxLen {
			v.add(field, fmt.Sprintf("Each tag is limited to %d characters", maxLen))
			return v
		}
	}
	return v
}

/*
ISBN fails unless the value is 10 characters (digits, with an optional
trailing X) or 13 digits.

Callers normalize first: hyphens and spaces removed, x upper-cased.
Check digits are not verified.
*/
func (v *Validator) ISBN(field, value string) *Validator {
	if !isISBN(value) {
		v.add(field, "Must be a 10 or 13 digit ISBN")
	}
	return v
}

func isISBN(value string) bool {
	switch len(value) {
	case 10:
		for i, r := range value {
			if !(r >= '0' && r <= '9') && !(i == 9 && r == 'X') {
				return false
			}
		}
		return true
	case 13:
		for _, r := range value {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	}
	return false
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("number", number < 1, "Must be a positive volume number")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method. Call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
