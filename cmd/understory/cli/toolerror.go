// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/understory-cli/understory/lib/period"
	"github.com/understory-cli/understory/lib/understory"
)

// ErrorCategory classifies command errors so that agents can make
// programmatic decisions (retry, fix input, escalate) without parsing
// error message text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// missing arguments, unknown flags, unparseable dates. The caller
	// should fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced resource does not exist.
	// Retrying with the same parameters will not help.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden indicates missing or rejected credentials, or
	// a scope that does not cover the resource.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryConflict indicates the request conflicts with server
	// state.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryTransient indicates a temporary failure: network error,
	// timeout, rate limit, or a 5xx response. The caller may retry
	// later.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal indicates an unexpected error. The caller
	// should report the error rather than retry.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by CLI commands.
//
// ToolError wraps an inner error, preserving the full error chain for
// debugging while adding category metadata. Use the category-specific
// constructors (Validation, NotFound, etc.) rather than constructing
// ToolError directly.
type ToolError struct {
	// Category classifies the error for programmatic handling.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error
}

// Error returns the underlying error message. The category is not
// included in the string.
func (e *ToolError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error, allowing errors.Is and
// errors.As to walk the full chain through the ToolError wrapper.
func (e *ToolError) Unwrap() error { return e.Err }

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced resource does not exist.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or I/O error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// Categorize returns the category of err. Explicit ToolErrors keep
// theirs; library errors are classified by type and status code.
func Categorize(err error) ErrorCategory {
	var toolError *ToolError
	if errors.As(err, &toolError) {
		return toolError.Category
	}

	switch {
	case errors.Is(err, period.ErrInvalidPeriod),
		errors.Is(err, period.ErrInvalidMonthFormat),
		errors.Is(err, period.ErrInvalidDatetime),
		errors.Is(err, period.ErrInvalidDate),
		errors.Is(err, period.ErrRangeRequired),
		errors.Is(err, period.ErrEmptyRange):
		return CategoryValidation
	case errors.Is(err, understory.ErrCredentialsMissing):
		return CategoryForbidden
	case errors.Is(err, context.DeadlineExceeded):
		return CategoryTransient
	}

	var authError *understory.AuthError
	if errors.As(err, &authError) {
		if authError.StatusCode >= 500 {
			return CategoryTransient
		}
		return CategoryForbidden
	}

	var apiError *understory.APIError
	if errors.As(err, &apiError) {
		switch {
		case apiError.StatusCode == http.StatusNotFound:
			return CategoryNotFound
		case apiError.StatusCode == http.StatusUnauthorized, apiError.StatusCode == http.StatusForbidden:
			return CategoryForbidden
		case apiError.StatusCode == http.StatusConflict:
			return CategoryConflict
		case apiError.StatusCode == http.StatusTooManyRequests, apiError.StatusCode >= 500:
			return CategoryTransient
		default:
			return CategoryValidation
		}
	}

	var netError net.Error
	if errors.As(err, &netError) {
		return CategoryTransient
	}
	return CategoryInternal
}
