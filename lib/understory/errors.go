// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package understory

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrCredentialsMissing is returned by [TokenSource.Token] when the
// client id or secret is empty. No network request is made.
var ErrCredentialsMissing = errors.New("missing credentials: set UNDERSTORY_CLIENT_ID and UNDERSTORY_SECRET_KEY in .env or environment")

// AuthError is a non-2xx response from the token endpoint.
type AuthError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Body is the raw response body, kept for diagnostics.
	Body string
}

func (err *AuthError) Error() string {
	return fmt.Sprintf("auth failed (%d): %s", err.StatusCode, err.Body)
}

// APIError is a non-2xx response from a resource endpoint.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Status is the reason phrase, e.g. "Not Found".
	Status string

	// Body is the response body decoded as JSON when possible, or the
	// raw text otherwise.
	Body any

	// RequestID is the X-Request-ID sent with the failed request.
	RequestID string
}

func (err *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", err.StatusCode, err.Status)
}

// IsNotFound reports whether err is an API 404 response.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is an API 401 or 403 response, or
// a rejected token exchange.
func IsUnauthorized(err error) bool {
	var authError *AuthError
	if errors.As(err, &authError) {
		return true
	}
	var apiError *APIError
	return errors.As(err, &apiError) &&
		(apiError.StatusCode == http.StatusUnauthorized || apiError.StatusCode == http.StatusForbidden)
}

// IsServerError reports whether err is an API 5xx response.
func IsServerError(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode >= 500
}
