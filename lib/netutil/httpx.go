// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides HTTP response helpers shared by the API
// client and the token exchange.
//
// All body reads are bounded at MaxResponseSize so that a misbehaving
// server cannot exhaust memory. The bound is far above any legitimate
// page of results.
package netutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// MaxResponseSize is the bound on JSON API response body reads: 64 MB.
const MaxResponseSize int64 = 64 << 20

// ReadResponse reads a JSON API response body up to MaxResponseSize bytes.
// Use instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// DecodeResponse reads a JSON API response body (up to MaxResponseSize bytes)
// and JSON-decodes it into v.
func DecodeResponse(body io.Reader, v any) error {
	data, err := ReadResponse(body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	return json.Unmarshal(data, v)
}

// ErrorBody reads an HTTP error response body and returns it as a string for
// diagnostic error messages. Read errors are ignored: a partial or empty
// body is still useful in an error message.
func ErrorBody(body io.Reader) string {
	data, _ := ReadResponse(body)
	return string(data)
}

// JSONOrText interprets an error response body. A body that parses as
// JSON is returned as the decoded value (map, slice, number, ...). Any
// other body is returned as its raw text, and an empty body as "".
func JSONOrText(data []byte) any {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ""
	}
	var decoded any
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return string(data)
	}
	return decoded
}
