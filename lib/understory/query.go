// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package understory

import (
	"net/url"
	"strconv"
)

// Params holds query parameters for a GET request. Entries with an
// empty value are never transmitted.
type Params map[string]string

// SetInt stores value in decimal when it is positive. Zero and negative
// values leave the parameter unset so the server default applies.
func (params Params) SetInt(key string, value int) {
	if value > 0 {
		params[key] = strconv.Itoa(value)
	}
}

// Clone returns a copy of params that can be modified independently.
func (params Params) Clone() Params {
	clone := make(Params, len(params)+1)
	for key, value := range params {
		clone[key] = value
	}
	return clone
}

// BuildQuery URL-encodes params sorted by key, omitting every entry
// whose value is empty. Returns "" when nothing remains.
func BuildQuery(params Params) string {
	values := url.Values{}
	for key, value := range params {
		if value == "" {
			continue
		}
		values.Set(key, value)
	}
	return values.Encode()
}
