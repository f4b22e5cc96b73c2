// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
)

var uniqueCounter atomic.Uint64

// UniqueID returns a string of the form "prefix-N" where N is a
// monotonically increasing integer. [FakeAPI] uses it to mint access
// tokens, so a test can tell a cached token from a refreshed one.
//
//	token := testutil.UniqueID("token") // "token-1", "token-2", ...
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, uniqueCounter.Add(1))
}
