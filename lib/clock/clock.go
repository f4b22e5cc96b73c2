// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts the current time. Production code injects Real();
// tests inject Fake() and move time explicitly.
//
// Token expiry checks and relative date ranges ("today", "next-week")
// both read the time through a Clock so that the boundaries can be
// tested without waiting on the wall clock.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
