// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for testability.
//
// Production code accepts a Clock instead of calling time.Now directly.
// In production, Real() provides the standard library behavior. In
// tests, Fake() provides a clock that moves only when told to:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	source := understory.NewTokenSource(understory.TokenConfig{Clock: c, ...})
//	source.Token(ctx)                 // exchanges credentials
//	c.Advance(55 * time.Minute)       // still inside the refresh buffer?
//	source.Token(ctx)
package clock
