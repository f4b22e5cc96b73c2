// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

// Package period turns human date shorthand into the UTC bounds the
// Understory API filters on.
//
// A [Resolver] reads "now" from an injected [clock.Clock] and computes
// calendar boundaries (midnight, Monday, first of month) in a fixed
// location, normally [time.Local]. Every bound it returns is rendered
// as a UTC timestamp truncated to whole seconds with a literal Z, the
// only datetime form the API accepts:
//
//	2026-02-20T23:00:00Z
//
// Ranges are half-open: From is inclusive and To is exclusive.
//
// Recognized period names are today, tomorrow, this-week, next-week,
// this-month and last-month, matched case-insensitively. Weeks start
// on Monday.
package period
