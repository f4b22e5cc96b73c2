// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for packages that talk
// to the Understory API.
//
// [FakeAPI] is an HTTPS test server routed with chi. It implements the
// client-credentials token endpoint and lets a test register paged
// collections ([FakeAPI.ServePages]) and single documents
// ([FakeAPI.ServeJSON]). Every request is recorded so tests can assert
// on cursors, query parameters, and headers.
//
// [UniqueID] generates monotonically increasing identifiers.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
