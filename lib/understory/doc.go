// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

// Package understory is a read-only client for the Understory
// ticketing REST API.
//
// [TokenSource] performs the OAuth2 client-credentials exchange and
// caches the access token in memory, refreshing it [RefreshBuffer]
// before the server-declared expiry. The cache lives as long as the
// TokenSource value; nothing is persisted.
//
// [Client] issues authenticated GET requests. Query parameters are
// built by [BuildQuery], which drops empty values so callers can pass
// every flag through unconditionally. Non-2xx responses become
// [*APIError] values carrying the status and the decoded body.
//
// Collection endpoints return {"items": [...], "next": "<cursor>"}.
// [PageIterator] walks them strictly in order, echoing each cursor
// verbatim, and stops exactly when a page has no next cursor. Nothing
// is retried: the first failure ends the traversal and discards the
// items gathered so far.
//
// Resource types ([Event], [Booking]) model only the fields the CLI
// computes with. Absent numeric fields read as zero through accessor
// methods.
package understory
