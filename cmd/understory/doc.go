// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

// Understory is the command-line client for the Understory ticketing
// API. It lists and fetches experiences, events, availability,
// bookings, orders, and marketing consents, and computes guest and
// booking statistics that the API does not aggregate itself.
//
// Results go to stdout as JSON (or a table or YAML with --format);
// errors go to stderr. The exit status is 0 on success, 2 when the API
// reports a server error, and 1 for every other failure.
package main
