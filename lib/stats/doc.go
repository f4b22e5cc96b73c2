// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

// Package stats computes reporting figures that the Understory API
// has no endpoint for, by walking collections client-side.
//
// Every figure starts from the events in a [period.Range]. Guest and
// busiest-slot figures fold over the events alone. Booking figures
// also walk the entire booking history, because bookings cannot be
// filtered by date, and keep those whose event is in the range and
// whose status is not CANCELLED. Traversals are sequential and run to
// exhaustion; an error on any page discards the partial result.
package stats
