// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package understory

import "encoding/json"

// Event is the subset of an event resource used for aggregation. Every
// field except ID may be absent in the API response.
type Event struct {
	ID       string    `json:"id"`
	Capacity *Capacity `json:"capacity,omitempty"`
	Sessions []Session `json:"sessions,omitempty"`
}

// Capacity holds seat counts. Absent counts read as zero through the
// Event accessors.
type Capacity struct {
	Total    *int `json:"total,omitempty"`
	Reserved *int `json:"reserved,omitempty"`
}

// Session is one scheduled occurrence of an event.
type Session struct {
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
}

// Reserved returns the booked seat count, 0 when absent.
func (event Event) Reserved() int {
	if event.Capacity == nil || event.Capacity.Reserved == nil {
		return 0
	}
	return *event.Capacity.Reserved
}

// Total returns the seat capacity, 0 when absent.
func (event Event) Total() int {
	if event.Capacity == nil || event.Capacity.Total == nil {
		return 0
	}
	return *event.Capacity.Total
}

// TotalOrNil returns the declared capacity, or nil when the API did not
// report one.
func (event Event) TotalOrNil() *int {
	if event.Capacity == nil {
		return nil
	}
	return event.Capacity.Total
}

// Available returns max(0, Total - Reserved).
func (event Event) Available() int {
	return max(0, event.Total()-event.Reserved())
}

// FirstStart returns the first session's start time, or nil when there
// are no sessions or the first has no start time.
func (event Event) FirstStart() *string {
	if len(event.Sessions) == 0 {
		return nil
	}
	return event.Sessions[0].StartTime
}

// BookingStatus is the lifecycle state of a booking as reported by the
// API. Only BookingCancelled has meaning to the CLI; every other value
// counts as active.
type BookingStatus string

// BookingCancelled marks a booking that no longer holds seats.
const BookingCancelled BookingStatus = "CANCELLED"

// Booking is the subset of a booking resource used for correlation.
// The full JSON object it was decoded from is kept and re-emitted by
// MarshalJSON, so output shows every field the API returned.
type Booking struct {
	ID      string
	EventID string
	Status  BookingStatus

	raw json.RawMessage
}

type bookingFields struct {
	ID      string        `json:"id"`
	EventID string        `json:"event_id"`
	Status  BookingStatus `json:"status"`
}

// Active reports whether the booking is not cancelled.
func (booking Booking) Active() bool {
	return booking.Status != BookingCancelled
}

// UnmarshalJSON decodes the correlated fields and keeps the raw object.
func (booking *Booking) UnmarshalJSON(data []byte) error {
	var fields bookingFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	booking.ID = fields.ID
	booking.EventID = fields.EventID
	booking.Status = fields.Status
	booking.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON emits the original object when the booking was decoded
// from the API, or the known fields otherwise.
func (booking Booking) MarshalJSON() ([]byte, error) {
	if booking.raw != nil {
		return booking.raw, nil
	}
	return json.Marshal(bookingFields{
		ID:      booking.ID,
		EventID: booking.EventID,
		Status:  booking.Status,
	})
}
