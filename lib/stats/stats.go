// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package stats

import (
	"context"
	"fmt"

	"github.com/understory-cli/understory/lib/period"
	"github.com/understory-cli/understory/lib/understory"
)

// DefaultPageSize is the limit sent with every page request.
const DefaultPageSize = 100

// Aggregator computes figures from the events and bookings collections.
type Aggregator struct {
	client   *understory.Client
	pageSize int
}

// New returns an Aggregator using client. A pageSize of zero or less
// uses DefaultPageSize.
func New(client *understory.Client, pageSize int) *Aggregator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Aggregator{client: client, pageSize: pageSize}
}

// GuestStats is the reserved seat total over the events in a range.
type GuestStats struct {
	GuestCount int `json:"guest_count"`
	EventCount int `json:"event_count"`
	period.Range
}

// BookingStats is the number of active bookings for events in a range.
type BookingStats struct {
	BookingCount int `json:"booking_count"`
	EventCount   int `json:"event_count"`
	period.Range
}

// BusiestSlot is the event with the most reserved seats.
type BusiestSlot struct {
	EventID       string  `json:"event_id"`
	StartTime     *string `json:"start_time"`
	GuestCount    int     `json:"guest_count"`
	CapacityTotal *int    `json:"capacity_total"`
}

// BusiestReport holds the busiest slot in a range. Busiest is nil only
// when the range has no events, in which case GuestCount is set to 0.
type BusiestReport struct {
	Busiest    *BusiestSlot `json:"busiest"`
	GuestCount *int         `json:"guest_count,omitempty"`
	period.Range
}

// Slot is the seat availability of one event.
type Slot struct {
	EventID   string  `json:"event_id"`
	StartTime *string `json:"start_time"`
	Available int     `json:"available"`
	Reserved  int     `json:"reserved"`
	Total     int     `json:"total"`
}

func (aggregator *Aggregator) events(window period.Range) *understory.PageIterator[understory.Event] {
	return aggregator.client.Events(window.From, window.To, aggregator.pageSize)
}

// Guests sums reserved seats over every event in window.
func (aggregator *Aggregator) Guests(ctx context.Context, window period.Range) (GuestStats, error) {
	result := GuestStats{Range: window}
	err := aggregator.events(window).ForEach(ctx, func(event understory.Event) error {
		result.EventCount++
		result.GuestCount += event.Reserved()
		return nil
	})
	if err != nil {
		return GuestStats{}, fmt.Errorf("counting guests: %w", err)
	}
	return result, nil
}

// EventIDs returns the set of event ids in window.
func (aggregator *Aggregator) EventIDs(ctx context.Context, window period.Range) (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	err := aggregator.events(window).ForEach(ctx, func(event understory.Event) error {
		ids[event.ID] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return ids, nil
}

// activeBookings calls fn for every active booking whose event is in ids.
func (aggregator *Aggregator) activeBookings(ctx context.Context, ids map[string]struct{}, fn func(understory.Booking)) error {
	err := aggregator.client.Bookings(aggregator.pageSize).ForEach(ctx, func(booking understory.Booking) error {
		if _, inRange := ids[booking.EventID]; inRange && booking.Active() {
			fn(booking)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("listing bookings: %w", err)
	}
	return nil
}

// Bookings counts active bookings for the events in window.
func (aggregator *Aggregator) Bookings(ctx context.Context, window period.Range) (BookingStats, error) {
	ids, err := aggregator.EventIDs(ctx, window)
	if err != nil {
		return BookingStats{}, err
	}

	result := BookingStats{EventCount: len(ids), Range: window}
	err = aggregator.activeBookings(ctx, ids, func(understory.Booking) {
		result.BookingCount++
	})
	if err != nil {
		return BookingStats{}, err
	}
	return result, nil
}

// ActiveBookings returns the active bookings for the events in window,
// in booking collection order.
func (aggregator *Aggregator) ActiveBookings(ctx context.Context, window period.Range) ([]understory.Booking, error) {
	ids, err := aggregator.EventIDs(ctx, window)
	if err != nil {
		return nil, err
	}

	bookings := []understory.Booking{}
	err = aggregator.activeBookings(ctx, ids, func(booking understory.Booking) {
		bookings = append(bookings, booking)
	})
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// Busiest finds the event in window with the most reserved seats. On a
// tie the first event seen wins.
func (aggregator *Aggregator) Busiest(ctx context.Context, window period.Range) (BusiestReport, error) {
	var busiest *understory.Event
	err := aggregator.events(window).ForEach(ctx, func(event understory.Event) error {
		if busiest == nil || event.Reserved() > busiest.Reserved() {
			busiest = &event
		}
		return nil
	})
	if err != nil {
		return BusiestReport{}, fmt.Errorf("finding busiest slot: %w", err)
	}

	if busiest == nil {
		zero := 0
		return BusiestReport{GuestCount: &zero, Range: window}, nil
	}
	return BusiestReport{
		Busiest: &BusiestSlot{
			EventID:       busiest.ID,
			StartTime:     busiest.FirstStart(),
			GuestCount:    busiest.Reserved(),
			CapacityTotal: busiest.TotalOrNil(),
		},
		Range: window,
	}, nil
}

// DaySlots lists the availability of every event in window. With
// availableOnly set, events without free seats are left out.
func (aggregator *Aggregator) DaySlots(ctx context.Context, window period.Range, availableOnly bool) ([]Slot, error) {
	slots := []Slot{}
	err := aggregator.events(window).ForEach(ctx, func(event understory.Event) error {
		available := event.Available()
		if availableOnly && available == 0 {
			return nil
		}
		slots = append(slots, Slot{
			EventID:   event.ID,
			StartTime: event.FirstStart(),
			Available: available,
			Reserved:  event.Reserved(),
			Total:     event.Total(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing slots: %w", err)
	}
	return slots, nil
}
