// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package understory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Resource paths. Collection endpoints accept cursor and limit.
const (
	PathMe                  = "/v1/me"
	PathExperiences         = "/v1/experiences"
	PathEvents              = "/v1/events"
	PathEventAvailabilities = "/v1/event-availabilities"
	PathBookings            = "/v1/bookings"
	PathOrders              = "/v1/orders"
	PathMarketingConsents   = "/v1/marketing-consents"
)

// ExperienceLanguage is the Accept-Language sent with experience
// requests so that localized fields come back in English.
const ExperienceLanguage = "en-GB; q=1.0, en-US; q=0.8"

// ResourcePath joins a collection path, an escaped id, and optional
// sub-resource segments: ResourcePath(PathOrders, "o 1", "refunds")
// is "/v1/orders/o%201/refunds".
func ResourcePath(collection, id string, subresource ...string) string {
	path := collection + "/" + url.PathEscape(id)
	for _, segment := range subresource {
		path += "/" + segment
	}
	return path
}

// ExperienceHeader returns the headers sent with experience requests.
func ExperienceHeader() http.Header {
	header := http.Header{}
	header.Set("Accept-Language", ExperienceLanguage)
	return header
}

// Events iterates over events whose sessions fall in [from, to).
func (client *Client) Events(from, to string, pageSize int) *PageIterator[Event] {
	params := Params{"from": from, "to": to}
	params.SetInt("limit", pageSize)
	return List[Event](client, PathEvents, params)
}

// Bookings iterates over the complete booking history. The API has no
// date filter that matches event time, so callers correlate by event id.
func (client *Client) Bookings(pageSize int) *PageIterator[Booking] {
	params := Params{}
	params.SetInt("limit", pageSize)
	return List[Booking](client, PathBookings, params)
}

// Me returns the authenticated API client's own identity document.
func (client *Client) Me(ctx context.Context) (json.RawMessage, error) {
	return client.Get(ctx, PathMe, Request{})
}
