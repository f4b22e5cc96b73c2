// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package understory

import (
	"context"
	"net/http"
)

// Page is one response from a collection endpoint.
type Page[T any] struct {
	Items []T `json:"items"`

	// Next is the opaque cursor for the following page. Empty on the
	// last page.
	Next string `json:"next,omitempty"`
}

// PageIterator fetches the pages of a collection endpoint one at a
// time. The first request carries no cursor; each later request sends
// the previous page's next value verbatim as the cursor parameter. The
// iterator is done exactly when a page arrives without next, however
// many items that page held.
//
// The iterator is not safe for concurrent use.
type PageIterator[T any] struct {
	client *Client
	path   string
	params Params
	header http.Header
	cursor string
	done   bool
}

// List creates a PageIterator over the collection at path. params are
// sent with every page; any cursor entry in params is replaced as the
// traversal advances.
func List[T any](client *Client, path string, params Params) *PageIterator[T] {
	return &PageIterator[T]{
		client: client,
		path:   path,
		params: params.Clone(),
		cursor: params["cursor"],
	}
}

// WithHeader sets extra headers sent with every page request.
func (iterator *PageIterator[T]) WithHeader(header http.Header) *PageIterator[T] {
	iterator.header = header
	return iterator
}

// Next fetches the next page and returns its items, which may be empty
// even when more pages follow. Returns nil, nil once Done reports true.
func (iterator *PageIterator[T]) Next(ctx context.Context) ([]T, error) {
	if iterator.done {
		return nil, nil
	}

	params := iterator.params.Clone()
	params["cursor"] = iterator.cursor

	var page Page[T]
	if err := iterator.client.GetJSON(ctx, iterator.path, Request{Params: params, Header: iterator.header}, &page); err != nil {
		return nil, err
	}

	iterator.cursor = page.Next
	iterator.done = page.Next == ""
	return page.Items, nil
}

// Done reports whether the last fetched page had no next cursor.
func (iterator *PageIterator[T]) Done() bool {
	return iterator.done
}

// Collect fetches all remaining pages and returns their items in order.
// On error the items gathered so far are discarded.
func (iterator *PageIterator[T]) Collect(ctx context.Context) ([]T, error) {
	all := []T{}
	for !iterator.done {
		items, err := iterator.Next(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
	}
	return all, nil
}

// ForEach calls fn for every item of every remaining page, in order.
// A page is fully consumed before the next one is requested. The first
// error from the API or from fn stops the traversal.
func (iterator *PageIterator[T]) ForEach(ctx context.Context, fn func(T) error) error {
	for !iterator.done {
		items, err := iterator.Next(ctx)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := fn(item); err != nil {
				return err
			}
		}
	}
	return nil
}
