// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/understory-cli/understory/lib/period"
	"github.com/understory-cli/understory/lib/understory"
)

// PageParams are the paging flags shared by list commands.
type PageParams struct {
	Cursor string `json:"cursor" flag:"cursor,c" desc:"pagination cursor: the next value of a previous page"`
	Limit  int    `json:"limit"  flag:"limit,l"  desc:"maximum items per page" default:"100"`
	All    bool   `json:"all"    flag:"all"      desc:"follow next cursors and return every item"`
}

// Apply adds the cursor and limit to params.
func (page PageParams) Apply(params understory.Params) {
	params["cursor"] = page.Cursor
	params.SetInt("limit", page.Limit)
}

// DateParams filter a collection by time. Values may carry any ISO 8601
// offset and are sent to the API in UTC.
type DateParams struct {
	From string `json:"from" flag:"from,f" desc:"start of range (ISO 8601, e.g. 2026-02-18T09:00:00)"`
	To   string `json:"to"   flag:"to,t"   desc:"end of range, exclusive (ISO 8601)"`
}

// Apply normalizes the dates with resolver and adds the ones that are
// set to params.
func (dates DateParams) Apply(resolver *period.Resolver, params understory.Params) error {
	bounds := []struct{ key, value string }{{"from", dates.From}, {"to", dates.To}}
	for _, bound := range bounds {
		if bound.value == "" {
			continue
		}
		normalized, err := resolver.NormalizeDatetime(bound.value)
		if err != nil {
			return &ToolError{Category: CategoryValidation, Err: err}
		}
		params[bound.key] = normalized
	}
	return nil
}
