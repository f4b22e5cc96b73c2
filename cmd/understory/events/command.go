// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

// Package events implements the "understory events" commands over the
// /v1/events collection.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/understory-cli/understory/cmd/understory/cli"
	"github.com/understory-cli/understory/lib/period"
	"github.com/understory-cli/understory/lib/understory"
)

// Command returns the "events" command group.
func Command(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "events",
		Summary: "List and get events (scheduled instances of experiences)",
		Description: `List and get events, the scheduled instances of experiences.

Events carry capacity (total and reserved seats) and one or more
sessions with start and end times.`,
		Subcommands: []*cli.Command{
			listCommand(app),
			getCommand(app),
			nextCommand(app),
		},
	}
}

type listParams struct {
	cli.DateParams
	cli.PageParams
}

func listCommand(app *cli.App) *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List events for the company",
		Description: `List events, optionally limited to a time range. Dates without
an offset are read as local time and sent to the API in UTC.`,
		Usage: "understory events list [flags]",
		Examples: []cli.Example{
			{
				Description: "Events on one day",
				Command:     "understory events list --from 2026-02-18T00:00:00 --to 2026-02-19T00:00:00",
			},
			{
				Description: "Every event in February, all pages",
				Command:     "understory events list -f 2026-02-01 -t 2026-03-01 --all",
			},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &understory.Page[json.RawMessage]{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if err := cli.ExpectArgs(args); err != nil {
				return err
			}
			query := understory.Params{}
			if err := params.DateParams.Apply(app.Resolver(), query); err != nil {
				return err
			}
			params.PageParams.Apply(query)
			return app.List(ctx, understory.PathEvents, understory.Request{Params: query}, params.All)
		},
	}
}

func getCommand(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:        "get",
		Summary:     "Get a single event by ID",
		Usage:       "understory events get <id>",
		Output:      func() any { return &json.RawMessage{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if err := cli.ExpectArgs(args, "<id>"); err != nil {
				return err
			}
			return app.Get(ctx, understory.ResourcePath(understory.PathEvents, args[0]), understory.Request{})
		},
	}
}

type nextParams struct {
	Limit int `json:"limit" flag:"limit,l" desc:"maximum events to return" default:"5"`
	Hours int `json:"hours" flag:"hours"   desc:"look-ahead window in hours" default:"24"`
}

// nextResult is the output of "events next".
type nextResult struct {
	Items []json.RawMessage `json:"items" desc:"upcoming events in API order"`
	period.Range
}

func nextCommand(app *cli.App) *cli.Command {
	var params nextParams

	return &cli.Command{
		Name:    "next",
		Summary: "Next upcoming events from now",
		Description: `Show the events starting between now and a look-ahead window.
Use for "when is our next event today?".`,
		Usage: "understory events next [flags]",
		Examples: []cli.Example{
			{
				Description: "Next three events in the coming 8 hours",
				Command:     "understory events next --limit 3 --hours 8",
			},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &nextResult{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if err := cli.ExpectArgs(args); err != nil {
				return err
			}
			if params.Hours <= 0 {
				return cli.Validation("--hours must be positive")
			}
			client, err := app.Client()
			if err != nil {
				return err
			}

			window := app.Resolver().Window(time.Duration(params.Hours) * time.Hour)
			query := understory.Params{"from": window.From, "to": window.To}
			query.SetInt("limit", params.Limit)

			var page understory.Page[json.RawMessage]
			if err := client.GetJSON(ctx, understory.PathEvents, understory.Request{Params: query}, &page); err != nil {
				return err
			}
			if page.Items == nil {
				page.Items = []json.RawMessage{}
			}
			return app.Write(nextResult{Items: page.Items, Range: window})
		},
	}
}
