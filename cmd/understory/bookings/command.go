// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

// Package bookings implements the "understory bookings" commands.
package bookings

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/understory-cli/understory/cmd/understory/cli"
	"github.com/understory-cli/understory/lib/understory"
)

// Command returns the "bookings" command group.
func Command(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "bookings",
		Summary: "List and get bookings",
		Subcommands: []*cli.Command{
			listCommand(app),
			getCommand(app),
			ticketsCommand(app),
			forDateCommand(app),
		},
	}
}

type listParams struct {
	cli.DateParams
	cli.PageParams
	Sort string `json:"sort" flag:"sort,s" desc:"sort order: +created_at, -created_at, +updated_at, -updated_at (API default -created_at)"`
}

func listCommand(app *cli.App) *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List bookings",
		Description: `List bookings. --from and --to filter on when the booking was
made, not on when its event takes place; use "bookings for-date" for
the bookings of a day's events.`,
		Usage: "understory bookings list [flags]",
		Examples: []cli.Example{
			{
				Description: "Oldest bookings first",
				Command:     "understory bookings list --sort +created_at --limit 20",
			},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &understory.Page[json.RawMessage]{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if err := cli.ExpectArgs(args); err != nil {
				return err
			}
			query := understory.Params{"sort": params.Sort}
			if err := params.DateParams.Apply(app.Resolver(), query); err != nil {
				return err
			}
			params.PageParams.Apply(query)
			return app.List(ctx, understory.PathBookings, understory.Request{Params: query}, params.All)
		},
	}
}

func getCommand(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:        "get",
		Summary:     "Get a booking by ID",
		Usage:       "understory bookings get <id>",
		Output:      func() any { return &json.RawMessage{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if err := cli.ExpectArgs(args, "<id>"); err != nil {
				return err
			}
			return app.Get(ctx, understory.ResourcePath(understory.PathBookings, args[0]), understory.Request{})
		},
	}
}

func ticketsCommand(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:        "tickets",
		Summary:     "Get all tickets for a booking",
		Usage:       "understory bookings tickets <id>",
		Output:      func() any { return &understory.Page[json.RawMessage]{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if err := cli.ExpectArgs(args, "<id>"); err != nil {
				return err
			}
			path := understory.ResourcePath(understory.PathBookings, args[0], "tickets")
			return app.Get(ctx, path, understory.Request{})
		},
	}
}

// forDateResult is the output of "bookings for-date".
type forDateResult struct {
	Items []understory.Booking `json:"items" desc:"non-cancelled bookings for the day's events"`
	Date  string               `json:"date"`
}

func forDateCommand(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "for-date",
		Summary: "Bookings for the events on one day, excluding cancelled",
		Description: `List the non-cancelled bookings whose event takes place on the
given local day. Every booking is paged to find them, so this is slow
on accounts with a long booking history.`,
		Usage: "understory bookings for-date <YYYY-MM-DD>",
		Examples: []cli.Example{
			{
				Description: "Guest list for 18 February",
				Command:     "understory bookings for-date 2026-02-18",
			},
		},
		Output:      func() any { return &forDateResult{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if err := cli.ExpectArgs(args, "<YYYY-MM-DD>"); err != nil {
				return err
			}
			window, err := app.Resolver().Day(args[0])
			if err != nil {
				return err
			}
			aggregator, err := app.Aggregator()
			if err != nil {
				return err
			}
			items, err := aggregator.ActiveBookings(ctx, window)
			if err != nil {
				return err
			}
			return app.Write(forDateResult{Items: items, Date: args[0]})
		},
	}
}
