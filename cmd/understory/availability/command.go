// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

// Package availability implements the "understory availability"
// commands: per-event availability from /v1/event-availabilities and a
// day view of open capacity computed from /v1/events.
package availability

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/understory-cli/understory/cmd/understory/cli"
	"github.com/understory-cli/understory/lib/period"
	"github.com/understory-cli/understory/lib/stats"
	"github.com/understory-cli/understory/lib/understory"
)

// Command returns the "availability" command group.
func Command(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "availability",
		Summary: "Query event availability (seats, resources, constraints)",
		Subcommands: []*cli.Command{
			eventCommand(app),
			dayCommand(app),
			listCommand(app),
		},
	}
}

func eventCommand(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:        "event",
		Summary:     "Get availability for a single event",
		Usage:       "understory availability event <event-id>",
		Output:      func() any { return &json.RawMessage{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if err := cli.ExpectArgs(args, "<event-id>"); err != nil {
				return err
			}
			path := understory.ResourcePath(understory.PathEventAvailabilities, args[0])
			return app.Get(ctx, path, understory.Request{})
		},
	}
}

type dayParams struct {
	Date          string `json:"date"           flag:"date,d"         desc:"day to show as YYYY-MM-DD (default today)"`
	Period        string `json:"period"         flag:"period,p"       desc:"tomorrow or next-week; overrides --date"`
	AvailableOnly bool   `json:"available_only" flag:"available-only" desc:"only show events with open capacity"`
}

// dayResult is the output of "availability day". Date is the requested
// day, or "next-week" for the week view.
type dayResult struct {
	Date  string       `json:"date"`
	Slots []stats.Slot `json:"slots"`
}

func dayCommand(app *cli.App) *cli.Command {
	var params dayParams

	return &cli.Command{
		Name:    "day",
		Summary: "Events for a day (or week) with available capacity",
		Description: `List every event on a day with its reserved, total, and
available seats. Use for "do we have space for walk-ins?" or "which
slots are open next week?".`,
		Usage: "understory availability day [flags]",
		Examples: []cli.Example{
			{
				Description: "Open slots today",
				Command:     "understory availability day --available-only",
			},
			{
				Description: "Everything scheduled next week",
				Command:     "understory -f table availability day --period next-week",
			},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &dayResult{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if err := cli.ExpectArgs(args); err != nil {
				return err
			}

			resolver := app.Resolver()
			var (
				window period.Range
				label  string
				err    error
			)
			switch params.Period {
			case "next-week":
				label = "next-week"
				window, err = resolver.Period("next-week")
			case "tomorrow":
				label = resolver.LocalDate(1)
				window, err = resolver.Day(label)
			case "":
				label = params.Date
				if label == "" {
					label = resolver.LocalDate(0)
				}
				window, err = resolver.Day(label)
			default:
				return cli.Validation("unknown --period %q: use tomorrow or next-week", params.Period)
			}
			if err != nil {
				return err
			}

			aggregator, err := app.Aggregator()
			if err != nil {
				return err
			}
			slots, err := aggregator.DaySlots(ctx, window, params.AvailableOnly)
			if err != nil {
				return err
			}
			return app.Write(dayResult{Date: label, Slots: slots})
		},
	}
}

type listParams struct {
	ExperienceID string `json:"experience_id" flag:"experience-id,e" desc:"experience whose events to query (required)"`
	cli.DateParams
	Cursor string `json:"cursor" flag:"cursor,c" desc:"pagination cursor: the next value of a previous page"`
	Limit  int    `json:"limit"  flag:"limit,l"  desc:"maximum items per page" default:"50"`
}

func listCommand(app *cli.App) *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List availability for the events of an experience",
		Usage:   "understory availability list --experience-id <id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Availability for one experience this morning",
				Command:     "understory availability list -e exp_123 --from 2026-02-18T08:00:00 --to 2026-02-18T12:00:00",
			},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &understory.Page[json.RawMessage]{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if err := cli.ExpectArgs(args); err != nil {
				return err
			}
			if params.ExperienceID == "" {
				return cli.Validation("--experience-id is required")
			}
			query := understory.Params{
				"experienceId": params.ExperienceID,
				"cursor":       params.Cursor,
			}
			query.SetInt("limit", params.Limit)
			if err := params.DateParams.Apply(app.Resolver(), query); err != nil {
				return err
			}
			return app.Get(ctx, understory.PathEventAvailabilities, understory.Request{Params: query})
		},
	}
}
