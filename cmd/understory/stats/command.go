// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

// Package stats implements "understory stats": guest counts, booking
// counts, and the busiest slot over a date range, computed client-side
// by correlating events with bookings.
package stats

import (
	"context"
	"log/slog"
	"strings"

	"github.com/understory-cli/understory/cmd/understory/cli"
	"github.com/understory-cli/understory/lib/period"
	"github.com/understory-cli/understory/lib/stats"
)

// Command returns the "stats" command group.
func Command(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "stats",
		Summary: "Aggregated statistics (guests, bookings, busiest slot)",
		Description: `Compute totals over a date range. The range is chosen by, in order
of precedence: --month, --period, or both --from and --to.

Periods: ` + strings.Join(period.Names, ", ") + ".",
		Subcommands: []*cli.Command{
			guestsCommand(app),
			bookingsCommand(app),
			busiestCommand(app),
		},
	}
}

// rangeParams select the range a statistic covers.
type rangeParams struct {
	From   string `json:"from"   flag:"from,f"   desc:"start of range (ISO 8601); requires --to"`
	To     string `json:"to"     flag:"to,t"     desc:"end of range, exclusive (ISO 8601); requires --from"`
	Period string `json:"period" flag:"period,p" desc:"today, tomorrow, this-week, next-week, this-month, or last-month"`
	Month  string `json:"month"  flag:"month,m"  desc:"calendar month as YYYY-MM"`
}

func (params rangeParams) resolve(app *cli.App, defaultPeriod string) (period.Range, error) {
	return app.Resolver().Resolve(period.Selection{
		Month:         params.Month,
		Period:        params.Period,
		From:          params.From,
		To:            params.To,
		DefaultPeriod: defaultPeriod,
	})
}

func guestsCommand(app *cli.App) *cli.Command {
	var params rangeParams

	return &cli.Command{
		Name:    "guests",
		Summary: "Total guests (reserved seats) across events in a range",
		Usage:   "understory stats guests [--period <name> | --month <YYYY-MM> | --from <t> --to <t>]",
		Examples: []cli.Example{
			{
				Description: "Guests this week",
				Command:     "understory stats guests --period this-week",
			},
			{
				Description: "Guests in January",
				Command:     "understory stats guests --month 2026-01",
			},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &stats.GuestStats{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args); err != nil {
				return err
			}
			window, err := params.resolve(app, "")
			if err != nil {
				return err
			}
			aggregator, err := app.Aggregator()
			if err != nil {
				return err
			}
			logger.Debug("counting guests", "from", window.From, "to", window.To)
			result, err := aggregator.Guests(ctx, window)
			if err != nil {
				return err
			}
			return app.Write(result)
		},
	}
}

func bookingsCommand(app *cli.App) *cli.Command {
	var params rangeParams

	return &cli.Command{
		Name:    "bookings",
		Summary: "Non-cancelled bookings for events in a range",
		Description: `Count the non-cancelled bookings whose event falls in the range.
Bookings cannot be filtered by event date, so every booking is paged.`,
		Usage: "understory stats bookings [--period <name> | --month <YYYY-MM> | --from <t> --to <t>]",
		Examples: []cli.Example{
			{
				Description: "Bookings for this month's events",
				Command:     "understory stats bookings --period this-month",
			},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &stats.BookingStats{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args); err != nil {
				return err
			}
			window, err := params.resolve(app, "")
			if err != nil {
				return err
			}
			aggregator, err := app.Aggregator()
			if err != nil {
				return err
			}
			logger.Debug("counting bookings", "from", window.From, "to", window.To)
			result, err := aggregator.Bookings(ctx, window)
			if err != nil {
				return err
			}
			return app.Write(result)
		},
	}
}

func busiestCommand(app *cli.App) *cli.Command {
	var params rangeParams

	return &cli.Command{
		Name:    "busiest",
		Summary: "Event with the most guests in a range (default today)",
		Usage:   "understory stats busiest [--period <name> | --month <YYYY-MM> | --from <t> --to <t>]",
		Examples: []cli.Example{
			{
				Description: "Busiest slot today",
				Command:     "understory stats busiest",
			},
		},
		Params:      func() any { return &params },
		Output:      func() any { return &stats.BusiestReport{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if err := cli.ExpectArgs(args); err != nil {
				return err
			}
			window, err := params.resolve(app, "today")
			if err != nil {
				return err
			}
			aggregator, err := app.Aggregator()
			if err != nil {
				return err
			}
			result, err := aggregator.Busiest(ctx, window)
			if err != nil {
				return err
			}
			return app.Write(result)
		},
	}
}
