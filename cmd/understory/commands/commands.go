// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete understory command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	availabilitycmd "github.com/understory-cli/understory/cmd/understory/availability"
	bookingscmd "github.com/understory-cli/understory/cmd/understory/bookings"
	"github.com/understory-cli/understory/cmd/understory/cli"
	eventscmd "github.com/understory-cli/understory/cmd/understory/events"
	experiencescmd "github.com/understory-cli/understory/cmd/understory/experiences"
	marketingcmd "github.com/understory-cli/understory/cmd/understory/marketing"
	mecmd "github.com/understory-cli/understory/cmd/understory/me"
	orderscmd "github.com/understory-cli/understory/cmd/understory/orders"
	statscmd "github.com/understory-cli/understory/cmd/understory/stats"
	"github.com/understory-cli/understory/lib/version"
)

// Root builds the command tree over app. The describe command walks
// the finished tree, so it is appended after construction.
func Root(app *cli.App) *cli.Command {
	root := &cli.Command{
		Name: "understory",
		Description: `understory: command-line access to the Understory ticketing API.

Query experiences, events, availability, bookings, orders, and
marketing consents, and compute guest and booking statistics. Output
is JSON by default for agents; use -f table for humans.

Credentials are read from UNDERSTORY_CLIENT_ID and UNDERSTORY_SECRET_KEY
in the environment or a .env file.`,
		Usage:  "understory [global flags] <command> [flags]",
		Params: func() any { return &app.Globals },
		Before: app.ApplyGlobals,
		Subcommands: []*cli.Command{
			mecmd.Command(app),
			experiencescmd.Command(app),
			eventscmd.Command(app),
			availabilitycmd.Command(app),
			bookingscmd.Command(app),
			orderscmd.Command(app),
			marketingcmd.Command(app),
			statscmd.Command(app),
			versionCommand(app),
		},
		Examples: []cli.Example{
			{
				Description: "Check credentials and connectivity",
				Command:     "understory me",
			},
			{
				Description: "Guests booked this week",
				Command:     "understory stats guests --period this-week",
			},
			{
				Description: "Open slots for walk-ins today, as a table",
				Command:     "understory -f table availability day --available-only",
			},
			{
				Description: "Every booking for tomorrow's events",
				Command:     "understory bookings for-date 2026-02-19",
			},
		},
	}

	root.Subcommands = append(root.Subcommands, describeCommand(app, root))
	return root
}

// versionInfo is the structured output of "version".
type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	UserAgent string `json:"user_agent"`
}

func versionCommand(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Description: `Print the build version. With an explicit --format the version
is written as a structured object.`,
		Output:      func() any { return &versionInfo{} },
		Annotations: cli.Local(),
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if err := cli.ExpectArgs(args); err != nil {
				return err
			}
			if app.Format == "" {
				_, err := fmt.Fprintf(app.Stdout, "understory %s\n", version.Full())
				return err
			}
			return app.Write(versionInfo{
				Version:   version.Short(),
				Commit:    version.GitCommit,
				BuildTime: version.BuildTime,
				UserAgent: version.UserAgent(),
			})
		},
	}
}
