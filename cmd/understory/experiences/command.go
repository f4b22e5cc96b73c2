// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

// Package experiences implements the "understory experiences" commands.
// Experiences are requested with an English Accept-Language so that
// localized names and descriptions come back in English.
package experiences

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/understory-cli/understory/cmd/understory/cli"
	"github.com/understory-cli/understory/lib/understory"
)

// Command returns the "experiences" command group.
func Command(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "experiences",
		Summary: "List and get experiences (ticketable products)",
		Subcommands: []*cli.Command{
			listCommand(app),
			getCommand(app),
		},
	}
}

type listParams struct {
	cli.PageParams
}

func listCommand(app *cli.App) *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List experiences for the company",
		Usage:   "understory experiences list [flags]",
		Examples: []cli.Example{
			{
				Description: "First 20 experiences as a table",
				Command:     "understory -f table experiences list --limit 20",
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
			params.PageParams.Apply(query)
			request := understory.Request{Params: query, Header: understory.ExperienceHeader()}
			return app.List(ctx, understory.PathExperiences, request, params.All)
		},
	}
}

func getCommand(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:        "get",
		Summary:     "Get a single experience by ID",
		Usage:       "understory experiences get <id>",
		Output:      func() any { return &json.RawMessage{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if err := cli.ExpectArgs(args, "<id>"); err != nil {
				return err
			}
			path := understory.ResourcePath(understory.PathExperiences, args[0])
			return app.Get(ctx, path, understory.Request{Header: understory.ExperienceHeader()})
		},
	}
}
