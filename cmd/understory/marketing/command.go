// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

// Package marketing implements "understory marketing", which reads the
// marketing consents collected through Understory checkouts.
package marketing

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/understory-cli/understory/cmd/understory/cli"
	"github.com/understory-cli/understory/lib/understory"
)

// Command returns the "marketing" command group.
func Command(app *cli.App) *cli.Command {
	var params cli.PageParams

	return &cli.Command{
		Name:    "marketing",
		Summary: "Marketing consents (Understory Grow)",
		Subcommands: []*cli.Command{
			{
				Name:        "list",
				Summary:     "List marketing consents collected through checkouts",
				Usage:       "understory marketing list [flags]",
				Params:      func() any { return &params },
				Output:      func() any { return &understory.Page[json.RawMessage]{} },
				Annotations: cli.ReadOnly(),
				Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
					if err := cli.ExpectArgs(args); err != nil {
						return err
					}
					query := understory.Params{}
					params.Apply(query)
					return app.List(ctx, understory.PathMarketingConsents, understory.Request{Params: query}, params.All)
				},
			},
		},
	}
}
