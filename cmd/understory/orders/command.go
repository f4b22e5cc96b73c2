// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

// Package orders implements the "understory orders" commands and the
// per-order line item, transaction, and refund lookups.
package orders

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/understory-cli/understory/cmd/understory/cli"
	"github.com/understory-cli/understory/lib/understory"
)

// Command returns the "orders" command group.
func Command(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "orders",
		Summary: "List and get orders (line items, transactions, refunds)",
		Subcommands: []*cli.Command{
			listCommand(app),
			getCommand(app),
			subresourceCommand(app, "line-items", "Get line items for an order"),
			subresourceCommand(app, "transactions", "Get transactions for an order"),
			subresourceCommand(app, "refunds", "Get refunds for an order"),
		},
	}
}

type listParams struct {
	cli.DateParams
	cli.PageParams
	Sort string `json:"sort" flag:"sort,s" desc:"sort order: +created_at, -created_at, +updated_at, -updated_at"`
}

func listCommand(app *cli.App) *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List orders",
		Usage:   "understory orders list [flags]",
		Examples: []cli.Example{
			{
				Description: "Orders placed in February, all pages",
				Command:     "understory orders list --from 2026-02-01 --to 2026-03-01 --all",
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
			return app.List(ctx, understory.PathOrders, understory.Request{Params: query}, params.All)
		},
	}
}

func getCommand(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:        "get",
		Summary:     "Get an order by ID",
		Usage:       "understory orders get <id>",
		Output:      func() any { return &json.RawMessage{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if err := cli.ExpectArgs(args, "<id>"); err != nil {
				return err
			}
			return app.Get(ctx, understory.ResourcePath(understory.PathOrders, args[0]), understory.Request{})
		},
	}
}

// subresourceCommand returns a command that fetches
// /v1/orders/{id}/<name>.
func subresourceCommand(app *cli.App, name, summary string) *cli.Command {
	return &cli.Command{
		Name:        name,
		Summary:     summary,
		Usage:       "understory orders " + name + " <id>",
		Output:      func() any { return &understory.Page[json.RawMessage]{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if err := cli.ExpectArgs(args, "<id>"); err != nil {
				return err
			}
			path := understory.ResourcePath(understory.PathOrders, args[0], name)
			return app.Get(ctx, path, understory.Request{})
		},
	}
}
