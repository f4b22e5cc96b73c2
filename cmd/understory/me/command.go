// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

// Package me implements "understory me", the connectivity check.
package me

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/understory-cli/understory/cmd/understory/cli"
)

// Command returns the "me" command.
func Command(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:    "me",
		Summary: "Verify authentication and show company info",
		Description: `Exchange the configured credentials for a token and show the
authenticated company. Use this to confirm API connectivity.`,
		Usage:       "understory me",
		Output:      func() any { return &json.RawMessage{} },
		Annotations: cli.ReadOnly(),
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if err := cli.ExpectArgs(args); err != nil {
				return err
			}
			client, err := app.Client()
			if err != nil {
				return err
			}
			identity, err := client.Me(ctx)
			if err != nil {
				return err
			}
			return app.Write(identity)
		},
	}
}
