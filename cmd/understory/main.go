// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/understory-cli/understory/cmd/understory/cli"
	"github.com/understory-cli/understory/cmd/understory/commands"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := run(app, os.Args[1:]); err != nil {
		// Commands that print their own output return an ExitError
		// with the desired exit code.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		app.Output().WriteError(err)
		os.Exit(cli.ExitCodeFor(err))
	}
}

func run(app *cli.App, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return commands.Root(app).Execute(ctx, args, app.Logger())
}
