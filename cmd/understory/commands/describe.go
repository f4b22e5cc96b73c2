// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"
	"strings"

	"github.com/understory-cli/understory/cmd/understory/cli"
)

// commandEntry describes one runnable command in the describe catalog.
type commandEntry struct {
	Command      string               `json:"command"                 desc:"full command path (e.g. understory stats guests)"`
	Summary      string               `json:"summary"                 desc:"one-line summary"`
	Description  string               `json:"description,omitempty"   desc:"detailed description"`
	Usage        string               `json:"usage,omitempty"         desc:"usage line with positional arguments"`
	Annotations  *cli.ToolAnnotations `json:"annotations,omitempty"   desc:"behavioral hints"`
	InputSchema  any                  `json:"input_schema"            desc:"JSON Schema for the command's flags"`
	OutputSchema any                  `json:"output_schema,omitempty" desc:"JSON Schema for the command's result"`
	Examples     []cli.Example        `json:"examples,omitempty"      desc:"usage examples"`
}

// describeResult is the output of "describe".
type describeResult struct {
	Commands []commandEntry `json:"commands"`
}

func describeCommand(app *cli.App, root *cli.Command) *cli.Command {
	return &cli.Command{
		Name:    "describe",
		Summary: "List every command with its flag and output schemas",
		Description: `Print a machine-readable catalog of every runnable command: its
path, summary, behavioral annotations, and JSON Schemas for its flags
and result. Agents use this to discover what the CLI can do.`,
		Usage:       "understory describe",
		Output:      func() any { return &describeResult{} },
		Annotations: cli.Local(),
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if err := cli.ExpectArgs(args); err != nil {
				return err
			}
			catalog := describeResult{Commands: []commandEntry{}}
			collectCommands(root, nil, logger, &catalog.Commands)
			return app.Write(catalog)
		},
	}
}

// collectCommands walks the command tree and appends an entry for every
// command below the root that has a Run function.
func collectCommands(command *cli.Command, path []string, logger *slog.Logger, entries *[]commandEntry) {
	current := make([]string, len(path)+1)
	copy(current, path)
	current[len(path)] = command.Name

	if command.Run != nil && len(path) > 0 {
		name := strings.Join(current, " ")
		entry := commandEntry{
			Command:     name,
			Summary:     command.Summary,
			Description: command.Description,
			Usage:       command.Usage,
			Annotations: command.Annotations,
			InputSchema: &cli.Schema{Type: "object"},
			Examples:    command.Examples,
		}
		if command.Params != nil {
			schema, err := cli.ParamsSchema(command.Params())
			if err != nil {
				logger.Warn("skipping input schema", "command", name, "error", err)
			} else {
				entry.InputSchema = schema
			}
		}
		if command.Output != nil {
			schema, err := cli.OutputSchema(command.Output())
			if err != nil {
				logger.Warn("skipping output schema", "command", name, "error", err)
			} else {
				entry.OutputSchema = schema
			}
		}
		*entries = append(*entries, entry)
	}

	for _, sub := range command.Subcommands {
		collectCommands(sub, current, logger, entries)
	}
}
