// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command represents a CLI command or subcommand.
type Command struct {
	// Name is the command name as typed by the user (e.g., "events", "list").
	Name string

	// Summary is a one-line description shown in the parent's help listing.
	Summary string

	// Description is a detailed multi-line description shown in the command's
	// own help output.
	Description string

	// Usage is the usage string (e.g., "understory events get <id>").
	// If empty, it is synthesized from the command path and subcommands.
	Usage string

	// Examples are shown in the help output after the description.
	Examples []Example

	// Flags returns a configured *pflag.FlagSet for this command. When
	// nil and Params is set, flags are derived from the params struct.
	Flags func() *pflag.FlagSet

	// Params returns a pointer to the command's tagged parameter
	// struct. Used for flag binding and for the describe catalog.
	Params func() any

	// Output returns a pointer to a zero value of the command's result
	// type, for the describe catalog.
	Output func() any

	// Annotations describe the command's behavior to agents.
	Annotations *ToolAnnotations

	// Subcommands are nested commands dispatched by the first positional arg.
	Subcommands []*Command

	// Before runs after this command's own flags are parsed and before
	// a subcommand is dispatched. The root command uses it to apply
	// global flags.
	Before func() error

	// Run executes the command with the remaining args (after flag parsing).
	// Exactly one of Run or Subcommands should be set. If both are set,
	// Run is used when no subcommand matches.
	Run func(ctx context.Context, args []string, logger *slog.Logger) error

	// parent is set during dispatch to build the full command path for help.
	parent *Command
}

// Example is a usage example shown in help output.
type Example struct {
	// Description explains what the example does.
	Description string `json:"description"`
	// Command is the literal command line.
	Command string `json:"command"`
}

// flagSet returns a fresh flag set for the command, or nil when it
// takes no flags.
func (c *Command) flagSet() *pflag.FlagSet {
	if c.Flags != nil {
		return c.Flags()
	}
	if c.Params != nil {
		return FlagsFromParams(c.Name, c.Params())
	}
	return nil
}

// Execute parses args and dispatches to the appropriate subcommand or Run
// function. This is the main entry point for the command tree.
func (c *Command) Execute(ctx context.Context, args []string, logger *slog.Logger) error {
	// Check for help flags before anything else.
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(os.Stderr)
		return nil
	}

	if len(c.Subcommands) > 0 {
		// Flags on a dispatching command must precede the subcommand
		// name; everything after it belongs to the subcommand.
		remaining, err := c.parseFlags(args, false)
		if errors.Is(err, errHelpShown) {
			return nil
		}
		if err != nil {
			return err
		}
		if c.Before != nil {
			if err := c.Before(); err != nil {
				return err
			}
		}
		args = remaining

		if len(args) > 0 && isHelpFlag(args[0]) {
			c.PrintHelp(os.Stderr)
			return nil
		}

		if len(args) > 0 {
			name := args[0]
			for _, sub := range c.Subcommands {
				if sub.Name == name {
					sub.parent = c
					return sub.Execute(ctx, args[1:], logger)
				}
			}
			if c.Run == nil {
				// Unknown subcommand: suggest the closest match.
				suggestion := suggestCommand(name, c.Subcommands)
				if suggestion != "" {
					return Validation("unknown command %q (did you mean %q?)\n\nRun '%s --help' for usage.",
						name, suggestion, c.fullName())
				}
				return Validation("unknown command %q\n\nRun '%s --help' for usage.",
					name, c.fullName())
			}
		}

		if c.Run == nil {
			c.PrintHelp(os.Stderr)
			return Validation("subcommand required")
		}
		return c.Run(ctx, args, logger)
	}

	args, err := c.parseFlags(args, true)
	if errors.Is(err, errHelpShown) {
		return nil
	}
	if err != nil {
		return err
	}

	if c.Run != nil {
		return c.Run(ctx, args, logger)
	}

	// No Run and no subcommands: show help.
	c.PrintHelp(os.Stderr)
	return fmt.Errorf("no action defined for %q", c.fullName())
}

// errHelpShown stops execution after --help appeared among the flags.
var errHelpShown = errors.New("help shown")

// parseFlags parses the command's flags from args and returns the
// positional arguments. With interspersed false, parsing stops at the
// first positional argument.
func (c *Command) parseFlags(args []string, interspersed bool) ([]string, error) {
	flagSet := c.flagSet()
	if flagSet == nil {
		return args, nil
	}

	// Suppress pflag's default error output and usage dump. We format
	// our own error messages with suggestions.
	flagSet.SetOutput(io.Discard)
	flagSet.SetInterspersed(interspersed)

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			c.PrintHelp(os.Stderr)
			return nil, errHelpShown
		}
		errMsg := err.Error()
		if strings.Contains(errMsg, "unknown flag") || strings.Contains(errMsg, "unknown shorthand flag") {
			// Use a fresh flag set for the lookup; the failed parse
			// may have consumed state.
			if suggestion := suggestFlag(args, c.flagSet()); suggestion != "" {
				return nil, Validation("%s (did you mean %s?)\n\nRun '%s --help' for usage.",
					errMsg, suggestion, c.fullName())
			}
		}
		return nil, Validation("%s\n\nRun '%s --help' for usage.", errMsg, c.fullName())
	}
	return flagSet.Args(), nil
}

// PrintHelp writes structured help output to w.
func (c *Command) PrintHelp(w io.Writer) {
	name := c.fullName()

	// Description or summary.
	if c.Description != "" {
		fmt.Fprintf(w, "%s\n\n", c.Description)
	} else if c.Summary != "" {
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}

	// Usage line.
	if c.Usage != "" {
		fmt.Fprintf(w, "Usage:\n  %s\n", c.Usage)
	} else if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "Usage:\n  %s [flags] <command>\n", name)
	} else {
		fmt.Fprintf(w, "Usage:\n  %s [flags]\n", name)
	}

	// Subcommands.
	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		tw.Flush()
	}

	// Flags.
	if flagSet := c.flagSet(); flagSet != nil {
		if usage := flagSet.FlagUsages(); usage != "" {
			fmt.Fprintf(w, "\nFlags:\n%s", usage)
		}
	}

	// Examples.
	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for _, example := range c.Examples {
			if example.Description != "" {
				fmt.Fprintf(w, "  # %s\n", example.Description)
			}
			fmt.Fprintf(w, "  %s\n", example.Command)
			if example.Description != "" {
				fmt.Fprintln(w)
			}
		}
	}

	// Footer: help hint for subcommands.
	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
}

// fullName returns the complete command path (e.g., "understory events list").
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

// isHelpFlag returns true for common help flag variants.
func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}

// ExpectArgs checks that args holds exactly one value per name. names
// are the placeholders shown in the error (e.g., "<id>").
func ExpectArgs(args []string, names ...string) error {
	if len(args) == len(names) {
		return nil
	}
	if len(args) < len(names) {
		return Validation("missing argument %s", strings.Join(names[len(args):], " "))
	}
	return Validation("unexpected argument %q", args[len(names)])
}
