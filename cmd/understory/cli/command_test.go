// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func execute(command *Command, args ...string) error {
	return command.Execute(context.Background(), args, slog.New(slog.DiscardHandler))
}

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "understory",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(context.Context, []string, *slog.Logger) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "me",
				Run: func(context.Context, []string, *slog.Logger) error {
					called = "me"
					return nil
				},
			},
		},
	}

	if err := execute(root, "me"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "me" {
		t.Errorf("dispatched to %q, want %q", called, "me")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var receivedArgs []string

	root := &Command{
		Name: "understory",
		Subcommands: []*Command{
			{
				Name: "events",
				Subcommands: []*Command{
					{
						Name: "get",
						Run: func(_ context.Context, args []string, _ *slog.Logger) error {
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := execute(root, "events", "get", "e1"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "e1" {
		t.Errorf("args = %v, want [e1]", receivedArgs)
	}
}

func TestCommand_Execute_ParamsFlags(t *testing.T) {
	var params struct {
		PageParams
		Sort string `json:"sort" flag:"sort,s"`
	}
	var positional []string

	command := &Command{
		Name:   "list",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			positional = args
			return nil
		},
	}

	if err := execute(command, "extra", "-l", "7", "--sort", "+created_at", "--all"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if params.Limit != 7 || params.Sort != "+created_at" || !params.All {
		t.Errorf("params = %+v", params)
	}
	if len(positional) != 1 || positional[0] != "extra" {
		t.Errorf("positional = %v, want [extra]", positional)
	}
}

func TestCommand_Execute_DefaultsApplyWithoutFlags(t *testing.T) {
	var params PageParams
	command := &Command{
		Name:   "list",
		Params: func() any { return &params },
		Run:    func(context.Context, []string, *slog.Logger) error { return nil },
	}
	if err := execute(command); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if params.Limit != 100 {
		t.Errorf("Limit = %d, want default 100", params.Limit)
	}
}

func TestCommand_Execute_ParentFlagsStopAtSubcommand(t *testing.T) {
	var globals struct {
		Format string `json:"format" flag:"format,f"`
	}
	var local struct {
		From string `json:"from" flag:"from,f"`
	}
	var beforeCalled bool

	root := &Command{
		Name:   "understory",
		Params: func() any { return &globals },
		Before: func() error {
			beforeCalled = true
			return nil
		},
		Subcommands: []*Command{
			{
				Name:   "list",
				Params: func() any { return &local },
				Run:    func(context.Context, []string, *slog.Logger) error { return nil },
			},
		},
	}

	if err := execute(root, "-f", "table", "list", "-f", "2026-02-18"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if globals.Format != "table" || local.From != "2026-02-18" {
		t.Errorf("format = %q, from = %q", globals.Format, local.From)
	}
	if !beforeCalled {
		t.Error("Before was not called")
	}
}

func TestCommand_Execute_BeforeErrorStopsDispatch(t *testing.T) {
	ran := false
	root := &Command{
		Name:   "understory",
		Before: func() error { return Validation("bad globals") },
		Subcommands: []*Command{
			{
				Name: "me",
				Run: func(context.Context, []string, *slog.Logger) error {
					ran = true
					return nil
				},
			},
		},
	}
	if err := execute(root, "me"); err == nil || ran {
		t.Errorf("Execute() = %v, ran = %v; want the Before error and no run", err, ran)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "day",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("day", pflag.ContinueOnError)
			flagSet.Bool("available-only", false, "only open slots")
			flagSet.String("date", "", "day")
			return flagSet
		},
		Run: func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := execute(command, "--available-onyl")
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	message := err.Error()
	if !strings.Contains(message, "did you mean --available-only") {
		t.Errorf("error = %q, want suggestion for --available-only", message)
	}
	if !strings.Contains(message, "--help") {
		t.Errorf("error = %q, should point to --help", message)
	}
	if Categorize(err) != CategoryValidation {
		t.Errorf("category = %s, want validation", Categorize(err))
	}
}

func TestCommand_Execute_UnknownSubcommand(t *testing.T) {
	root := &Command{
		Name: "understory",
		Subcommands: []*Command{
			{Name: "bookings", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := execute(root, "bokings")
	if err == nil || !strings.Contains(err.Error(), `did you mean "bookings"`) {
		t.Errorf("error = %v, want suggestion for bookings", err)
	}

	err = execute(root, "zzzzzzzz")
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %v, want no suggestion", err)
	}
}

func TestCommand_Execute_HelpStopsExecution(t *testing.T) {
	ran := false
	command := &Command{
		Name:   "list",
		Params: func() any { return &PageParams{} },
		Run: func(context.Context, []string, *slog.Logger) error {
			ran = true
			return nil
		},
	}
	for _, args := range [][]string{{"--help"}, {"-l", "5", "--help"}} {
		if err := execute(command, args...); err != nil {
			t.Errorf("Execute(%v) = %v, want nil", args, err)
		}
	}
	if ran {
		t.Error("Run called despite --help")
	}
}

func TestCommand_Execute_PropagatesRunError(t *testing.T) {
	sentinel := errors.New("boom")
	command := &Command{
		Name: "me",
		Run:  func(context.Context, []string, *slog.Logger) error { return sentinel },
	}
	if err := execute(command); !errors.Is(err, sentinel) {
		t.Errorf("Execute() = %v, want %v", err, sentinel)
	}
}

func TestExpectArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		names   []string
		wantErr string
	}{
		{name: "exact", args: []string{"e1"}, names: []string{"<id>"}},
		{name: "none expected", args: nil, names: nil},
		{name: "missing", args: nil, names: []string{"<id>"}, wantErr: "missing argument <id>"},
		{name: "extra", args: []string{"e1", "e2"}, names: []string{"<id>"}, wantErr: `unexpected argument "e2"`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ExpectArgs(test.args, test.names...)
			if test.wantErr == "" {
				if err != nil {
					t.Errorf("ExpectArgs() = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Error() != test.wantErr {
				t.Errorf("ExpectArgs() = %v, want %q", err, test.wantErr)
			}
		})
	}
}
