// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command framework for the understory CLI.
//
// Commands form a tree of [Command] values. Each node either dispatches
// to a subcommand by name or runs its own handler. Flags are declared
// as tagged struct fields and bound with [FlagsFromParams]; the same
// struct drives the JSON Schema that the describe command publishes
// for agents.
//
// Unknown commands and flags get "did you mean" suggestions based on
// edit distance.
//
// [App] carries the state shared by every command: global flags, the
// lazily loaded configuration, the API client, and the [Output] sink
// that renders results as JSON, YAML, or a text table.
package cli
