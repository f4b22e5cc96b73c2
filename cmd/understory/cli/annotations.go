// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package cli

// ToolAnnotations describes behavioral properties of a CLI command
// for agents that drive the CLI as a tool. They are published by the
// describe command.
//
// All fields are pointers. A nil field means "unspecified"; agents
// should then assume the worst (not read-only, destructive, not
// idempotent, open-world).
type ToolAnnotations struct {
	// ReadOnly is true when the command only reads state and never
	// modifies it.
	ReadOnly *bool `json:"read_only,omitempty"`

	// Destructive is true when the command may irreversibly remove
	// or damage data.
	Destructive *bool `json:"destructive,omitempty"`

	// Idempotent is true when repeated calls with identical arguments
	// produce the same result.
	Idempotent *bool `json:"idempotent,omitempty"`

	// OpenWorld is true when the command talks to the Understory API
	// rather than only inspecting the CLI itself.
	OpenWorld *bool `json:"open_world,omitempty"`
}

// ReadOnly returns annotations for commands that query the Understory
// API without modifying anything: list, get, stats, and so on.
func ReadOnly() *ToolAnnotations {
	return &ToolAnnotations{
		ReadOnly:    boolPtr(true),
		Destructive: boolPtr(false),
		Idempotent:  boolPtr(true),
		OpenWorld:   boolPtr(true),
	}
}

// Local returns annotations for commands answered entirely by the CLI
// binary: version and describe.
func Local() *ToolAnnotations {
	return &ToolAnnotations{
		ReadOnly:    boolPtr(true),
		Destructive: boolPtr(false),
		Idempotent:  boolPtr(true),
		OpenWorld:   boolPtr(false),
	}
}

func boolPtr(value bool) *bool {
	return &value
}
