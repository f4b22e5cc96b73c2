// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger writing to w. When w is
// a terminal, uses slog.TextHandler for human-readable output. When it
// is piped or redirected (CI, scripts, agents), uses slog.JSONHandler
// for machine-parseable output.
//
// level is read on every record, so a *slog.LevelVar can be raised
// after the logger is handed out (as --verbose does).
func NewCommandLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if isTerminal(w) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
