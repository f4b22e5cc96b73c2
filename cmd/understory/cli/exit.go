// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"

	"github.com/understory-cli/understory/lib/understory"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitServerError = 2
)

// ExitError signals a non-zero exit code without printing an extra
// error message. When a command handler returns an ExitError, the CLI
// framework exits with the specified code without printing the error
// string; the command is expected to have already written its own
// output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. The main function checks for this
// interface on returned errors to distinguish "handled non-zero exit"
// from "unexpected error to display".
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitCodeFor maps a command's result to the process exit code: 0 on
// success, 2 when the API answered with a 5xx status, and 1 for every
// other failure. An error carrying its own ExitCode keeps it.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	if understory.IsServerError(err) {
		return ExitServerError
	}
	return ExitFailure
}
