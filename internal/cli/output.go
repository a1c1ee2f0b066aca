// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes. Saved-for-retry is a success: the record is durably held
// and the command did what it could.
const (
	ExitSuccess      = 0 // delivered, listed, or saved for retry
	ExitFailure      = 1 // fatal tracker failure, validation error, storage error
	ExitCommandError = 2 // usage errors (bad flags, malformed arguments)
)

// ExitError carries a specific exit code out of a command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

// WrapExitError wraps err with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error, defaulting to
// ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Formatter renders command results as human text or JSON.
type Formatter struct {
	Format string // "text" | "json"
	Writer io.Writer
}

// JSON reports whether JSON output was requested.
func (f *Formatter) JSON() bool { return f.Format == "json" }

// Emit writes data as a JSON document. Text-mode callers print their
// own lines and never call this.
func (f *Formatter) Emit(data any) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// Textf prints a formatted line in text mode only.
func (f *Formatter) Textf(format string, args ...any) {
	if !f.JSON() {
		fmt.Fprintf(f.Writer, format+"\n", args...)
	}
}
