// SPDX-License-Identifier: AGPL-3.0-or-later

// Package clierr carries process exit codes through command errors.
package clierr

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitFailure = 1 // a step ran and failed
	ExitUsage   = 2 // bad flags, labels or configuration
	ExitIO      = 4 // the filesystem refused a read or write
)

// ExitError annotates Err with the operation that failed and the exit code
// the process should terminate with.
type ExitError struct {
	Code int
	Op   string
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

// ExitCode implements the interface main uses to pick the exit status.
func (e *ExitError) ExitCode() int { return e.Code }

func (e *ExitError) Unwrap() error { return e.Err }

// Wrap annotates cause with op and code. cause may be nil.
func Wrap(code int, op string, cause error) error {
	return &ExitError{Code: normalize(code), Op: op, Err: cause}
}

// Wrapf is Wrap with a formatted operation.
func Wrapf(code int, cause error, format string, args ...any) error {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// ExitCodeOf returns the exit code carried by err, 0 for nil and
// ExitFailure for errors without one.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ec interface{ ExitCode() int }
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return ExitFailure
}

func normalize(code int) int {
	if code <= 0 {
		return ExitFailure
	}
	return code
}
