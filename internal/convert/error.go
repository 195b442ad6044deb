// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package convert

import (
	"fmt"
	"strings"
)

// TransformError is returned if the converter failed for an input. It is
// terminal for that input.
type TransformError struct {
	Source string
	Err    error
}

// Error implements the [error] interface.
func (e *TransformError) Error() string {
	return fmt.Sprintf("failed to disassemble DEX file: %s: %v", e.Source, e.Err)
}

// Is implements the [errors.Is] interface.
func (*TransformError) Is(other error) bool {
	_, ok := other.(*TransformError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *TransformError) Unwrap() error {
	return e.Err
}

// ExecError is returned if the converter process could not be started or
// exited with non-zero exit code. Stderr contains the last lines the process
// wrote to its stderr.
type ExecError struct {
	Err    error
	Stderr string
}

// Error implements the [error] interface.
func (e *ExecError) Error() string {
	msg := "converter: " + e.Err.Error()

	stderr := strings.TrimSpace(e.Stderr)
	if stderr != "" {
		msg += ": " + stderr
	}

	return msg
}

// Is implements the [errors.Is] interface.
func (*ExecError) Is(other error) bool {
	_, ok := other.(*ExecError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *ExecError) Unwrap() error {
	return e.Err
}
