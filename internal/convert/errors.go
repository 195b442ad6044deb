// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package convert

import "errors"

var (
	// ErrCancelled is returned if the run was cancelled before or during the
	// conversion.
	ErrCancelled = errors.New("conversion cancelled")

	// ErrEmptyExecutable is returned if a [Command] has no executable set.
	ErrEmptyExecutable = errors.New("converter executable must not be empty")

	// ErrInputTooLarge is returned if an input exceeds the configured
	// maximum size.
	ErrInputTooLarge = errors.New("input exceeds maximum size")
)
