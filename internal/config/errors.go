// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import "errors"

var (
	ErrEmptyExecutable   = errors.New("converter executable must not be empty")
	ErrNegativeTimeout   = errors.New("converter timeout must not be negative")
	ErrEmptyOutputPrefix = errors.New("output prefix must not be empty")
)
