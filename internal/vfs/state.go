// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

// State of a [FileSystem].
type State int

const (
	// StateUnopened is the initial state.
	StateUnopened State = iota
	// StateOpen is reached after a successful [FileSystem.Open].
	StateOpen
	// StateClosed is terminal.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnopened:
		return "unopened"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
