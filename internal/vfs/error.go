// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"fmt"
	"io/fs"
)

// InvalidStateError is returned if an operation is called in a state it is
// not valid in.
type InvalidStateError struct {
	Op    string
	State State
}

// Error implements the [error] interface.
func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: invalid in state %s", e.Op, e.State)
}

// Is implements the [errors.Is] interface.
func (*InvalidStateError) Is(other error) bool {
	_, ok := other.(*InvalidStateError)
	return ok
}

// NotFoundError is returned if a node does not exist or has no content.
//
// It matches [fs.ErrNotExist].
type NotFoundError struct {
	Path string
}

// Error implements the [error] interface.
func (e *NotFoundError) Error() string {
	return "no content for " + e.Path
}

// Is implements the [errors.Is] interface.
func (*NotFoundError) Is(other error) bool {
	_, ok := other.(*NotFoundError)
	return ok || other == fs.ErrNotExist
}
