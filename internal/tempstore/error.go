// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package tempstore

import "fmt"

// ResourceError is returned if temporary storage could not be allocated or
// written.
type ResourceError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the [error] interface.
func (e *ResourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("temp resource %s: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("temp resource %s %s: %v", e.Op, e.Path, e.Err)
}

// Is implements the [errors.Is] interface.
func (*ResourceError) Is(other error) bool {
	_, ok := other.(*ResourceError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *ResourceError) Unwrap() error {
	return e.Err
}
