// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vtree

import "fmt"

// NameCollisionError is returned in strict mode if two distinct entries map
// to the same node.
type NameCollisionError struct {
	Path    string
	Kept    string
	Dropped string
}

// Error implements the [error] interface.
func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("name collision at %s: %s and %s", e.Path, e.Kept, e.Dropped)
}

// Is implements the [errors.Is] interface.
func (*NameCollisionError) Is(other error) bool {
	_, ok := other.(*NameCollisionError)
	return ok
}
