// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vtree

import "errors"

var (
	// ErrInvalidPath is returned for paths that escape the tree.
	ErrInvalidPath = errors.New("invalid path")

	// ErrNotDir is returned if a path uses a file as directory.
	ErrNotDir = errors.New("not a directory")

	// ErrDirDropped is returned if a directory is dropped in favor of an
	// existing file of the same name. Its content must be skipped.
	ErrDirDropped = errors.New("directory dropped")
)
