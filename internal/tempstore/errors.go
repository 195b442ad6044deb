// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package tempstore

import "errors"

var (
	// ErrNotFile is returned if bytes are written into a directory resource.
	ErrNotFile = errors.New("resource is not a file")

	// ErrRemoved is returned if a removed resource is used.
	ErrRemoved = errors.New("resource already removed")

	// ErrNameExhausted is returned if no unique directory name could be
	// found.
	ErrNameExhausted = errors.New("no unique name available")
)
