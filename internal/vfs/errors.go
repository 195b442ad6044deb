// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import "errors"

// ErrIsDir is returned if a directory is read like a file.
var ErrIsDir = errors.New("is a directory")
