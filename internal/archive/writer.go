// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import "io/fs"

// Writer defines the archive writer interface.
type Writer interface {
	WriteRegular(path string, source fs.File) error
	WriteDirectory(path string) error
}
