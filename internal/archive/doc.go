// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package archive writes a file tree given as [io/fs.FS] into a CPIO
// archive in "newc" format.
package archive
