// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package vfs provides a read-only virtual file system for the smali output
// of a DEX file.
//
// A [FileSystem] runs through the states unopened, open and closed. Opening
// converts the source and indexes the output. Listing and content retrieval
// are only available while open. Closing removes all temporary resources.
// [FileSystem.FS] exposes an open file system as [io/fs.FS].
package vfs
