// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mount exposes an open [vfs.FileSystem] as read-only FUSE mount.
//
// The inode tree is built once from the listings when the root is added, so
// the kernel never sees directory content change while mounted.
package mount
