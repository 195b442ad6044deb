// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package tempstore provides scoped temporary files and directories.
//
// Every [Resource] created by a [Store] is registered with it until it is
// removed. Go has no delete-on-exit facility, so the owner of a [Store] is
// expected to call [Store.Cleanup] before the process terminates. This is a
// safety net only. Components owning a [Resource] remove it themselves on
// every exit path.
package tempstore
