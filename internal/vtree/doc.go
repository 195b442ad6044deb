// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package vtree builds a virtual directory tree from a flat set of files.
//
// Nodes are values stored in an arena and identified by their parent and
// name. Directories that are only implied by the paths of other entries are
// synthesized without a backing handle. Each node maps to at most one
// backing handle and the first non-empty handle wins.
package vtree
