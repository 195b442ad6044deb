// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vtree

// ID is the arena index of a [Node].
type ID int

// RootID is the ID of the root node.
const RootID ID = 0

// Node is a file or directory in a [Tree].
//
// Two nodes are the same entry if they have the same parent and the same
// name. The zero value is the root node.
type Node struct {
	ID     ID
	Parent ID
	Name   string
	IsDir  bool
	Size   int64
}

// IsRoot returns true if the node is the root node.
func (n Node) IsRoot() bool {
	return n.ID == RootID && n.Name == ""
}

type key struct {
	parent ID
	name   string
}

func (n Node) key() key {
	return key{parent: n.Parent, name: n.Name}
}
