// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vtree

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Options configure a [Tree].
type Options struct {
	// Strict makes [Tree.Insert] fail with [NameCollisionError] instead of
	// silently keeping the first handle.
	Strict bool
}

// Tree is a virtual directory tree.
//
// It is not safe for concurrent mutation. Concurrent reads are safe once no
// more nodes are inserted.
type Tree struct {
	opts      Options
	nodes     []Node
	handles   []string
	index     map[key]ID
	cancelled bool
}

// New creates a new empty [Tree] that only has the root node.
func New(opts Options) *Tree {
	tree := &Tree{opts: opts}
	tree.Clear()

	return tree
}

// Clear removes all nodes except the root node.
func (t *Tree) Clear() {
	t.nodes = []Node{{ID: RootID, IsDir: true}}
	t.handles = []string{""}
	t.index = make(map[key]ID)
	t.cancelled = false
}

// Root returns the root node.
func (t *Tree) Root() Node {
	return t.nodes[RootID]
}

// Len returns the number of nodes without the root node.
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

// Cancelled returns true if the tree was built by [Index] and the walk was
// stopped early. The tree might be incomplete in this case.
func (t *Tree) Cancelled() bool {
	return t.cancelled
}

// Insert adds the entry with the given slash separated path.
//
// All missing ancestors are created as directories without a backing
// handle. If the entry exists already, its handle is set only if it has
// none yet. A different non-empty handle for an existing entry is dropped.
// A directory colliding with an existing file is dropped with
// [ErrDirDropped]. In strict mode, a [NameCollisionError] is returned
// instead for all collisions. Path
// components are normalized to Unicode NFC. Inserting the root path is a
// no-op.
func (t *Tree) Insert(name string, isDir bool, size int64, handle string) (Node, error) {
	parts, err := splitPath(name)
	if err != nil {
		return Node{}, err
	}

	if len(parts) == 0 {
		return t.Root(), nil
	}

	current := RootID
	created := false

	for idx, part := range parts {
		leaf := idx == len(parts)-1

		id, exists := t.index[key{parent: current, name: part}]
		if !exists {
			node := Node{
				ID:     ID(len(t.nodes)),
				Parent: current,
				Name:   part,
				IsDir:  true,
			}

			if leaf && !isDir {
				node.IsDir = false
				node.Size = size
			}

			t.nodes = append(t.nodes, node)
			t.handles = append(t.handles, "")
			t.index[node.key()] = node.ID

			id = node.ID
			created = leaf
		} else if !leaf && !t.nodes[id].IsDir {
			return Node{}, fmt.Errorf("%w: %s", ErrNotDir, t.Path(t.nodes[id]))
		}

		current = id
	}

	node := t.nodes[current]

	if !created && node.IsDir != isDir {
		err := t.collision(node, t.handles[current], handle)
		if err == nil && isDir {
			return node, ErrDirDropped
		}

		return node, err
	}

	switch existing := t.handles[current]; {
	case handle == "", existing == handle:
	case existing == "":
		t.handles[current] = handle
	default:
		return node, t.collision(node, existing, handle)
	}

	return node, nil
}

func (t *Tree) collision(node Node, kept, dropped string) error {
	path := t.Path(node)

	if t.opts.Strict {
		return &NameCollisionError{Path: path, Kept: kept, Dropped: dropped}
	}

	slog.Debug("Name collision, keep first entry",
		slog.String("path", path),
		slog.String("kept", kept),
		slog.String("dropped", dropped),
	)

	return nil
}

// Get returns the node stored in the tree that matches the given node by
// parent and name.
func (t *Tree) Get(node Node) (Node, bool) {
	id, exists := t.resolve(node)
	if !exists {
		return Node{}, false
	}

	return t.nodes[id], true
}

// Handle returns the backing handle of the given node. It returns false if
// the node has none or does not exist in the tree.
func (t *Tree) Handle(node Node) (string, bool) {
	id, exists := t.resolve(node)
	if !exists || t.handles[id] == "" {
		return "", false
	}

	return t.handles[id], true
}

// Listing returns all nodes whose parent is the given directory in
// insertion order. The zero [Node] lists the root directory.
//
// Directories are matched by parent and name, so a copy of a node from a
// previous listing works as well.
func (t *Tree) Listing(dir Node) []Node {
	id, exists := t.resolve(dir)
	if !exists {
		return nil
	}

	var nodes []Node

	for _, node := range t.nodes[1:] {
		if node.Parent == id {
			nodes = append(nodes, node)
		}
	}

	return nodes
}

// Lookup returns the node for the given slash separated path.
func (t *Tree) Lookup(name string) (Node, bool) {
	parts, err := splitPath(name)
	if err != nil {
		return Node{}, false
	}

	current := RootID

	for _, part := range parts {
		id, exists := t.index[key{parent: current, name: part}]
		if !exists {
			return Node{}, false
		}

		current = id
	}

	return t.nodes[current], true
}

// Path returns the slash separated path of the node relative to the root.
// The root itself has path ".".
func (t *Tree) Path(node Node) string {
	id, exists := t.resolve(node)
	if !exists || id == RootID {
		return "."
	}

	var parts []string

	for ; id != RootID; id = t.nodes[id].Parent {
		parts = append(parts, t.nodes[id].Name)
	}

	slices.Reverse(parts)

	return strings.Join(parts, "/")
}

func (t *Tree) resolve(node Node) (ID, bool) {
	if node.IsRoot() {
		return RootID, true
	}

	id, exists := t.index[key{parent: node.Parent, name: norm.NFC.String(node.Name)}]

	return id, exists
}

// splitPath splits the given slash separated path into normalized
// components. Empty and "." components are dropped.
func splitPath(name string) ([]string, error) {
	var parts []string

	for part := range strings.SplitSeq(name, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			return nil, fmt.Errorf("%w: %s", ErrInvalidPath, name)
		}

		parts = append(parts, norm.NFC.String(part))
	}

	return parts, nil
}
