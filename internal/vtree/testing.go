// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vtree

// ListFunc returns the children of a directory node.
type ListFunc func(dir Node) ([]Node, error)

// Leaves walks the tree from the root using the given function and returns
// the slash separated paths of all files and empty directories.
func Leaves(list ListFunc) ([]string, error) {
	type item struct {
		node Node
		path string
	}

	var leaves []string

	stack := []item{{}}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children, err := list(current.node)
		if err != nil {
			return nil, err
		}

		if len(children) == 0 && current.path != "" {
			leaves = append(leaves, current.path+"/")
		}

		for _, child := range children {
			path := child.Name
			if current.path != "" {
				path = current.path + "/" + child.Name
			}

			if child.IsDir {
				stack = append(stack, item{node: child, path: path})
			} else {
				leaves = append(leaves, path)
			}
		}
	}

	return leaves, nil
}
