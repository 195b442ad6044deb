// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vtree_test

import (
	"testing"

	"github.com/aibor/smalifs/internal/vtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInsert(t *testing.T, tree *vtree.Tree, name string, isDir bool, handle string) vtree.Node {
	t.Helper()

	node, err := tree.Insert(name, isDir, int64(len(name)), handle)
	require.NoError(t, err)

	return node
}

func listing(tree *vtree.Tree) vtree.ListFunc {
	return func(dir vtree.Node) ([]vtree.Node, error) {
		return tree.Listing(dir), nil
	}
}

func TestTree_Insert_AncestorSynthesis(t *testing.T) {
	tree := vtree.New(vtree.Options{})

	leaf := mustInsert(t, tree, "a/b/c.txt", false, "/out/a/b/c.txt")

	require.Equal(t, 3, tree.Len())

	rootChildren := tree.Listing(tree.Root())
	require.Len(t, rootChildren, 1)

	dirA := rootChildren[0]
	assert.Equal(t, "a", dirA.Name)
	assert.True(t, dirA.IsDir)
	assert.Equal(t, vtree.RootID, dirA.Parent)

	aChildren := tree.Listing(dirA)
	require.Len(t, aChildren, 1)

	dirB := aChildren[0]
	assert.Equal(t, "b", dirB.Name)
	assert.True(t, dirB.IsDir)
	assert.Equal(t, dirA.ID, dirB.Parent)

	assert.Equal(t, []vtree.Node{leaf}, tree.Listing(dirB))
	assert.Equal(t, "c.txt", leaf.Name)
	assert.False(t, leaf.IsDir)
	assert.Equal(t, int64(len("a/b/c.txt")), leaf.Size)
	assert.Equal(t, dirB.ID, leaf.Parent)

	_, hasHandle := tree.Handle(dirA)
	assert.False(t, hasHandle, "synthesized directory must not have a handle")

	handle, hasHandle := tree.Handle(leaf)
	assert.True(t, hasHandle)
	assert.Equal(t, "/out/a/b/c.txt", handle)
}

func TestTree_Insert_IdempotentAncestors(t *testing.T) {
	tree := vtree.New(vtree.Options{})

	mustInsert(t, tree, "a/x.txt", false, "/out/a/x.txt")
	mustInsert(t, tree, "a/y.txt", false, "/out/a/y.txt")

	rootChildren := tree.Listing(vtree.Node{})
	require.Len(t, rootChildren, 1)
	assert.Equal(t, "a", rootChildren[0].Name)
	assert.Len(t, tree.Listing(rootChildren[0]), 2)
	assert.Equal(t, 3, tree.Len())
}

func TestTree_Insert_FirstWriterWins(t *testing.T) {
	tree := vtree.New(vtree.Options{})

	first := mustInsert(t, tree, "f.smali", false, "/first")
	second := mustInsert(t, tree, "f.smali", false, "/second")

	assert.Equal(t, first, second)

	handle, _ := tree.Handle(first)
	assert.Equal(t, "/first", handle)
	assert.Equal(t, 1, tree.Len())
}

func TestTree_Insert_UpgradeEmptyHandle(t *testing.T) {
	tree := vtree.New(vtree.Options{Strict: true})

	mustInsert(t, tree, "a/x.txt", false, "/out/a/x.txt")

	dir, exists := tree.Lookup("a")
	require.True(t, exists)

	_, hasHandle := tree.Handle(dir)
	require.False(t, hasHandle)

	mustInsert(t, tree, "a", true, "/out/a")
	mustInsert(t, tree, "a", true, "/out/a")

	handle, hasHandle := tree.Handle(dir)
	assert.True(t, hasHandle)
	assert.Equal(t, "/out/a", handle)
	assert.Equal(t, 2, tree.Len())
}

func TestTree_Insert_Collision(t *testing.T) {
	const (
		nfc = "caf\u00e9.smali"
		nfd = "cafe\u0301.smali"
	)

	tests := []struct {
		name   string
		insert func(tree *vtree.Tree) error
	}{
		{
			name: "different handle",
			insert: func(tree *vtree.Tree) error {
				_, err := tree.Insert("x/f", false, 1, "/one")
				if err != nil {
					return err
				}

				_, err = tree.Insert("x/f", false, 1, "/two")

				return err
			},
		},
		{
			name: "unicode normalization",
			insert: func(tree *vtree.Tree) error {
				_, err := tree.Insert(nfc, false, 1, "/out/"+nfc)
				if err != nil {
					return err
				}

				_, err = tree.Insert(nfd, false, 1, "/out/"+nfd)

				return err
			},
		},
		{
			name: "file on synthesized dir",
			insert: func(tree *vtree.Tree) error {
				_, err := tree.Insert("d/f", false, 1, "/out/d/f")
				if err != nil {
					return err
				}

				_, err = tree.Insert("d", false, 1, "/out/d")

				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lenient := vtree.New(vtree.Options{})
			require.NoError(t, tt.insert(lenient))

			strict := vtree.New(vtree.Options{Strict: true})
			err := tt.insert(strict)
			require.ErrorIs(t, err, &vtree.NameCollisionError{})

			assert.Equal(t, lenient.Len(), strict.Len())
		})
	}
}

func TestTree_Insert_DirOnFile(t *testing.T) {
	lenient := vtree.New(vtree.Options{})

	file, err := lenient.Insert("d", false, 1, "/out/d")
	require.NoError(t, err)

	node, err := lenient.Insert("d", true, 0, "/out/D")
	require.ErrorIs(t, err, vtree.ErrDirDropped)
	assert.Equal(t, file, node, "existing file is kept")
	assert.Equal(t, 1, lenient.Len())

	strict := vtree.New(vtree.Options{Strict: true})

	_, err = strict.Insert("d", false, 1, "/out/d")
	require.NoError(t, err)

	_, err = strict.Insert("d", true, 0, "/out/D")
	require.ErrorIs(t, err, &vtree.NameCollisionError{})
	require.NotErrorIs(t, err, vtree.ErrDirDropped)
}

func TestTree_Insert_NormalizedLookup(t *testing.T) {
	tree := vtree.New(vtree.Options{})

	node := mustInsert(t, tree, "cafe\u0301/Main.smali", false, "/h")

	assert.Equal(t, "caf\u00e9/Main.smali", tree.Path(node))

	found, exists := tree.Lookup("caf\u00e9/Main.smali")
	require.True(t, exists)
	assert.Equal(t, node, found)
}

func TestTree_Insert_Errors(t *testing.T) {
	tree := vtree.New(vtree.Options{})

	_, err := tree.Insert("../escape", false, 0, "/h")
	require.ErrorIs(t, err, vtree.ErrInvalidPath)

	mustInsert(t, tree, "file", false, "/file")

	_, err = tree.Insert("file/child", false, 0, "/h")
	require.ErrorIs(t, err, vtree.ErrNotDir)

	root, err := tree.Insert("", true, 0, "/out")
	require.NoError(t, err)
	assert.True(t, root.IsRoot())

	_, hasHandle := tree.Handle(root)
	assert.False(t, hasHandle, "root is never stored")
}

func TestTree_Listing_RoundTrip(t *testing.T) {
	paths := []string{
		"com/example/Main.smali",
		"com/example/Main$1.smali",
		"com/example/util/Strings.smali",
		"com/other/A.smali",
		"org/B.smali",
		"Top.smali",
	}

	tree := vtree.New(vtree.Options{})

	for _, path := range paths {
		mustInsert(t, tree, path, false, "/out/"+path)
	}

	leaves, err := vtree.Leaves(listing(tree))
	require.NoError(t, err)

	assert.ElementsMatch(t, paths, leaves)
}

func TestTree_Listing_ByPathIdentity(t *testing.T) {
	tree := vtree.New(vtree.Options{})

	mustInsert(t, tree, "a/b/c", false, "/c")

	dirA, _ := tree.Lookup("a")

	// A node value with the same parent and name, without arena ID.
	copied := vtree.Node{Parent: vtree.RootID, Name: "a", IsDir: true}

	assert.Equal(t, tree.Listing(dirA), tree.Listing(copied))
	assert.Empty(t, tree.Listing(vtree.Node{Parent: vtree.RootID, Name: "missing"}))
}

func TestTree_Path(t *testing.T) {
	tree := vtree.New(vtree.Options{})

	node := mustInsert(t, tree, "/a//b/./c", false, "/c")

	assert.Equal(t, "a/b/c", tree.Path(node))
	assert.Equal(t, ".", tree.Path(tree.Root()))
}

func TestTree_Clear(t *testing.T) {
	tree := vtree.New(vtree.Options{})

	mustInsert(t, tree, "a/b", false, "/b")
	tree.Clear()

	assert.Equal(t, 0, tree.Len())
	assert.Empty(t, tree.Listing(tree.Root()))

	_, exists := tree.Lookup("a")
	assert.False(t, exists)
}
