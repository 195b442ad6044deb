// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs_test

import (
	"context"
	"io"
	"io/fs"
	"sync"
	"testing"

	"github.com/aibor/smalifs/internal/convert"
	"github.com/aibor/smalifs/internal/monitor"
	"github.com/aibor/smalifs/internal/vfs"
	"github.com/aibor/smalifs/internal/vtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystem_Lifecycle(t *testing.T) {
	fsys, store := newFS(t, convert.StaticConverter(testFiles), vfs.Options{})

	assert.Equal(t, vfs.StateUnopened, fsys.State())
	assert.False(t, fsys.IsOpen())

	valid, err := fsys.ProbeValid()
	require.NoError(t, err)
	assert.True(t, valid)

	_, err = fsys.Listing(fsys.Root())
	require.ErrorIs(t, err, &vfs.InvalidStateError{})

	mon := monitor.NewCountdown(-1)

	require.NoError(t, fsys.Open(t.Context(), mon))
	assert.True(t, fsys.IsOpen())
	assert.False(t, fsys.Cancelled())
	assert.Equal(t, "Converting DEX to SMALI...", mon.Messages[0])
	assert.Equal(t, 2, store.Len(), "input copy and output dir")

	_, err = fsys.ProbeValid()
	require.ErrorIs(t, err, &vfs.InvalidStateError{})

	err = fsys.Open(t.Context(), monitor.Nop{})
	require.ErrorIs(t, err, &vfs.InvalidStateError{})

	leaves, err := vtree.Leaves(fsys.Listing)
	require.NoError(t, err)

	expected := make([]string, 0, len(testFiles))
	for name := range testFiles {
		expected = append(expected, name)
	}

	assert.ElementsMatch(t, expected, leaves)

	require.NoError(t, fsys.Close())
	assert.Equal(t, vfs.StateClosed, fsys.State())
	assert.Equal(t, 0, store.Len(), "all temp resources removed")

	_, err = fsys.Listing(fsys.Root())
	require.ErrorIs(t, err, &vfs.InvalidStateError{}, "no empty result after close")

	_, err = fsys.GetContent(vtree.Node{Name: "Top.smali"})
	require.ErrorIs(t, err, &vfs.InvalidStateError{})

	require.NoError(t, fsys.Close(), "second close is a no-op")
}

func TestFileSystem_GetContent(t *testing.T) {
	fsys, _ := newFS(t, convert.StaticConverter(testFiles), vfs.Options{})
	require.NoError(t, fsys.Open(t.Context(), monitor.Nop{}))

	node, err := fsys.Lookup("com/example/util/Strings.smali")
	require.NoError(t, err)

	file, err := fsys.GetContent(node)
	require.NoError(t, err)

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	assert.Equal(t, testFiles["com/example/util/Strings.smali"], string(content))
	assert.Equal(t, int64(len(content)), node.Size)

	dir, err := fsys.Lookup("com/example")
	require.NoError(t, err)

	_, err = fsys.GetContent(dir)
	require.ErrorIs(t, err, &vfs.NotFoundError{})
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = fsys.GetContent(vtree.Node{Parent: dir.ID, Name: "Missing.smali"})
	require.ErrorIs(t, err, &vfs.NotFoundError{})

	_, err = fsys.Lookup("com/missing")
	require.ErrorIs(t, err, &vfs.NotFoundError{})
}

func TestFileSystem_Open_TransformError(t *testing.T) {
	conv := convert.ConverterFunc(func(context.Context, string, string) error {
		return assert.AnError
	})

	fsys, store := newFS(t, conv, vfs.Options{})

	err := fsys.Open(t.Context(), monitor.Nop{})
	require.ErrorIs(t, err, &convert.TransformError{})

	assert.Equal(t, vfs.StateClosed, fsys.State())
	assert.Equal(t, 0, store.Len())

	_, err = fsys.Listing(fsys.Root())
	require.ErrorIs(t, err, &vfs.InvalidStateError{})
}

func TestFileSystem_Open_Collision(t *testing.T) {
	files := map[string]string{
		"caf\u00e9.smali":  "nfc",
		"cafe\u0301.smali": "nfd",
	}

	t.Run("strict", func(t *testing.T) {
		fsys, store := newFS(t, convert.StaticConverter(files), vfs.Options{Strict: true})

		err := fsys.Open(t.Context(), monitor.Nop{})
		require.ErrorIs(t, err, &vtree.NameCollisionError{})

		assert.Equal(t, vfs.StateClosed, fsys.State())
		assert.Equal(t, 0, store.Len())
	})

	t.Run("first writer wins", func(t *testing.T) {
		fsys, _ := newFS(t, convert.StaticConverter(files), vfs.Options{})

		require.NoError(t, fsys.Open(t.Context(), monitor.Nop{}))

		nodes, err := fsys.Listing(fsys.Root())
		require.NoError(t, err)
		require.Len(t, nodes, 1)

		file, err := fsys.GetContent(nodes[0])
		require.NoError(t, err)

		defer file.Close()

		content, err := io.ReadAll(file)
		require.NoError(t, err)

		// Lexical walk order: the decomposed name sorts first.
		assert.Equal(t, "nfd", string(content))
	})
}

func TestFileSystem_Open_Cancelled(t *testing.T) {
	fsys, _ := newFS(t, convert.StaticConverter(testFiles), vfs.Options{})

	// Two polls by the runner, one entry indexed.
	require.NoError(t, fsys.Open(t.Context(), monitor.NewCountdown(3)))
	assert.True(t, fsys.IsOpen())
	assert.True(t, fsys.Cancelled())

	nodes, err := fsys.Listing(fsys.Root())
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "Top.smali", nodes[0].Name)
}

func TestFileSystem_Close_Unopened(t *testing.T) {
	fsys, _ := newFS(t, convert.StaticConverter(testFiles), vfs.Options{})

	require.NoError(t, fsys.Close())
	assert.Equal(t, vfs.StateClosed, fsys.State())

	err := fsys.Open(t.Context(), monitor.Nop{})
	require.ErrorIs(t, err, &vfs.InvalidStateError{})
}

func TestFileSystem_ProbeValid_Invalid(t *testing.T) {
	called := false
	conv := convert.ConverterFunc(func(context.Context, string, string) error {
		called = true
		return nil
	})

	runner := &convert.Runner{Converter: conv}
	fsys := vfs.New(convert.NewBytesSource("x.zip", []byte("PK\x03\x04....")), runner, vfs.Options{})

	valid, err := fsys.ProbeValid()
	require.NoError(t, err)
	assert.False(t, valid)
	assert.False(t, called)
}

func TestFileSystem_ConcurrentReads(t *testing.T) {
	fsys, _ := newFS(t, convert.StaticConverter(testFiles), vfs.Options{})
	require.NoError(t, fsys.Open(t.Context(), monitor.Nop{}))

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for name, expected := range testFiles {
				node, err := fsys.Lookup(name)
				if !assert.NoError(t, err) {
					return
				}

				file, err := fsys.GetContent(node)
				if !assert.NoError(t, err) {
					return
				}

				content, err := io.ReadAll(file)
				_ = file.Close()

				assert.NoError(t, err)
				assert.Equal(t, expected, string(content))
			}
		}()
	}

	wg.Wait()
}
