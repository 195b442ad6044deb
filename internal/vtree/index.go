// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vtree

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/aibor/smalifs/internal/metrics"
	"github.com/aibor/smalifs/internal/monitor"
)

// Index walks the given directory recursively in lexical order and inserts
// every file and directory into a new [Tree]. The backing handle of each
// node is the absolute path of the entry.
//
// The monitor is polled before each entry. Once it reports cancellation the
// walk stops and the partial tree is returned without error. Use
// [Tree.Cancelled] to tell. Entries that are neither regular files nor
// directories are skipped, as is the content of a directory that collides
// with a file indexed before.
func Index(dir string, mon monitor.Monitor, opts Options) (*Tree, error) {
	tree := New(opts)

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path == root {
			return nil
		}

		if mon.Cancelled() {
			tree.cancelled = true
			return fs.SkipAll
		}

		mon.SetMessage(entry.Name())

		return tree.insertEntry(root, path, entry)
	})
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}

	metrics.RecordIndex(tree.Len(), tree.cancelled)

	slog.Debug("Index done",
		slog.String("dir", root),
		slog.Int("nodes", tree.Len()),
		slog.Bool("cancelled", tree.cancelled),
	)

	return tree, nil
}

func (t *Tree) insertEntry(root, path string, entry fs.DirEntry) error {
	isDir := entry.IsDir()

	if !isDir && !entry.Type().IsRegular() {
		slog.Debug("Skip irregular entry",
			slog.String("path", path),
			slog.String("type", entry.Type().String()),
		)

		return nil
	}

	var size int64

	if !isDir {
		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("stat: %w", err)
		}

		size = info.Size()
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return fmt.Errorf("relative path: %w", err)
	}

	_, err = t.Insert(filepath.ToSlash(rel), isDir, size, path)
	if errors.Is(err, ErrDirDropped) {
		return fs.SkipDir
	}

	return err
}
