// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/aibor/smalifs/internal/convert"
	"github.com/aibor/smalifs/internal/metrics"
	"github.com/aibor/smalifs/internal/monitor"
	"github.com/aibor/smalifs/internal/vtree"
	"github.com/google/uuid"
)

const openMessage = "Converting DEX to SMALI..."

// Options configure a [FileSystem].
type Options struct {
	// Strict fails opening if two converter outputs map to the same node.
	Strict bool
}

// FileSystem is the read-only virtual file system of a single source.
//
// Listing and content retrieval are safe for concurrent use once the file
// system is open.
type FileSystem struct {
	id     uuid.UUID
	source convert.Source
	runner *convert.Runner
	opts   Options
	log    *slog.Logger

	mu     sync.RWMutex
	state  State
	tree   *vtree.Tree
	result *convert.Result
}

// New creates a new unopened [FileSystem] for the given source.
func New(src convert.Source, runner *convert.Runner, opts Options) *FileSystem {
	id := uuid.New()

	return &FileSystem{
		id:     id,
		source: src,
		runner: runner,
		opts:   opts,
		log: slog.With(
			slog.String("fs", id.String()),
			slog.String("source", src.Name()),
		),
	}
}

// ID returns the unique ID of the file system instance.
func (f *FileSystem) ID() uuid.UUID {
	return f.id
}

// Name returns the name of the source.
func (f *FileSystem) Name() string {
	return f.source.Name()
}

// State returns the current state.
func (f *FileSystem) State() State {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.state
}

// IsOpen returns true if the file system is open.
func (f *FileSystem) IsOpen() bool {
	return f.State() == StateOpen
}

// Cancelled returns true if the file system is open but indexing was
// cancelled, so the tree might be incomplete.
func (f *FileSystem) Cancelled() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.state == StateOpen && f.tree.Cancelled()
}

// ProbeValid returns true if the source looks like something the converter
// can handle. It does not run the converter.
//
// It is only valid for an unopened file system.
func (f *FileSystem) ProbeValid() (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.state != StateUnopened {
		return false, &InvalidStateError{Op: "probe", State: f.state}
	}

	return f.runner.ProbeValid(f.source), nil
}

// Open converts the source and indexes the output.
//
// If the monitor reports cancellation during indexing, the file system is
// open with a partial tree. On any error all temporary resources are removed
// and the file system is closed for good.
func (f *FileSystem) Open(ctx context.Context, mon monitor.Monitor) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateUnopened {
		return &InvalidStateError{Op: "open", State: f.state}
	}

	mon.SetMessage(openMessage)

	result, err := f.runner.Run(ctx, f.source, mon)
	if err != nil {
		f.state = StateClosed
		return fmt.Errorf("convert: %w", err)
	}

	tree, err := vtree.Index(
		result.OutputDir.Path(),
		mon,
		vtree.Options{Strict: f.opts.Strict},
	)
	if err != nil {
		f.state = StateClosed

		removeErr := result.Remove()
		if removeErr != nil {
			f.log.Warn("Failed to remove output", slog.Any("error", removeErr))
		}

		return err
	}

	f.tree = tree
	f.result = result
	f.state = StateOpen

	metrics.FilesystemOpened()

	f.log.Debug("File system open",
		slog.String("output", result.OutputDir.Path()),
		slog.Int("nodes", tree.Len()),
		slog.Bool("cancelled", tree.Cancelled()),
	)

	return nil
}

// Close clears the tree and removes all temporary resources.
//
// Closing a closed file system is a no-op. An unopened file system is just
// marked closed.
func (f *FileSystem) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case StateClosed:
		return nil
	case StateUnopened:
		f.state = StateClosed
		return nil
	}

	f.state = StateClosed
	f.tree.Clear()
	f.tree = nil

	metrics.FilesystemClosed()

	f.log.Debug("Close file system", slog.String("output", f.result.OutputDir.Path()))

	err := f.result.Remove()
	f.result = nil

	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

// Root returns the root directory node.
func (f *FileSystem) Root() vtree.Node {
	return vtree.Node{IsDir: true}
}

// Listing returns the children of the given directory. The zero
// [vtree.Node] lists the root directory.
func (f *FileSystem) Listing(dir vtree.Node) ([]vtree.Node, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.state != StateOpen {
		return nil, &InvalidStateError{Op: "listing", State: f.state}
	}

	return f.tree.Listing(dir), nil
}

// Lookup returns the node for the given slash separated path. "." and ""
// return the root node.
func (f *FileSystem) Lookup(name string) (vtree.Node, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.state != StateOpen {
		return vtree.Node{}, &InvalidStateError{Op: "lookup", State: f.state}
	}

	node, exists := f.tree.Lookup(name)
	if !exists {
		return vtree.Node{}, &NotFoundError{Path: name}
	}

	return node, nil
}

// Path returns the slash separated path of the given node.
func (f *FileSystem) Path(node vtree.Node) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.state != StateOpen {
		return "", &InvalidStateError{Op: "path", State: f.state}
	}

	return f.tree.Path(node), nil
}

// GetContent opens the backing file of the given node for reading.
//
// It returns a [NotFoundError] if the node has no backing file. Directories
// have no content. The returned file is an [*os.File] and supports
// [io.ReaderAt] and [io.Seeker].
func (f *FileSystem) GetContent(node vtree.Node) (fs.File, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.state != StateOpen {
		return nil, &InvalidStateError{Op: "get content", State: f.state}
	}

	stored, exists := f.tree.Get(node)
	if !exists {
		return nil, &NotFoundError{Path: node.Name}
	}

	if stored.IsDir {
		return nil, &NotFoundError{Path: f.tree.Path(stored)}
	}

	handle, exists := f.tree.Handle(stored)
	if !exists {
		return nil, &NotFoundError{Path: f.tree.Path(stored)}
	}

	file, err := os.Open(handle)
	if err != nil {
		return nil, fmt.Errorf("open content: %w", err)
	}

	return file, nil
}
