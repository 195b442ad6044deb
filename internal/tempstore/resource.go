// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package tempstore

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sync/atomic"
)

// NoLimit disables the byte ceiling of [Resource.CopyStream].
const NoLimit int64 = -1

const chunkSize = 8 * 1024

// Resource is a temporary file or directory created by a [Store].
type Resource struct {
	path    string
	isDir   bool
	store   *Store
	removed atomic.Bool
}

// Path returns the absolute path of the resource.
func (r *Resource) Path() string {
	return r.path
}

// IsDir returns true if the resource is a directory.
func (r *Resource) IsDir() bool {
	return r.isDir
}

// WriteBytes replaces the content of the file resource with the given data.
//
// The file is closed in any case. It returns a [ResourceError] on failure.
func (r *Resource) WriteBytes(data []byte) error {
	file, err := r.openWrite()
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		_ = file.Close()
		return &ResourceError{Op: "write", Path: r.path, Err: err}
	}

	err = file.Close()
	if err != nil {
		return &ResourceError{Op: "close", Path: r.path, Err: err}
	}

	return nil
}

// CopyStream replaces the content of the file resource with the data read
// from src.
//
// Data is copied in chunks of 8 KiB until src is exhausted or maxBytes have
// been written. No byte beyond maxBytes is ever written. Use [NoLimit] to
// copy everything. The file is closed in any case. It returns the number of
// bytes written and a [ResourceError] on failure.
func (r *Resource) CopyStream(src io.Reader, maxBytes int64) (int64, error) {
	file, err := r.openWrite()
	if err != nil {
		return 0, err
	}

	if maxBytes >= 0 {
		src = io.LimitReader(src, maxBytes)
	}

	// Hide [os.File.ReadFrom], so the chunk buffer is actually used.
	dst := struct{ io.Writer }{file}

	written, err := io.CopyBuffer(dst, src, make([]byte, chunkSize))
	if err != nil {
		_ = file.Close()
		return written, &ResourceError{Op: "copy", Path: r.path, Err: err}
	}

	err = file.Close()
	if err != nil {
		return written, &ResourceError{Op: "close", Path: r.path, Err: err}
	}

	return written, nil
}

// Remove removes the resource from the file system. Directories are removed
// with all their content.
//
// It is safe to call it multiple times. Once removal succeeded, further calls
// are no-ops. A resource that failed to be removed stays registered, so
// [Store.Cleanup] tries again.
func (r *Resource) Remove() error {
	if r.removed.Load() {
		return nil
	}

	slog.Debug("Remove temp resource", slog.String("path", r.path))

	var err error
	if r.isDir {
		err = os.RemoveAll(r.path)
	} else {
		err = os.Remove(r.path)
	}

	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &ResourceError{Op: "remove", Path: r.path, Err: err}
	}

	if r.removed.CompareAndSwap(false, true) {
		r.store.unregister(r.path)
	}

	return nil
}

func (r *Resource) openWrite() (*os.File, error) {
	if r.removed.Load() {
		return nil, &ResourceError{Op: "open", Path: r.path, Err: ErrRemoved}
	}

	if r.isDir {
		return nil, &ResourceError{Op: "open", Path: r.path, Err: ErrNotFile}
	}

	file, err := os.OpenFile(r.path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return nil, &ResourceError{Op: "open", Path: r.path, Err: err}
	}

	return file, nil
}
