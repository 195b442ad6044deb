// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package convert

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// Source is an addressable input artifact.
type Source interface {
	// Name returns a name that identifies the source in messages.
	Name() string

	// Open returns a new reader positioned at the start of the source.
	Open() (io.ReadCloser, error)
}

// PathSource is a [Source] that is backed by a file already. It is passed
// to the converter directly instead of being copied first.
type PathSource interface {
	Source

	// Path returns the path of the backing file.
	Path() string
}

var (
	_ PathSource = FileSource{}
	_ Source     = BytesSource{}
)

// FileSource is a [Source] for a file on the host file system.
type FileSource struct {
	path string
}

// NewFileSource creates a new [FileSource] for the given path.
func NewFileSource(path string) FileSource {
	return FileSource{path: path}
}

// Name implements [Source].
func (s FileSource) Name() string {
	return filepath.Base(s.path)
}

// Open implements [Source].
func (s FileSource) Open() (io.ReadCloser, error) {
	return os.Open(s.path) //nolint:wrapcheck
}

// Path implements [PathSource].
func (s FileSource) Path() string {
	return s.path
}

// BytesSource is a [Source] for in-memory data.
type BytesSource struct {
	name string
	data []byte
}

// NewBytesSource creates a new [BytesSource] with the given name and data.
func NewBytesSource(name string, data []byte) BytesSource {
	return BytesSource{name: name, data: data}
}

// Name implements [Source].
func (s BytesSource) Name() string {
	return s.name
}

// Open implements [Source].
func (s BytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.data)), nil
}
