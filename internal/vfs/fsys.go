// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"io"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/aibor/smalifs/internal/vtree"
)

const (
	dirMode  fs.FileMode = fs.ModeDir | 0o555
	fileMode fs.FileMode = 0o444
)

var (
	_ fs.FS        = (*ioFS)(nil)
	_ fs.ReadDirFS = (*ioFS)(nil)
	_ fs.StatFS    = (*ioFS)(nil)
)

// FS returns the file system as [fs.FS]. It supports [fs.ReadDirFS] and
// [fs.StatFS].
//
// All operations fail once the file system is not open anymore.
func (f *FileSystem) FS() fs.FS {
	return &ioFS{fsys: f}
}

type ioFS struct {
	fsys *FileSystem
}

// Open implements [fs.FS].
func (i *ioFS) Open(name string) (fs.File, error) {
	node, err := i.lookup("open", name)
	if err != nil {
		return nil, err
	}

	info := &fileInfo{node: node}

	if node.IsDir {
		entries, err := i.entries("open", name, node)
		if err != nil {
			return nil, err
		}

		return &openDir{name: name, info: info, entries: entries}, nil
	}

	file, err := i.fsys.GetContent(node)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}

	return &openFile{File: file, info: info}, nil
}

// ReadDir implements [fs.ReadDirFS].
func (i *ioFS) ReadDir(name string) ([]fs.DirEntry, error) {
	node, err := i.lookup("readdir", name)
	if err != nil {
		return nil, err
	}

	if !node.IsDir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}

	return i.entries("readdir", name, node)
}

// Stat implements [fs.StatFS].
func (i *ioFS) Stat(name string) (fs.FileInfo, error) {
	node, err := i.lookup("stat", name)
	if err != nil {
		return nil, err
	}

	return &fileInfo{node: node}, nil
}

func (i *ioFS) lookup(op, name string) (vtree.Node, error) {
	if !fs.ValidPath(name) {
		return vtree.Node{}, &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}

	node, err := i.fsys.Lookup(name)
	if err != nil {
		return vtree.Node{}, &fs.PathError{Op: op, Path: name, Err: err}
	}

	return node, nil
}

// entries returns the directory entries sorted by name.
func (i *ioFS) entries(op, name string, dir vtree.Node) ([]fs.DirEntry, error) {
	nodes, err := i.fsys.Listing(dir)
	if err != nil {
		return nil, &fs.PathError{Op: op, Path: name, Err: err}
	}

	slices.SortFunc(nodes, func(a, b vtree.Node) int {
		return strings.Compare(a.Name, b.Name)
	})

	entries := make([]fs.DirEntry, len(nodes))
	for idx, node := range nodes {
		entries[idx] = fs.FileInfoToDirEntry(&fileInfo{node: node})
	}

	return entries, nil
}

var _ fs.FileInfo = (*fileInfo)(nil)

type fileInfo struct {
	node vtree.Node
}

func (i *fileInfo) Name() string {
	if i.node.IsRoot() {
		return "."
	}

	return i.node.Name
}

func (i *fileInfo) Size() int64      { return i.node.Size }
func (i *fileInfo) IsDir() bool      { return i.node.IsDir }
func (*fileInfo) ModTime() time.Time { return time.Time{} }
func (i *fileInfo) Sys() any         { return i.node }
func (i *fileInfo) String() string   { return fs.FormatFileInfo(i) }

func (i *fileInfo) Mode() fs.FileMode {
	if i.node.IsDir {
		return dirMode
	}

	return fileMode
}

var _ fs.File = (*openFile)(nil)

type openFile struct {
	fs.File

	info *fileInfo
}

// Stat implements [fs.File].
func (f *openFile) Stat() (fs.FileInfo, error) {
	return f.info, nil
}

var _ fs.ReadDirFile = (*openDir)(nil)

type openDir struct {
	name    string
	info    *fileInfo
	entries []fs.DirEntry
	offset  int
}

// Stat implements [fs.File].
func (d *openDir) Stat() (fs.FileInfo, error) {
	return d.info, nil
}

// Read implements [fs.File].
func (d *openDir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.name, Err: ErrIsDir}
}

// Close implements [fs.File].
func (*openDir) Close() error {
	return nil
}

// ReadDir implements [fs.ReadDirFile].
func (d *openDir) ReadDir(count int) ([]fs.DirEntry, error) {
	start := d.offset
	end := len(d.entries)
	available := end - start

	if available == 0 && count > 0 {
		return nil, io.EOF
	}

	if count > 0 && available > count {
		end = start + count
	}

	d.offset = end

	return d.entries[start:end], nil
}
