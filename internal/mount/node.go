// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package mount

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"syscall"

	"github.com/aibor/smalifs/internal/vfs"
	"github.com/aibor/smalifs/internal/vtree"
	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"golang.org/x/sys/unix"
)

const (
	dirMode  = fuse.S_IFDIR | 0o555
	fileMode = fuse.S_IFREG | 0o444
)

var (
	_ = (fs.NodeOnAdder)((*rootNode)(nil))
	_ = (fs.NodeGetattrer)((*dirNode)(nil))
	_ = (fs.NodeGetattrer)((*fileNode)(nil))
	_ = (fs.NodeOpener)((*fileNode)(nil))
)

type rootNode struct {
	dirNode
}

func newRoot(fsys *vfs.FileSystem) *rootNode {
	return &rootNode{dirNode{fsys: fsys, node: fsys.Root()}}
}

// OnAdd populates the whole inode tree breadth first.
func (r *rootNode) OnAdd(ctx context.Context) {
	type pending struct {
		inode *fs.Inode
		dir   vtree.Node
	}

	queue := []pending{{&r.Inode, r.node}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		children, err := r.fsys.Listing(current.dir)
		if err != nil {
			slog.Warn("Failed to list directory", slog.Any("error", err))
			return
		}

		for _, child := range children {
			var (
				embedder fs.InodeEmbedder
				mode     uint32 = fuse.S_IFREG
			)

			if child.IsDir {
				embedder = &dirNode{fsys: r.fsys, node: child}
				mode = fuse.S_IFDIR
			} else {
				embedder = &fileNode{fsys: r.fsys, node: child}
			}

			inode := current.inode.NewPersistentInode(ctx, embedder, fs.StableAttr{Mode: mode})
			current.inode.AddChild(child.Name, inode, false)

			if child.IsDir {
				queue = append(queue, pending{inode, child})
			}
		}
	}
}

type dirNode struct {
	fs.Inode

	fsys *vfs.FileSystem
	node vtree.Node
}

func (*dirNode) Getattr(_ context.Context, _ fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = dirMode
	return fs.OK
}

type fileNode struct {
	fs.Inode

	fsys *vfs.FileSystem
	node vtree.Node
}

func (n *fileNode) Getattr(_ context.Context, _ fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = fileMode
	out.Size = uint64(n.node.Size) //nolint:gosec
	return fs.OK
}

func (n *fileNode) Open(_ context.Context, flags uint32) (fs.FileHandle, uint32, syscall.Errno) {
	if flags&(unix.O_WRONLY|unix.O_RDWR) != 0 {
		return nil, 0, unix.EROFS
	}

	file, err := n.fsys.GetContent(n.node)
	if err != nil {
		return nil, 0, toErrno(err)
	}

	reader, ok := file.(io.ReaderAt)
	if !ok {
		_ = file.Close()
		return nil, 0, unix.EIO
	}

	return &handle{file: file, reader: reader}, fuse.FOPEN_KEEP_CACHE, fs.OK
}

var (
	_ = (fs.FileReader)((*handle)(nil))
	_ = (fs.FileReleaser)((*handle)(nil))
)

type handle struct {
	file   io.Closer
	reader io.ReaderAt
}

func (h *handle) Read(_ context.Context, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	n, err := h.reader.ReadAt(dest, off)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, toErrno(err)
	}

	return fuse.ReadResultData(dest[:n]), fs.OK
}

func (h *handle) Release(context.Context) syscall.Errno {
	err := h.file.Close()
	if err != nil {
		return toErrno(err)
	}

	return fs.OK
}

func toErrno(err error) syscall.Errno {
	switch {
	case errors.Is(err, &vfs.NotFoundError{}):
		return unix.ENOENT
	case errors.Is(err, &vfs.InvalidStateError{}):
		return unix.EIO
	default:
		return fs.ToErrno(err)
	}
}
