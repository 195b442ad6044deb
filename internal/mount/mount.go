// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package mount

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aibor/smalifs/internal/vfs"
	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

const fsType = "smalifs"

// Options configure the FUSE mount.
type Options struct {
	// Debug enables go-fuse request logging.
	Debug bool

	// AllowOther allows other users to access the mount.
	AllowOther bool
}

// Mount mounts the given open file system at dir. The caller must unmount
// the returned server.
func Mount(fsys *vfs.FileSystem, dir string, opts Options) (*fuse.Server, error) {
	if !fsys.IsOpen() {
		return nil, &vfs.InvalidStateError{Op: "mount", State: fsys.State()}
	}

	server, err := fs.Mount(dir, newRoot(fsys), &fs.Options{
		MountOptions: fuse.MountOptions{
			AllowOther: opts.AllowOther,
			FsName:     fsys.Name(),
			Name:       fsType,
			Debug:      opts.Debug,
		},
		UID: uint32(os.Getuid()), //nolint:gosec
		GID: uint32(os.Getgid()), //nolint:gosec
	})
	if err != nil {
		return nil, fmt.Errorf("mount: %w", err)
	}

	return server, nil
}

// Serve mounts the given file system at dir and blocks until it is
// unmounted. It unmounts as soon as the context is done.
func Serve(ctx context.Context, fsys *vfs.FileSystem, dir string, opts Options) error {
	server, err := Mount(fsys, dir, opts)
	if err != nil {
		return err
	}

	slog.Info("Mounted", slog.String("dir", dir), slog.String("source", fsys.Name()))

	stop := context.AfterFunc(ctx, func() {
		err := server.Unmount()
		if err != nil {
			slog.Warn("Failed to unmount", slog.String("dir", dir), slog.Any("error", err))
		}
	})
	defer stop()

	server.Wait()

	slog.Info("Unmounted", slog.String("dir", dir))

	return nil
}
