// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/aibor/smalifs/internal/archive"
	"github.com/aibor/smalifs/internal/metrics"
	"github.com/aibor/smalifs/internal/mount"
	"github.com/aibor/smalifs/internal/vfs"
	"golang.org/x/sync/errgroup"
)

const (
	metricsPath            = "/metrics"
	metricsReadTimeout     = 5 * time.Second
	metricsShutdownTimeout = 5 * time.Second
)

func probe(fsys *vfs.FileSystem) error {
	valid, err := fsys.ProbeValid()
	if err != nil {
		return fmt.Errorf("probe: %w", err)
	}

	if !valid {
		return ErrInvalidInput
	}

	return nil
}

// list writes all entries below root in lexical order. Directories have a
// trailing slash and no size.
func list(fsys *vfs.FileSystem, root string, output io.Writer) error {
	return fs.WalkDir(fsys.FS(), root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if path != "." {
				fmt.Fprintf(output, "%10s  %s/\n", "-", path)
			}

			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return err //nolint:wrapcheck
		}

		fmt.Fprintf(output, "%10d  %s\n", info.Size(), path)

		return nil
	})
}

func cat(fsys *vfs.FileSystem, path string, output io.Writer) error {
	node, err := fsys.Lookup(path)
	if err != nil {
		return fmt.Errorf("lookup: %w", err)
	}

	file, err := fsys.GetContent(node)
	if err != nil {
		return fmt.Errorf("get content: %w", err)
	}
	defer file.Close()

	_, err = io.Copy(output, file)
	if err != nil {
		return fmt.Errorf("copy content: %w", err)
	}

	return nil
}

func export(fsys *vfs.FileSystem, path string) error {
	path, err := AbsoluteFilePath(path)
	if err != nil {
		return err
	}

	err = archive.WriteFSToFile(fsys.FS(), path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	slog.Info("Archive written", slog.String("path", path))

	return nil
}

// serve mounts the file system and optionally serves metrics until the
// context is done or the file system is unmounted.
func serve(ctx context.Context, fsys *vfs.FileSystem, dir, metricsAddr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)

	if metricsAddr != "" {
		server := newMetricsServer(metricsAddr)

		group.Go(func() error {
			err := server.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}

			return nil
		})

		group.Go(func() error {
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(
				context.WithoutCancel(ctx),
				metricsShutdownTimeout,
			)
			defer cancel()

			return server.Shutdown(shutdownCtx)
		})
	}

	group.Go(func() error {
		defer cancel()
		return mount.Serve(ctx, fsys, dir, mount.Options{})
	})

	return group.Wait() //nolint:wrapcheck
}

func newMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(metricsPath, metrics.Handler())

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadTimeout,
	}
}
