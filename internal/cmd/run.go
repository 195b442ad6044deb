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

	"github.com/aibor/smalifs/internal/config"
	"github.com/aibor/smalifs/internal/convert"
	"github.com/aibor/smalifs/internal/monitor"
	"github.com/aibor/smalifs/internal/tempstore"
	"github.com/aibor/smalifs/internal/vfs"
)

// Exit codes for specific failures. All other failures exit with -1.
const (
	exitInvalidInput = 1
	exitNotFound     = 2
	exitTransform    = 3
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func newFileSystem(cfg config.Config, input string, store *tempstore.Store) *vfs.FileSystem {
	runner := &convert.Runner{
		Converter:     cfg.Command(),
		Store:         store,
		OutputPrefix:  cfg.OutputPrefix,
		MaxInputBytes: cfg.MaxInputBytes,
	}

	return vfs.New(
		convert.NewFileSource(input),
		runner,
		vfs.Options{Strict: cfg.Strict},
	)
}

func run(ctx context.Context, flags *flags, cfg config.Config, stdio IO) error {
	store := tempstore.New(cfg.TempDir)
	defer cleanup(store)

	fsys := newFileSystem(cfg, flags.input, store)
	defer closeFileSystem(fsys)

	if flags.command == cmdProbe {
		return probe(fsys)
	}

	err := fsys.Open(ctx, monitor.NewContext(ctx))
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}

	// Do not work on partial trees.
	if fsys.Cancelled() {
		return ErrInterrupted
	}

	switch flags.command {
	case cmdList:
		root := "."
		if len(flags.args) > 0 {
			root = flags.args[0]
		}

		return list(fsys, root, stdio.Stdout)
	case cmdCat:
		return cat(fsys, flags.args[0], stdio.Stdout)
	case cmdExport:
		return export(fsys, flags.args[0])
	case cmdMount:
		return serve(ctx, fsys, flags.args[0], cfg.MetricsAddr)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, flags.command)
	}
}

func cleanup(store *tempstore.Store) {
	err := store.Cleanup()
	if err != nil {
		slog.Error(
			"Failed to remove temporary files",
			slog.String("dir", store.Dir()),
			slog.Any("error", err),
		)
	}
}

func closeFileSystem(fsys *vfs.FileSystem) {
	err := fsys.Close()
	if err != nil {
		slog.Error("Failed to close file system", slog.Any("error", err))
	}
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help is requested. So exit without error
	// in this case.
	if errors.Is(err, ErrHelp) {
		return 0
	}

	// ParseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return -1
}

func handleRunError(err error, output io.Writer) int {
	if err == nil || errors.Is(err, ErrHelp) {
		return 0
	}

	exitCode := -1

	switch {
	case errors.Is(err, ErrInvalidInput):
		// Probe result, not worth an error message.
		return exitInvalidInput
	case errors.Is(err, fs.ErrNotExist):
		exitCode = exitNotFound
	case errors.Is(err, &convert.TransformError{}):
		exitCode = exitTransform
	}

	fmt.Fprintf(output, "Error [%s]: %v\n", name, err)

	return exitCode
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, stdio IO) int {
	flags := newFlags(stdio.Stderr)

	err := flags.ParseArgs(append(EnvArgs(), args...))
	if err != nil {
		return handleParseArgsError(err)
	}

	cfg, err := flags.config()
	if err != nil {
		return handleRunError(err, stdio.Stderr)
	}

	setupLogging(stdio.Stderr, cfg.Debug)

	err = run(ctx, flags, cfg, stdio)
	if err != nil {
		return handleRunError(err, stdio.Stderr)
	}

	return 0
}
