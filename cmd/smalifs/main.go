// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Smalifs presents the disassembled content of a DEX file as a read-only file
// tree.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/aibor/smalifs/internal/cmd"
	"golang.org/x/sys/unix"
)

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		unix.SIGINT,
		unix.SIGTERM,
		unix.SIGHUP,
	)

	exitCode := cmd.Run(ctx, os.Args[1:], cmd.IO{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})

	cancel()
	os.Exit(exitCode)
}
