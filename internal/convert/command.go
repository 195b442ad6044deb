// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package convert

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Placeholders replaced in [Command.Args].
const (
	InputPlaceholder  = "{input}"
	OutputPlaceholder = "{output}"
)

// DefaultExecutable is the converter invoked if none is configured.
const DefaultExecutable = "baksmali"

const (
	stderrTailLines = 20
	maxLineLength   = 1 << 20
)

// DefaultArgs returns the baksmali arguments used if none are configured.
//
// Single job, API level 15, parameter registers, accessor comments and debug
// info.
func DefaultArgs() []string {
	return []string{
		"disassemble",
		"--api", "15",
		"--jobs", "1",
		"--parameter-registers",
		"--accessor-comments",
		"--debug-info",
		"--output", OutputPlaceholder,
		InputPlaceholder,
	}
}

// Converter converts the input file into a set of files written into the
// output directory.
type Converter interface {
	Convert(ctx context.Context, input, outputDir string) error
}

// ConverterFunc adapts a function to the [Converter] interface.
type ConverterFunc func(ctx context.Context, input, outputDir string) error

// Convert implements [Converter].
func (f ConverterFunc) Convert(ctx context.Context, input, outputDir string) error {
	return f(ctx, input, outputDir)
}

var _ Converter = (*Command)(nil)

// Command is a [Converter] that runs an external executable.
type Command struct {
	// Executable name or path.
	Executable string

	// Args passed to the executable. [InputPlaceholder] and
	// [OutputPlaceholder] are replaced in every argument.
	Args []string

	// Timeout for a single run. Zero means no timeout.
	Timeout time.Duration
}

// NewCommand returns a new [Command] for the default converter.
func NewCommand() *Command {
	return &Command{
		Executable: DefaultExecutable,
		Args:       DefaultArgs(),
	}
}

// Convert implements [Converter].
//
// The process is killed if the context is done. Output on stdout and stderr
// is logged at debug level. It returns an [ExecError] if the process can not
// be started or does not exit successfully.
func (c *Command) Convert(ctx context.Context, input, outputDir string) error {
	if c.Executable == "" {
		return ErrEmptyExecutable
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Executable, c.expandArgs(input, outputDir)...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	slog.Debug("Run converter", slog.String("command", cmd.String()))

	err = cmd.Start()
	if err != nil {
		return &ExecError{Err: err}
	}

	tail := &lineTail{max: stderrTailLines}

	var group errgroup.Group

	group.Go(func() error {
		return logLines(stdout, "stdout", nil)
	})

	group.Go(func() error {
		return logLines(stderr, "stderr", tail)
	})

	// All output must be consumed before waiting for the process.
	readErr := group.Wait()

	err = cmd.Wait()
	if err != nil {
		return &ExecError{Err: err, Stderr: tail.String()}
	}

	if readErr != nil {
		return fmt.Errorf("read output: %w", readErr)
	}

	return nil
}

func (c *Command) expandArgs(input, outputDir string) []string {
	replacer := strings.NewReplacer(
		InputPlaceholder, input,
		OutputPlaceholder, outputDir,
	)

	args := make([]string, len(c.Args))
	for idx, arg := range c.Args {
		args[idx] = replacer.Replace(arg)
	}

	return args
}

func logLines(reader io.Reader, stream string, tail *lineTail) error {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(nil, maxLineLength)

	for scanner.Scan() {
		line := scanner.Text()

		slog.Debug("Converter output",
			slog.String("stream", stream),
			slog.String("line", line),
		)

		tail.add(line)
	}

	err := scanner.Err()
	if err != nil {
		// Keep draining, so the process does not block on a full pipe.
		_, _ = io.Copy(io.Discard, reader)
		return fmt.Errorf("%s: %w", stream, err)
	}

	return nil
}

// lineTail keeps the last lines added. A nil lineTail discards everything.
type lineTail struct {
	mu    sync.Mutex
	max   int
	lines []string
}

func (t *lineTail) add(line string) {
	if t == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.lines = append(t.lines, line)
	if len(t.lines) > t.max {
		t.lines = t.lines[len(t.lines)-t.max:]
	}
}

func (t *lineTail) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return strings.Join(t.lines, "\n")
}
