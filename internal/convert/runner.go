// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aibor/smalifs/internal/metrics"
	"github.com/aibor/smalifs/internal/monitor"
	"github.com/aibor/smalifs/internal/tempstore"
)

const (
	inputPrefix = "input"
	inputSuffix = ".dex"
)

// Runner runs a [Converter] for a [Source].
type Runner struct {
	// Converter to run. Must not be nil.
	Converter Converter

	// Prober used by [Runner.ProbeValid]. Defaults to [DexProber].
	Prober Prober

	// Store creates the temporary output directory and input copies. Must
	// not be nil.
	Store *tempstore.Store

	// OutputPrefix for the temporary output directory. Defaults to
	// [tempstore.DefaultDirPrefix].
	OutputPrefix string

	// MaxInputBytes limits the size of a source that has to be copied into a
	// temporary file. Zero or negative means no limit.
	MaxInputBytes int64
}

// Result holds the temporary resources of a successful run.
type Result struct {
	// OutputDir is the directory the converter wrote into.
	OutputDir *tempstore.Resource

	// Input is the temporary copy of the source. It is nil if the source was
	// passed as is.
	Input *tempstore.Resource
}

// Remove removes all temporary resources of the result.
func (r *Result) Remove() error {
	var errs []error

	for _, res := range []*tempstore.Resource{r.OutputDir, r.Input} {
		if res != nil {
			errs = append(errs, res.Remove())
		}
	}

	return errors.Join(errs...)
}

// ProbeValid returns true if the source passes the cheap structural check of
// the [Prober]. It never fails.
func (r *Runner) ProbeValid(src Source) bool {
	prober := r.Prober
	if prober == nil {
		prober = DexProber{}
	}

	return prober.Probe(src)
}

// Run converts the given source into a new temporary output directory.
//
// The monitor is checked before anything is done and after the converter
// returned. If it is cancelled already, [ErrCancelled] is returned. The
// context is passed to the converter so it may stop early. If the converter
// fails, a [TransformError] is returned. All temporary resources are removed
// on any error. There are no retries.
//
// The caller owns the returned [Result] and must call [Result.Remove] once
// the output is not needed anymore.
func (r *Runner) Run(
	ctx context.Context,
	src Source,
	mon monitor.Monitor,
) (*Result, error) {
	if mon.Cancelled() {
		return nil, ErrCancelled
	}

	result := &Result{}

	output, err := r.run(ctx, src, mon, result)
	if err != nil {
		removeErr := result.Remove()
		if removeErr != nil {
			slog.Warn("Failed to remove temp resources",
				slog.String("source", src.Name()),
				slog.Any("error", removeErr),
			)
		}

		return nil, err
	}

	return output, nil
}

func (r *Runner) run(
	ctx context.Context,
	src Source,
	mon monitor.Monitor,
	result *Result,
) (*Result, error) {
	inputPath, err := r.materialize(src, result)
	if err != nil {
		return nil, err
	}

	result.OutputDir, err = r.Store.CreateDir(r.OutputPrefix)
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	start := time.Now()

	err = r.Converter.Convert(ctx, inputPath, result.OutputDir.Path())
	if err != nil {
		if ctx.Err() != nil || mon.Cancelled() {
			metrics.RecordConversion(metrics.ResultCancelled, time.Since(start))
			return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
		}

		metrics.RecordConversion(metrics.ResultFailure, time.Since(start))

		return nil, &TransformError{Source: src.Name(), Err: err}
	}

	metrics.RecordConversion(metrics.ResultSuccess, time.Since(start))

	slog.Debug("Conversion done",
		slog.String("source", src.Name()),
		slog.String("output", result.OutputDir.Path()),
		slog.Duration("duration", time.Since(start)),
	)

	// Cancellation from here on is handled by the indexer, which stops at
	// its first checkpoint.
	if mon.Cancelled() {
		slog.Debug("Cancelled after conversion", slog.String("source", src.Name()))
	}

	return result, nil
}

// materialize returns a file path for the source. Sources that are not
// backed by a file are copied into a temporary file first.
func (r *Runner) materialize(src Source, result *Result) (string, error) {
	if pathSrc, ok := src.(PathSource); ok {
		return pathSrc.Path(), nil
	}

	reader, err := src.Open()
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer reader.Close()

	result.Input, err = r.Store.CreateFile(inputPrefix, inputSuffix)
	if err != nil {
		return "", fmt.Errorf("input copy: %w", err)
	}

	limit := tempstore.NoLimit
	if r.MaxInputBytes > 0 {
		limit = r.MaxInputBytes
	}

	written, err := result.Input.CopyStream(reader, limit)
	metrics.AddMaterializedBytes(written)

	if err != nil {
		return "", fmt.Errorf("input copy: %w", err)
	}

	if limit >= 0 && written == limit && !exhausted(reader) {
		return "", &tempstore.ResourceError{
			Op:   "copy",
			Path: result.Input.Path(),
			Err:  fmt.Errorf("%w: %d bytes", ErrInputTooLarge, limit),
		}
	}

	slog.Debug("Source copied",
		slog.String("source", src.Name()),
		slog.String("path", result.Input.Path()),
		slog.Int64("bytes", written),
	)

	return result.Input.Path(), nil
}

func exhausted(reader io.Reader) bool {
	var probe [1]byte

	n, _ := io.ReadFull(reader, probe[:])

	return n == 0
}
