// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/aibor/smalifs/internal/convert"
	"github.com/aibor/smalifs/internal/tempstore"
)

// DefaultMaxInputBytes is the default limit for sources copied into a
// temporary file.
const DefaultMaxInputBytes = 256 << 20

// Converter configures the external converter.
type Converter struct {
	Executable string
	Args       []string
	Timeout    time.Duration
}

// Config is the complete smalifs configuration.
type Config struct {
	Converter Converter

	// TempDir is the directory temporary resources are created in.
	TempDir string

	// OutputPrefix is the prefix of converter output directories.
	OutputPrefix string

	// MaxInputBytes limits the size of non-file sources. Zero or negative
	// means no limit.
	MaxInputBytes int64

	// Strict fails on name collisions in the converter output instead of
	// keeping the first one.
	Strict bool

	// MetricsAddr is the listen address of the metrics endpoint. Empty
	// disables it.
	MetricsAddr string

	Debug bool
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Converter: Converter{
			Executable: convert.DefaultExecutable,
			Args:       convert.DefaultArgs(),
		},
		TempDir:       os.TempDir(),
		OutputPrefix:  tempstore.DefaultDirPrefix,
		MaxInputBytes: DefaultMaxInputBytes,
	}
}

// Merge applies all fields set in the given override.
func (c *Config) Merge(o Override) {
	set(&c.Converter.Executable, o.Converter.Executable)
	set(&c.Converter.Timeout, o.Converter.Timeout)
	set(&c.TempDir, o.TempDir)
	set(&c.OutputPrefix, o.OutputPrefix)
	set(&c.MaxInputBytes, o.MaxInputBytes)
	set(&c.Strict, o.Strict)
	set(&c.MetricsAddr, o.MetricsAddr)
	set(&c.Debug, o.Debug)

	if o.Converter.Args != nil {
		c.Converter.Args = slices.Clone(o.Converter.Args)
	}
}

// Validate returns an error if the config can not be used.
func (c *Config) Validate() error {
	var errs []error

	if c.Converter.Executable == "" {
		errs = append(errs, ErrEmptyExecutable)
	}

	if c.Converter.Timeout < 0 {
		errs = append(errs, ErrNegativeTimeout)
	}

	if c.OutputPrefix == "" {
		errs = append(errs, ErrEmptyOutputPrefix)
	}

	err := errors.Join(errs...)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	return nil
}

// Command returns the [convert.Command] for the converter config.
func (c *Config) Command() *convert.Command {
	return &convert.Command{
		Executable: c.Converter.Executable,
		Args:       slices.Clone(c.Converter.Args),
		Timeout:    c.Converter.Timeout,
	}
}

func set[T any](dst *T, value *T) {
	if value != nil {
		*dst = *value
	}
}
