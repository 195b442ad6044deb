// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ConverterOverride is the sparse version of [Converter].
type ConverterOverride struct {
	Executable *string        `yaml:"executable"`
	Args       []string       `yaml:"args"`
	Timeout    *time.Duration `yaml:"timeout"`
}

// Override is the sparse version of [Config]. Only non-nil fields are
// applied by [Config.Merge].
type Override struct {
	Converter     ConverterOverride `yaml:"converter"`
	TempDir       *string           `yaml:"tmpdir"`
	OutputPrefix  *string           `yaml:"output_prefix"`
	MaxInputBytes *int64            `yaml:"max_input"`
	Strict        *bool             `yaml:"strict"`
	MetricsAddr   *string           `yaml:"metrics_addr"`
	Debug         *bool             `yaml:"debug"`
}

// LoadOverride decodes an [Override] from YAML. Since JSON is valid YAML, JSON
// input works as well. Unknown keys are rejected. Empty input results in an
// empty override.
func LoadOverride(reader io.Reader) (Override, error) {
	var override Override

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	err := decoder.Decode(&override)
	if err != nil && !errors.Is(err, io.EOF) {
		return Override{}, fmt.Errorf("decode: %w", err)
	}

	return override, nil
}

// LoadOverrideFile loads an [Override] from the file at the given path.
func LoadOverrideFile(path string) (Override, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Override{}, fmt.Errorf("read config file: %w", err)
	}

	override, err := LoadOverride(bytes.NewReader(data))
	if err != nil {
		return Override{}, fmt.Errorf("config file %s: %w", path, err)
	}

	return override, nil
}
