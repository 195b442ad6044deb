// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aibor/smalifs/internal/config"
	"github.com/aibor/smalifs/internal/convert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "baksmali", cfg.Converter.Executable)
	assert.Equal(t, convert.DefaultArgs(), cfg.Converter.Args)
	assert.Equal(t, os.TempDir(), cfg.TempDir)
	assert.Equal(t, "smalifs_file_system", cfg.OutputPrefix)
	assert.False(t, cfg.Strict)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestConfig_Merge(t *testing.T) {
	cfg := config.Default()

	cfg.Merge(config.Override{
		Converter: config.ConverterOverride{
			Executable: ptr("/opt/baksmali"),
			Timeout:    ptr(time.Minute),
		},
		Strict: ptr(true),
	})

	cfg.Merge(config.Override{
		Converter: config.ConverterOverride{
			Args: []string{"d", "{input}"},
		},
		Strict:        ptr(false),
		MaxInputBytes: ptr(int64(-1)),
	})

	expected := config.Default()
	expected.Converter = config.Converter{
		Executable: "/opt/baksmali",
		Args:       []string{"d", "{input}"},
		Timeout:    time.Minute,
	}
	expected.MaxInputBytes = -1

	assert.Equal(t, expected, cfg)
}

func TestConfig_Validate(t *testing.T) {
	cfg := config.Default()
	cfg.Converter.Executable = ""
	cfg.Converter.Timeout = -time.Second

	err := cfg.Validate()
	require.ErrorIs(t, err, config.ErrEmptyExecutable)
	require.ErrorIs(t, err, config.ErrNegativeTimeout)
	require.NotErrorIs(t, err, config.ErrEmptyOutputPrefix)
}

func TestConfig_Command(t *testing.T) {
	cfg := config.Default()
	cfg.Converter.Timeout = time.Second

	cmd := cfg.Command()
	assert.Equal(t, "baksmali", cmd.Executable)
	assert.Equal(t, time.Second, cmd.Timeout)

	cmd.Args[0] = "changed"
	assert.Equal(t, "disassemble", cfg.Converter.Args[0], "args are copied")
}

func TestLoadOverride(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    config.Override
		expectedErr bool
	}{
		{
			name: "empty",
		},
		{
			name: "yaml",
			input: "converter:\n" +
				"  executable: java\n" +
				"  args: [-jar, baksmali.jar, d, '{input}', -o, '{output}']\n" +
				"  timeout: 90s\n" +
				"strict: true\n" +
				"max_input: 1024\n",
			expected: config.Override{
				Converter: config.ConverterOverride{
					Executable: ptr("java"),
					Args:       []string{"-jar", "baksmali.jar", "d", "{input}", "-o", "{output}"},
					Timeout:    ptr(90 * time.Second),
				},
				Strict:        ptr(true),
				MaxInputBytes: ptr(int64(1024)),
			},
		},
		{
			name:  "json",
			input: `{"tmpdir": "/var/tmp", "metrics_addr": ":9100"}`,
			expected: config.Override{
				TempDir:     ptr("/var/tmp"),
				MetricsAddr: ptr(":9100"),
			},
		},
		{
			name:        "unknown key",
			input:       "kernel: /boot/vmlinuz\n",
			expectedErr: true,
		},
		{
			name:        "invalid duration",
			input:       "converter:\n  timeout: soon\n",
			expectedErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			override, err := config.LoadOverride(strings.NewReader(tt.input))
			if tt.expectedErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, override)
		})
	}
}

func TestLoadOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smalifs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_prefix: out\n"), 0o600))

	override, err := config.LoadOverrideFile(path)
	require.NoError(t, err)
	assert.Equal(t, ptr("out"), override.OutputPrefix)

	_, err = config.LoadOverrideFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
