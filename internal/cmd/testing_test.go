// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aibor/smalifs/internal/convert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Writes two smali files into the output directory given as $1.
const converterScript = `set -e
mkdir -p "$1/com/example"
printf '.class Lcom/example/Main;\n' > "$1/com/example/Main.smali"
printf '.class LTop;\n' > "$1/Top.smali"
`

const failingScript = `echo "Exception in thread main" >&2; exit 3`

// writeConfig writes a config file that runs the given shell script as
// converter and uses a fresh temp dir. It returns the config file path and
// the temp dir.
func writeConfig(t *testing.T, script string) (string, string) {
	t.Helper()

	tmpDir := t.TempDir()

	data, err := yaml.Marshal(map[string]any{
		"converter": map[string]any{
			"executable": "sh",
			"args":       []string{"-c", script, "sh", convert.OutputPlaceholder, convert.InputPlaceholder},
		},
		"tmpdir": tmpDir,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "smalifs.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path, tmpDir
}

func writeInput(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "classes.dex")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}
