// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DexHeader is a minimal valid DEX magic for tests.
var DexHeader = []byte("dex\n035\x00")

// StaticConverter returns a [ConverterFunc] that writes the given files into
// the output directory. Keys are slash separated paths relative to the output
// directory. Keys ending with "/" create empty directories.
func StaticConverter(files map[string]string) ConverterFunc {
	return func(_ context.Context, _, outputDir string) error {
		return WriteTree(outputDir, files)
	}
}

// WriteTree writes the given files into dir. See [StaticConverter] for the
// format.
func WriteTree(dir string, files map[string]string) error {
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))

		if name[len(name)-1] == '/' {
			err := os.MkdirAll(path, 0o755)
			if err != nil {
				return fmt.Errorf("mkdir: %w", err)
			}

			continue
		}

		err := os.MkdirAll(filepath.Dir(path), 0o755)
		if err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}

		err = os.WriteFile(path, []byte(content), 0o600)
		if err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}

	return nil
}
