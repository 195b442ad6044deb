// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
)

// WriteFS walks the given [fs.FS] in lexical order and writes all
// directories and regular files with the given [Writer]. The root directory
// itself is not written. Other file types are skipped.
func WriteFS(fsys fs.FS, writer Writer) error {
	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		switch {
		case path == ".":
			return nil
		case entry.IsDir():
			return writer.WriteDirectory(path)
		case entry.Type().IsRegular():
			return writeRegular(fsys, path, writer)
		default:
			slog.Debug("Skip irregular file", slog.String("path", path))
			return nil
		}
	})
}

func writeRegular(fsys fs.FS, path string, writer Writer) error {
	source, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer source.Close()

	return writer.WriteRegular(path, source)
}

// WriteFSToFile writes the given [fs.FS] as CPIO archive into a new file at
// the given path. The file is removed if writing fails.
func WriteFSToFile(fsys fs.FS, path string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create archive file: %w", err)
	}

	writer := NewCPIOWriter(file)

	err = WriteFS(fsys, writer)
	if err == nil {
		err = writer.Close()
	}

	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("write archive: %w", err)
	}

	slog.Debug("Archive written", slog.String("path", path))

	return nil
}
