// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/cavaliergopher/cpio"
)

const (
	dirLinks  = 2
	fileLinks = 1
	dirPerm   = 0o755
)

// ErrNotRegular is returned if a file that is not a regular file is written
// as one.
var ErrNotRegular = errors.New("not a regular file")

var _ Writer = (*CPIOWriter)(nil)

// CPIOWriter implements [Writer] for [cpio.Writer].
type CPIOWriter struct {
	cpioWriter *cpio.Writer
}

// NewCPIOWriter creates a new archive writer.
func NewCPIOWriter(w io.Writer) *CPIOWriter {
	return &CPIOWriter{cpio.NewWriter(w)}
}

// Close writes the trailer and flushes the archive. It does not close the
// underlying [io.Writer].
func (w *CPIOWriter) Close() error {
	err := w.cpioWriter.Close()
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

func (w *CPIOWriter) writeHeader(hdr *cpio.Header) error {
	err := w.cpioWriter.WriteHeader(hdr)
	if err != nil {
		return fmt.Errorf("write header for %s: %w", hdr.Name, err)
	}

	return nil
}

// WriteDirectory adds a directory entry for the given path to the archive.
func (w *CPIOWriter) WriteDirectory(path string) error {
	return w.writeHeader(&cpio.Header{
		Name:    path,
		Mode:    cpio.TypeDir | dirPerm,
		Links:   dirLinks,
		ModTime: time.Unix(0, 0),
	})
}

// WriteRegular copies the content of source into the archive at the given
// path. Permission bits are taken from the source.
func (w *CPIOWriter) WriteRegular(path string, source fs.File) error {
	info, err := source.Stat()
	if err != nil {
		return fmt.Errorf("read info: %w", err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegular, path)
	}

	modTime := info.ModTime()
	if modTime.IsZero() {
		modTime = time.Unix(0, 0)
	}

	err = w.writeHeader(&cpio.Header{
		Name:    path,
		Mode:    cpio.TypeReg | cpio.FileMode(info.Mode().Perm()),
		Size:    info.Size(),
		Links:   fileLinks,
		ModTime: modTime,
	})
	if err != nil {
		return err
	}

	_, err = io.Copy(w.cpioWriter, source)
	if err != nil {
		return fmt.Errorf("write body for %s: %w", path, err)
	}

	return nil
}
