// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package tempstore

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/puzpuzpuz/xsync/v4"
)

const (
	// DefaultPrefix is used for temporary files if no prefix is given.
	DefaultPrefix = "smalifs_"

	// DefaultSuffix is used for temporary files if no suffix is given.
	DefaultSuffix = ".tmp"

	// DefaultDirPrefix is used for temporary directories if no prefix is
	// given.
	DefaultDirPrefix = "smalifs_file_system"

	minPrefixLen = 3
	prefixFiller = "_"
	dirAttempts  = 16
	dirMode      = 0o700
)

// Store creates temporary files and directories and keeps track of all of
// them that have not been removed yet.
//
// It is safe for concurrent use.
type Store struct {
	dir       string
	resources *xsync.Map[string, *Resource]
}

// New creates a new [Store] that creates its resources in the given
// directory. If dir is the empty string, the default directory is used as
// returned by [os.TempDir].
func New(dir string) *Store {
	return &Store{
		dir:       dir,
		resources: xsync.NewMap[string, *Resource](),
	}
}

// Dir returns the directory resources are created in.
func (s *Store) Dir() string {
	if s.dir == "" {
		return os.TempDir()
	}

	return s.dir
}

// CreateFile creates a new empty temporary file.
//
// Prefixes shorter than 3 characters are padded with "_". Empty prefix and
// suffix are replaced by [DefaultPrefix] and [DefaultSuffix]. It returns a
// [ResourceError] if the file can not be created.
func (s *Store) CreateFile(prefix, suffix string) (*Resource, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	if suffix == "" {
		suffix = DefaultSuffix
	}

	file, err := os.CreateTemp(s.dir, padPrefix(prefix)+"*"+suffix)
	if err != nil {
		return nil, &ResourceError{Op: "create file", Err: err}
	}

	path := file.Name()

	err = file.Close()
	if err != nil {
		_ = os.Remove(path)
		return nil, &ResourceError{Op: "create file", Path: path, Err: err}
	}

	return s.register(path, false), nil
}

// CreateDir creates a new empty temporary directory named
// "<prefix>_<suffix>" with suffix being a random 16 bit number as
// hexadecimal string.
//
// Collisions with existing directories are retried with a new suffix a few
// times before giving up. It returns a [ResourceError] if the directory can
// not be created.
func (s *Store) CreateDir(prefix string) (*Resource, error) {
	if prefix == "" {
		prefix = DefaultDirPrefix
	}

	for range dirAttempts {
		suffix, err := randomSuffix()
		if err != nil {
			return nil, &ResourceError{Op: "create dir", Err: err}
		}

		path := filepath.Join(s.Dir(), fmt.Sprintf("%s_%04x", prefix, suffix))

		err = os.Mkdir(path, dirMode)
		if errors.Is(err, fs.ErrExist) {
			slog.Debug("Temp dir exists, retry", slog.String("path", path))
			continue
		}

		if err != nil {
			return nil, &ResourceError{Op: "create dir", Path: path, Err: err}
		}

		return s.register(path, true), nil
	}

	return nil, &ResourceError{
		Op:   "create dir",
		Path: filepath.Join(s.Dir(), prefix+"_*"),
		Err:  ErrNameExhausted,
	}
}

// Len returns the number of resources that have not been removed yet.
func (s *Store) Len() int {
	return s.resources.Size()
}

// Cleanup removes all resources that have not been removed yet.
//
// All resources are tried, errors are joined.
func (s *Store) Cleanup() error {
	var errs []error

	s.resources.Range(func(_ string, res *Resource) bool {
		errs = append(errs, res.Remove())
		return true
	})

	return errors.Join(errs...)
}

func (s *Store) register(path string, isDir bool) *Resource {
	res := &Resource{
		path:  path,
		isDir: isDir,
		store: s,
	}

	s.resources.Store(path, res)

	slog.Debug("Temp resource created",
		slog.String("path", path),
		slog.Bool("dir", isDir),
	)

	return res
}

func (s *Store) unregister(path string) {
	s.resources.Delete(path)
}

func padPrefix(prefix string) string {
	if length := utf8.RuneCountInString(prefix); length < minPrefixLen {
		prefix += strings.Repeat(prefixFiller, minPrefixLen-length)
	}

	return prefix
}

func randomSuffix() (uint16, error) {
	var buf [2]byte

	_, err := rand.Read(buf[:])
	if err != nil {
		return 0, fmt.Errorf("read random: %w", err)
	}

	return binary.BigEndian.Uint16(buf[:]), nil
}
