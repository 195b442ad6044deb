// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs_test

import (
	"testing"

	"github.com/aibor/smalifs/internal/convert"
	"github.com/aibor/smalifs/internal/tempstore"
	"github.com/aibor/smalifs/internal/vfs"
)

var testFiles = map[string]string{
	"com/example/Main.smali":         ".class public Lcom/example/Main;\n",
	"com/example/Main$Inner.smali":   ".class Lcom/example/Main$Inner;\n",
	"com/example/util/Strings.smali": ".class Lcom/example/util/Strings;\n",
	"org/Other.smali":                ".class Lorg/Other;\n",
	"Top.smali":                      ".class LTop;\n",
}

func newFS(
	t *testing.T,
	conv convert.Converter,
	opts vfs.Options,
) (*vfs.FileSystem, *tempstore.Store) {
	t.Helper()

	store := tempstore.New(t.TempDir())
	runner := &convert.Runner{
		Converter: conv,
		Store:     store,
	}

	fsys := vfs.New(convert.NewBytesSource("classes.dex", convert.DexHeader), runner, opts)
	t.Cleanup(func() { _ = fsys.Close() })

	return fsys, store
}
