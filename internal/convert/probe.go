// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package convert

import (
	"bytes"
	"io"
	"log/slog"
)

const dexHeaderLen = 8

var dexMagic = []byte("dex\n")

// Prober performs a cheap structural check of a [Source].
type Prober interface {
	Probe(src Source) bool
}

// ProberFunc adapts a function to the [Prober] interface.
type ProberFunc func(src Source) bool

// Probe implements [Prober].
func (f ProberFunc) Probe(src Source) bool {
	return f(src)
}

// DexProber checks for the DEX file magic: "dex\n" followed by a three
// digit version and a NUL byte.
type DexProber struct{}

// Probe implements [Prober]. It never fails, any error is reported as
// invalid source.
func (DexProber) Probe(src Source) bool {
	reader, err := src.Open()
	if err != nil {
		slog.Debug("Probe open failed",
			slog.String("source", src.Name()),
			slog.Any("error", err),
		)

		return false
	}
	defer reader.Close()

	var header [dexHeaderLen]byte

	_, err = io.ReadFull(reader, header[:])
	if err != nil {
		return false
	}

	return IsDexHeader(header[:])
}

// IsDexHeader returns true if the given bytes start with a DEX magic.
func IsDexHeader(header []byte) bool {
	if len(header) < dexHeaderLen || !bytes.HasPrefix(header, dexMagic) {
		return false
	}

	for _, b := range header[len(dexMagic) : dexHeaderLen-1] {
		if b < '0' || b > '9' {
			return false
		}
	}

	return header[dexHeaderLen-1] == 0
}
