// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package convert runs the external DEX to smali converter.
//
// A [Runner] probes an input [Source] for the DEX magic, materializes it into
// a temporary file if it is not a file already, and invokes a [Converter]
// that writes its output into a fresh temporary directory. The converter
// itself is a black box. By default it is the baksmali executable invoked by
// [Command].
package convert
