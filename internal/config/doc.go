// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config provides the smalifs configuration and its sources.
//
// A [Config] starts from [Default]. Sparse [Override]s loaded from a YAML (or
// JSON) file and from command line flags are merged on top in that order.
package config
