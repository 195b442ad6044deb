// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"os"
	"strings"
)

const envArgsName = "SMALIFS_ARGS"

// EnvArgs returns smalifs flags from the environment. They are parsed before
// the flags given on the command line.
func EnvArgs() []string {
	return strings.Fields(os.Getenv(envArgsName))
}
