// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"io"
	"log/slog"
	"time"

	"github.com/rs/zerolog"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

func setupLogging(writer io.Writer, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	output := zerolog.ConsoleWriter{
		Out:        writer,
		NoColor:    true,
		TimeFormat: time.TimeOnly,
	}

	logger := zerolog.New(output).With().Timestamp().Logger()

	slog.SetDefault(slog.New(slogzerolog.Option{
		Level:  level,
		Logger: &logger,
	}.NewZerologHandler()))
}
