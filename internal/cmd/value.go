// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"strconv"
	"time"
)

// overrideValue is a [flag.Value] that sets a config override field only if
// the flag is actually given.
type overrideValue[T any] struct {
	dst    **T
	parse  func(string) (T, error)
	isBool bool
}

func (v *overrideValue[T]) String() string {
	if v.dst == nil || *v.dst == nil {
		return ""
	}

	return fmt.Sprint(**v.dst)
}

func (v *overrideValue[T]) Set(s string) error {
	value, err := v.parse(s)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	*v.dst = &value

	return nil
}

func (v *overrideValue[T]) IsBoolFlag() bool {
	return v.isBool
}

func stringOverride(dst **string) *overrideValue[string] {
	return &overrideValue[string]{
		dst:   dst,
		parse: func(s string) (string, error) { return s, nil },
	}
}

func boolOverride(dst **bool) *overrideValue[bool] {
	return &overrideValue[bool]{
		dst:    dst,
		parse:  strconv.ParseBool,
		isBool: true,
	}
}

func durationOverride(dst **time.Duration) *overrideValue[time.Duration] {
	return &overrideValue[time.Duration]{
		dst: dst,
		parse: func(s string) (time.Duration, error) {
			value, err := time.ParseDuration(s)
			if err != nil {
				return 0, err //nolint:wrapcheck
			}

			if value < 0 {
				return 0, fmt.Errorf("%s < 0: %w", s, ErrValueOutOfRange)
			}

			return value, nil
		},
	}
}

// limitOverride parses a byte limit. -1 disables the limit.
func limitOverride(dst **int64) *overrideValue[int64] {
	return &overrideValue[int64]{
		dst: dst,
		parse: func(s string) (int64, error) {
			value, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return 0, err //nolint:wrapcheck
			}

			if value < -1 {
				return 0, fmt.Errorf("%d < -1: %w", value, ErrValueOutOfRange)
			}

			return value, nil
		},
	}
}
