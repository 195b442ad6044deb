// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package monitor provides the cooperative cancellation and progress signal
// polled by long running operations.
package monitor

import (
	"context"
	"log/slog"
	"sync"
)

// Monitor is polled at well defined checkpoints. Implementations must not
// block.
type Monitor interface {
	// Cancelled reports whether the operation should stop.
	Cancelled() bool

	// SetMessage sets a human readable progress message.
	SetMessage(msg string)
}

// Nop is a [Monitor] that is never cancelled and discards messages.
type Nop struct{}

// Cancelled implements [Monitor].
func (Nop) Cancelled() bool { return false }

// SetMessage implements [Monitor].
func (Nop) SetMessage(string) {}

// Context is a [Monitor] that is cancelled once its context is done.
//
// Messages are logged at debug level and the last one is kept.
type Context struct {
	ctx context.Context //nolint:containedctx

	mu      sync.Mutex
	message string
}

// NewContext returns a new [Context] monitor for the given context.
func NewContext(ctx context.Context) *Context {
	return &Context{ctx: ctx}
}

// Cancelled implements [Monitor].
func (m *Context) Cancelled() bool {
	return m.ctx.Err() != nil
}

// SetMessage implements [Monitor].
func (m *Context) SetMessage(msg string) {
	m.mu.Lock()
	m.message = msg
	m.mu.Unlock()

	slog.Debug("Progress", slog.String("message", msg))
}

// Message returns the last message set.
func (m *Context) Message() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.message
}
