// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package monitor

import "sync"

// Countdown is a [Monitor] that reports cancellation once it has been polled
// more than the given number of times. It records all messages.
//
// It is intended for tests that need cancellation at a deterministic point.
type Countdown struct {
	mu       sync.Mutex
	left     int
	polls    int
	Messages []string
}

// NewCountdown returns a [Countdown] that allows the given number of polls
// before it reports cancellation. A negative number never cancels.
func NewCountdown(polls int) *Countdown {
	return &Countdown{left: polls}
}

// Cancelled implements [Monitor].
func (c *Countdown) Cancelled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.polls++

	if c.left < 0 {
		return false
	}

	if c.left == 0 {
		return true
	}

	c.left--

	return false
}

// SetMessage implements [Monitor].
func (c *Countdown) SetMessage(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Messages = append(c.Messages, msg)
}

// Polls returns how often [Countdown.Cancelled] has been called.
func (c *Countdown) Polls() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.polls
}
