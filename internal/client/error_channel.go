package client

import (
	"sync"
	"time"
)

// ErrorChannel is a single user-visible error slot. A reported error
// replaces the previous one and disappears on its own after the TTL.
type ErrorChannel struct {
	mu      sync.Mutex
	current error
	seq     uint64
	timer   *time.Timer
	ttl     time.Duration
}

// NewErrorChannel returns an empty slot. A ttl <= 0 keeps errors until
// dismissed.
func NewErrorChannel(ttl time.Duration) *ErrorChannel {
	return &ErrorChannel{ttl: ttl}
}

// Report shows err. Nil is ignored.
func (c *ErrorChannel) Report(err error) {
	if err == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = err
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.ttl <= 0 {
		return
	}

	// the seq check drops a stale timer that fired while being replaced
	seq := c.seq
	c.timer = time.AfterFunc(c.ttl, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.seq == seq {
			c.current = nil
		}
	})
}

// Current returns the visible error, if any.
func (c *ErrorChannel) Current() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Dismiss clears the slot.
func (c *ErrorChannel) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
