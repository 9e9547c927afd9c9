package service

import (
	"context"
	"time"
)

// Pacer decides how long an unlock batch waits before each key derivation.
type Pacer interface {
	Wait(ctx context.Context) error
}

// NoDelay runs derivations back to back.
type NoDelay struct{}

func (NoDelay) Wait(ctx context.Context) error {
	return ctx.Err()
}

// FixedDelay sleeps for the same duration before every derivation.
type FixedDelay time.Duration

func (d FixedDelay) Wait(ctx context.Context) error {
	t := time.NewTimer(time.Duration(d))
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NewPacer returns [NoDelay] for d <= 0 and [FixedDelay] otherwise.
func NewPacer(d time.Duration) Pacer {
	if d <= 0 {
		return NoDelay{}
	}
	return FixedDelay(d)
}
