package service

import (
	"context"
	"time"
)

// Delay is an artificial wait inserted before a read.
type Delay interface {
	// Wait blocks for the delay or until ctx ends, whichever is first.
	Wait(ctx context.Context) error
}

// FixedDelay waits a fixed duration.
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

func (d FixedDelay) String() string {
	return time.Duration(d).String()
}

type noDelay struct{}

func (noDelay) Wait(ctx context.Context) error { return ctx.Err() }

func (noDelay) String() string { return "0s" }

// NoDelay returns at once unless ctx is already done.
var NoDelay Delay = noDelay{}

// DelayFor returns NoDelay for d <= 0 and a FixedDelay otherwise.
func DelayFor(d time.Duration) Delay {
	if d <= 0 {
		return NoDelay
	}
	return FixedDelay(d)
}
