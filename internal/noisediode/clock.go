package noisediode

import (
	"context"
	"time"
)

// Clock supplies wall-clock reads and the blocking waits between trigger
// dispatch and trigger effect. Injected so tests can run on a virtual
// timeline instead of real sleeps.
type Clock interface {
	Now() Timestamp
	// SleepUntil blocks until target has passed or ctx is done. A target
	// in the past returns immediately.
	SleepUntil(ctx context.Context, target Timestamp)
}

// SystemClock is the real-time Clock.
type SystemClock struct{}

func (SystemClock) Now() Timestamp {
	return FromTime(time.Now())
}

func (SystemClock) SleepUntil(ctx context.Context, target Timestamp) {
	d := target.Sub(FromTime(time.Now()))
	if d <= 0 {
		return
	}
	timer := time.NewTimer(time.Duration(d * float64(time.Second)))
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
