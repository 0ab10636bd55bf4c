// README: Suspension abstraction so ride stages can be faked in tests.
package lifecycle

import (
	"context"
	"time"
)

// Sleeper suspends the calling stage. A cancelled context interrupts the
// suspension immediately instead of letting the delay elapse.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type timerSleeper struct{}

// NewTimerSleeper returns the production Sleeper backed by a real timer.
func NewTimerSleeper() Sleeper { return timerSleeper{} }

func (timerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
