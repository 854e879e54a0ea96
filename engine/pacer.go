package engine

import (
	"context"
	"time"
)

// DefaultOrderPause is the delay between consecutive order submissions,
// there to stay under the brokerage's rate limit. It is a throttle, not
// a correctness requirement.
const DefaultOrderPause = 2 * time.Second

// Pacer spaces out order submissions. It is a policy of the engine, not
// inline sleeping in the decision logic, so tests can swap it out.
type Pacer interface {
	Pause(ctx context.Context)
}

// FixedDelay pauses for a constant duration, cut short if the context
// is canceled.
type FixedDelay time.Duration

func (d FixedDelay) Pause(ctx context.Context) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(time.Duration(d))
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// None is the no-op pacer.
type None struct{}

func (None) Pause(context.Context) {}
