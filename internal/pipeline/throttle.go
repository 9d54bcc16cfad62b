package pipeline

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle paces the pipeline between external calls. Implementations can
// be swapped for adaptive backoff without touching call sites.
type Throttle interface {
	// Wait blocks until the next unit of work may start.
	Wait(ctx context.Context) error
}

// fixedInterval waits a constant interval between permits.
type fixedInterval struct {
	limiter *rate.Limiter
}

// NewFixedInterval returns a throttle that allows one unit of work per
// interval. A non-positive interval never blocks.
func NewFixedInterval(interval time.Duration) Throttle {
	if interval <= 0 {
		return fixedInterval{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return fixedInterval{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (f fixedInterval) Wait(ctx context.Context) error {
	return f.limiter.Wait(ctx)
}
