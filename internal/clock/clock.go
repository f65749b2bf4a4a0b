// Package clock provides the fixed-period tick source.
package clock

import (
	"context"
	"time"
)

// DefaultPeriod is the nominal tick period.
const DefaultPeriod = time.Millisecond

// Run calls fn once per period until ctx is done. Ticks the runtime could not
// deliver on time are replayed so the tick count tracks elapsed time.
func Run(ctx context.Context, period time.Duration, fn func()) {
	if period <= 0 {
		period = DefaultPeriod
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	start := time.Now()
	var delivered int64
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			due := int64(now.Sub(start) / period)
			for delivered < due {
				if ctx.Err() != nil {
					return
				}
				fn()
				delivered++
			}
		}
	}
}
