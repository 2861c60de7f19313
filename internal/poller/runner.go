// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run starts the ticker loop and emits a Result on the provided
// channel after every cycle. No overlap. No retries.
func (p *Poller) Run(ctx context.Context, out chan<- Result) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case out <- p.PollOnce():
			case <-ctx.Done():
				return
			}
		}
	}
}
