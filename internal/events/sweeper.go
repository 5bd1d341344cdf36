package events

import (
	"context"
	"time"

	"github.com/wayfare-app/wayfare/pkg/lifecycle"
)

// Start wires the background pending sweep into the lifecycle coordinator.
// The sweep picks up PENDING events whose intake trigger was lost (process
// crash between enqueue and processing). A non-positive interval disables it.
func (r *repo) Start(lc *lifecycle.Coordinator) error {
	r.runCtx = lc.Context()

	if r.sweep <= 0 {
		r.logger.Info("pending sweep disabled")
		close(r.done)
		return nil
	}

	r.logger.Info("starting pending sweep", "interval", r.sweep)
	go r.runSweep(lc.Context())

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		<-r.done
		r.logger.Info("pending sweep stopped")
	})

	return nil
}

func (r *repo) runSweep(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			processed, err := r.ProcessPending(ctx)
			if err != nil {
				r.logger.Error("pending sweep failed", "error", err)
				continue
			}
			if processed > 0 {
				r.logger.Info("pending sweep completed", "processed", processed)
			}
		}
	}
}
