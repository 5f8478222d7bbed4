package tasks

import (
	"context"
)

// newRateLimitSweepTask creates the scheduled task that evicts expired
// rate-limiter windows so the per-user map stays bounded.
func newRateLimitSweepTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "ratelimit_sweep")

	return func(ctx context.Context) error {
		removed := deps.Limiter.Sweep()
		log.InfoContext(ctx, "Swept rate limiter", "removed", removed, "remaining", deps.Limiter.Len())
		return nil
	}
}
