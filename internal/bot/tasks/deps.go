// Package tasks implements the scheduled background tasks: database
// maintenance and rate-limiter sweeping.
package tasks

import (
	"log/slog"

	"hoardbot/internal/config"
	"hoardbot/internal/database"
	"hoardbot/internal/ratelimit"
)

// TaskDeps contains the dependencies available to scheduled tasks.
type TaskDeps struct {
	Logger  *slog.Logger
	Store   database.Store
	Limiter *ratelimit.Limiter
	Config  *config.Config
}
