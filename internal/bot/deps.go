// Package bot contains the message-handling core: identity resolution,
// rate limiting, intent dispatch, and the per-intent handlers, plus the
// orchestrator that ties the transports together.
package bot

import (
	"log/slog"

	"hoardbot/internal/ai"
	"hoardbot/internal/config"
	"hoardbot/internal/database"
	"hoardbot/internal/metadata"
	"hoardbot/internal/ratelimit"
)

// Deps provides the collaborators the dispatcher and its handlers consume.
type Deps struct {
	Logger  *slog.Logger
	Config  *config.Config
	Store   database.Store
	AI      ai.Client
	Fetcher metadata.Fetcher
	Limiter *ratelimit.Limiter
}
