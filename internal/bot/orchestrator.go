package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Transport is a long-running message transport (HTTP webhook server,
// Telegram long-poller). Run blocks until ctx is cancelled or the transport
// fails.
type Transport interface {
	Run(ctx context.Context) error
}

// Orchestrator owns the lifecycle of the transports and the scheduler.
type Orchestrator struct {
	logger     *slog.Logger
	transports []Transport
	scheduler  *Scheduler
}

// NewOrchestrator creates the orchestrator. Nil transports are skipped so
// callers can pass optional components unconditionally.
func NewOrchestrator(logger *slog.Logger, scheduler *Scheduler, transports ...Transport) *Orchestrator {
	kept := make([]Transport, 0, len(transports))
	for _, t := range transports {
		if t != nil {
			kept = append(kept, t)
		}
	}
	return &Orchestrator{
		logger:     logger.With("component", "orchestrator"),
		transports: kept,
		scheduler:  scheduler,
	}
}

// Run starts every component and blocks until shutdown. A transport failure
// cancels the group and brings everything else down.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.logger.Info("Starting orchestrator", "transports", len(o.transports))

	g, gCtx := errgroup.WithContext(ctx)

	for _, t := range o.transports {
		g.Go(func() error {
			if err := t.Run(gCtx); err != nil {
				return fmt.Errorf("transport stopped: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		if err := o.scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		o.logger.Info("Shutdown signal received, stopping scheduler")

		if err := o.scheduler.Stop(); err != nil {
			o.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		o.logger.Error("Orchestrator stopped due to error", "error", err)
		return err
	}

	o.logger.Info("Orchestrator stopped gracefully")
	return nil
}
