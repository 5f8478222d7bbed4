// Package main contains the entrypoint for the hoardbot service.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hoardbot/internal/ai"
	"hoardbot/internal/bot"
	"hoardbot/internal/bot/tasks"
	"hoardbot/internal/config"
	"hoardbot/internal/database"
	"hoardbot/internal/logger"
	"hoardbot/internal/metadata"
	"hoardbot/internal/ratelimit"
	"hoardbot/internal/telegram"
	"hoardbot/internal/webhook"
	"hoardbot/internal/whatsapp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run wires the components together, starts the orchestrator, and returns
// the process exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.New(cfg.Log.Level, cfg.Log.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	aiClient, err := ai.NewClient(ctx, cfg.AI, log)
	if err != nil {
		log.Error("Failed to initialize AI client", "error", err)
		return 1
	}

	limiter := ratelimit.New(cfg.RateLimit.Window, cfg.RateLimit.MaxRequests)

	service := bot.NewService(bot.Deps{
		Logger:  log,
		Config:  cfg,
		Store:   store,
		AI:      aiClient,
		Fetcher: metadata.NewFetcher(log),
		Limiter: limiter,
	})

	var sender whatsapp.Sender
	if cfg.WhatsApp.AccessToken != "" && cfg.WhatsApp.PhoneNumberID != "" {
		sender = whatsapp.NewSender(cfg.WhatsApp, log)
	}
	httpSrv := webhook.New(log, cfg, service, store, sender)

	var tgTransport bot.Transport
	if cfg.Telegram.Token != "" {
		tg, err := telegram.New(cfg.Telegram.Token, log, service)
		if err != nil {
			log.Error("Failed to create Telegram transport", "error", err)
			return 1
		}
		tgTransport = tg
	} else {
		log.Info("Telegram token not set, running webhook-only")
	}

	taskMap := tasks.RegisterAllTasks(tasks.TaskDeps{
		Logger:  log,
		Store:   store,
		Limiter: limiter,
		Config:  cfg,
	})
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, taskMap)
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	app := bot.NewOrchestrator(log, sched, httpSrv, tgTransport)

	log.Info("Starting hoardbot")
	runErr := app.Run(ctx)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Service stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Service stopped gracefully")
	time.Sleep(time.Second)
	return 0
}
