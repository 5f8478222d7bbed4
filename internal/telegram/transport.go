// Package telegram provides the optional direct Telegram transport. It
// long-polls for updates and routes every text message through the same
// pipeline the HTTP webhook uses.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"hoardbot/internal/bot"
)

// Transport is the Telegram long-polling transport.
type Transport struct {
	logger  *slog.Logger
	service *bot.Service
	tg      *tgbot.Bot
}

// New creates the transport. The token is validated lazily by the first
// API call inside Run.
func New(token string, logger *slog.Logger, service *bot.Service) (*Transport, error) {
	t := &Transport{
		logger:  logger.With("component", "telegram"),
		service: service,
	}

	tg, err := tgbot.New(token, tgbot.WithDefaultHandler(t.handleUpdate))
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	t.tg = tg

	return t, nil
}

// Run long-polls until ctx is cancelled. A listener that stops on its own is
// treated as a failure so the orchestrator shuts the service down.
func (t *Transport) Run(ctx context.Context) error {
	t.logger.Info("Starting Telegram listener")
	t.tg.Start(ctx)
	t.logger.Info("Telegram listener stopped")

	if ctx.Err() == nil {
		return errors.New("telegram listener stopped unexpectedly")
	}
	return nil
}

func (t *Transport) handleUpdate(ctx context.Context, tg *tgbot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	msg := update.Message
	reply, err := t.service.HandleMessage(ctx, bot.Inbound{
		Body:       msg.Text,
		TelegramID: strconv.FormatInt(msg.From.ID, 10),
	})
	if err != nil && reply == "" {
		t.logger.ErrorContext(ctx, "Message handling failed", "user_id", msg.From.ID, "error", err)
		return
	}

	if _, err := tg.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   reply,
	}); err != nil {
		t.logger.ErrorContext(ctx, "Failed to send reply", "chat_id", msg.Chat.ID, "error", err)
	}
}
