// Package whatsapp delivers outbound messages through the WhatsApp Business
// (Meta graph) API. WhatsApp has no reply-in-response channel, so the relay
// webhook pushes replies through this sender.
package whatsapp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"hoardbot/internal/config"
)

const (
	graphBaseURL = "https://graph.facebook.com/v17.0"
	sendTimeout  = 10 * time.Second
)

// Sender pushes a text message to a recipient.
type Sender interface {
	Send(ctx context.Context, to, text string) error
}

type graphSender struct {
	client        *resty.Client
	log           *slog.Logger
	phoneNumberID string
}

type sendRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type textBody struct {
	Body string `json:"body"`
}

// NewSender creates a Sender for the configured WhatsApp business number.
func NewSender(cfg config.WhatsAppConfig, log *slog.Logger) Sender {
	client := resty.New().
		SetBaseURL(graphBaseURL).
		SetTimeout(sendTimeout).
		SetAuthToken(cfg.AccessToken)

	return &graphSender{
		client:        client,
		log:           log.With("component", "whatsapp_sender"),
		phoneNumberID: cfg.PhoneNumberID,
	}
}

func (s *graphSender) Send(ctx context.Context, to, text string) error {
	// The graph API wants the number without a leading +.
	to = strings.TrimPrefix(to, "+")

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(sendRequest{
			MessagingProduct: "whatsapp",
			To:               to,
			Type:             "text",
			Text:             textBody{Body: text},
		}).
		Post(fmt.Sprintf("/%s/messages", s.phoneNumberID))
	if err != nil {
		return fmt.Errorf("failed to send whatsapp message: %w", err)
	}
	if resp.IsError() {
		s.log.ErrorContext(ctx, "WhatsApp API rejected message", "status", resp.StatusCode(), "body", resp.String())
		return fmt.Errorf("whatsapp API returned status %d", resp.StatusCode())
	}

	s.log.DebugContext(ctx, "WhatsApp message sent", "to", to)
	return nil
}
