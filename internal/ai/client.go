// Package ai implements the chat-completion bridge to Google's Gemini API.
// Callers hand it a system prompt and a user message and get text back;
// failure modes that need distinct user-facing replies are surfaced as
// sentinel errors.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/genai"

	"hoardbot/internal/config"
)

// Distinguishable failure classes. Handlers map each to its own reply text.
var (
	// ErrRateLimited indicates the model is refusing requests for now.
	ErrRateLimited = errors.New("ai: rate limited")
	// ErrQuotaExhausted indicates a billing or quota problem.
	ErrQuotaExhausted = errors.New("ai: quota exhausted")
	// ErrUnavailable covers every other upstream failure.
	ErrUnavailable = errors.New("ai: unavailable")
)

// Client is the chat-completion interface the dispatcher consumes.
type Client interface {
	// Complete sends systemPrompt and userMessage to the model and returns
	// its text response.
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

type sdkClient struct {
	genaiClient *genai.Client
	log         *slog.Logger
	cfg         config.AIConfig
}

// NewClient creates a Gemini-backed Client from the AI configuration.
func NewClient(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ai API key is required")
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	logger := log.With("component", "ai_client")
	logger.Info("AI client initialized", "model", cfg.Model)
	return &sdkClient{
		genaiClient: gi,
		log:         logger,
		cfg:         cfg,
	}, nil
}

func (c *sdkClient) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	genCfg := &genai.GenerateContentConfig{
		Temperature:     &c.cfg.Temperature,
		MaxOutputTokens: c.cfg.MaxResponseTokens,
	}
	if systemPrompt != "" {
		genCfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}}
	}

	contents := []*genai.Content{
		{Role: genai.RoleUser, Parts: []*genai.Part{{Text: userMessage}}},
	}

	resp, err := c.generateWithRetries(ctx, contents, genCfg)
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		c.log.WarnContext(ctx, "Model returned empty response")
		return "", fmt.Errorf("%w: empty model response", ErrUnavailable)
	}
	return text, nil
}

// generateWithRetries calls the model, retrying transient 500/503 failures.
// Terminal failures are mapped onto the package sentinels.
func (c *sdkClient) generateWithRetries(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		resp, err := c.genaiClient.Models.GenerateContent(ctx, c.cfg.Model, contents, cfg)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.Code {
			case http.StatusTooManyRequests:
				c.log.WarnContext(ctx, "Model rate limited", "attempt", attempt+1)
				return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
			case http.StatusPaymentRequired, http.StatusForbidden:
				c.log.ErrorContext(ctx, "Model quota or billing failure", "code", apiErr.Code)
				return nil, fmt.Errorf("%w: %v", ErrQuotaExhausted, err)
			case http.StatusInternalServerError, http.StatusServiceUnavailable:
				if attempt < c.cfg.MaxRetries {
					c.log.InfoContext(ctx, "Retrying model call", "code", apiErr.Code, "delay", c.cfg.RetryDelay)
					select {
					case <-time.After(c.cfg.RetryDelay):
						continue
					case <-ctx.Done():
						return nil, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
					}
				}
			}
		}

		c.log.ErrorContext(ctx, "Model call failed", "attempt", attempt+1, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}
