package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"hoardbot/internal/ai"
	"hoardbot/internal/config"
	"hoardbot/internal/database"
)

// handleChat answers free-form questions about the collection. Recent
// bookmarks are rendered into the system prompt so the model grounds its
// answer in what the user actually saved.
func (s *Service) handleChat(ctx context.Context, userID, message string) string {
	log := s.deps.Logger.With("handler", "chat")
	msgs := s.deps.Config.Messages

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	bookmarks, err := s.deps.Store.ListRecentBookmarks(dbCtx, userID, s.deps.Config.AI.ContextBookmarks)
	cancel()
	if err != nil {
		log.ErrorContext(ctx, "Failed to fetch chat context", "user_id", userID, "error", err)
		return msgs.ChatContextError
	}

	systemPrompt := fmt.Sprintf(ai.ChatSystemPrompt, bookmarkDigest(bookmarks))

	reply, err := s.deps.AI.Complete(ctx, systemPrompt, message)
	if err != nil {
		log.WarnContext(ctx, "AI completion failed", "user_id", userID, "error", err)
		return aiErrorReply(err, msgs)
	}

	return msgs.ChatPrefix + reply
}

// Analyze produces a personality analysis of the user's collection. Unlike
// the chat handler it sends a structured JSON summary rather than a prose
// digest, and it looks at a larger slice of the collection.
func (s *Service) Analyze(ctx context.Context, userID string) string {
	log := s.deps.Logger.With("handler", "analyze")
	msgs := s.deps.Config.Messages

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	bookmarks, err := s.deps.Store.ListRecentBookmarks(dbCtx, userID, s.deps.Config.AI.AnalysisBookmarks)
	cancel()
	if err != nil {
		log.ErrorContext(ctx, "Failed to fetch analysis context", "user_id", userID, "error", err)
		return msgs.ChatContextError
	}
	if len(bookmarks) == 0 {
		return msgs.BoredEmpty
	}

	summary, err := bookmarkSummaryJSON(bookmarks)
	if err != nil {
		log.ErrorContext(ctx, "Failed to build analysis summary", "user_id", userID, "error", err)
		return msgs.GeneralError
	}

	reply, err := s.deps.AI.Complete(ctx, ai.AnalysisSystemPrompt, fmt.Sprintf(ai.AnalysisUserPrompt, summary))
	if err != nil {
		log.WarnContext(ctx, "AI analysis failed", "user_id", userID, "error", err)
		return aiErrorReply(err, msgs)
	}

	return reply
}

// aiErrorReply maps the AI client sentinels to their user-facing replies.
func aiErrorReply(err error, msgs config.MessagesConfig) string {
	switch {
	case errors.Is(err, ai.ErrRateLimited):
		return msgs.ChatBusy
	case errors.Is(err, ai.ErrQuotaExhausted):
		return msgs.ChatCredits
	default:
		return msgs.ChatUnavailable
	}
}

// bookmarkDigest renders bookmarks into the numbered plain-text block the
// chat system prompt expects.
func bookmarkDigest(bookmarks []database.Bookmark) string {
	if len(bookmarks) == 0 {
		return "No bookmarks saved yet."
	}

	var sb strings.Builder
	for i, b := range bookmarks {
		fmt.Fprintf(&sb, "%d. %s", i+1, b.Title)
		if b.Description != "" {
			fmt.Fprintf(&sb, " - %s", b.Description)
		}
		fmt.Fprintf(&sb, "\n   URL: %s\n", b.URL)
		if len(b.Tags) > 0 {
			fmt.Fprintf(&sb, "   Tags: %s\n", strings.Join(b.Tags, ", "))
		}
		if b.Reading {
			sb.WriteString("   📚 Reading list\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

type bookmarkSummary struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Reading     bool     `json:"reading,omitempty"`
}

func bookmarkSummaryJSON(bookmarks []database.Bookmark) (string, error) {
	summaries := make([]bookmarkSummary, 0, len(bookmarks))
	for _, b := range bookmarks {
		summaries = append(summaries, bookmarkSummary{
			Title:       b.Title,
			Description: b.Description,
			Tags:        b.Tags,
			Reading:     b.Reading,
		})
	}
	data, err := json.Marshal(summaries)
	if err != nil {
		return "", fmt.Errorf("failed to marshal bookmark summary: %w", err)
	}
	return string(data), nil
}
