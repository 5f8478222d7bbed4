package bot

import (
	"context"
	"math/rand/v2"
	"strings"

	"hoardbot/internal/database"
)

// handleBored suggests one random bookmark, preferring the reading list and
// falling back to recent saves when nothing is marked for reading.
func (s *Service) handleBored(ctx context.Context, userID string) string {
	log := s.deps.Logger.With("handler", "bored")
	msgs := s.deps.Config.Messages

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	bookmarks, err := s.deps.Store.ListReadingBookmarks(ctx, userID, boredReadingLimit)
	if err != nil {
		log.ErrorContext(ctx, "Failed to fetch reading candidates", "user_id", userID, "error", err)
		return msgs.BoredError
	}
	if len(bookmarks) == 0 {
		bookmarks, err = s.deps.Store.ListRecentBookmarks(ctx, userID, boredRecentLimit)
		if err != nil {
			log.ErrorContext(ctx, "Failed to fetch recent candidates", "user_id", userID, "error", err)
			return msgs.BoredError
		}
	}
	if len(bookmarks) == 0 {
		return msgs.BoredEmpty
	}

	pick := bookmarks[rand.IntN(len(bookmarks))]
	return msgs.BoredHeader + formatSuggestion(pick, msgs.BoredNoDesc)
}

func formatSuggestion(b database.Bookmark, noDesc string) string {
	var sb strings.Builder
	sb.WriteString(b.Title)
	sb.WriteString("\n")
	sb.WriteString(b.URL)
	if tags := hashtags(b.Tags, 3); tags != "" {
		sb.WriteString("\n")
		sb.WriteString(tags)
	}
	sb.WriteString("\n\n")
	if b.Description != "" {
		sb.WriteString(b.Description)
	} else {
		sb.WriteString(noDesc)
	}
	return sb.String()
}
