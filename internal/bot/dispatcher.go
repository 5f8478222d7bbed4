package bot

import (
	"context"
	"fmt"
	"strings"

	"hoardbot/internal/database"
	"hoardbot/internal/intent"
)

// Result limits shared by the list-style handlers.
const (
	readingListLimit  = 5
	searchLimit       = 5
	boredReadingLimit = 10
	boredRecentLimit  = 20
)

// Dispatch routes a classified intent to its handler and returns the reply
// text. Handlers convert their own collaborator failures into user-safe
// replies, so Dispatch never fails.
func (s *Service) Dispatch(ctx context.Context, it intent.Intent, userID, message string) string {
	switch it.Kind {
	case intent.KindReadingList:
		return s.handleReadingList(ctx, userID)
	case intent.KindAddLink:
		return s.handleAddLink(ctx, userID, it.URL, it.Query)
	case intent.KindSearch:
		return s.handleSearch(ctx, userID, it.Query)
	case intent.KindBored:
		return s.handleBored(ctx, userID)
	case intent.KindChat:
		return s.handleChat(ctx, userID, message)
	default:
		return s.deps.Config.Messages.Help
	}
}

// formatBookmarkLines renders a numbered bookmark list with up to maxTags
// hashtags per entry.
func formatBookmarkLines(bookmarks []database.Bookmark, maxTags int) string {
	var b strings.Builder
	for i, bm := range bookmarks {
		fmt.Fprintf(&b, "%d. %s\n%s\n%s\n\n", i+1, bm.Title, bm.URL, hashtags(bm.Tags, maxTags))
	}
	return strings.TrimSpace(b.String())
}

func hashtags(tags []string, max int) string {
	if len(tags) > max {
		tags = tags[:max]
	}
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, "#"+t)
	}
	return strings.Join(parts, " ")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
