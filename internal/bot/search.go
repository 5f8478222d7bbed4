package bot

import (
	"context"
	"fmt"
	"strings"

	"hoardbot/internal/database"
)

// handleSearch runs a tag search when the query starts with "#", otherwise a
// free-text search over title, description, and URL.
func (s *Service) handleSearch(ctx context.Context, userID, query string) string {
	log := s.deps.Logger.With("handler", "search")
	msgs := s.deps.Config.Messages

	query = strings.TrimSpace(query)
	if query == "" {
		return msgs.Help
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var (
		bookmarks []database.Bookmark
		err       error
	)
	if tag, ok := strings.CutPrefix(query, "#"); ok {
		bookmarks, err = s.deps.Store.SearchBookmarksByTag(ctx, userID, strings.ToLower(tag), searchLimit)
	} else {
		bookmarks, err = s.deps.Store.SearchBookmarksByText(ctx, userID, query, searchLimit)
	}
	if err != nil {
		log.ErrorContext(ctx, "Search failed", "user_id", userID, "query", query, "error", err)
		return msgs.SearchError
	}

	if len(bookmarks) == 0 {
		return fmt.Sprintf(msgs.SearchNoResults, query)
	}

	header := fmt.Sprintf(msgs.SearchHeader, query, len(bookmarks))
	return header + formatBookmarkLines(bookmarks, 2)
}
