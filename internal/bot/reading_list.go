package bot

import (
	"context"
	"fmt"
)

// handleReadingList replies with the five most recent reading-list
// bookmarks, newest first.
func (s *Service) handleReadingList(ctx context.Context, userID string) string {
	log := s.deps.Logger.With("handler", "reading_list")
	msgs := s.deps.Config.Messages

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	bookmarks, err := s.deps.Store.ListReadingBookmarks(ctx, userID, readingListLimit)
	if err != nil {
		log.ErrorContext(ctx, "Failed to fetch reading list", "user_id", userID, "error", err)
		return msgs.ReadingListError
	}

	if len(bookmarks) == 0 {
		return msgs.ReadingListEmpty
	}

	header := fmt.Sprintf(msgs.ReadingListHeader, len(bookmarks), plural(len(bookmarks)))
	return header + formatBookmarkLines(bookmarks, 2)
}
