package bot

import (
	"context"
	"fmt"
	"net/url"

	"hoardbot/internal/database"
)

// handleAddLink stores a new bookmark for the URL, enriching it with page
// metadata when possible. The duplicate check is advisory: two concurrent
// adds of the same URL can both pass it (no unique constraint at the
// storage layer).
func (s *Service) handleAddLink(ctx context.Context, userID, rawURL, description string) string {
	log := s.deps.Logger.With("handler", "add_link")
	msgs := s.deps.Config.Messages

	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		log.InfoContext(ctx, "Rejecting invalid URL", "url", rawURL)
		return msgs.AddInvalidURL
	}

	dupCtx, cancelDup := context.WithTimeout(ctx, dbTimeout)
	existing, err := s.deps.Store.FindBookmarkByURL(dupCtx, userID, rawURL)
	cancelDup()
	if err != nil {
		log.ErrorContext(ctx, "Duplicate check failed", "user_id", userID, "error", err)
		return msgs.AddError
	}
	if existing != nil {
		return fmt.Sprintf(msgs.AddDuplicate, existing.Title, existing.URL)
	}

	bookmark := s.enrichBookmark(ctx, userID, rawURL, parsed.Hostname(), description)

	// Enrichment spends wall-clock time on the network, so the insert gets
	// its own database budget.
	insertCtx, cancelInsert := context.WithTimeout(ctx, dbTimeout)
	defer cancelInsert()

	if err := s.deps.Store.InsertBookmark(insertCtx, bookmark); err != nil {
		log.ErrorContext(ctx, "Failed to insert bookmark", "user_id", userID, "url", rawURL, "error", err)
		return msgs.AddError
	}

	reply := fmt.Sprintf(msgs.AddSuccess, bookmark.Title, bookmark.URL)
	if tags := hashtags(bookmark.Tags, 3); tags != "" {
		reply += "\n" + tags
	}
	return reply
}

// enrichBookmark fills in title, description, and tags from page metadata,
// falling back to the host name and the user-supplied description when the
// fetch fails or comes back empty.
func (s *Service) enrichBookmark(ctx context.Context, userID, rawURL, host, description string) *database.Bookmark {
	bookmark := &database.Bookmark{
		UserID:      userID,
		URL:         rawURL,
		Title:       host,
		Description: description,
		Reading:     false,
	}

	md, err := s.deps.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		s.deps.Logger.DebugContext(ctx, "Metadata enrichment failed, using fallbacks", "url", rawURL, "error", err)
		return bookmark
	}

	if md.Title != "" {
		bookmark.Title = md.Title
	}
	if bookmark.Description == "" && md.Description != "" {
		bookmark.Description = md.Description
	}
	bookmark.Tags = md.Tags
	return bookmark
}
