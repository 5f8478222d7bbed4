package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Store defines the data operations the dispatcher and transports consume.
// Methods accept context.Context for cancellation and timeouts. Lookup
// methods return (nil, nil) / ("", nil) when no row matches.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// GetUserIDByTelegramID resolves a Telegram id to an internal user id.
	GetUserIDByTelegramID(ctx context.Context, telegramID string) (string, error)

	// GetUserIDByPhone resolves a phone number to an internal user id.
	GetUserIDByPhone(ctx context.Context, phone string) (string, error)

	// ListReadingBookmarks returns up to limit reading-list bookmarks, newest first.
	ListReadingBookmarks(ctx context.Context, userID string, limit int) ([]Bookmark, error)

	// ListRecentBookmarks returns up to limit bookmarks, newest first.
	ListRecentBookmarks(ctx context.Context, userID string, limit int) ([]Bookmark, error)

	// FindBookmarkByURL returns the bookmark with the exact URL, if any.
	FindBookmarkByURL(ctx context.Context, userID, url string) (*Bookmark, error)

	// InsertBookmark stores a new bookmark, assigning its id and timestamps.
	InsertBookmark(ctx context.Context, b *Bookmark) error

	// SearchBookmarksByTag returns up to limit bookmarks containing the exact tag.
	SearchBookmarksByTag(ctx context.Context, userID, tag string, limit int) ([]Bookmark, error)

	// SearchBookmarksByText returns up to limit bookmarks whose title,
	// description, or URL contains term (case-insensitive).
	SearchBookmarksByText(ctx context.Context, userID, term string, limit int) ([]Bookmark, error)

	// RunSQLMaintenance performs periodic database maintenance (VACUUM, ANALYZE).
	RunSQLMaintenance(ctx context.Context) error
}

type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a Store backed by sqlx.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) GetUserIDByTelegramID(ctx context.Context, telegramID string) (string, error) {
	return s.lookupUserID(ctx, "telegram_id", telegramID)
}

func (s *sqlxStore) GetUserIDByPhone(ctx context.Context, phone string) (string, error) {
	return s.lookupUserID(ctx, "phone_number", phone)
}

func (s *sqlxStore) lookupUserID(ctx context.Context, column, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	var userID string
	query := fmt.Sprintf("SELECT user_id FROM profiles WHERE %s = ? LIMIT 1;", column)
	err := s.db.GetContext(ctx, &userID, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		s.logger.ErrorContext(ctx, "Error resolving sender identity", "column", column, "error", err)
		return "", fmt.Errorf("failed to resolve identity by %s: %w", column, err)
	}
	return userID, nil
}

func (s *sqlxStore) ListReadingBookmarks(ctx context.Context, userID string, limit int) ([]Bookmark, error) {
	query := `
        SELECT id, user_id, title, url, description, tags, reading, created_at, updated_at
        FROM bookmarks
        WHERE user_id = ? AND reading = 1
        ORDER BY created_at DESC
        LIMIT ?;
    `
	return s.selectBookmarks(ctx, query, userID, clampLimit(limit))
}

func (s *sqlxStore) ListRecentBookmarks(ctx context.Context, userID string, limit int) ([]Bookmark, error) {
	query := `
        SELECT id, user_id, title, url, description, tags, reading, created_at, updated_at
        FROM bookmarks
        WHERE user_id = ?
        ORDER BY created_at DESC
        LIMIT ?;
    `
	return s.selectBookmarks(ctx, query, userID, clampLimit(limit))
}

func (s *sqlxStore) FindBookmarkByURL(ctx context.Context, userID, url string) (*Bookmark, error) {
	var b Bookmark
	query := `
        SELECT id, user_id, title, url, description, tags, reading, created_at, updated_at
        FROM bookmarks
        WHERE user_id = ? AND url = ?
        LIMIT 1;
    `
	err := s.db.GetContext(ctx, &b, query, userID, url)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.ErrorContext(ctx, "Error looking up bookmark by URL", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to look up bookmark by url: %w", err)
	}
	return &b, nil
}

func (s *sqlxStore) InsertBookmark(ctx context.Context, b *Bookmark) error {
	if b == nil {
		return errors.New("cannot insert nil bookmark")
	}
	if b.UserID == "" {
		return errors.New("bookmark must have a user_id")
	}
	if b.URL == "" {
		return errors.New("bookmark must have a url")
	}
	if b.Title == "" {
		return errors.New("bookmark must have a title")
	}

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	query := `
        INSERT INTO bookmarks (id, user_id, title, url, description, tags, reading, created_at, updated_at)
        VALUES (:id, :user_id, :title, :url, :description, :tags, :reading, :created_at, :updated_at);
    `
	if _, err := s.db.NamedExecContext(ctx, query, b); err != nil {
		s.logger.ErrorContext(ctx, "Error inserting bookmark", "user_id", b.UserID, "url", b.URL, "error", err)
		return fmt.Errorf("failed to insert bookmark: %w", err)
	}

	s.logger.DebugContext(ctx, "Bookmark inserted", "user_id", b.UserID, "bookmark_id", b.ID)
	return nil
}

func (s *sqlxStore) SearchBookmarksByTag(ctx context.Context, userID, tag string, limit int) ([]Bookmark, error) {
	query := `
        SELECT id, user_id, title, url, description, tags, reading, created_at, updated_at
        FROM bookmarks
        WHERE user_id = ?
          AND EXISTS (SELECT 1 FROM json_each(bookmarks.tags) WHERE json_each.value = ?)
        ORDER BY created_at DESC
        LIMIT ?;
    `
	return s.selectBookmarks(ctx, query, userID, tag, clampLimit(limit))
}

func (s *sqlxStore) SearchBookmarksByText(ctx context.Context, userID, term string, limit int) ([]Bookmark, error) {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	query := `
        SELECT id, user_id, title, url, description, tags, reading, created_at, updated_at
        FROM bookmarks
        WHERE user_id = ?
          AND (LOWER(title) LIKE ? ESCAPE '\'
            OR LOWER(description) LIKE ? ESCAPE '\'
            OR LOWER(url) LIKE ? ESCAPE '\')
        ORDER BY created_at DESC
        LIMIT ?;
    `
	return s.selectBookmarks(ctx, query, userID, pattern, pattern, pattern, clampLimit(limit))
}

func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	for _, stmt := range []string{"VACUUM;", "ANALYZE;"} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("maintenance statement %q failed: %w", stmt, err)
		}
	}
	return nil
}

func (s *sqlxStore) selectBookmarks(ctx context.Context, query string, args ...any) ([]Bookmark, error) {
	var bookmarks []Bookmark
	if err := s.db.SelectContext(ctx, &bookmarks, query, args...); err != nil {
		s.logger.ErrorContext(ctx, "Error querying bookmarks", "error", err)
		return nil, fmt.Errorf("failed to query bookmarks: %w", err)
	}
	return bookmarks, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 5
	}
	if limit > 100 {
		return 100
	}
	return limit
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
