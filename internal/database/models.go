package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Profile maps a chat identity (phone number or Telegram id) to an internal
// user id. Profiles are written by the web dashboard; this service only reads
// them to resolve inbound senders.
type Profile struct {
	UserID      string    `db:"user_id"`
	PhoneNumber *string   `db:"phone_number"`
	TelegramID  *string   `db:"telegram_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// TagList stores a bookmark's tags as a JSON array in a TEXT column.
type TagList []string

// Value implements driver.Valuer.
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tags: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (t *TagList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), t)
	case []byte:
		return json.Unmarshal(v, t)
	default:
		return fmt.Errorf("unsupported tags column type %T", src)
	}
}

// Bookmark is a saved link belonging to a user. The (user_id, url) pair is
// kept unique by an advisory pre-insert check in the dispatcher, not by a
// database constraint.
type Bookmark struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Title       string    `db:"title"`
	URL         string    `db:"url"`
	Description string    `db:"description"`
	Tags        TagList   `db:"tags"`
	Reading     bool      `db:"reading"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
