// Package config provides configuration loading, defaulting, and validation
// for the hoardbot service. Values come from defaults, an optional config.yaml,
// and BOT_* environment variables, in that order of precedence.
package config

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds the full application configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	AI        AIConfig        `mapstructure:"ai"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	WhatsApp  WhatsAppConfig  `mapstructure:"whatsapp"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// ServerConfig controls the inbound webhook HTTP server.
type ServerConfig struct {
	ListenAddr      string        `mapstructure:"listen_addr"      validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=1s,max=1m"`
	MaxMessageChars int           `mapstructure:"max_message_chars" validate:"min=1,max=10000"`
}

// DatabaseConfig holds SQLite connection settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// AIConfig holds settings for the Gemini chat bridge.
type AIConfig struct {
	APIKey             string        `mapstructure:"api_key"             validate:"required"`
	Model              string        `mapstructure:"model"               validate:"required"`
	Temperature        float32       `mapstructure:"temperature"         validate:"min=0,max=2"`
	Timeout            time.Duration `mapstructure:"timeout"             validate:"min=1s,max=2m"`
	MaxRetries         int           `mapstructure:"max_retries"         validate:"min=0,max=5"`
	RetryDelay         time.Duration `mapstructure:"retry_delay"         validate:"min=0,max=30s"`
	ContextBookmarks   int           `mapstructure:"context_bookmarks"   validate:"min=1,max=200"`
	AnalysisBookmarks  int           `mapstructure:"analysis_bookmarks"  validate:"min=1,max=500"`
	MaxResponseTokens  int32         `mapstructure:"max_response_tokens" validate:"min=50,max=4096"`
}

// RateLimitConfig holds the fixed-window limiter parameters.
type RateLimitConfig struct {
	Window      time.Duration `mapstructure:"window"       validate:"min=1s,max=1h"`
	MaxRequests int           `mapstructure:"max_requests" validate:"min=1,max=10000"`
}

// TelegramConfig enables the optional direct Telegram transport.
// When Token is empty the service only answers through the HTTP webhook.
type TelegramConfig struct {
	Token string `mapstructure:"token"`
}

// WhatsAppConfig enables the WhatsApp relay endpoints. All three values must
// be set for the relay routes to be mounted.
type WhatsAppConfig struct {
	AccessToken   string `mapstructure:"access_token"`
	PhoneNumberID string `mapstructure:"phone_number_id"`
	VerifyToken   string `mapstructure:"verify_token"`
}

// TaskConfig configures a single scheduled task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// SchedulerConfig maps task names to their schedules.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// MessagesConfig holds every user-facing reply string. Entries containing
// format verbs are filled in by the dispatcher.
type MessagesConfig struct {
	NotRegistered     string `mapstructure:"not_registered"`
	RateLimited       string `mapstructure:"rate_limited"`
	Help              string `mapstructure:"help"`
	GeneralError      string `mapstructure:"general_error"`
	MessageTooLong    string `mapstructure:"message_too_long"`
	ReadingListHeader string `mapstructure:"reading_list_header"`
	ReadingListEmpty  string `mapstructure:"reading_list_empty"`
	ReadingListError  string `mapstructure:"reading_list_error"`
	AddSuccess        string `mapstructure:"add_success"`
	AddDuplicate      string `mapstructure:"add_duplicate"`
	AddError          string `mapstructure:"add_error"`
	AddInvalidURL     string `mapstructure:"add_invalid_url"`
	SearchHeader      string `mapstructure:"search_header"`
	SearchNoResults   string `mapstructure:"search_no_results"`
	SearchError       string `mapstructure:"search_error"`
	BoredHeader       string `mapstructure:"bored_header"`
	BoredEmpty        string `mapstructure:"bored_empty"`
	BoredError        string `mapstructure:"bored_error"`
	BoredNoDesc       string `mapstructure:"bored_no_desc"`
	ChatPrefix        string `mapstructure:"chat_prefix"`
	ChatBusy          string `mapstructure:"chat_busy"`
	ChatCredits       string `mapstructure:"chat_credits"`
	ChatUnavailable   string `mapstructure:"chat_unavailable"`
	ChatContextError  string `mapstructure:"chat_context_error"`
}

// Validate checks the configuration against the struct validation tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
