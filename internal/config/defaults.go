package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = true

	DefaultListenAddr      = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxMessageChars = 1000

	DefaultDBPath = "hoardbot.db"

	DefaultAIModel             = "gemini-2.5-flash"
	DefaultAITemperature       = 1.0
	DefaultAITimeout           = 30 * time.Second
	DefaultAIMaxRetries        = 2
	DefaultAIRetryDelay        = 2 * time.Second
	DefaultAIContextBookmarks  = 50
	DefaultAIAnalysisBookmarks = 100
	DefaultAIMaxResponseTokens = 500

	DefaultRateLimitWindow = time.Minute
	DefaultRateLimitMax    = 60
)

// DefaultMessages holds the stock reply strings. They mirror the replies the
// bot has always sent; deployments can override any of them in config.yaml.
var DefaultMessages = MessagesConfig{
	NotRegistered: "📱 Not registered. Please add your Telegram ID or phone number in your profile settings.\n\nYour ID: %s",
	RateLimited:   "⏳ Too many requests. Please wait a moment and try again.",
	Help: "🤔 I can help you with:\n\n" +
		"📚 *reading list* - Show your reading list\n" +
		"🔗 *add [url]* - Add a bookmark\n" +
		"🔍 *search [text]* - Search bookmarks\n" +
		"😴 *I'm bored* - Get a random suggestion\n" +
		"💬 *Ask me anything* - Chat about your bookmarks!",
	GeneralError:   "Sorry, I encountered an error processing your request.",
	MessageTooLong: "✂️ That message is too long. Please keep it under 1000 characters.",

	ReadingListHeader: "📚 *Reading List* (%d bookmark%s)\n\n",
	ReadingListEmpty:  "📚 Your reading list is empty.\n\nMark some bookmarks for reading from the dashboard!",
	ReadingListError:  "❌ Error fetching reading list",

	AddSuccess:    "✅ *Bookmark added!*\n\n%s\n%s",
	AddDuplicate:  "🔖 Already exists: %s\n%s",
	AddError:      "❌ Failed to add bookmark",
	AddInvalidURL: "❌ Invalid URL. Please provide a valid link.",

	SearchHeader:    "🔍 *Search: \"%s\"* (%d)\n\n",
	SearchNoResults: "🔍 No results for \"%s\"",
	SearchError:     "❌ Search failed",

	BoredHeader: "✨ *Here's something for you:*\n\n",
	BoredEmpty:  "📚 You don't have any bookmarks yet!\n\nAdd some links to get personalized suggestions when you're bored.",
	BoredError:  "❌ Could not fetch a suggestion",
	BoredNoDesc: "Enjoy! 🎯",

	ChatPrefix:       "🤖 *AI Assistant*\n\n",
	ChatBusy:         "⏳ AI is temporarily busy. Please try again in a moment.",
	ChatCredits:      "💳 AI credits depleted. Please contact support.",
	ChatUnavailable:  "❌ AI chat temporarily unavailable",
	ChatContextError: "❌ Could not retrieve your bookmarks",
}

// setDefaults registers default values for every optional parameter.
func setDefaults() {
	viper.SetDefault("log.level", DefaultLogLevel)
	viper.SetDefault("log.json", DefaultLogJSON)

	viper.SetDefault("server.listen_addr", DefaultListenAddr)
	viper.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)
	viper.SetDefault("server.max_message_chars", DefaultMaxMessageChars)

	viper.SetDefault("database.path", DefaultDBPath)

	// Secrets default to empty so the BOT_* env overrides are picked up even
	// without a config file.
	viper.SetDefault("ai.api_key", "")
	viper.SetDefault("telegram.token", "")
	viper.SetDefault("whatsapp.access_token", "")
	viper.SetDefault("whatsapp.phone_number_id", "")
	viper.SetDefault("whatsapp.verify_token", "")

	viper.SetDefault("ai.model", DefaultAIModel)
	viper.SetDefault("ai.temperature", DefaultAITemperature)
	viper.SetDefault("ai.timeout", DefaultAITimeout)
	viper.SetDefault("ai.max_retries", DefaultAIMaxRetries)
	viper.SetDefault("ai.retry_delay", DefaultAIRetryDelay)
	viper.SetDefault("ai.context_bookmarks", DefaultAIContextBookmarks)
	viper.SetDefault("ai.analysis_bookmarks", DefaultAIAnalysisBookmarks)
	viper.SetDefault("ai.max_response_tokens", DefaultAIMaxResponseTokens)

	viper.SetDefault("rate_limit.window", DefaultRateLimitWindow)
	viper.SetDefault("rate_limit.max_requests", DefaultRateLimitMax)

	viper.SetDefault("scheduler.tasks", map[string]TaskConfig{
		"sql_maintenance": {Enabled: true, Schedule: "0 0 4 * * *"},
		"ratelimit_sweep": {Enabled: true, Schedule: "0 */10 * * * *"},
	})

	viper.SetDefault("messages.not_registered", DefaultMessages.NotRegistered)
	viper.SetDefault("messages.rate_limited", DefaultMessages.RateLimited)
	viper.SetDefault("messages.help", DefaultMessages.Help)
	viper.SetDefault("messages.general_error", DefaultMessages.GeneralError)
	viper.SetDefault("messages.message_too_long", DefaultMessages.MessageTooLong)
	viper.SetDefault("messages.reading_list_header", DefaultMessages.ReadingListHeader)
	viper.SetDefault("messages.reading_list_empty", DefaultMessages.ReadingListEmpty)
	viper.SetDefault("messages.reading_list_error", DefaultMessages.ReadingListError)
	viper.SetDefault("messages.add_success", DefaultMessages.AddSuccess)
	viper.SetDefault("messages.add_duplicate", DefaultMessages.AddDuplicate)
	viper.SetDefault("messages.add_error", DefaultMessages.AddError)
	viper.SetDefault("messages.add_invalid_url", DefaultMessages.AddInvalidURL)
	viper.SetDefault("messages.search_header", DefaultMessages.SearchHeader)
	viper.SetDefault("messages.search_no_results", DefaultMessages.SearchNoResults)
	viper.SetDefault("messages.search_error", DefaultMessages.SearchError)
	viper.SetDefault("messages.bored_header", DefaultMessages.BoredHeader)
	viper.SetDefault("messages.bored_empty", DefaultMessages.BoredEmpty)
	viper.SetDefault("messages.bored_error", DefaultMessages.BoredError)
	viper.SetDefault("messages.bored_no_desc", DefaultMessages.BoredNoDesc)
	viper.SetDefault("messages.chat_prefix", DefaultMessages.ChatPrefix)
	viper.SetDefault("messages.chat_busy", DefaultMessages.ChatBusy)
	viper.SetDefault("messages.chat_credits", DefaultMessages.ChatCredits)
	viper.SetDefault("messages.chat_unavailable", DefaultMessages.ChatUnavailable)
	viper.SetDefault("messages.chat_context_error", DefaultMessages.ChatContextError)
}
