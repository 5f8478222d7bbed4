// Package intent classifies free-text chat messages into bookmark actions.
// Classification is a pure function over the message text: rules are
// evaluated in a fixed priority order and the first match wins.
package intent

import (
	"regexp"
	"strings"
)

// Kind identifies the action a message maps to.
type Kind string

const (
	KindReadingList Kind = "reading_list"
	KindAddLink     Kind = "add_link"
	KindSearch      Kind = "search"
	KindBored       Kind = "bored"
	KindChat        Kind = "chat"
	KindUnknown     Kind = "unknown"
)

// Intent is the classification result for a single message.
type Intent struct {
	Kind  Kind
	Query string
	URL   string
}

// rule is one classification step. match receives the trimmed original
// message and its lowercase form, and reports whether the rule fires.
type rule struct {
	name  string
	match func(raw, lower string) (Intent, bool)
}

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// rules in priority order. Bored preempts everything so "I'm bored of
// reading" never becomes a reading-list query, and a message containing both
// "bored" and a URL stays Bored.
var rules = []rule{
	{name: "bored", match: matchBored},
	{name: "reading_list", match: matchReadingList},
	{name: "add_link", match: matchAddLink},
	{name: "search", match: matchSearch},
	{name: "chat_keyword", match: matchChatKeyword},
	{name: "tech_term", match: matchTechTerm},
	{name: "chat_fallback", match: matchChatFallback},
}

// Classify maps a message to an Intent. It is deterministic,
// case-insensitive, and trims surrounding whitespace.
func Classify(message string) Intent {
	raw := strings.TrimSpace(message)
	lower := strings.ToLower(raw)

	for _, r := range rules {
		if it, ok := r.match(raw, lower); ok {
			return it
		}
	}
	return Intent{Kind: KindUnknown}
}

func matchBored(_, lower string) (Intent, bool) {
	if strings.Contains(lower, "bored") || strings.Contains(lower, "bore") {
		return Intent{Kind: KindBored}, true
	}
	return Intent{}, false
}

func matchReadingList(_, lower string) (Intent, bool) {
	if strings.Contains(lower, "reading list") || strings.Contains(lower, "show reading") || lower == "reading" {
		return Intent{Kind: KindReadingList}, true
	}
	return Intent{}, false
}

var addWordPattern = regexp.MustCompile(`(?i)add`)

// matchAddLink fires for any message containing an http(s) URL, with or
// without the word "add". The rest of the message, minus the URL and the
// first occurrence of "add", becomes the optional description.
func matchAddLink(raw, _ string) (Intent, bool) {
	loc := urlPattern.FindStringIndex(raw)
	if loc == nil {
		return Intent{}, false
	}
	url := raw[loc[0]:loc[1]]

	rest := raw[:loc[0]] + raw[loc[1]:]
	if m := addWordPattern.FindStringIndex(rest); m != nil {
		rest = rest[:m[0]] + rest[m[1]:]
	}
	query := strings.TrimSpace(rest)
	if query == url {
		query = ""
	}

	return Intent{Kind: KindAddLink, URL: url, Query: query}, true
}

func matchSearch(raw, lower string) (Intent, bool) {
	if len(lower) <= 7 {
		return Intent{}, false
	}
	var query string
	switch {
	case strings.HasPrefix(lower, "search "):
		query = strings.TrimSpace(raw[len("search "):])
	case strings.HasPrefix(lower, "find "):
		query = strings.TrimSpace(raw[len("find "):])
	default:
		return Intent{}, false
	}
	return Intent{Kind: KindSearch, Query: query}, true
}

// chatKeywords mark a message as a Chat candidate. Candidates must still pass
// the topic-relevance gate or they are downgraded to Unknown.
var chatKeywords = []string{
	"?", "what", "why", "how", "when", "where", "who", "which",
	"recommend", "suggest", "tell me", "show me", "do i", "did i", "can you",
	"summarize", "summarise", "summerise",
	"learn", "topics", "about", "framework", "articles", "resources",
	"should i", "help", "any", "have i", "my bookmarks", "my collection",
}

func matchChatKeyword(_, lower string) (Intent, bool) {
	for _, kw := range chatKeywords {
		if strings.Contains(lower, kw) {
			return gatedChat(lower), true
		}
	}
	return Intent{}, false
}

// techTerms are single-word queries that always go to Chat, bypassing the
// relevance gate: a lone framework name is on-topic by definition.
var techTerms = map[string]bool{
	"react": true, "vue": true, "angular": true, "node": true, "python": true,
	"java": true, "ruby": true, "php": true, "swift": true,
	"css": true, "html": true, "javascript": true, "typescript": true,
	"nextjs": true, "tailwind": true, "prisma": true,
}

func matchTechTerm(_, lower string) (Intent, bool) {
	if len(strings.Fields(lower)) == 1 && techTerms[lower] {
		return Intent{Kind: KindChat}, true
	}
	return Intent{}, false
}

// matchChatFallback routes any remaining multi-word message (that is not a
// bare tag query) to Chat, subject to the relevance gate.
func matchChatFallback(_, lower string) (Intent, bool) {
	if len(strings.Fields(lower)) > 2 && !strings.HasPrefix(lower, "#") {
		return gatedChat(lower), true
	}
	return Intent{}, false
}

func gatedChat(lower string) Intent {
	if Relevant(lower) {
		return Intent{Kind: KindChat}
	}
	return Intent{Kind: KindUnknown}
}
