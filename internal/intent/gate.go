package intent

import (
	"regexp"
	"strings"
)

// The topic-relevance gate keeps the assistant on its one subject: the
// user's bookmark collection. It is closed-world, so anything not
// recognizably bookmark-related is rejected.

// offTopicPatterns reject a message outright: general-knowledge questions,
// weather/time/arithmetic, and questions about the assistant itself.
var offTopicPatterns = []string{
	"capital of", "president of", "population of", "currency of",
	"weather", "what time", "time is it",
	"how old are you", "what are you", "who are you",
}

var greetings = map[string]bool{
	"hi": true, "hello": true, "hey": true, "sup": true,
}

// domainKeywords mark a message as clearly about the collection.
var domainKeywords = []string{
	"bookmark", "link", "save", "saved", "article", "reading list",
	"tutorial", "tag", "folder", "framework", "my bookmarks", "my collection",
	"topics", "resources", "learn",
}

// collectionPhrases are question forms that make sense against a bookmark
// collection ("how many…", "did i save…", "summarize…").
var collectionPhrases = []string{
	"what", "how many", "which", "do i have", "did i save", "should i",
	"summarize", "summarise", "summerise", "topics", "most common",
	"recommend", "suggest",
}

var arithmeticPattern = regexp.MustCompile(`\d\s*[-+*/%^]\s*\d`)

// Relevant reports whether a Chat-candidate message is about the user's
// bookmark collection. The input must already be lowercased and trimmed.
func Relevant(lower string) bool {
	// Hard rejects first, so "what is the capital of France?" never slips
	// through on the strength of "what".
	for _, p := range offTopicPatterns {
		if strings.Contains(lower, p) {
			return false
		}
	}
	if arithmeticPattern.MatchString(lower) {
		return false
	}
	if (strings.Contains(lower, "who is") || strings.Contains(lower, "who was")) &&
		!strings.Contains(lower, "saved") && !strings.Contains(lower, "bookmark") && !strings.Contains(lower, "link") {
		return false
	}
	if greetings[strings.TrimRight(lower, "!.?")] {
		return false
	}

	for _, kw := range domainKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	if urlPattern.MatchString(lower) {
		return true
	}
	if containsTechTerm(lower) {
		return true
	}

	words := strings.Fields(lower)
	hasQuestion := strings.Contains(lower, "?")

	if len(words) <= 3 && !hasQuestion {
		// Short statements need a recognized technology term to pass, and
		// containsTechTerm already said no.
		return false
	}

	if hasQuestion {
		for _, p := range collectionPhrases {
			if strings.Contains(lower, p) {
				return true
			}
		}
		return false
	}

	return false
}

func containsTechTerm(lower string) bool {
	for _, w := range strings.Fields(lower) {
		if techTerms[strings.Trim(w, ",.?!")] {
			return true
		}
	}
	return false
}
