// Package intent_test tests message classification.
package intent_test

import (
	"testing"

	"hoardbot/internal/intent"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	type classifyTestCase struct {
		name      string
		message   string
		wantKind  intent.Kind
		wantQuery string
		wantURL   string
	}

	testGroups := map[string][]classifyTestCase{
		"Bored": {
			{
				name:     "Plain bored",
				message:  "I'm bored",
				wantKind: intent.KindBored,
			},
			{
				name:     "Bored wins over reading list",
				message:  "bored of my reading list",
				wantKind: intent.KindBored,
			},
			{
				name:     "Bored wins over URL",
				message:  "so bored, look at https://example.com",
				wantKind: intent.KindBored,
			},
			{
				name:     "Boredom variant",
				message:  "what a bore this afternoon is",
				wantKind: intent.KindBored,
			},
		},
		"Reading list": {
			{
				name:     "Explicit phrase",
				message:  "reading list",
				wantKind: intent.KindReadingList,
			},
			{
				name:     "Show reading",
				message:  "show reading please",
				wantKind: intent.KindReadingList,
			},
			{
				name:     "Single word",
				message:  "Reading",
				wantKind: intent.KindReadingList,
			},
		},
		"Add link": {
			{
				name:      "Add with description",
				message:   "add https://example.com cool site",
				wantKind:  intent.KindAddLink,
				wantURL:   "https://example.com",
				wantQuery: "cool site",
			},
			{
				name:     "Bare URL",
				message:  "https://example.com/post",
				wantKind: intent.KindAddLink,
				wantURL:  "https://example.com/post",
			},
			{
				name:      "URL before description without add",
				message:   "https://go.dev generics notes",
				wantKind:  intent.KindAddLink,
				wantURL:   "https://go.dev",
				wantQuery: "generics notes",
			},
			{
				name:     "Plain http",
				message:  "add http://example.org",
				wantKind: intent.KindAddLink,
				wantURL:  "http://example.org",
			},
		},
		"Search": {
			{
				name:      "Search prefix",
				message:   "search golang generics",
				wantKind:  intent.KindSearch,
				wantQuery: "golang generics",
			},
			{
				name:      "Find prefix",
				message:   "find react hooks",
				wantKind:  intent.KindSearch,
				wantQuery: "react hooks",
			},
			{
				name:      "Tag search",
				message:   "search #golang",
				wantKind:  intent.KindSearch,
				wantQuery: "#golang",
			},
			{
				name:     "Bare search word is too short",
				message:  "search",
				wantKind: intent.KindUnknown,
			},
		},
		"Chat": {
			{
				name:     "Collection question",
				message:  "What did I save about docker?",
				wantKind: intent.KindChat,
			},
			{
				name:     "Bookmark count question",
				message:  "how many bookmarks do I have?",
				wantKind: intent.KindChat,
			},
			{
				name:     "Single tech term",
				message:  "react",
				wantKind: intent.KindChat,
			},
			{
				name:     "Tech term question",
				message:  "vue?",
				wantKind: intent.KindChat,
			},
			{
				name:     "Learning statement",
				message:  "i want to learn rust with good tutorials",
				wantKind: intent.KindChat,
			},
		},
		"Unknown": {
			{
				name:     "General knowledge question",
				message:  "What is the capital of France?",
				wantKind: intent.KindUnknown,
			},
			{
				name:     "Arithmetic",
				message:  "what's 2+2",
				wantKind: intent.KindUnknown,
			},
			{
				name:     "Person question",
				message:  "who is Einstein?",
				wantKind: intent.KindUnknown,
			},
			{
				name:     "Off-topic statement",
				message:  "Tell me a joke",
				wantKind: intent.KindUnknown,
			},
			{
				name:     "Greeting",
				message:  "hello",
				wantKind: intent.KindUnknown,
			},
			{
				name:     "Bare tag",
				message:  "#golang",
				wantKind: intent.KindUnknown,
			},
			{
				name:     "Empty message",
				message:  "   ",
				wantKind: intent.KindUnknown,
			},
		},
	}

	for groupName, cases := range testGroups {
		t.Run(groupName, func(t *testing.T) {
			t.Parallel()
			for _, tc := range cases {
				t.Run(tc.name, func(t *testing.T) {
					t.Parallel()
					got := intent.Classify(tc.message)
					if got.Kind != tc.wantKind {
						t.Errorf("Classify(%q).Kind = %q, want %q", tc.message, got.Kind, tc.wantKind)
					}
					if got.Query != tc.wantQuery {
						t.Errorf("Classify(%q).Query = %q, want %q", tc.message, got.Query, tc.wantQuery)
					}
					if got.URL != tc.wantURL {
						t.Errorf("Classify(%q).URL = %q, want %q", tc.message, got.URL, tc.wantURL)
					}
				})
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	t.Parallel()

	messages := []string{
		"add https://example.com cool site",
		"What did I save about docker?",
		"I'm bored",
		"search golang generics",
	}
	for _, msg := range messages {
		first := intent.Classify(msg)
		second := intent.Classify(msg)
		if first != second {
			t.Errorf("Classify(%q) not deterministic: %+v then %+v", msg, first, second)
		}
	}
}

func TestClassifyTrimsWhitespace(t *testing.T) {
	t.Parallel()

	got := intent.Classify("  reading list  ")
	if got.Kind != intent.KindReadingList {
		t.Errorf("Classify with surrounding whitespace = %q, want %q", got.Kind, intent.KindReadingList)
	}
}
