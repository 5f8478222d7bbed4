package metadata

import (
	"reflect"
	"testing"
)

func TestParsePage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		want Metadata
	}{
		{
			name: "Title and description",
			body: `<html><head>
				<title>  The Go Blog  </title>
				<meta name="description" content="News from the Go project">
			</head></html>`,
			want: Metadata{Title: "The Go Blog", Description: "News from the Go project"},
		},
		{
			name: "Open Graph fallbacks",
			body: `<html><head>
				<meta property="og:title" content="OG Title">
				<meta property="og:description" content="OG description">
			</head></html>`,
			want: Metadata{Title: "OG Title", Description: "OG description"},
		},
		{
			name: "Title element wins over og:title",
			body: `<html><head>
				<title>Real Title</title>
				<meta property="og:title" content="OG Title">
			</head></html>`,
			want: Metadata{Title: "Real Title"},
		},
		{
			name: "Keywords become lowercase tags capped at five",
			body: `<html><head>
				<meta name="keywords" content="Go, Web, Testing, HTTP, JSON, Extra">
			</head></html>`,
			want: Metadata{Tags: []string{"go", "web", "testing", "http", "json"}},
		},
		{
			name: "Entities and whitespace cleaned",
			body: `<html><head>
				<title>Tips &amp; Tricks
				for Go</title>
			</head></html>`,
			want: Metadata{Title: "Tips & Tricks for Go"},
		},
		{
			name: "First description wins",
			body: `<html><head>
				<meta name="description" content="first">
				<meta property="og:description" content="second">
			</head></html>`,
			want: Metadata{Description: "first"},
		},
		{
			name: "No metadata",
			body: `<html><body>plain page</body></html>`,
			want: Metadata{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := parsePage(tc.body)
			if !reflect.DeepEqual(*got, tc.want) {
				t.Errorf("parsePage() = %+v, want %+v", *got, tc.want)
			}
		})
	}
}
