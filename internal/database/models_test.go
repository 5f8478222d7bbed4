package database

import (
	"reflect"
	"testing"
)

func TestTagListValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		tags TagList
		want string
	}{
		{name: "Nil becomes empty array", tags: nil, want: "[]"},
		{name: "Empty list", tags: TagList{}, want: "[]"},
		{name: "Tags", tags: TagList{"go", "web"}, want: `["go","web"]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := tc.tags.Value()
			if err != nil {
				t.Fatalf("Value() failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("Value() = %v, want %q", got, tc.want)
			}
		})
	}
}

func TestTagListScan(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  any
		want TagList
	}{
		{name: "Nil column", src: nil, want: nil},
		{name: "String column", src: `["go","sqlite"]`, want: TagList{"go", "sqlite"}},
		{name: "Byte column", src: []byte(`["a"]`), want: TagList{"a"}},
		{name: "Empty array", src: "[]", want: TagList{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var got TagList
			if err := got.Scan(tc.src); err != nil {
				t.Fatalf("Scan(%v) failed: %v", tc.src, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Scan(%v) = %v, want %v", tc.src, got, tc.want)
			}
		})
	}
}

func TestTagListScanRejectsOtherTypes(t *testing.T) {
	t.Parallel()

	var got TagList
	if err := got.Scan(42); err == nil {
		t.Error("Scan(int) succeeded, want error")
	}
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "100%", want: `100\%`},
		{in: "under_score", want: `under\_score`},
		{in: `back\slash`, want: `back\\slash`},
	}

	for _, tc := range cases {
		if got := escapeLike(tc.in); got != tc.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
