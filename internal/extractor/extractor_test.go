package extractor

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "native link in message text",
			text: `<div class="tgme_widget_message_text">tg://proxy?server=1.2.3.4&port=443&secret=deadbeef</div>`,
			want: []string{"tg://proxy?server=1.2.3.4&port=443&secret=deadbeef"},
		},
		{
			name: "web link in encoded href",
			text: `<a href="https://t.me/proxy?server=proxy.example.com&amp;port=443&amp;secret=ee00ff">Connect</a>`,
			want: []string{"https://t.me/proxy?server=proxy.example.com&port=443&secret=ee00ff"},
		},
		{
			name: "strict matches come before loose matches",
			text: `tg://proxy?secret=ab&server=h&port=1 https://t.me/proxy?server=h&port=2&secret=cd`,
			want: []string{
				"https://t.me/proxy?server=h&port=2&secret=cd",
				"tg://proxy?secret=ab&server=h&port=1",
			},
		},
		{
			name: "strict match stops at secret, loose match keeps extra fields",
			text: `https://t.me/proxy?server=h&port=1&secret=ab&tag=x`,
			want: []string{
				"https://t.me/proxy?server=h&port=1&secret=ab",
				"https://t.me/proxy?server=h&port=1&secret=ab&tag=x",
			},
		},
		{
			name: "case insensitive",
			text: `TG://PROXY?SERVER=H&PORT=1&SECRET=ABCDEF`,
			want: []string{"TG://PROXY?SERVER=H&PORT=1&SECRET=ABCDEF"},
		},
		{
			name: "loose match stops at angle bracket",
			text: `<b>tg://proxy?server=h&port=1&secret=zz</b>`,
			want: []string{"tg://proxy?server=h&port=1&secret=zz"},
		},
		{
			name: "no links",
			text: `<html><body><a href="https://t.me/foo">foo</a></body></html>`,
			want: []string{},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Extract(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestExtract_DeduplicatesAfterDecoding verifies that an entity encoded link
// and its plain form collapse into one decoded link.
func TestExtract_DeduplicatesAfterDecoding(t *testing.T) {
	t.Parallel()

	text := `<a href="https://t.me/proxy?server=a&amp;port=1&amp;secret=ab">x</a>
https://t.me/proxy?server=a&port=1&secret=ab`

	got := Extract(text)
	want := []string{"https://t.me/proxy?server=a&port=1&secret=ab"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	t.Parallel()

	text := strings.Repeat(`<p>tg://proxy?server=h&port=1&secret=ab https://t.me/proxy?port=2&server=g</p>`, 3)

	first := Extract(text)
	second := Extract(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results, got %q and %q", first, second)
	}
	if len(first) != 2 {
		t.Errorf("expected 2 unique links, got %d: %q", len(first), first)
	}
}

func TestExtract_NeverNil(t *testing.T) {
	t.Parallel()

	if got := Extract("nothing here"); got == nil {
		t.Error("expected empty non-nil slice")
	}
}

func TestExtractWithStats(t *testing.T) {
	t.Parallel()

	text := `tg://proxy?server=h&port=1&secret=ab tg://proxy?server=h&amp;port=1&amp;secret=ab`

	result := ExtractWithStats(text)

	if result.Matches[PatternStrictNative] != 1 {
		t.Errorf("expected 1 strict native match, got %d", result.Matches[PatternStrictNative])
	}
	if result.Matches[PatternLooseNative] != 2 {
		t.Errorf("expected 2 loose native matches, got %d", result.Matches[PatternLooseNative])
	}
	if result.Matches[PatternStrictWeb] != 0 || result.Matches[PatternLooseWeb] != 0 {
		t.Errorf("expected no web matches, got %v", result.Matches)
	}
	if len(result.Links) != 1 {
		t.Fatalf("expected 1 link, got %q", result.Links)
	}
	if result.Duplicates != 2 {
		t.Errorf("expected 2 duplicates, got %d", result.Duplicates)
	}
}

func TestPatterns(t *testing.T) {
	t.Parallel()

	got := Patterns()
	wantNames := []string{PatternStrictWeb, PatternStrictNative, PatternLooseWeb, PatternLooseNative}
	if len(got) != len(wantNames) {
		t.Fatalf("expected %d patterns, got %d", len(wantNames), len(got))
	}
	for i, p := range got {
		if p.Name != wantNames[i] {
			t.Errorf("pattern %d = %q, want %q", i, p.Name, wantNames[i])
		}
	}

	got[0].Name = "mutated"
	if Patterns()[0].Name != PatternStrictWeb {
		t.Error("Patterns must return a copy")
	}
}
