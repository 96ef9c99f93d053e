package extractor

import (
	"regexp"
	"strings"
)

// Pattern names, in evaluation order.
const (
	PatternStrictWeb    = "strict-web"
	PatternStrictNative = "strict-native"
	PatternLooseWeb     = "loose-web"
	PatternLooseNative  = "loose-native"
)

// encodedAmpersand is the HTML entity form of "&" found in href attributes.
const encodedAmpersand = "&amp;"

// Pattern is a named recognition pattern for proxy links.
type Pattern struct {
	// Name identifies the pattern in logs and stats.
	Name string

	// Regexp is the compiled, case-insensitive expression.
	Regexp *regexp.Regexp
}

// patterns is the fixed, ordered list of recognition patterns.
// Keep the strict-then-loose order: merging them into one expression would
// change match boundaries.
var patterns = []Pattern{
	{
		Name:   PatternStrictWeb,
		Regexp: regexp.MustCompile(`(?i)https://t\.me/proxy\?server=[^&\s]+&port=\d+&secret=[a-f0-9]+`),
	},
	{
		Name:   PatternStrictNative,
		Regexp: regexp.MustCompile(`(?i)tg://proxy\?server=[^&\s]+&port=\d+&secret=[a-f0-9]+`),
	},
	{
		Name:   PatternLooseWeb,
		Regexp: regexp.MustCompile(`(?i)https://t\.me/proxy\?[^"\s<>]+`),
	},
	{
		Name:   PatternLooseNative,
		Regexp: regexp.MustCompile(`(?i)tg://proxy\?[^"\s<>]+`),
	},
}

// Patterns returns the recognition patterns in evaluation order.
// The returned slice is a copy; the compiled expressions are shared.
func Patterns() []Pattern {
	out := make([]Pattern, len(patterns))
	copy(out, patterns)
	return out
}

// Result is the outcome of an extraction with per-pattern statistics.
type Result struct {
	// Links are the decoded, deduplicated proxy links in first-seen order.
	Links []string

	// Matches counts raw matches per pattern name, before deduplication.
	Matches map[string]int

	// Duplicates is the number of matches dropped by deduplication.
	Duplicates int
}

// Extract returns the proxy links found in text, in order of first
// appearance across the pattern passes. It never returns nil.
func Extract(text string) []string {
	return ExtractWithStats(text).Links
}

// ExtractWithStats is Extract plus per-pattern match counts.
func ExtractWithStats(text string) *Result {
	result := &Result{
		Links:   make([]string, 0),
		Matches: make(map[string]int, len(patterns)),
	}

	// Concatenate all passes first so ordering is pattern order, then
	// position within the text.
	all := make([]string, 0)
	for _, p := range patterns {
		found := p.Regexp.FindAllString(text, -1)
		result.Matches[p.Name] = len(found)
		all = append(all, found...)
	}

	seen := make(map[string]bool, len(all))
	for _, match := range all {
		link := decodeEntities(match)
		if seen[link] {
			result.Duplicates++
			continue
		}
		seen[link] = true
		result.Links = append(result.Links, link)
	}

	return result
}

// decodeEntities undoes the &amp; escaping the markup applies to links.
// Only the ampersand entity is decoded; other entities are left as is.
func decodeEntities(link string) string {
	return strings.ReplaceAll(link, encodedAmpersand, "&")
}
