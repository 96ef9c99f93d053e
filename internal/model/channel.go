package model

import (
	"strings"
	"unicode"
)

const (
	// TelegramHost is the host serving public channel preview pages.
	TelegramHost = "t.me"

	// DefaultBaseURL is the scheme and host used for canonical preview URLs.
	DefaultBaseURL = "https://" + TelegramHost

	// previewSegment is the path segment that selects the preview variant
	// of a channel page.
	previewSegment = "s"

	// handlePrefix marks a channel handle such as "@name".
	handlePrefix = "@"

	// schemePrefix and barePrefix are the two URL shapes accepted as input.
	schemePrefix = DefaultBaseURL + "/"
	barePrefix   = TelegramHost + "/"
)

// ChannelURL is an immutable value object naming the preview page of one
// public channel. Its canonical form is always https://t.me/s/<username>.
type ChannelURL struct {
	username string
}

// channelRule is one entry of the ordered normalization rule list.
// match reports whether the rule applies; username extracts the candidate.
type channelRule struct {
	match    func(input string) bool
	username func(input string) string
}

// channelRules are evaluated in order and the first matching rule wins.
var channelRules = []channelRule{
	{
		match:    func(s string) bool { return strings.HasPrefix(s, handlePrefix) },
		username: func(s string) string { return strings.TrimPrefix(s, handlePrefix) },
	},
	{
		match:    func(s string) bool { return strings.HasPrefix(s, schemePrefix) },
		username: func(s string) string { return usernameFromPath(strings.TrimPrefix(s, schemePrefix)) },
	},
	{
		match:    func(s string) bool { return strings.HasPrefix(s, barePrefix) },
		username: func(s string) string { return usernameFromPath(strings.TrimPrefix(s, barePrefix)) },
	},
	{
		match: func(s string) bool {
			return s != "" && !strings.Contains(s, "/") && !strings.Contains(s, handlePrefix)
		},
		username: func(s string) string { return s },
	},
}

// NewChannelURL normalizes a raw channel reference into a ChannelURL.
//
// Accepted shapes are "@name", "https://t.me/name", "https://t.me/s/name",
// "t.me/name", "t.me/s/name" and a bare "name". Surrounding whitespace is
// ignored. Returns ErrInvalidChannel for anything else, including an empty
// username left after stripping a prefix or one containing whitespace.
func NewChannelURL(raw string) (ChannelURL, error) {
	input := strings.TrimSpace(raw)

	for _, rule := range channelRules {
		if !rule.match(input) {
			continue
		}
		username := rule.username(input)
		if username == "" || strings.ContainsFunc(username, unicode.IsSpace) {
			return ChannelURL{}, ErrInvalidChannel
		}
		return ChannelURL{username: username}, nil
	}

	return ChannelURL{}, ErrInvalidChannel
}

// MustNewChannelURL creates a new ChannelURL or panics if invalid.
// Use only for known-valid references in tests or initialization.
func MustNewChannelURL(raw string) ChannelURL {
	c, err := NewChannelURL(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// usernameFromPath picks the username out of the path that follows the host.
// "name/..." yields "name"; "s/name/..." yields "name" so an already
// canonical URL collapses to the same value.
func usernameFromPath(path string) string {
	segments := strings.Split(path, "/")
	username := segments[0]
	if username == previewSegment && len(segments) > 1 {
		username = segments[1]
	}
	return username
}

// String returns the canonical preview URL.
func (c ChannelURL) String() string {
	return c.PreviewURL(DefaultBaseURL)
}

// PreviewURL returns the preview URL of the channel on the given base URL,
// e.g. PreviewURL("https://t.me") == "https://t.me/s/name".
func (c ChannelURL) PreviewURL(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + previewSegment + "/" + c.username
}

// Username returns the channel username.
func (c ChannelURL) Username() string {
	return c.username
}

// Handle returns the "@name" form of the normalized username.
func (c ChannelURL) Handle() string {
	return handlePrefix + c.username
}

// IsZero returns true if this is a zero value ChannelURL.
func (c ChannelURL) IsZero() bool {
	return c.username == ""
}

// Equals returns true if two ChannelURL values name the same channel.
func (c ChannelURL) Equals(other ChannelURL) bool {
	return c.username == other.username
}

// FormatHandle derives the display handle of the raw, pre-normalization input.
//
// Input that already starts with "@" is returned unchanged. Input containing
// "t.me/" yields "@" plus its last non-empty path segment. Anything else is
// prefixed with "@" as is.
func FormatHandle(raw string) string {
	input := strings.TrimSpace(raw)

	if strings.HasPrefix(input, handlePrefix) {
		return input
	}

	if strings.Contains(input, barePrefix) {
		return handlePrefix + lastSegment(strings.Split(input, "/"))
	}

	return handlePrefix + input
}

// lastSegment returns the last non-empty element of segments, or "" if all
// are empty.
func lastSegment(segments []string) string {
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}
