package model

import (
	"errors"
)

// Response messages. These strings are part of the public API.
const (
	messageMethodNotAllowed = "Method Not Allowed"
	messageMissingChannel   = "Missing channel parameter"
	messageInvalidChannel   = "Invalid channel format"
	messageFetchFailed      = "Failed to fetch channel page"
	messageNoProxiesFound   = "No proxy links found in channel"
	messageInternal         = "Internal Server Error"

	// UsageText describes how to call the endpoint.
	UsageText = "/?channel=@channelname or /?channel=https://t.me/channelname or /?channel=t.me/channelname"

	// ExampleText is a sample request.
	ExampleText = "/?channel=@channelname"
)

// ValidChannelFormats lists the accepted channel shapes shown to callers
// that sent an unparseable channel.
var ValidChannelFormats = []string{
	"@channelname",
	"https://t.me/channelname",
	"t.me/channelname",
	"https://t.me/s/channelname",
}

// Envelope is the JSON response body. Field order matches the serialized
// key order: ok, then either the error payload or channel and proxies.
type Envelope struct {
	OK           bool     `json:"ok"`
	Error        string   `json:"error,omitempty"`
	Usage        string   `json:"usage,omitempty"`
	Example      string   `json:"example,omitempty"`
	ValidFormats []string `json:"valid_formats,omitempty"`
	Channel      string   `json:"channel,omitempty"`
	Proxies      []string `json:"proxies,omitempty"`
}

// NewSuccessEnvelope creates the envelope for a successful collection.
func NewSuccessEnvelope(channel string, proxies []string) *Envelope {
	return &Envelope{
		OK:      true,
		Channel: channel,
		Proxies: proxies,
	}
}

// NewErrorEnvelope creates the envelope describing err.
// Errors outside the known kinds produce a generic internal error message.
func NewErrorEnvelope(err error) *Envelope {
	env := &Envelope{OK: false}

	switch {
	case errors.Is(err, ErrMethodNotAllowed):
		env.Error = messageMethodNotAllowed
	case errors.Is(err, ErrMissingChannel):
		env.Error = messageMissingChannel
		env.Usage = UsageText
		env.Example = ExampleText
	case errors.Is(err, ErrInvalidChannel):
		env.Error = messageInvalidChannel
		env.ValidFormats = ValidChannelFormats
	case errors.Is(err, ErrFetchFailed):
		env.Error = messageFetchFailed
	case errors.Is(err, ErrNoProxiesFound):
		env.Error = messageNoProxiesFound
	default:
		env.Error = messageInternal
	}

	return env
}
