package model

import (
	"time"
)

// Collection holds the state of one collect run, from the raw channel
// reference to the extracted proxy links. Pipeline steps fill it in order.
type Collection struct {
	// RawChannel is the channel parameter exactly as supplied by the caller.
	RawChannel string

	// Channel is the normalized channel reference.
	Channel ChannelURL

	// Page is the fetched preview page.
	Page *Page

	// Proxies are the extracted, deduplicated proxy links.
	Proxies []string

	// Handle is the display handle derived from RawChannel.
	Handle string

	// StartedAt is when the collect run began.
	StartedAt time.Time

	// Duration is how long the collect run took.
	Duration time.Duration

	// PerformedSteps records the names of completed steps, in order.
	PerformedSteps []string

	// Error is the error that stopped the run, if any.
	Error error
}

// NewCollection creates a Collection for the given raw channel reference.
func NewCollection(rawChannel string) *Collection {
	return &Collection{
		RawChannel:     rawChannel,
		StartedAt:      time.Now(),
		PerformedSteps: make([]string, 0),
	}
}

// Envelope returns the response envelope for this collection.
func (c *Collection) Envelope() *Envelope {
	if c.Error != nil {
		return NewErrorEnvelope(c.Error)
	}
	return NewSuccessEnvelope(c.Handle, c.Proxies)
}
