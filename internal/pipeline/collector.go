package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/proxycollector/internal/model"
)

// Collector runs the standard collect pipeline for one channel at a time.
// It is safe for concurrent use as long as its PageFetcher is.
type Collector struct {
	fetcher PageFetcher
	logger  *slog.Logger
}

// NewCollector creates a Collector that fetches pages with fetcher.
func NewCollector(fetcher PageFetcher, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{fetcher: fetcher, logger: logger}
}

// Collect validates, normalizes, fetches, extracts and formats for rawChannel.
// The returned Collection is never nil; on failure its Error field holds
// the same error that is returned.
func (c *Collector) Collect(ctx context.Context, rawChannel string) (*model.Collection, error) {
	collection := model.NewCollection(rawChannel)

	p := New(WithLogger(c.logger))
	p.AddSteps(
		ValidateStep{},
		NormalizeStep{},
		NewFetchStep(c.fetcher, c.logger),
		NewExtractStep(c.logger),
		HandleStep{},
	)

	if err := p.Execute(ctx, collection); err != nil {
		return collection, err
	}

	c.logger.Info("collected proxy links",
		"channel", collection.Handle,
		"count", len(collection.Proxies),
		"duration", collection.Duration,
	)
	return collection, nil
}
