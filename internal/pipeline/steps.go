package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/proxycollector/internal/extractor"
	"github.com/nao1215/proxycollector/internal/model"
)

// Step names, in the order the standard pipeline runs them.
const (
	StepValidate  = "validate"
	StepNormalize = "normalize"
	StepFetch     = "fetch"
	StepExtract   = "extract"
	StepHandle    = "handle"
)

// PageFetcher retrieves the preview page of a channel.
// *fetcher.Fetcher satisfies it.
type PageFetcher interface {
	Fetch(ctx context.Context, channel model.ChannelURL) (*model.Page, error)
}

// ValidateStep rejects an absent or empty channel parameter.
type ValidateStep struct{}

// Name returns the step name.
func (ValidateStep) Name() string { return StepValidate }

// Do returns model.ErrMissingChannel when no channel was supplied.
func (ValidateStep) Do(_ context.Context, c *model.Collection) error {
	if c.RawChannel == "" {
		return model.ErrMissingChannel
	}
	return nil
}

// NormalizeStep turns the raw channel reference into a ChannelURL.
type NormalizeStep struct{}

// Name returns the step name.
func (NormalizeStep) Name() string { return StepNormalize }

// Do returns model.ErrInvalidChannel when the reference has no recognized shape.
func (NormalizeStep) Do(_ context.Context, c *model.Collection) error {
	channel, err := model.NewChannelURL(c.RawChannel)
	if err != nil {
		return err
	}
	c.Channel = channel
	return nil
}

// FetchStep downloads the channel's preview page.
type FetchStep struct {
	fetcher PageFetcher
	logger  *slog.Logger
}

// NewFetchStep creates a FetchStep using the given fetcher.
func NewFetchStep(fetcher PageFetcher, logger *slog.Logger) *FetchStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &FetchStep{fetcher: fetcher, logger: logger}
}

// Name returns the step name.
func (s *FetchStep) Name() string { return StepFetch }

// Do fetches the page exactly once. Errors are returned unchanged so a
// *model.FetchError keeps its upstream status.
func (s *FetchStep) Do(ctx context.Context, c *model.Collection) error {
	page, err := s.fetcher.Fetch(ctx, c.Channel)
	if err != nil {
		return err
	}
	s.logger.Debug("fetched channel page",
		"url", page.URL,
		"status", page.StatusCode,
		"bytes", page.Size(),
		"title", page.Title,
	)
	c.Page = page
	return nil
}

// ExtractStep pulls proxy links out of the fetched page body.
type ExtractStep struct {
	logger *slog.Logger
}

// NewExtractStep creates an ExtractStep.
func NewExtractStep(logger *slog.Logger) *ExtractStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractStep{logger: logger}
}

// Name returns the step name.
func (s *ExtractStep) Name() string { return StepExtract }

// Do returns model.ErrNoProxiesFound when the page holds no proxy links.
func (s *ExtractStep) Do(_ context.Context, c *model.Collection) error {
	body := ""
	if c.Page != nil {
		body = c.Page.Body
	}

	result := extractor.ExtractWithStats(body)
	s.logger.Debug("extracted proxy links",
		"channel", c.Channel.Username(),
		"links", result.Links,
		"matches", result.Matches,
		"duplicates", result.Duplicates,
	)
	if len(result.Links) == 0 {
		return model.ErrNoProxiesFound
	}
	c.Proxies = result.Links
	return nil
}

// HandleStep derives the display handle from the raw channel reference.
type HandleStep struct{}

// Name returns the step name.
func (HandleStep) Name() string { return StepHandle }

// Do sets c.Handle. It never fails.
func (HandleStep) Do(_ context.Context, c *model.Collection) error {
	c.Handle = model.FormatHandle(c.RawChannel)
	return nil
}
