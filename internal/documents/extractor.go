package documents

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// Extractor turns a raw document into structured extraction output.
type Extractor interface {
	Extract(ctx context.Context, sourceURI, filename, contentType string, data []byte) (*Extraction, error)
}

type restExtractor struct {
	client *resty.Client
	logger *slog.Logger
}

// NewExtractor creates an Extractor backed by the document collaborator
// service. Returns nil when no base URL is configured; callers treat a nil
// extractor as extraction disabled.
func NewExtractor(baseURL string, timeout time.Duration, logger *slog.Logger) Extractor {
	if baseURL == "" {
		return nil
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &restExtractor{
		client: client,
		logger: logger.With("system", "extractor"),
	}
}

func (e *restExtractor) Extract(
	ctx context.Context,
	sourceURI, filename, contentType string,
	data []byte,
) (*Extraction, error) {
	var result Extraction

	resp, err := e.client.R().
		SetContext(ctx).
		SetFileReader("document", filename, bytes.NewReader(data)).
		SetFormData(map[string]string{"sourceURI": sourceURI}).
		SetResult(&result).
		Post("/extract")
	if err != nil {
		return nil, fmt.Errorf("call document collaborator: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("document collaborator returned %s", resp.Status())
	}

	e.logger.Info("document extracted",
		"filename", filename,
		"document_type", result.DocumentType,
		"timelines", len(result.ExtractedTimelines),
	)
	return &result, nil
}
