package agents

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/wayfare-app/wayfare/internal/datapoints"
)

// NewsRequest is the payload sent to the news collaborator.
type NewsRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	SinceDays   int    `json:"since_days"`
	MaxArticles int    `json:"max_articles"`
	UseLLM      bool   `json:"use_llm"`
}

// NewsResponse is the news collaborator's answer: data point records lacking
// only their journey binding.
type NewsResponse struct {
	DataPoints []datapoints.IngestRecord `json:"dataPoints"`
}

// NewsClient calls the news collaborator service.
type NewsClient interface {
	Scan(ctx context.Context, req NewsRequest) (*NewsResponse, error)
}

type newsClient struct {
	client *resty.Client
	logger *slog.Logger
}

// NewNewsClient creates a NewsClient for the given collaborator URL. Returns
// nil when no URL is configured.
func NewNewsClient(baseURL string, timeout time.Duration, logger *slog.Logger) NewsClient {
	if baseURL == "" {
		return nil
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &newsClient{
		client: client,
		logger: logger.With("system", "news-client"),
	}
}

func (n *newsClient) Scan(ctx context.Context, req NewsRequest) (*NewsResponse, error) {
	var result NewsResponse

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/run")
	if err != nil {
		return nil, fmt.Errorf("call news collaborator: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("news collaborator returned %s", resp.Status())
	}

	n.logger.Info("news scan complete",
		"origin", req.Origin,
		"destination", req.Destination,
		"articles", len(result.DataPoints),
	)
	return &result, nil
}
