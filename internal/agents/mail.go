package agents

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/wayfare-app/wayfare/internal/datapoints"
)

// MailWindow is one timeline step's date window in a mail analysis request.
type MailWindow struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// MailRequest is the payload sent to the mail collaborator: the journey
// timeline keyed by step id.
type MailRequest struct {
	Timeline map[string]MailWindow `json:"timeline"`
}

// mailEnvelope matches the mail collaborator's response shape: an array
// whose first element carries the results.
type mailEnvelope []struct {
	Results []datapoints.IngestRecord `json:"results"`
}

// MailClient calls the mail collaborator service.
type MailClient interface {
	Analyze(ctx context.Context, req MailRequest) ([]datapoints.IngestRecord, error)
}

type mailClient struct {
	client *resty.Client
	logger *slog.Logger
}

// NewMailClient creates a MailClient for the given collaborator URL. Returns
// nil when no URL is configured.
func NewMailClient(baseURL string, timeout time.Duration, logger *slog.Logger) MailClient {
	if baseURL == "" {
		return nil
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &mailClient{
		client: client,
		logger: logger.With("system", "mail-client"),
	}
}

func (m *mailClient) Analyze(ctx context.Context, req MailRequest) ([]datapoints.IngestRecord, error) {
	var envelope mailEnvelope

	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&envelope).
		Post("/analyze-emails")
	if err != nil {
		return nil, fmt.Errorf("call mail collaborator: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("mail collaborator returned %s", resp.Status())
	}

	if len(envelope) == 0 {
		return nil, nil
	}

	m.logger.Info("mail analysis complete", "results", len(envelope[0].Results))
	return envelope[0].Results, nil
}
