package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"subtrack/core/utils"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion        = "2023-06-01"
)

// AnthropicAdapter reads usage from the Anthropic admin cost report API.
type AnthropicAdapter struct {
	// BaseURL can be overridden for tests.
	BaseURL string

	HTTPClient *http.Client
}

// NewAnthropicAdapter creates the Anthropic billing adapter.
func NewAnthropicAdapter() *AnthropicAdapter {
	return &AnthropicAdapter{
		BaseURL: defaultAnthropicBaseURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Descriptor returns the provider's static metadata.
func (a *AnthropicAdapter) Descriptor() Descriptor {
	return Descriptor{
		ID:          "anthropic",
		DisplayName: "Anthropic API",
		Category:    "software",
	}
}

type anthropicCostResponse struct {
	Data []struct {
		Results []struct {
			Amount   any    `json:"amount"`
			Currency string `json:"currency"`
		} `json:"results"`
	} `json:"data"`
}

// FetchUsage sums the current month's cost report buckets.
func (a *AnthropicAdapter) FetchUsage(ctx context.Context, apiKey string) (*Snapshot, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	snap := &Snapshot{
		Currency: "USD",
		Period:   CurrentPeriod(now),
	}

	url := fmt.Sprintf("%s/v1/organizations/cost_report?starting_at=%s", a.BaseURL, start.Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Accept", "application/json")

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		snap.Err = "invalid API key"
		return snap, nil
	case http.StatusNotFound:
		// Admin-scoped endpoint; a plain API key is valid but cannot read costs.
		snap.KeyValid = true
		snap.Details = "cost report unavailable for this key type"
		return snap, nil
	case http.StatusOK:
	default:
		snap.Err = fmt.Sprintf("unexpected status %d from cost report", resp.StatusCode)
		return snap, nil
	}

	var body anthropicCostResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode anthropic response: %w", err)
	}

	snap.KeyValid = true
	for _, bucket := range body.Data {
		for _, r := range bucket.Results {
			snap.Amount += utils.ToFloat(r.Amount)
			if r.Currency != "" {
				snap.Currency = r.Currency
			}
		}
	}

	return snap, nil
}
