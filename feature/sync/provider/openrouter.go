package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai"

// OpenRouterAdapter reads credit usage from the OpenRouter key endpoint.
type OpenRouterAdapter struct {
	// BaseURL can be overridden for tests.
	BaseURL string

	HTTPClient *http.Client
}

// NewOpenRouterAdapter creates the OpenRouter billing adapter.
func NewOpenRouterAdapter() *OpenRouterAdapter {
	return &OpenRouterAdapter{
		BaseURL: defaultOpenRouterBaseURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Descriptor returns the provider's static metadata.
func (a *OpenRouterAdapter) Descriptor() Descriptor {
	return Descriptor{
		ID:          "openrouter",
		DisplayName: "OpenRouter",
		Category:    "software",
	}
}

type openRouterKeyResponse struct {
	Data struct {
		Label      string   `json:"label"`
		Usage      float64  `json:"usage"`
		Limit      *float64 `json:"limit"`
		IsFreeTier bool     `json:"is_free_tier"`
	} `json:"data"`
}

// FetchUsage queries the key's lifetime credit usage.
func (a *OpenRouterAdapter) FetchUsage(ctx context.Context, apiKey string) (*Snapshot, error) {
	now := time.Now()
	snap := &Snapshot{
		Currency: "USD",
		Period:   CurrentPeriod(now),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"/api/v1/key", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
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
	case http.StatusOK:
	default:
		snap.Err = fmt.Sprintf("unexpected status %d from key endpoint", resp.StatusCode)
		return snap, nil
	}

	var body openRouterKeyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode openrouter response: %w", err)
	}

	snap.KeyValid = true
	snap.Amount = body.Data.Usage
	if body.Data.IsFreeTier {
		snap.Subscription = &Subscription{Plan: "Free"}
	}
	if body.Data.Label != "" {
		snap.Details = "key=" + body.Data.Label
	}

	return snap, nil
}
