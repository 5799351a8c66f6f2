package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"subtrack/core/utils"
)

const defaultOpenAIBaseURL = "https://api.openai.com"

// OpenAIAdapter reads usage from the OpenAI dashboard billing API.
type OpenAIAdapter struct {
	// BaseURL can be overridden for tests.
	BaseURL string

	HTTPClient *http.Client
}

// NewOpenAIAdapter creates the OpenAI billing adapter.
func NewOpenAIAdapter() *OpenAIAdapter {
	return &OpenAIAdapter{
		BaseURL: defaultOpenAIBaseURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Descriptor returns the provider's static metadata.
func (a *OpenAIAdapter) Descriptor() Descriptor {
	return Descriptor{
		ID:          "openai",
		DisplayName: "OpenAI Platform",
		Category:    "software",
	}
}

type openAIUsageResponse struct {
	// TotalUsage is the period usage in cents.
	TotalUsage any `json:"total_usage"`
}

type openAISubscriptionResponse struct {
	Plan struct {
		Title string `json:"title"`
	} `json:"plan"`
	HardLimitUSD float64 `json:"hard_limit_usd"`
}

// FetchUsage queries the current month's usage and the subscription plan.
func (a *OpenAIAdapter) FetchUsage(ctx context.Context, apiKey string) (*Snapshot, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	snap := &Snapshot{
		Currency: "USD",
		Period:   CurrentPeriod(now),
	}

	usageURL := fmt.Sprintf("%s/v1/dashboard/billing/usage?start_date=%s&end_date=%s",
		a.BaseURL, start.Format("2006-01-02"), end.Format("2006-01-02"))

	var usage openAIUsageResponse
	status, err := a.getJSON(ctx, usageURL, apiKey, &usage)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		snap.Err = "invalid API key"
		return snap, nil
	}
	if status != http.StatusOK {
		snap.Err = fmt.Sprintf("unexpected status %d from usage endpoint", status)
		return snap, nil
	}

	snap.KeyValid = true
	snap.Amount = utils.CentsToAmount(int64(utils.ToFloat(usage.TotalUsage)))

	// The subscription endpoint is best effort; some key types cannot read it.
	var sub openAISubscriptionResponse
	status, err = a.getJSON(ctx, a.BaseURL+"/v1/dashboard/billing/subscription", apiKey, &sub)
	if err == nil && status == http.StatusOK && sub.Plan.Title != "" {
		snap.Subscription = &Subscription{Plan: sub.Plan.Title}
		snap.Details = fmt.Sprintf("plan=%s hard_limit_usd=%.2f", sub.Plan.Title, sub.HardLimitUSD)
	}

	return snap, nil
}

func (a *OpenAIAdapter) getJSON(ctx context.Context, url, apiKey string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode openai response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
