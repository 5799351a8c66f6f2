package sync

import (
	"time"

	"subtrack/feature/sync/provider"
)

// ProviderResult is the outcome of syncing one credential.
type ProviderResult struct {
	// Provider is the credential's provider identifier.
	Provider string `json:"provider"`
	// Action is the reconciliation action taken.
	Action Action `json:"action"`
	// ChargeID is the charge created or updated, if any.
	ChargeID uint `json:"charge_id,omitempty"`
	// Amount is the snapshot amount used for the decision.
	Amount float64 `json:"amount"`
	// Currency is the snapshot's ISO currency code.
	Currency string `json:"currency,omitempty"`
	// Period is the billing period the snapshot covers.
	Period string `json:"period,omitempty"`
	// KeyValid reports whether the provider accepted the credential.
	KeyValid bool `json:"key_valid"`
	// Subscription is the plan reported by the provider, if any.
	Subscription *provider.Subscription `json:"subscription,omitempty"`
	// Fuzzy reports that the charge was found via supplier-name search
	// and promoted to an explicit link during this run.
	Fuzzy bool `json:"fuzzy,omitempty"`
	// Error describes why this provider's sync failed or was skipped.
	Error string `json:"error,omitempty"`
}

// addError appends a failure description without discarding earlier ones,
// so a log-append failure and a later store failure both surface.
func (r *ProviderResult) addError(msg string) {
	if msg == "" {
		return
	}
	if r.Error != "" {
		r.Error += "; " + msg
		return
	}
	r.Error = msg
}

// Report aggregates the outcome of one full sync run.
type Report struct {
	// Message is a short human-readable summary.
	Message string `json:"message"`
	// Processed counts credentials attempted.
	Processed int `json:"processed"`
	// Updated counts charges created, amount-updated or link-promoted.
	Updated int `json:"updated"`
	// Results holds the per-provider outcomes in processing order.
	Results []ProviderResult `json:"results"`
	// Timestamp is when the run finished.
	Timestamp time.Time `json:"timestamp"`
}
