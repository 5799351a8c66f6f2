package provider

import "time"

// Subscription describes the plan a provider reports for the credential.
type Subscription struct {
	// Plan is the plan name (e.g. "Pro").
	Plan string `json:"plan"`
	// Status is the provider's subscription status string.
	Status string `json:"status,omitempty"`
	// MonthlyPrice is the plan's monthly price if the provider exposes it.
	MonthlyPrice float64 `json:"monthly_price,omitempty"`
}

// Snapshot is the normalized result of one usage-fetch call.
//
// Ordinary business outcomes are encoded in the snapshot rather than as
// errors: a rejected credential sets KeyValid=false, a provider without
// numeric cost data sets Amount=0. An Amount of 0 means "no billable
// amount known", not necessarily free.
type Snapshot struct {
	// Amount is the monetary usage for the period.
	Amount float64 `json:"amount"`
	// Currency is the ISO code of the amount.
	Currency string `json:"currency,omitempty"`
	// Period is the billing period identifier (YYYY-MM).
	Period string `json:"period,omitempty"`
	// Subscription is plan information when the provider exposes it.
	Subscription *Subscription `json:"subscription,omitempty"`
	// Details carries free-form provider context.
	Details string `json:"details,omitempty"`
	// Err describes a business-level problem (e.g. "invalid API key").
	Err string `json:"error,omitempty"`
	// KeyValid distinguishes a rejected credential from a valid one
	// that simply has no cost data.
	KeyValid bool `json:"key_valid"`
}

// PlanLabel returns the subscription plan name or a generic label.
func (s *Snapshot) PlanLabel() string {
	if s.Subscription != nil && s.Subscription.Plan != "" {
		return s.Subscription.Plan
	}
	return "API"
}

// CurrentPeriod formats a time as the YYYY-MM billing period identifier.
func CurrentPeriod(t time.Time) string {
	return t.Format("2006-01")
}
