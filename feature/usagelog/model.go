package usagelog

import "time"

// Entry is one immutable record of a usage fetch attempt.
//
// One entry is appended per sync attempt per credential, including
// zero-amount and invalid-key outcomes, as long as the provider call
// produced a snapshot. Entries are never updated or deleted.
type Entry struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Provider is the provider identifier the snapshot came from.
	Provider string `gorm:"size:64;index;not null" json:"provider"`
	// Period is the billing period the snapshot covers (e.g. "2025-06").
	Period string `gorm:"size:16;index" json:"period"`
	// Amount is the monetary amount reported by the provider.
	Amount float64 `json:"amount"`
	// Currency is the ISO currency code of the amount.
	Currency string `gorm:"size:8" json:"currency"`
	// Details carries free-form provider context (plan, status, errors).
	Details string `gorm:"type:text" json:"details,omitempty"`
	// FetchedAt is the server-assigned timestamp of the fetch attempt.
	FetchedAt time.Time `gorm:"index" json:"fetched_at"`
}
