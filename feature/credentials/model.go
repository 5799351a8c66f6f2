package credentials

import "time"

// Credential stores the API key used to query one provider's billing API,
// plus cached results from the most recent sync attempt.
//
// One credential exists per provider; upserts replace the stored secret.
// The sync engine refreshes LastChecked and LastUsageAmount after every
// attempt but never deletes credentials.
type Credential struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Provider is the unique provider identifier (e.g. "openai").
	Provider string `gorm:"size:64;uniqueIndex;not null" json:"provider"`
	// ApiKey is the opaque secret used against the provider's API.
	ApiKey string `gorm:"size:512;not null" json:"-"`
	// Label is a user-friendly name for the credential.
	Label string `gorm:"size:255" json:"label"`
	// IsActive soft-disables the credential without deleting it.
	IsActive bool `gorm:"default:true" json:"is_active"`

	// LastChecked is when the sync engine last attempted this provider.
	LastChecked *time.Time `json:"last_checked,omitempty"`
	// LastUsageAmount is the amount reported by the most recent snapshot.
	LastUsageAmount float64 `json:"last_usage_amount"`
}

// MaskedKey returns the secret with everything but the last four characters hidden.
func (c *Credential) MaskedKey() string {
	if len(c.ApiKey) <= 4 {
		return "****"
	}
	return "****" + c.ApiKey[len(c.ApiKey)-4:]
}
