package charges

import "time"

// Charge frequency values.
const (
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
	FrequencyOnce    = "once"
)

// Charge is a recurring or one-time cost line in the expense ledger.
//
// Charges are owned by the manual CRM workflow; the sync engine is a
// co-writer that only touches the amount, the notes annotation and the
// auto-sync metadata fields.
type Charge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Name is the display name of the charge.
	Name string `gorm:"size:255;not null" json:"name"`
	// Category groups charges in the ledger (e.g. "software", "hosting").
	Category string `gorm:"size:64" json:"category"`
	// Amount is the cost per billing period.
	Amount float64 `json:"amount"`
	// Frequency is the billing cadence (monthly, yearly, once).
	Frequency string `gorm:"size:16;default:monthly" json:"frequency"`
	// StartDate is when the charge begins.
	StartDate *time.Time `json:"start_date,omitempty"`
	// EndDate is when the charge stops, if known.
	EndDate *time.Time `json:"end_date,omitempty"`
	// IsActive indicates whether the charge is currently billed.
	IsActive bool `gorm:"default:true" json:"is_active"`
	// Supplier is the vendor name as entered by the user.
	Supplier string `gorm:"size:255" json:"supplier"`
	// Notes is free text; the sync engine appends dated annotations here.
	Notes string `gorm:"type:text" json:"notes"`

	// AutoProvider links this charge to a billing provider credential.
	// At most one charge carries a given provider id.
	AutoProvider string `gorm:"size:64;index" json:"auto_provider,omitempty"`
	// AutoCredentialID is the credential record backing the link.
	AutoCredentialID uint `json:"auto_credential_id,omitempty"`
	// LastAutoUpdate is when the sync engine last touched this charge.
	LastAutoUpdate *time.Time `json:"last_auto_update,omitempty"`
}

// IsLinked reports whether the charge has an explicit provider link.
func (c *Charge) IsLinked() bool {
	return c.AutoProvider != ""
}
