package sync

import (
	"fmt"
	"time"

	"subtrack/feature/charges"
	"subtrack/feature/sync/provider"
)

// Action is the reconciliation outcome chosen for one provider snapshot.
type Action string

// Reconciliation actions.
const (
	// ActionUpdateAmount overwrites the charge amount with the snapshot amount.
	ActionUpdateAmount Action = "update_amount"
	// ActionTouch refreshes sync metadata without changing the amount.
	ActionTouch Action = "touch"
	// ActionCreate inserts a new charge for an unmatched provider.
	ActionCreate Action = "create"
	// ActionNoop leaves the ledger untouched (e.g. rejected credential).
	ActionNoop Action = "noop"
)

// Decide picks the reconciliation action for a snapshot and its matched
// charge (nil when no charge matched).
//
// A rejected credential never mutates the ledger. A zero snapshot amount
// against an existing charge is treated as "no billable amount known" and
// preserves the manually entered amount.
func Decide(snap *provider.Snapshot, matched *charges.Charge) Action {
	if !snap.KeyValid {
		return ActionNoop
	}
	if matched == nil {
		return ActionCreate
	}
	if snap.Amount > 0 && snap.Amount != matched.Amount {
		return ActionUpdateAmount
	}
	return ActionTouch
}

// newCharge builds the charge inserted for an unmatched provider.
func newCharge(desc provider.Descriptor, snap *provider.Snapshot, credentialID uint, defaultCategory string, now time.Time) *charges.Charge {
	category := desc.Category
	if category == "" {
		category = defaultCategory
	}

	note := fmt.Sprintf("Auto-detected on %s (%s plan)", now.Format("2006-01-02"), snap.PlanLabel())
	if snap.Amount == 0 {
		note += ", amount unknown, needs manual entry"
	}

	start := now
	return &charges.Charge{
		Name:             desc.DisplayName,
		Category:         category,
		Amount:           snap.Amount,
		Frequency:        charges.FrequencyMonthly,
		StartDate:        &start,
		IsActive:         true,
		Supplier:         desc.DisplayName,
		Notes:            note,
		AutoProvider:     desc.ID,
		AutoCredentialID: credentialID,
		LastAutoUpdate:   &now,
	}
}

// appendNote adds a dated annotation to a charge's free-text notes.
func appendNote(charge *charges.Charge, note string, now time.Time) {
	line := fmt.Sprintf("[%s] %s", now.Format("2006-01-02"), note)
	if charge.Notes == "" {
		charge.Notes = line
		return
	}
	charge.Notes += "\n" + line
}
