package sync

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"subtrack/feature/charges"
	"subtrack/feature/sync/provider"
)

// Matcher resolves which existing charge a provider snapshot belongs to.
//
// Matching runs in two stages. The exact stage looks for the single charge
// explicitly linked to the provider id. The fuzzy stage falls back to a
// case-insensitive supplier search with the provider's display-name token
// and only considers charges that carry no link yet, so a fuzzy hit never
// steals a charge already owned by another provider.
type Matcher struct {
	store charges.Store
}

// NewMatcher creates a matcher over the given charge store.
func NewMatcher(store charges.Store) *Matcher {
	return &Matcher{store: store}
}

// Match returns the charge for a provider, whether it was found via the
// fuzzy stage, or (nil, false, nil) when no charge matches.
func (m *Matcher) Match(ctx context.Context, desc provider.Descriptor) (*charges.Charge, bool, error) {
	charge, err := m.store.FindByAutoProvider(ctx, desc.ID)
	if err == nil {
		return charge, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	charge, err = m.store.FindBySupplierToken(ctx, supplierToken(desc))
	if err == nil {
		return charge, true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	return nil, false, err
}

// supplierToken derives the fuzzy search token from the provider metadata:
// the first word of the display name, falling back to the provider id.
// "OpenAI Platform" searches for "openai", which also hits suppliers like
// "OpenAI Inc.".
func supplierToken(desc provider.Descriptor) string {
	fields := strings.Fields(desc.DisplayName)
	if len(fields) > 0 {
		return strings.ToLower(fields[0])
	}
	return strings.ToLower(desc.ID)
}
