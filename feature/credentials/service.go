package credentials

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

// MaskedCredential is the listing view of a credential: the secret is
// never returned whole.
type MaskedCredential struct {
	ID              uint       `json:"id"`
	Provider        string     `json:"provider"`
	Label           string     `json:"label"`
	ApiKeyMasked    string     `json:"api_key_masked"`
	IsActive        bool       `json:"is_active"`
	LastChecked     *time.Time `json:"last_checked,omitempty"`
	LastUsageAmount float64    `json:"last_usage_amount"`
}

// UpsertInput is the request shape for creating or replacing a credential.
type UpsertInput struct {
	Provider string `json:"provider"`
	ApiKey   string `json:"api_key"`
	Label    string `json:"label"`
	IsActive *bool  `json:"is_active"`
}

// Service handles credential management.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a new credential service.
func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// List returns all credentials with masked secrets.
func (s *Service) List(ctx context.Context) ([]MaskedCredential, error) {
	creds, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]MaskedCredential, 0, len(creds))
	for _, c := range creds {
		out = append(out, MaskedCredential{
			ID:              c.ID,
			Provider:        c.Provider,
			Label:           c.Label,
			ApiKeyMasked:    c.MaskedKey(),
			IsActive:        c.IsActive,
			LastChecked:     c.LastChecked,
			LastUsageAmount: c.LastUsageAmount,
		})
	}
	return out, nil
}

// Upsert creates or replaces the credential for a provider.
func (s *Service) Upsert(ctx context.Context, in UpsertInput) (*Credential, error) {
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	key := strings.TrimSpace(in.ApiKey)
	if provider == "" || key == "" {
		return nil, errors.New("provider and api_key are required")
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	cred := &Credential{
		Provider: provider,
		ApiKey:   key,
		Label:    strings.TrimSpace(in.Label),
		IsActive: active,
	}
	if err := s.store.Upsert(ctx, cred); err != nil {
		return nil, err
	}

	s.logger.Info("Credential upserted", zap.String("provider", provider))
	return cred, nil
}

// Delete removes the credential for a provider.
func (s *Service) Delete(ctx context.Context, provider string) error {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return errors.New("provider is required")
	}
	if _, err := s.store.GetByProvider(ctx, provider); err != nil {
		return err
	}

	s.logger.Info("Credential deleted", zap.String("provider", provider))
	return s.store.Delete(ctx, provider)
}
