package charges

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Service handles charge ledger operations for the CRM.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a new charge service.
func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// List returns all charges, newest first.
func (s *Service) List(ctx context.Context) ([]Charge, error) {
	return s.store.List(ctx)
}

// Get returns a single charge by id.
func (s *Service) Get(ctx context.Context, id uint) (*Charge, error) {
	return s.store.GetByID(ctx, id)
}

// Create validates and inserts a manually-entered charge.
func (s *Service) Create(ctx context.Context, charge *Charge) error {
	if strings.TrimSpace(charge.Name) == "" {
		return errors.New("charge name is required")
	}
	if charge.Amount < 0 {
		return errors.New("charge amount cannot be negative")
	}
	if charge.Frequency == "" {
		charge.Frequency = FrequencyMonthly
	}
	return s.store.Create(ctx, charge)
}

// Update replaces the user-owned fields of an existing charge.
// Auto-sync metadata is preserved; only the sync engine writes it.
func (s *Service) Update(ctx context.Context, id uint, in *Charge) (*Charge, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("charge name is required")
	}
	if in.Amount < 0 {
		return nil, errors.New("charge amount cannot be negative")
	}

	existing.Name = in.Name
	existing.Category = in.Category
	existing.Amount = in.Amount
	if in.Frequency != "" {
		existing.Frequency = in.Frequency
	}
	existing.StartDate = in.StartDate
	existing.EndDate = in.EndDate
	existing.IsActive = in.IsActive
	existing.Supplier = in.Supplier
	existing.Notes = in.Notes

	if err := s.store.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a charge by id.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Deleting charge", zap.Uint("id", id))
	return s.store.Delete(ctx, id)
}
