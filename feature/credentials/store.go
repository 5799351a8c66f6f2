package credentials

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store provides DB operations on provider credentials.
type Store interface {
	// List returns all credentials ordered by provider.
	List(ctx context.Context) ([]Credential, error)
	// ListActive returns credentials eligible for syncing, ordered by provider.
	ListActive(ctx context.Context) ([]Credential, error)
	// GetByProvider returns one credential or gorm.ErrRecordNotFound.
	GetByProvider(ctx context.Context, provider string) (*Credential, error)
	// Upsert inserts or replaces the credential for its provider.
	Upsert(ctx context.Context, cred *Credential) error
	// Delete removes the credential for a provider.
	Delete(ctx context.Context, provider string) error
	// TouchChecked updates the cached last-checked/last-usage fields.
	TouchChecked(ctx context.Context, provider string, amount float64, at time.Time) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore creates a credential store backed by GORM.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) List(ctx context.Context) ([]Credential, error) {
	var out []Credential
	err := s.db.WithContext(ctx).Order("provider").Find(&out).Error
	return out, err
}

func (s *gormStore) ListActive(ctx context.Context) ([]Credential, error) {
	var out []Credential
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("provider").
		Find(&out).Error
	return out, err
}

func (s *gormStore) GetByProvider(ctx context.Context, provider string) (*Credential, error) {
	var c Credential
	if err := s.db.WithContext(ctx).Where("provider = ?", provider).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *gormStore) Upsert(ctx context.Context, cred *Credential) error {
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"api_key",
			"label",
			"is_active",
			"updated_at",
		}),
	}).Create(cred).Error; err != nil {
		return err
	}

	// Ensure ID is populated after upsert.
	return s.db.WithContext(ctx).Where("provider = ?", cred.Provider).First(cred).Error
}

func (s *gormStore) Delete(ctx context.Context, provider string) error {
	return s.db.WithContext(ctx).Where("provider = ?", provider).Delete(&Credential{}).Error
}

func (s *gormStore) TouchChecked(ctx context.Context, provider string, amount float64, at time.Time) error {
	return s.db.WithContext(ctx).Model(&Credential{}).
		Where("provider = ?", provider).
		Updates(map[string]interface{}{
			"last_checked":      &at,
			"last_usage_amount": amount,
		}).Error
}
