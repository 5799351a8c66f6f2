package charges

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Store provides DB operations on charges.
//
// The sync orchestrator depends on this interface rather than on GORM
// directly, so alternative implementations can add locking or CAS writes
// without changing the matcher or policy contracts.
type Store interface {
	// List returns all charges, newest first.
	List(ctx context.Context) ([]Charge, error)
	// GetByID returns one charge or gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, id uint) (*Charge, error)
	// FindByAutoProvider returns the single charge explicitly linked to the
	// provider, or gorm.ErrRecordNotFound.
	FindByAutoProvider(ctx context.Context, provider string) (*Charge, error)
	// FindBySupplierToken returns the oldest unlinked charge whose supplier
	// field contains the token (case-insensitive), or gorm.ErrRecordNotFound.
	FindBySupplierToken(ctx context.Context, token string) (*Charge, error)
	// Create inserts a new charge.
	Create(ctx context.Context, charge *Charge) error
	// Save persists all fields of an existing charge.
	Save(ctx context.Context, charge *Charge) error
	// Delete removes a charge by id.
	Delete(ctx context.Context, id uint) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore creates a charge store backed by GORM.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) List(ctx context.Context) ([]Charge, error) {
	var out []Charge
	err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (s *gormStore) GetByID(ctx context.Context, id uint) (*Charge, error) {
	var c Charge
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *gormStore) FindByAutoProvider(ctx context.Context, provider string) (*Charge, error) {
	var c Charge
	err := s.db.WithContext(ctx).
		Where("auto_provider = ?", provider).
		Order("created_at, id").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *gormStore) FindBySupplierToken(ctx context.Context, token string) (*Charge, error) {
	// Oldest charge wins so repeated runs resolve ties deterministically.
	var c Charge
	pattern := "%" + strings.ToLower(strings.TrimSpace(token)) + "%"
	err := s.db.WithContext(ctx).
		Where("(auto_provider = ? OR auto_provider IS NULL) AND LOWER(supplier) LIKE ?", "", pattern).
		Order("created_at, id").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *gormStore) Create(ctx context.Context, charge *Charge) error {
	return s.db.WithContext(ctx).Create(charge).Error
}

func (s *gormStore) Save(ctx context.Context, charge *Charge) error {
	return s.db.WithContext(ctx).Save(charge).Error
}

func (s *gormStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&Charge{}, id).Error
}
