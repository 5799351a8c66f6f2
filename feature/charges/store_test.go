package charges_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"subtrack/core/database"
	"subtrack/feature/charges"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) (charges.Store, *gorm.DB) {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)

	err = db.AutoMigrate(&charges.Charge{})
	assert.NoError(t, err)

	return charges.NewStore(db), db
}

func TestFindByAutoProvider(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()

	err := db.Create(&charges.Charge{Name: "OpenAI", Supplier: "OpenAI", AutoProvider: "openai"}).Error
	assert.NoError(t, err)

	t.Run("Linked", func(t *testing.T) {
		c, err := store.FindByAutoProvider(ctx, "openai")
		assert.NoError(t, err)
		assert.Equal(t, "OpenAI", c.Name)
	})

	t.Run("Not Linked", func(t *testing.T) {
		c, err := store.FindByAutoProvider(ctx, "anthropic")
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
		assert.Nil(t, c)
	})
}

func TestFindBySupplierToken(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()

	older := charges.Charge{Name: "AI subscription", Supplier: "OpenAI Ireland"}
	older.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := charges.Charge{Name: "AI subscription 2", Supplier: "openai inc"}
	newer.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	linked := charges.Charge{Name: "Linked", Supplier: "OpenAI", AutoProvider: "other"}

	assert.NoError(t, db.Create(&older).Error)
	assert.NoError(t, db.Create(&newer).Error)
	assert.NoError(t, db.Create(&linked).Error)

	t.Run("Case Insensitive Substring", func(t *testing.T) {
		c, err := store.FindBySupplierToken(ctx, "OpenAI")
		assert.NoError(t, err)
		assert.Equal(t, "AI subscription", c.Name)
	})

	t.Run("Oldest Wins", func(t *testing.T) {
		// Both unlinked charges match; the 2024 one must be returned.
		c, err := store.FindBySupplierToken(ctx, "openai")
		assert.NoError(t, err)
		assert.Equal(t, older.ID, c.ID)
	})

	t.Run("Linked Charges Excluded", func(t *testing.T) {
		// Only the linked charge matches this token.
		_, err := store.FindBySupplierToken(ctx, "nonexistent")
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})
}

func TestStoreCRUD(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	c := &charges.Charge{Name: "Vercel", Supplier: "Vercel Inc", Amount: 20, Frequency: charges.FrequencyMonthly, IsActive: true}
	assert.NoError(t, store.Create(ctx, c))
	assert.NotZero(t, c.ID)

	got, err := store.GetByID(ctx, c.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Vercel", got.Name)

	got.Amount = 25
	assert.NoError(t, store.Save(ctx, got))

	list, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 25.0, list[0].Amount)

	assert.NoError(t, store.Delete(ctx, c.ID))
	_, err = store.GetByID(ctx, c.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
