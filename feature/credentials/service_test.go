package credentials_test

import (
	"context"
	"errors"
	"testing"

	"subtrack/core/database"
	"subtrack/feature/credentials"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) *credentials.Service {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&credentials.Credential{}))

	return credentials.NewService(credentials.NewStore(db), zap.NewNop())
}

func TestUpsertCredential(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	cred, err := svc.Upsert(ctx, credentials.UpsertInput{
		Provider: " OpenAI ",
		ApiKey:   "sk-test-1234",
		Label:    "Team key",
	})
	assert.NoError(t, err)
	assert.Equal(t, "openai", cred.Provider)
	assert.True(t, cred.IsActive)

	// Upsert by provider replaces the secret, not the row count.
	replaced, err := svc.Upsert(ctx, credentials.UpsertInput{
		Provider: "openai",
		ApiKey:   "sk-test-5678",
	})
	assert.NoError(t, err)
	assert.Equal(t, cred.ID, replaced.ID)

	list, err := svc.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "****5678", list[0].ApiKeyMasked)
}

func TestUpsertCredential_Validation(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Upsert(context.Background(), credentials.UpsertInput{Provider: "openai"})
	assert.Error(t, err)

	_, err = svc.Upsert(context.Background(), credentials.UpsertInput{ApiKey: "sk-x"})
	assert.Error(t, err)
}

func TestDeleteCredential(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, credentials.UpsertInput{Provider: "vercel", ApiKey: "vc-123"})
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(ctx, "vercel"))

	err = svc.Delete(ctx, "vercel")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestMaskedKey(t *testing.T) {
	c := credentials.Credential{ApiKey: "sk-abcdef"}
	assert.Equal(t, "****cdef", c.MaskedKey())

	short := credentials.Credential{ApiKey: "abc"}
	assert.Equal(t, "****", short.MaskedKey())
}
