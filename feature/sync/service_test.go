package sync_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"subtrack/core/database"
	"subtrack/feature/charges"
	"subtrack/feature/credentials"
	"subtrack/feature/sync"
	"subtrack/feature/sync/provider"
	"subtrack/feature/usagelog"
)

type stubAdapter struct {
	desc    provider.Descriptor
	snap    *provider.Snapshot
	err     error
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (a *stubAdapter) Descriptor() provider.Descriptor { return a.desc }

func (a *stubAdapter) FetchUsage(ctx context.Context, apiKey string) (*provider.Snapshot, error) {
	a.calls++
	if a.entered != nil {
		close(a.entered)
		<-a.release
	}
	if a.err != nil {
		return nil, a.err
	}
	snap := *a.snap
	return &snap, nil
}

type syncEnv struct {
	db       *gorm.DB
	registry *provider.Registry
	charges  charges.Store
	creds    credentials.Store
	sink     usagelog.Sink
	service  *sync.Service
}

func setupSync(t *testing.T, adapters ...provider.Adapter) *syncEnv {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&charges.Charge{}, &credentials.Credential{}, &usagelog.Entry{}))

	registry := provider.NewRegistry()
	for _, a := range adapters {
		registry.Register(a)
	}

	env := &syncEnv{
		db:       db,
		registry: registry,
		charges:  charges.NewStore(db),
		creds:    credentials.NewStore(db),
		sink:     usagelog.NewSink(db),
	}
	env.service = sync.NewService(zap.NewNop(), env.charges, env.creds, env.sink, registry, nil, sync.Options{})
	return env
}

func (e *syncEnv) addCredential(t *testing.T, providerID string) credentials.Credential {
	t.Helper()
	cred := credentials.Credential{Provider: providerID, ApiKey: "sk-" + providerID, IsActive: true}
	assert.NoError(t, e.db.Create(&cred).Error)
	return cred
}

func TestRunSyncUpdatesLinkedCharge(t *testing.T) {
	adapter := &stubAdapter{
		desc: provider.Descriptor{ID: "openai", DisplayName: "OpenAI Platform", Category: "software"},
		snap: &provider.Snapshot{Amount: 42.5, Currency: "USD", Period: "2026-08", KeyValid: true},
	}
	env := setupSync(t, adapter)
	env.addCredential(t, "openai")

	charge := charges.Charge{Name: "OpenAI", Supplier: "OpenAI", Amount: 10, AutoProvider: "openai"}
	assert.NoError(t, env.db.Create(&charge).Error)

	report, err := env.service.RunSync(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, sync.ActionUpdateAmount, report.Results[0].Action)

	got, err := env.charges.GetByID(context.Background(), charge.ID)
	assert.NoError(t, err)
	assert.Equal(t, 42.5, got.Amount)
	assert.NotNil(t, got.LastAutoUpdate)
	assert.Contains(t, got.Notes, "amount updated from 10.00 to 42.50")

	// A second run with the same snapshot must not create anything new and
	// resolves through the exact link again.
	report, err = env.service.RunSync(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, sync.ActionTouch, report.Results[0].Action)
	assert.Zero(t, report.Updated)

	all, err := env.charges.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRunSyncZeroAmountPreservesManualAmount(t *testing.T) {
	adapter := &stubAdapter{
		desc: provider.Descriptor{ID: "openai", DisplayName: "OpenAI Platform"},
		snap: &provider.Snapshot{Amount: 0, KeyValid: true},
	}
	env := setupSync(t, adapter)
	env.addCredential(t, "openai")

	charge := charges.Charge{Name: "OpenAI", Supplier: "OpenAI", Amount: 25, AutoProvider: "openai"}
	assert.NoError(t, env.db.Create(&charge).Error)

	report, err := env.service.RunSync(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, sync.ActionTouch, report.Results[0].Action)

	got, err := env.charges.GetByID(context.Background(), charge.ID)
	assert.NoError(t, err)
	assert.Equal(t, float64(25), got.Amount)
	assert.NotNil(t, got.LastAutoUpdate)
}

// failAfterFirstFuzzy makes any fuzzy lookup after the first one fail, to
// prove that later runs resolve promoted charges through the exact stage.
type failAfterFirstFuzzy struct {
	charges.Store
	calls int
}

func (s *failAfterFirstFuzzy) FindBySupplierToken(ctx context.Context, token string) (*charges.Charge, error) {
	s.calls++
	if s.calls > 1 {
		return nil, errors.New("fuzzy lookup should not run for linked charges")
	}
	return s.Store.FindBySupplierToken(ctx, token)
}

func TestRunSyncPromotesFuzzyMatch(t *testing.T) {
	adapter := &stubAdapter{
		desc: provider.Descriptor{ID: "vercel", DisplayName: "Vercel", Category: "hosting"},
		snap: &provider.Snapshot{Amount: 0, KeyValid: true},
	}
	env := setupSync(t, adapter)
	env.addCredential(t, "vercel")

	charge := charges.Charge{Name: "Hosting", Supplier: "Vercel Inc.", Amount: 99}
	assert.NoError(t, env.db.Create(&charge).Error)

	wrapped := &failAfterFirstFuzzy{Store: env.charges}
	svc := sync.NewService(zap.NewNop(), wrapped, env.creds, env.sink, env.registry, nil, sync.Options{})

	report, err := svc.RunSync(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, sync.ActionTouch, report.Results[0].Action)
	assert.True(t, report.Results[0].Fuzzy)

	got, err := env.charges.GetByID(context.Background(), charge.ID)
	assert.NoError(t, err)
	assert.Equal(t, "vercel", got.AutoProvider)
	assert.Equal(t, float64(99), got.Amount)

	// Second run: the link is explicit now, so the fuzzy stage never fires.
	report, err = svc.RunSync(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, sync.ActionTouch, report.Results[0].Action)
	assert.False(t, report.Results[0].Fuzzy)
	assert.Zero(t, report.Updated)
	assert.Equal(t, 1, wrapped.calls)
}

func TestRunSyncInvalidKeyCreatesNothing(t *testing.T) {
	adapter := &stubAdapter{
		desc: provider.Descriptor{ID: "openai", DisplayName: "OpenAI Platform"},
		snap: &provider.Snapshot{Err: "invalid API key", KeyValid: false},
	}
	env := setupSync(t, adapter)
	env.addCredential(t, "openai")

	report, err := env.service.RunSync(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, sync.ActionNoop, report.Results[0].Action)
	assert.Equal(t, "invalid API key", report.Results[0].Error)
	assert.False(t, report.Results[0].KeyValid)
	assert.Zero(t, report.Updated)

	all, err := env.charges.List(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, all)

	// The failed attempt still lands in the usage log.
	entries, err := env.sink.Recent(context.Background(), 10)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Contains(t, entries[0].Details, "invalid API key")
}

func TestRunSyncIsolatesProviderFailures(t *testing.T) {
	good1 := &stubAdapter{
		desc: provider.Descriptor{ID: "anthropic", DisplayName: "Anthropic API"},
		snap: &provider.Snapshot{Amount: 5, KeyValid: true},
	}
	broken := &stubAdapter{
		desc: provider.Descriptor{ID: "openai", DisplayName: "OpenAI Platform"},
		err:  errors.New("connection refused"),
	}
	good2 := &stubAdapter{
		desc: provider.Descriptor{ID: "openrouter", DisplayName: "OpenRouter"},
		snap: &provider.Snapshot{Amount: 7, KeyValid: true},
	}

	env := setupSync(t, good1, broken, good2)
	env.addCredential(t, "anthropic")
	env.addCredential(t, "openai")
	env.addCredential(t, "openrouter")

	report, err := env.service.RunSync(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 3, report.Processed)
	assert.Equal(t, 2, report.Updated)

	byProvider := map[string]sync.ProviderResult{}
	for _, r := range report.Results {
		byProvider[r.Provider] = r
	}
	assert.Equal(t, sync.ActionCreate, byProvider["anthropic"].Action)
	assert.Equal(t, sync.ActionNoop, byProvider["openai"].Action)
	assert.Contains(t, byProvider["openai"].Error, "connection refused")
	assert.Equal(t, sync.ActionCreate, byProvider["openrouter"].Action)

	all, err := env.charges.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRunSyncCreatesChargeWithPlanNote(t *testing.T) {
	adapter := &stubAdapter{
		desc: provider.Descriptor{ID: "anthropic", DisplayName: "Anthropic API", Category: "software"},
		snap: &provider.Snapshot{
			Amount:       20,
			Currency:     "USD",
			KeyValid:     true,
			Subscription: &provider.Subscription{Plan: "Pro"},
		},
	}
	env := setupSync(t, adapter)
	cred := env.addCredential(t, "anthropic")

	report, err := env.service.RunSync(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, sync.ActionCreate, report.Results[0].Action)

	got, err := env.charges.GetByID(context.Background(), report.Results[0].ChargeID)
	assert.NoError(t, err)
	assert.Equal(t, "Anthropic API", got.Name)
	assert.Equal(t, "software", got.Category)
	assert.Equal(t, float64(20), got.Amount)
	assert.Equal(t, charges.FrequencyMonthly, got.Frequency)
	assert.True(t, got.IsActive)
	assert.Equal(t, "anthropic", got.AutoProvider)
	assert.Equal(t, cred.ID, got.AutoCredentialID)
	assert.Contains(t, got.Notes, "Pro")
}

func TestRunSyncRefreshesCredentialState(t *testing.T) {
	adapter := &stubAdapter{
		desc: provider.Descriptor{ID: "openrouter", DisplayName: "OpenRouter"},
		snap: &provider.Snapshot{Amount: 3.5, KeyValid: true},
	}
	env := setupSync(t, adapter)
	env.addCredential(t, "openrouter")

	_, err := env.service.RunSync(context.Background())
	assert.NoError(t, err)

	cred, err := env.creds.GetByProvider(context.Background(), "openrouter")
	assert.NoError(t, err)
	assert.NotNil(t, cred.LastChecked)
	assert.Equal(t, 3.5, cred.LastUsageAmount)
}

func TestRunSyncSkipsInactiveCredentials(t *testing.T) {
	adapter := &stubAdapter{
		desc: provider.Descriptor{ID: "openai", DisplayName: "OpenAI Platform"},
		snap: &provider.Snapshot{Amount: 1, KeyValid: true},
	}
	env := setupSync(t, adapter)

	cred := credentials.Credential{Provider: "openai", ApiKey: "sk", IsActive: false}
	assert.NoError(t, env.db.Create(&cred).Error)

	report, err := env.service.RunSync(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, report.Processed)
	assert.Zero(t, adapter.calls)
}

type failingSink struct{}

func (failingSink) Record(ctx context.Context, entry *usagelog.Entry) error {
	return errors.New("append rejected")
}

func (failingSink) Recent(ctx context.Context, limit int) ([]usagelog.Entry, error) {
	return nil, nil
}

func TestRunSyncContinuesWhenLogAppendFails(t *testing.T) {
	adapter := &stubAdapter{
		desc: provider.Descriptor{ID: "openai", DisplayName: "OpenAI Platform"},
		snap: &provider.Snapshot{Amount: 42.5, Currency: "USD", KeyValid: true},
	}
	env := setupSync(t, adapter)
	env.addCredential(t, "openai")

	charge := charges.Charge{Name: "OpenAI", Supplier: "OpenAI", Amount: 10, AutoProvider: "openai"}
	assert.NoError(t, env.db.Create(&charge).Error)

	svc := sync.NewService(zap.NewNop(), env.charges, env.creds, failingSink{}, env.registry, nil, sync.Options{})

	report, err := svc.RunSync(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, report.Updated)

	result := report.Results[0]
	assert.Equal(t, sync.ActionUpdateAmount, result.Action)
	assert.Contains(t, result.Error, "failed to record usage entry")

	// Reconciliation and the credential touch still happen.
	got, err := env.charges.GetByID(context.Background(), charge.ID)
	assert.NoError(t, err)
	assert.Equal(t, 42.5, got.Amount)

	cred, err := env.creds.GetByProvider(context.Background(), "openai")
	assert.NoError(t, err)
	assert.NotNil(t, cred.LastChecked)
	assert.Equal(t, 42.5, cred.LastUsageAmount)
}

func TestRunSyncReportCarriesSnapshotFields(t *testing.T) {
	adapter := &stubAdapter{
		desc: provider.Descriptor{ID: "anthropic", DisplayName: "Anthropic API"},
		snap: &provider.Snapshot{
			Amount:       20,
			Currency:     "EUR",
			Period:       "2026-08",
			KeyValid:     true,
			Subscription: &provider.Subscription{Plan: "Pro"},
		},
	}
	env := setupSync(t, adapter)
	env.addCredential(t, "anthropic")

	report, err := env.service.RunSync(context.Background())
	assert.NoError(t, err)

	result := report.Results[0]
	assert.Equal(t, float64(20), result.Amount)
	assert.Equal(t, "EUR", result.Currency)
	assert.Equal(t, "2026-08", result.Period)
	assert.True(t, result.KeyValid)
	assert.NotNil(t, result.Subscription)
	assert.Equal(t, "Pro", result.Subscription.Plan)
}

func TestRunSyncRejectsConcurrentRuns(t *testing.T) {
	adapter := &stubAdapter{
		desc:    provider.Descriptor{ID: "openai", DisplayName: "OpenAI Platform"},
		snap:    &provider.Snapshot{Amount: 1, KeyValid: true},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	env := setupSync(t, adapter)
	env.addCredential(t, "openai")

	done := make(chan error, 1)
	go func() {
		_, err := env.service.RunSync(context.Background())
		done <- err
	}()

	select {
	case <-adapter.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first run never reached the adapter")
	}

	_, err := env.service.RunSync(context.Background())
	assert.ErrorIs(t, err, sync.ErrSyncRunning)

	close(adapter.release)
	assert.NoError(t, <-done)
}
