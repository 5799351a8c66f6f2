package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"subtrack/core/storage"
	"subtrack/feature/charges"
	"subtrack/feature/credentials"
	"subtrack/feature/sync/provider"
	"subtrack/feature/usagelog"
)

// ErrSyncRunning is returned when a run is requested while another is active.
var ErrSyncRunning = errors.New("a sync run is already in progress")

// Options tunes the sync orchestrator.
type Options struct {
	// ProviderTimeout bounds each provider API call.
	ProviderTimeout time.Duration
	// DefaultCategory is used for created charges whose provider declares none.
	DefaultCategory string
	// ArchiveEnabled turns on report archiving to object storage.
	ArchiveEnabled bool
	// ArchiveBucket is the bucket reports are written to.
	ArchiveBucket string
}

// Service orchestrates one sync run across all active credentials.
//
// Failures are isolated per credential: a provider outage or rejected key
// produces an error result for that provider and the run continues. The
// usage log append is attempted before any charge mutation; if it fails the
// error is surfaced in the result and reconciliation proceeds anyway.
type Service struct {
	log      *zap.Logger
	charges  charges.Store
	creds    credentials.Store
	sink     usagelog.Sink
	matcher  *Matcher
	registry *provider.Registry
	archive  storage.Client
	opts     Options

	running sync.Mutex
}

// NewService wires the sync orchestrator. archive may be nil when object
// storage is not configured.
func NewService(log *zap.Logger, chargeStore charges.Store, credStore credentials.Store, sink usagelog.Sink, registry *provider.Registry, archive storage.Client, opts Options) *Service {
	if opts.ProviderTimeout <= 0 {
		opts.ProviderTimeout = 20 * time.Second
	}
	if opts.DefaultCategory == "" {
		opts.DefaultCategory = "software"
	}

	return &Service{
		log:      log,
		charges:  chargeStore,
		creds:    credStore,
		sink:     sink,
		matcher:  NewMatcher(chargeStore),
		registry: registry,
		archive:  archive,
		opts:     opts,
	}
}

// RunSync executes one full sync pass over all active credentials.
//
// Only one run may be active at a time; concurrent calls get ErrSyncRunning
// instead of queueing behind the active run.
func (s *Service) RunSync(ctx context.Context) (*Report, error) {
	if !s.running.TryLock() {
		return nil, ErrSyncRunning
	}
	defer s.running.Unlock()

	creds, err := s.creds.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}

	report := &Report{Results: make([]ProviderResult, 0, len(creds))}
	for _, cred := range creds {
		result := s.syncCredential(ctx, cred)
		report.Processed++
		if result.changed() {
			report.Updated++
		}
		report.Results = append(report.Results, result)
	}

	report.Timestamp = time.Now()
	report.Message = fmt.Sprintf("processed %d credential(s), %d charge(s) changed", report.Processed, report.Updated)

	if s.opts.ArchiveEnabled && s.archive != nil {
		s.archiveReport(ctx, report)
	}

	return report, nil
}

// changed reports whether the result mutated or linked a charge.
func (r ProviderResult) changed() bool {
	switch r.Action {
	case ActionCreate, ActionUpdateAmount:
		return true
	case ActionTouch:
		return r.Fuzzy
	}
	return false
}

func (s *Service) syncCredential(ctx context.Context, cred credentials.Credential) ProviderResult {
	res := ProviderResult{Provider: cred.Provider}

	adapter, ok := s.registry.Get(cred.Provider)
	if !ok {
		res.Action = ActionNoop
		res.Error = "no adapter registered for provider"
		s.log.Warn("skipping credential without adapter", zap.String("provider", cred.Provider))
		return res
	}
	desc := adapter.Descriptor()

	fetchCtx, cancel := context.WithTimeout(ctx, s.opts.ProviderTimeout)
	snap, err := adapter.FetchUsage(fetchCtx, cred.ApiKey)
	cancel()
	if err != nil {
		res.Action = ActionNoop
		res.Error = err.Error()
		s.log.Warn("usage fetch failed",
			zap.String("provider", cred.Provider),
			zap.Error(err))
		return res
	}

	now := time.Now()
	res.Amount = snap.Amount
	res.Currency = snap.Currency
	res.Period = snap.Period
	res.KeyValid = snap.KeyValid
	res.Subscription = snap.Subscription

	// History is written before any charge mutation. A failed append is
	// reported in the result but does not block reconciliation.
	entry := &usagelog.Entry{
		Provider: cred.Provider,
		Period:   snap.Period,
		Amount:   snap.Amount,
		Currency: snap.Currency,
		Details:  entryDetails(snap),
	}
	if err := s.sink.Record(ctx, entry); err != nil {
		res.addError(fmt.Sprintf("failed to record usage entry: %v", err))
		s.log.Error("usage log append failed",
			zap.String("provider", cred.Provider),
			zap.Error(err))
	}

	if err := s.creds.TouchChecked(ctx, cred.Provider, snap.Amount, now); err != nil {
		s.log.Warn("failed to update credential check state",
			zap.String("provider", cred.Provider),
			zap.Error(err))
	}

	if !snap.KeyValid {
		res.Action = ActionNoop
		res.addError(snap.Err)
		return res
	}

	matched, fuzzy, err := s.matcher.Match(ctx, desc)
	if err != nil {
		res.Action = ActionNoop
		res.addError(fmt.Sprintf("charge lookup failed: %v", err))
		return res
	}

	res.Action = Decide(snap, matched)
	switch res.Action {
	case ActionCreate:
		charge := newCharge(desc, snap, cred.ID, s.opts.DefaultCategory, now)
		if err := s.charges.Create(ctx, charge); err != nil {
			res.Action = ActionNoop
			res.addError(fmt.Sprintf("failed to create charge: %v", err))
			return res
		}
		res.ChargeID = charge.ID
		s.log.Info("created charge from usage snapshot",
			zap.String("provider", cred.Provider),
			zap.Uint("charge_id", charge.ID),
			zap.Float64("amount", snap.Amount))

	case ActionUpdateAmount:
		appendNote(matched, fmt.Sprintf("amount updated from %.2f to %.2f (%s plan)", matched.Amount, snap.Amount, snap.PlanLabel()), now)
		matched.Amount = snap.Amount
		res.Fuzzy = s.promote(matched, desc, cred.ID, fuzzy)
		matched.LastAutoUpdate = &now
		if err := s.charges.Save(ctx, matched); err != nil {
			res.Action = ActionNoop
			res.addError(fmt.Sprintf("failed to save charge: %v", err))
			return res
		}
		res.ChargeID = matched.ID
		s.log.Info("updated charge amount",
			zap.String("provider", cred.Provider),
			zap.Uint("charge_id", matched.ID),
			zap.Float64("amount", snap.Amount))

	case ActionTouch:
		res.Fuzzy = s.promote(matched, desc, cred.ID, fuzzy)
		matched.LastAutoUpdate = &now
		if err := s.charges.Save(ctx, matched); err != nil {
			res.Action = ActionNoop
			res.addError(fmt.Sprintf("failed to save charge: %v", err))
			return res
		}
		res.ChargeID = matched.ID
	}

	return res
}

// promote upgrades a fuzzy supplier match to an explicit provider link so
// future runs resolve it in the exact stage.
func (s *Service) promote(charge *charges.Charge, desc provider.Descriptor, credentialID uint, fuzzy bool) bool {
	if !fuzzy {
		return false
	}
	charge.AutoProvider = desc.ID
	charge.AutoCredentialID = credentialID
	s.log.Info("promoted supplier match to provider link",
		zap.String("provider", desc.ID),
		zap.Uint("charge_id", charge.ID))
	return true
}

func entryDetails(snap *provider.Snapshot) string {
	if snap.Err != "" {
		return "error: " + snap.Err
	}

	var parts []string
	if snap.Subscription != nil && snap.Subscription.Plan != "" {
		parts = append(parts, "plan="+snap.Subscription.Plan)
	}
	if snap.Details != "" {
		parts = append(parts, snap.Details)
	}
	return strings.Join(parts, " ")
}

// archiveReport writes the report JSON to object storage, best effort.
func (s *Service) archiveReport(ctx context.Context, report *Report) {
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		s.log.Error("failed to marshal sync report", zap.Error(err))
		return
	}

	bucket := s.opts.ArchiveBucket
	exists, err := s.archive.BucketExists(ctx, bucket)
	if err != nil {
		s.log.Error("failed to check report bucket", zap.Error(err))
		return
	}
	if !exists {
		if err := s.archive.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			s.log.Error("failed to create report bucket", zap.Error(err))
			return
		}
	}

	name := "sync-reports/" + report.Timestamp.UTC().Format("2006-01-02T150405Z") + ".json"
	_, err = s.archive.PutObject(ctx, bucket, name, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		s.log.Error("failed to archive sync report",
			zap.String("object", name),
			zap.Error(err))
		return
	}

	s.log.Info("archived sync report", zap.String("object", name))
}
