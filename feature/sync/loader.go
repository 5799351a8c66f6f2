package sync

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"subtrack/core/storage"
	"subtrack/feature/charges"
	"subtrack/feature/credentials"
	"subtrack/feature/sync/provider"
	"subtrack/feature/usagelog"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Sync feature. archive may be nil when object
// storage is not configured.
func NewFeature(db *gorm.DB, logger *zap.Logger, registry *provider.Registry, archive storage.Client, cronSecret string, opts Options) *Feature {
	svc := NewService(
		logger,
		charges.NewStore(db),
		credentials.NewStore(db),
		usagelog.NewSink(db),
		registry,
		archive,
		opts,
	)
	h := NewHandler(svc, cronSecret)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "sync"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the orchestrator for CLI use.
func (f *Feature) Service() *Service {
	return f.service
}
