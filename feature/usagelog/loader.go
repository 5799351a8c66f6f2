package usagelog

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	sink    Sink
	handler *Handler
}

// NewFeature creates a new UsageLog feature.
func NewFeature(db *gorm.DB, logger *zap.Logger, maxLimit int) *Feature {
	sink := NewSink(db)
	h := NewHandler(sink, logger, maxLimit)
	return &Feature{sink: sink, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "usagelog"
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

// Sink exposes the underlying sink for the sync feature.
func (f *Feature) Sink() Sink {
	return f.sink
}
