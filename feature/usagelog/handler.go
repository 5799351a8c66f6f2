package usagelog

import (
	"subtrack/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the usage history.
type Handler struct {
	sink     Sink
	logger   *zap.Logger
	maxLimit int
}

// NewHandler creates a new HTTP handler.
func NewHandler(sink Sink, logger *zap.Logger, maxLimit int) *Handler {
	if maxLimit <= 0 {
		maxLimit = 50
	}
	return &Handler{sink: sink, logger: logger, maxLimit: maxLimit}
}

// RegisterRoutes registers the usage log routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/usage-log", h.HandleListEntries)
}

// HandleListEntries returns the most recent usage log entries.
// @Summary List Usage Log
// @Description List the most recent usage fetch records, newest first.
// @Tags usagelog
// @Produce json
// @Param limit query int false "Maximum entries to return"
// @Success 200 {array} usagelog.Entry "Entries"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /usage-log [get]
func (h *Handler) HandleListEntries(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	limit := c.QueryInt("limit", h.maxLimit)
	if limit <= 0 || limit > h.maxLimit {
		limit = h.maxLimit
	}

	entries, err := h.sink.Recent(c.Context(), limit)
	if err != nil {
		l.Error("Usage log listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(entries)
}
