package sync

import (
	"crypto/subtle"
	"errors"
	"strings"

	"subtrack/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests that trigger sync runs.
type Handler struct {
	service    *Service
	cronSecret string
}

// NewHandler creates a new HTTP handler. cronSecret guards the cron
// endpoint; when empty the endpoint is open, mirroring the API key
// middleware.
func NewHandler(service *Service, cronSecret string) *Handler {
	return &Handler{service: service, cronSecret: cronSecret}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/run", h.HandleRunSync)
	group.Post("/cron", h.HandleCronSync)
}

// HandleRunSync triggers an on-demand sync run.
// @Summary Run Sync
// @Description Run one sync pass over all active credentials and return the report.
// @Tags sync
// @Produce json
// @Success 200 {object} sync.Report "Sync Report"
// @Failure 409 {object} map[string]string "Sync Already Running"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/run [post]
func (h *Handler) HandleRunSync(c *fiber.Ctx) error {
	return h.runAndRespond(c)
}

// HandleCronSync triggers a sync run from the external scheduler.
// @Summary Cron Sync
// @Description Run one sync pass, authenticated by the shared cron secret.
// @Tags sync
// @Produce json
// @Security CronSecret
// @Success 200 {object} sync.Report "Sync Report"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Sync Already Running"
// @Router /sync/cron [post]
func (h *Handler) HandleCronSync(c *fiber.Ctx) error {
	if h.cronSecret != "" {
		token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(h.cronSecret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid cron secret",
			})
		}
	}

	return h.runAndRespond(c)
}

func (h *Handler) runAndRespond(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.log, c)

	report, err := h.service.RunSync(c.Context())
	if err != nil {
		if errors.Is(err, ErrSyncRunning) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("Sync run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Sync run finished",
		zap.Int("processed", report.Processed),
		zap.Int("updated", report.Updated))
	return c.JSON(report)
}
