package credentials

import (
	"errors"

	"subtrack/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for credential management.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the credential routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/credentials")
	group.Get("/", h.HandleListCredentials)
	group.Post("/", h.HandleUpsertCredential)
	group.Delete("/:provider", h.HandleDeleteCredential)
}

// HandleListCredentials returns all credentials with masked secrets.
// @Summary List Credentials
// @Description List provider credentials. Secrets are masked to the last four characters.
// @Tags credentials
// @Produce json
// @Success 200 {array} credentials.MaskedCredential "Credentials"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /credentials [get]
func (h *Handler) HandleListCredentials(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	out, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Credential listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(out)
}

// HandleUpsertCredential creates or replaces a provider credential.
// @Summary Upsert Credential
// @Description Create or replace the credential for a provider.
// @Tags credentials
// @Accept json
// @Produce json
// @Param credential body credentials.UpsertInput true "Credential"
// @Success 200 {object} credentials.MaskedCredential "Stored Credential"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /credentials [post]
func (h *Handler) HandleUpsertCredential(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var in UpsertInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	cred, err := h.service.Upsert(c.Context(), in)
	if err != nil {
		l.Warn("Credential upsert rejected", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(MaskedCredential{
		ID:              cred.ID,
		Provider:        cred.Provider,
		Label:           cred.Label,
		ApiKeyMasked:    cred.MaskedKey(),
		IsActive:        cred.IsActive,
		LastChecked:     cred.LastChecked,
		LastUsageAmount: cred.LastUsageAmount,
	})
}

// HandleDeleteCredential removes a provider credential.
// @Summary Delete Credential
// @Description Delete the credential for a provider.
// @Tags credentials
// @Produce json
// @Param provider path string true "Provider identifier"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /credentials/{provider} [delete]
func (h *Handler) HandleDeleteCredential(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("provider")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "credential not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
