package charges

import (
	"errors"
	"strconv"

	"subtrack/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for the charge ledger.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the charge routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/charges")
	group.Get("/", h.HandleListCharges)
	group.Post("/", h.HandleCreateCharge)
	group.Put("/:id", h.HandleUpdateCharge)
	group.Delete("/:id", h.HandleDeleteCharge)
}

// HandleListCharges returns every charge in the ledger.
// @Summary List Charges
// @Description List all recurring and one-time charges, newest first.
// @Tags charges
// @Produce json
// @Success 200 {array} charges.Charge "Charges"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /charges [get]
func (h *Handler) HandleListCharges(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	out, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Charge listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(out)
}

// HandleCreateCharge inserts a manually-entered charge.
// @Summary Create Charge
// @Description Create a new charge in the ledger.
// @Tags charges
// @Accept json
// @Produce json
// @Param charge body charges.Charge true "Charge"
// @Success 201 {object} charges.Charge "Created Charge"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /charges [post]
func (h *Handler) HandleCreateCharge(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var in Charge
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.service.Create(c.Context(), &in); err != nil {
		l.Warn("Charge creation rejected", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(in)
}

// HandleUpdateCharge replaces the user-owned fields of a charge.
// @Summary Update Charge
// @Description Update an existing charge. Auto-sync metadata is preserved.
// @Tags charges
// @Accept json
// @Produce json
// @Param id path int true "Charge ID"
// @Param charge body charges.Charge true "Charge"
// @Success 200 {object} charges.Charge "Updated Charge"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /charges/{id} [put]
func (h *Handler) HandleUpdateCharge(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid charge id",
		})
	}

	var in Charge
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	updated, err := h.service.Update(c.Context(), uint(id), &in)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "charge not found",
			})
		}
		l.Warn("Charge update rejected", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(updated)
}

// HandleDeleteCharge removes a charge.
// @Summary Delete Charge
// @Description Delete a charge from the ledger.
// @Tags charges
// @Produce json
// @Param id path int true "Charge ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /charges/{id} [delete]
func (h *Handler) HandleDeleteCharge(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid charge id",
		})
	}

	if err := h.service.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "charge not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
