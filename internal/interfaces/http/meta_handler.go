package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/application/usecase"
)

// MetaHandler endpoints públicos.
type MetaHandler struct {
	uc      *usecase.MetaUseCase
	backend string
}

// NewMetaHandler construye el handler.
func NewMetaHandler(uc *usecase.MetaUseCase, backend string) *MetaHandler {
	return &MetaHandler{uc: uc, backend: backend}
}

// Meta godoc
// @Summary      Información del servidor
// @Tags         meta
// @Produce      json
// @Success      200  {object}  entity.Meta
// @Router       /api/v1/meta [get]
func (h *MetaHandler) Meta(c *fiber.Ctx) error {
	return c.JSON(h.uc.Get())
}

// Health godoc
// @Summary      Health check
// @Tags         meta
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *MetaHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok", Backend: h.backend})
}
