package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/application/usecase"
)

// AuditLogHandler lectura de la bitácora (protegido).
type AuditLogHandler struct {
	uc *usecase.AuditLogUseCase
}

// NewAuditLogHandler construye el handler.
func NewAuditLogHandler(uc *usecase.AuditLogUseCase) *AuditLogHandler {
	return &AuditLogHandler{uc: uc}
}

// List godoc
// @Summary      Bitácora reciente
// @Tags         audit-logs
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite (1-200)"  default(50)
// @Success      200    {array}  entity.AuditLogEntry
// @Router       /api/v1/audit-logs [get]
func (h *AuditLogHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Recent(c.UserContext(), c.QueryInt("limit", dto.DefaultRecentLimit))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
