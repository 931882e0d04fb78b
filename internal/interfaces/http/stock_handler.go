package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/application/usecase"
	"github.com/jhoicas/nexus-inventory/internal/domain"
)

// StockMovementHandler movimientos de stock (protegido).
type StockMovementHandler struct {
	uc     *usecase.StockUseCase
	actors *actorResolver
}

// NewStockMovementHandler construye el handler.
func NewStockMovementHandler(uc *usecase.StockUseCase, users *usecase.UserUseCase) *StockMovementHandler {
	return &StockMovementHandler{uc: uc, actors: &actorResolver{users: users}}
}

// List godoc
// @Summary      Movimientos recientes
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite (1-200)"  default(50)
// @Success      200    {array}  entity.StockMovement
// @Router       /api/v1/stock-movements [get]
func (h *StockMovementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Recent(c.UserContext(), c.QueryInt("limit", dto.DefaultRecentLimit))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar movimiento
// @Tags         stock-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockMovementRequest  true  "Movimiento"
// @Success      201   {object}  entity.StockMovement
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/stock-movements [post]
func (h *StockMovementHandler) Create(c *fiber.Ctx) error {
	actor, err := h.actors.resolve(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateStockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, domain.Detail(domain.ErrInvalidInput, "Malformed JSON request"))
	}
	out, err := h.uc.CreateMovement(c.UserContext(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
