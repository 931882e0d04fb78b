package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nexus-inventory/internal/application/usecase"
	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
)

// actorResolver obtiene el AppUser del llamador a partir de la identidad del token.
type actorResolver struct {
	users *usecase.UserUseCase
}

func (r *actorResolver) resolve(c *fiber.Ctx) (*entity.AppUser, error) {
	id, ok := GetIdentity(c)
	if !ok {
		return nil, domain.Detail(domain.ErrUnauthorized, "Authentication required")
	}
	return r.users.Resolve(c.UserContext(), id)
}

// UserHandler usuarios de la aplicación (protegido).
type UserHandler struct {
	uc     *usecase.UserUseCase
	actors *actorResolver
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc, actors: &actorResolver{users: uc}}
}

// Me godoc
// @Summary      Usuario actual
// @Description  Crea o actualiza el usuario a partir de los claims del token y marca lastLoginAt.
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.AppUser
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/v1/users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.actors.resolve(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.AppUser
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
