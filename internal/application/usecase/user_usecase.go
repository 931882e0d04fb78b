package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
	"github.com/jhoicas/nexus-inventory/pkg/jwt"
)

// UserUseCase resuelve el usuario de la app a partir de la identidad del token.
type UserUseCase struct {
	repo  repository.UserRepository
	clock Clock
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo, clock: defaultClock}
}

// WithClock reemplaza el reloj (tests).
func (uc *UserUseCase) WithClock(c Clock) *UserUseCase {
	uc.clock = c
	return uc
}

// Resolve obtiene o crea el usuario para la identidad y actualiza LastLoginAt.
// Nombre y avatar solo se sobrescriben si el token trae valores no vacíos.
// Si otro request crea el mismo usuario entre la lectura y el insert, se toma el existente.
func (uc *UserUseCase) Resolve(ctx context.Context, id jwt.Identity) (*entity.AppUser, error) {
	if strings.TrimSpace(id.AuthUserID) == "" {
		return nil, domain.Detail(domain.ErrUnauthorized, "Authentication required")
	}
	now := uc.clock()
	user, err := uc.repo.GetByAuthUserID(ctx, id.AuthUserID)
	if err != nil {
		return nil, fmt.Errorf("user: obtener: %w", err)
	}
	if user != nil {
		return uc.touch(ctx, user, id, now)
	}

	email := id.Email
	if email == "" {
		email = id.AuthUserID
	}
	user = &entity.AppUser{
		ID:          newID(),
		AuthUserID:  id.AuthUserID,
		Email:       email,
		DisplayName: nonBlank(id.Name),
		AvatarURL:   nonBlank(id.Picture),
		CreatedAt:   now,
		LastLoginAt: now,
	}
	err = uc.repo.Create(ctx, user)
	if errors.Is(err, domain.ErrDuplicate) {
		existing, getErr := uc.repo.GetByAuthUserID(ctx, id.AuthUserID)
		if getErr != nil {
			return nil, fmt.Errorf("user: obtener: %w", getErr)
		}
		if existing == nil {
			return nil, fmt.Errorf("user: crear: %w", err)
		}
		return uc.touch(ctx, existing, id, now)
	}
	if err != nil {
		return nil, fmt.Errorf("user: crear: %w", err)
	}
	return user, nil
}

// touch aplica los claims no vacíos y el último login sobre un usuario existente.
func (uc *UserUseCase) touch(ctx context.Context, user *entity.AppUser, id jwt.Identity, now time.Time) (*entity.AppUser, error) {
	if id.Email != "" {
		user.Email = id.Email
	}
	if v := nonBlank(id.Name); v != nil {
		user.DisplayName = v
	}
	if v := nonBlank(id.Picture); v != nil {
		user.AvatarURL = v
	}
	user.LastLoginAt = now
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("user: actualizar: %w", err)
	}
	return user, nil
}

// List devuelve todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]*entity.AppUser, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("user: listar: %w", err)
	}
	return list, nil
}

func nonBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
