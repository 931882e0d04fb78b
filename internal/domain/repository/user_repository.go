package repository

import (
	"context"

	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para AppUser (DIP).
type UserRepository interface {
	// GetByAuthUserID devuelve (nil, nil) si no existe.
	GetByAuthUserID(ctx context.Context, authUserID string) (*entity.AppUser, error)
	Create(ctx context.Context, user *entity.AppUser) error
	Update(ctx context.Context, user *entity.AppUser) error
	List(ctx context.Context) ([]*entity.AppUser, error)
}
