package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, auth_user_id, email, display_name, avatar_url, created_at, last_login_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// GetByAuthUserID busca por el "sub" del proveedor de identidad.
func (r *UserRepo) GetByAuthUserID(ctx context.Context, authUserID string) (*entity.AppUser, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM app_users WHERE auth_user_id = $1`, authUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.AppUser) error {
	query := `
		INSERT INTO app_users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, u.ID, u.AuthUserID, u.Email, u.DisplayName, u.AvatarURL, u.CreatedAt, u.LastLoginAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Update actualiza email, nombre, avatar y último login.
func (r *UserRepo) Update(ctx context.Context, u *entity.AppUser) error {
	query := `
		UPDATE app_users SET email = $2, display_name = $3, avatar_url = $4, last_login_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, u.ID, u.Email, u.DisplayName, u.AvatarURL, u.LastLoginAt)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve los usuarios por fecha de alta.
func (r *UserRepo) List(ctx context.Context) ([]*entity.AppUser, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM app_users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return collect(rows, scanUser)
}

func scanUser(row pgx.Row) (*entity.AppUser, error) {
	var u entity.AppUser
	if err := row.Scan(&u.ID, &u.AuthUserID, &u.Email, &u.DisplayName, &u.AvatarURL, &u.CreatedAt, &u.LastLoginAt); err != nil {
		return nil, err
	}
	return &u, nil
}
