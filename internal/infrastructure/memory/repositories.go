package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
)

var (
	_ repository.ProductRepository       = (*ProductRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
	_ repository.AuditLogRepository      = (*AuditLogRepo)(nil)
	_ repository.UserRepository          = (*UserRepo)(nil)
)

// ─── Productos ───────────────────────────────────────────────────────────────

// ProductRepo productos en memoria.
type ProductRepo struct{ v view }

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, existing := range st.products {
			if existing.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		st.products[p.ID] = *p
		st.productOrder = append(st.productOrder, p.ID)
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.with(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetByIDForUpdate en memoria la tx ya tiene el lock exclusivo.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.with(func(st *state) error {
		for _, p := range st.products {
			if p.SKU == sku {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

// List ordena por nombre y luego SKU.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.with(func(st *state) error {
		out = make([]*entity.Product, 0, len(st.productOrder))
		for _, id := range st.productOrder {
			p := st.products[id]
			out = append(out, &p)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].SKU < out[j].SKU
	})
	return out, err
}

func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stockQuantity int, updatedAt time.Time) error {
	return r.v.with(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.StockQuantity = stockQuantity
		p.LowStockAlert = stockQuantity <= p.MinStockLevel
		p.UpdatedAt = updatedAt
		st.products[id] = p
		return nil
	})
}

// ─── Movimientos ─────────────────────────────────────────────────────────────

// StockMovementRepo movimientos append-only en memoria.
type StockMovementRepo struct{ v view }

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	return r.v.with(func(st *state) error {
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *StockMovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.v.with(func(st *state) error {
		out = make([]*entity.StockMovement, 0, min(limit, len(st.movements)))
		for i := len(st.movements) - 1; i >= 0 && len(out) < limit; i-- {
			m := st.movements[i]
			out = append(out, &m)
		}
		return nil
	})
	return out, err
}

func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.v.with(func(st *state) error {
		out = make([]*entity.StockMovement, 0)
		for _, m := range st.movements {
			if m.ProductID == productID {
				m := m
				out = append(out, &m)
			}
		}
		return nil
	})
	return out, err
}

// ─── Bitácora ────────────────────────────────────────────────────────────────

// AuditLogRepo bitácora append-only en memoria.
type AuditLogRepo struct{ v view }

func (r *AuditLogRepo) Create(ctx context.Context, e *entity.AuditLogEntry) error {
	return r.v.with(func(st *state) error {
		st.audit = append(st.audit, *e)
		return nil
	})
}

func (r *AuditLogRepo) ListRecent(ctx context.Context, limit int) ([]*entity.AuditLogEntry, error) {
	var out []*entity.AuditLogEntry
	err := r.v.with(func(st *state) error {
		out = make([]*entity.AuditLogEntry, 0, min(limit, len(st.audit)))
		for i := len(st.audit) - 1; i >= 0 && len(out) < limit; i-- {
			e := st.audit[i]
			out = append(out, &e)
		}
		return nil
	})
	return out, err
}

// ─── Usuarios ────────────────────────────────────────────────────────────────

// UserRepo usuarios en memoria.
type UserRepo struct{ v view }

func (r *UserRepo) GetByAuthUserID(ctx context.Context, authUserID string) (*entity.AppUser, error) {
	var out *entity.AppUser
	err := r.v.with(func(st *state) error {
		for _, u := range st.users {
			if u.AuthUserID == authUserID {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Create(ctx context.Context, u *entity.AppUser) error {
	return r.v.with(func(st *state) error {
		for _, existing := range st.users {
			if existing.AuthUserID == u.AuthUserID {
				return domain.ErrDuplicate
			}
		}
		st.users[u.ID] = *u
		st.userOrder = append(st.userOrder, u.ID)
		return nil
	})
}

func (r *UserRepo) Update(ctx context.Context, u *entity.AppUser) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.users[u.ID]; !ok {
			return domain.ErrNotFound
		}
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.AppUser, error) {
	var out []*entity.AppUser
	err := r.v.with(func(st *state) error {
		out = make([]*entity.AppUser, 0, len(st.userOrder))
		for _, id := range st.userOrder {
			u := st.users[id]
			out = append(out, &u)
		}
		return nil
	})
	return out, err
}
