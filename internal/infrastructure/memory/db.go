// Package memory backend en memoria del servidor de referencia. Misma semántica transaccional que postgres:
// TxRunner trabaja sobre una copia del estado y solo la publica si fn no devuelve error.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/nexus-inventory/internal/application/usecase"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
)

type state struct {
	products     map[string]entity.Product
	productOrder []string
	movements    []entity.StockMovement
	audit        []entity.AuditLogEntry
	users        map[string]entity.AppUser
	userOrder    []string
}

func newState() *state {
	return &state{
		products: make(map[string]entity.Product),
		users:    make(map[string]entity.AppUser),
	}
}

// clone copia los contenedores; las entidades se guardan por valor, así que basta copiar mapas y slices.
func (s *state) clone() *state {
	c := &state{
		products:     make(map[string]entity.Product, len(s.products)),
		productOrder: append([]string(nil), s.productOrder...),
		movements:    append([]entity.StockMovement(nil), s.movements...),
		audit:        append([]entity.AuditLogEntry(nil), s.audit...),
		users:        make(map[string]entity.AppUser, len(s.users)),
		userOrder:    append([]string(nil), s.userOrder...),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// DB estado compartido protegido por un mutex.
type DB struct {
	mu sync.Mutex
	st *state
}

// NewDB crea una base vacía.
func NewDB() *DB {
	return &DB{st: newState()}
}

// view acceso al estado: directo con lock, o sobre la copia de una tx (el lock ya lo tiene Run).
type view struct {
	db *DB
	tx *state
}

func (v view) with(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.db.mu.Lock()
	defer v.db.mu.Unlock()
	return fn(v.db.st)
}

// Repositorios fuera de transacción.
func (db *DB) Products() *ProductRepo        { return &ProductRepo{v: view{db: db}} }
func (db *DB) Movements() *StockMovementRepo { return &StockMovementRepo{v: view{db: db}} }
func (db *DB) AuditLogs() *AuditLogRepo      { return &AuditLogRepo{v: view{db: db}} }
func (db *DB) Users() *UserRepo              { return &UserRepo{v: view{db: db}} }

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones sobre el DB.
type TxRunner struct {
	db *DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run ejecuta fn sobre una copia del estado; en éxito la copia reemplaza al estado (commit),
// en error se descarta (rollback).
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	tx := r.db.st.clone()
	v := view{db: r.db, tx: tx}
	if err := fn(&ProductRepo{v: v}, &StockMovementRepo{v: v}, &AuditLogRepo{v: v}); err != nil {
		return err
	}
	r.db.st = tx
	return nil
}
