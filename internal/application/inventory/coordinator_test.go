package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/application/inventory"
	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
)

// ─── Mocks ────────────────────────────────────────────────────────────────────

type mockAPI struct {
	mu       sync.Mutex
	calls    []string
	err      error
	lastMove dto.CreateStockMovementRequest
	lastProd dto.CreateProductRequest
}

func (m *mockAPI) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockAPI) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (entity.Product, error) {
	m.record("CreateProduct")
	m.lastProd = in
	if m.err != nil {
		return entity.Product{}, m.err
	}
	return entity.Product{ID: "p1", SKU: in.SKU, Name: in.Name}, nil
}

func (m *mockAPI) AdjustStock(ctx context.Context, productID string, adjustment int) (entity.Product, error) {
	m.record("AdjustStock")
	if m.err != nil {
		return entity.Product{}, m.err
	}
	return entity.Product{ID: productID, StockQuantity: 10 + adjustment}, nil
}

func (m *mockAPI) CreateStockMovement(ctx context.Context, in dto.CreateStockMovementRequest) (entity.StockMovement, error) {
	m.record("CreateStockMovement")
	m.lastMove = in
	if m.err != nil {
		return entity.StockMovement{}, m.err
	}
	return entity.StockMovement{ID: "m1", ProductID: in.ProductID, Type: in.Type, Adjustment: in.Adjustment}, nil
}

type spyRefresher struct {
	name string
	mu   sync.Mutex
	n    int
	err  error
}

func (s *spyRefresher) Name() string { return s.name }

func (s *spyRefresher) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.err
}

func (s *spyRefresher) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

type fixture struct {
	api                        *mockAPI
	products, movements, audit *spyRefresher
	coord                      *inventory.Coordinator
}

func newFixture() *fixture {
	f := &fixture{
		api:       &mockAPI{},
		products:  &spyRefresher{name: "products"},
		movements: &spyRefresher{name: "stock-movements"},
		audit:     &spyRefresher{name: "audit-logs"},
	}
	f.coord = inventory.NewCoordinator(f.api, inventory.Stores{
		Products:  f.products,
		Movements: f.movements,
		Audit:     f.audit,
	}, nil)
	return f
}

func (f *fixture) refreshCounts() [3]int {
	return [3]int{f.products.count(), f.movements.count(), f.audit.count()}
}

// ─── AdjustStock ──────────────────────────────────────────────────────────────

func TestAdjustStock_CeroRechazadoSinLlamarAlAPI(t *testing.T) {
	f := newFixture()
	_, err := f.coord.AdjustStock(context.Background(), "p1", 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.api.calls, "no debe haber llamada de red")
	assert.Equal(t, [3]int{0, 0, 0}, f.refreshCounts())
}

func TestAdjustStock_ExitoRecargaStores(t *testing.T) {
	f := newFixture()
	p, err := f.coord.AdjustStock(context.Background(), "p1", -3)

	require.NoError(t, err)
	assert.Equal(t, 7, p.StockQuantity)
	assert.Equal(t, []string{"AdjustStock"}, f.api.calls)
	assert.Equal(t, [3]int{1, 1, 1}, f.refreshCounts())
}

func TestAdjustStock_FalloNoTocaStores(t *testing.T) {
	f := newFixture()
	f.api.err = &domain.RequestFailedError{Status: 400, Message: "Insufficient stock. Current: 2, Adjustment: -5"}

	_, err := f.coord.AdjustStock(context.Background(), "p1", -5)

	require.Error(t, err)
	assert.Equal(t, "Insufficient stock. Current: 2, Adjustment: -5", domain.Message(err), "el mensaje llega sin modificar")
	assert.Equal(t, [3]int{0, 0, 0}, f.refreshCounts())
}

// ─── CreateStockMovement ──────────────────────────────────────────────────────

func TestCreateStockMovement_ExitoRecargaProductosYMovimientos(t *testing.T) {
	f := newFixture()
	note := "  Entrega proveedor "
	m, err := f.coord.CreateStockMovement(context.Background(), dto.CreateStockMovementRequest{
		ProductID: "p1", Type: "receiving", Adjustment: 12, Note: &note,
	})

	require.NoError(t, err)
	assert.Equal(t, "m1", m.ID)
	assert.Equal(t, entity.MovementTypeReceiving, f.api.lastMove.Type)
	require.NotNil(t, f.api.lastMove.Note)
	assert.Equal(t, "Entrega proveedor", *f.api.lastMove.Note)
	assert.Equal(t, 1, f.products.count())
	assert.Equal(t, 1, f.movements.count())
	assert.Equal(t, 1, f.audit.count())
}

func TestCreateStockMovement_ValidacionLocal(t *testing.T) {
	f := newFixture()
	_, err := f.coord.CreateStockMovement(context.Background(), dto.CreateStockMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeTransfer, Adjustment: 0,
	})

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "adjustment", ve.Field)
	assert.Empty(t, f.api.calls)
}

func TestCreateStockMovement_ErrorDeRecargaNoFallaLaMutacion(t *testing.T) {
	f := newFixture()
	f.movements.err = &domain.NetworkError{Method: "GET", Path: "/api/v1/stock-movements", Err: context.DeadlineExceeded}

	_, err := f.coord.CreateStockMovement(context.Background(), dto.CreateStockMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeAdjustment, Adjustment: -1,
	})
	require.NoError(t, err)
	assert.Equal(t, [3]int{1, 1, 1}, f.refreshCounts())
}

// ─── CreateProduct ────────────────────────────────────────────────────────────

func TestCreateProduct_ValidaAntesDeEnviar(t *testing.T) {
	f := newFixture()
	_, err := f.coord.CreateProduct(context.Background(), dto.CreateProductRequest{SKU: "", Name: "X", Price: entity.MustPrice("1")})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.api.calls)
}

func TestCreateProduct_NormalizaYRecarga(t *testing.T) {
	f := newFixture()
	blank := "  "
	p, err := f.coord.CreateProduct(context.Background(), dto.CreateProductRequest{
		SKU: " A-1 ", Name: "Lápiz", Category: &blank, Price: entity.MustPrice("0"),
	})

	require.NoError(t, err)
	assert.Equal(t, "A-1", p.SKU)
	assert.Nil(t, f.api.lastProd.Category, "categoría en blanco viaja como null")
	assert.Equal(t, [3]int{1, 1, 1}, f.refreshCounts())
}

func TestCreateProduct_SinStoreDeBitacora(t *testing.T) {
	api := &mockAPI{}
	products := &spyRefresher{name: "products"}
	movements := &spyRefresher{name: "stock-movements"}
	coord := inventory.NewCoordinator(api, inventory.Stores{Products: products, Movements: movements}, nil)

	_, err := coord.CreateProduct(context.Background(), dto.CreateProductRequest{SKU: "A", Name: "B", Price: entity.MustPrice("2")})
	require.NoError(t, err)
	assert.Equal(t, 1, products.count())
	assert.Equal(t, 1, movements.count())
}
