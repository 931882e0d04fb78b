package usecase_test

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/application/usecase"
	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/inventory"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
	"github.com/jhoicas/nexus-inventory/internal/infrastructure/memory"
	"github.com/jhoicas/nexus-inventory/pkg/jwt"
)

type env struct {
	db       *memory.DB
	products *usecase.ProductUseCase
	stock    *usecase.StockUseCase
	audit    *usecase.AuditLogUseCase
	users    *usecase.UserUseCase
	actor    *entity.AppUser
}

// tick reloj que avanza un segundo por llamada, para un orden de createdAt determinista.
func tick() usecase.Clock {
	t := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := memory.NewDB()
	tx := memory.NewTxRunner(db)
	clock := tick()
	e := &env{
		db:       db,
		products: usecase.NewProductUseCase(tx, db.Products()).WithClock(clock),
		stock:    usecase.NewStockUseCase(tx, db.Movements()).WithClock(clock),
		audit:    usecase.NewAuditLogUseCase(db.AuditLogs()),
		users:    usecase.NewUserUseCase(db.Users()).WithClock(clock),
	}
	actor, err := e.users.Resolve(context.Background(), jwt.Identity{AuthUserID: "auth|1", Email: "ana@example.com", Name: "Ana"})
	require.NoError(t, err)
	e.actor = actor
	return e
}

func (e *env) createProduct(t *testing.T, sku string, stock int) *entity.Product {
	t.Helper()
	p, err := e.products.Create(context.Background(), e.actor, dto.CreateProductRequest{
		SKU: sku, Name: "Producto " + sku, Price: entity.MustPrice("10"), StockQuantity: &stock,
	})
	require.NoError(t, err)
	return p
}

// ─── Productos ───────────────────────────────────────────────────────────────

func TestProductCreate_DefaultsYBitacora(t *testing.T) {
	e := newEnv(t)
	p, err := e.products.Create(context.Background(), e.actor, dto.CreateProductRequest{
		SKU: "A-1", Name: "Lápiz", Price: entity.MustPrice("1.25"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, p.StockQuantity)
	assert.Equal(t, 5, p.MinStockLevel)
	assert.True(t, p.LowStockAlert)

	logs, err := e.audit.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditProductCreated, logs[0].ActionType)
	assert.Equal(t, entity.AuditEntityProduct, logs[0].EntityType)
	assert.Equal(t, p.ID, *logs[0].EntityID)
	assert.Equal(t, "ana@example.com", logs[0].UserEmail)

	moves, err := e.stock.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, moves, "la creación no sintetiza movimiento")
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	e := newEnv(t)
	e.createProduct(t, "A-1", 0)

	_, err := e.products.Create(context.Background(), e.actor, dto.CreateProductRequest{SKU: "A-1", Name: "Otro", Price: entity.MustPrice("1")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, "Product with SKU A-1 already exists.", domain.Message(err))

	logs, _ := e.audit.Recent(context.Background(), 0)
	assert.Len(t, logs, 1, "el rollback no deja entrada de bitácora")
}

func TestProductCreate_SinActor(t *testing.T) {
	e := newEnv(t)
	_, err := e.products.Create(context.Background(), nil, dto.CreateProductRequest{SKU: "A", Name: "B", Price: entity.MustPrice("1")})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestProductGetByID_NoExiste(t *testing.T) {
	e := newEnv(t)
	_, err := e.products.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Stock ───────────────────────────────────────────────────────────────────

func TestStockAdjust_CreaMovimientoYBitacora(t *testing.T) {
	e := newEnv(t)
	p := e.createProduct(t, "A-1", 10)

	updated, err := e.stock.Adjust(context.Background(), e.actor, p.ID, dto.StockAdjustmentRequest{Adjustment: -4})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.StockQuantity)

	moves, _ := e.stock.Recent(context.Background(), 0)
	require.Len(t, moves, 1)
	assert.Equal(t, entity.MovementTypeAdjustment, moves[0].Type)
	assert.Equal(t, -4, moves[0].Adjustment)
	assert.Equal(t, 6, moves[0].ResultingStock)
	assert.Equal(t, e.actor.ID, *moves[0].PerformedByUserID)

	logs, _ := e.audit.Recent(context.Background(), 0)
	require.Len(t, logs, 2)
	assert.Equal(t, entity.AuditStockAdjustment, logs[0].ActionType)
	assert.Equal(t, moves[0].ID, *logs[0].EntityID)
	assert.Equal(t, "ADJUSTMENT: -4 unidades de A-1 – Producto A-1", logs[0].Description)
}

func TestStockAdjust_StockNegativoRechazado(t *testing.T) {
	e := newEnv(t)
	p := e.createProduct(t, "A-1", 2)

	_, err := e.stock.Adjust(context.Background(), e.actor, p.ID, dto.StockAdjustmentRequest{Adjustment: -5})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "Insufficient stock. Current: 2, Adjustment: -5", domain.Message(err))

	got, _ := e.products.GetByID(context.Background(), p.ID)
	assert.Equal(t, 2, got.StockQuantity)
	moves, _ := e.stock.Recent(context.Background(), 0)
	assert.Empty(t, moves)
}

func TestStockAdjust_CeroYProductoInexistente(t *testing.T) {
	e := newEnv(t)
	_, err := e.stock.Adjust(context.Background(), e.actor, "p1", dto.StockAdjustmentRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.stock.Adjust(context.Background(), e.actor, "nope", dto.StockAdjustmentRequest{Adjustment: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateMovement_DescripcionYDetalles(t *testing.T) {
	e := newEnv(t)
	p := e.createProduct(t, "B-2", 0)
	note := strings.Repeat("x", 1500)
	to := "Tienda Centro"

	m, err := e.stock.CreateMovement(context.Background(), e.actor, dto.CreateStockMovementRequest{
		ProductID: p.ID, Type: entity.MovementTypeReceiving, Adjustment: 12, ToBusiness: &to, Note: &note,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, m.ResultingStock)
	assert.Equal(t, "B-2", m.SKU)
	assert.Equal(t, "Tienda Centro", *m.ToBusiness)

	logs, _ := e.audit.Recent(context.Background(), 1)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditStockReceiving, logs[0].ActionType)
	assert.Equal(t, entity.AuditEntityMovement, logs[0].EntityType)
	assert.Equal(t, "RECEIVING: +12 unidades de B-2 – Producto B-2", logs[0].Description)
	require.NotNil(t, logs[0].Details)
	assert.Len(t, *logs[0].Details, 1000)
}

func TestLedger_InvarianteSobreSecuencia(t *testing.T) {
	e := newEnv(t)
	p := e.createProduct(t, "C-3", 0)
	ctx := context.Background()

	steps := []dto.CreateStockMovementRequest{
		{ProductID: p.ID, Type: entity.MovementTypeReceiving, Adjustment: 20},
		{ProductID: p.ID, Type: entity.MovementTypeTransfer, Adjustment: -5},
		{ProductID: p.ID, Type: entity.MovementTypeAdjustment, Adjustment: -3},
		{ProductID: p.ID, Type: entity.MovementTypeReceiving, Adjustment: 7},
	}
	for _, s := range steps {
		_, err := e.stock.CreateMovement(ctx, e.actor, s)
		require.NoError(t, err)
	}
	_, err := e.stock.Adjust(ctx, e.actor, p.ID, dto.StockAdjustmentRequest{Adjustment: 1})
	require.NoError(t, err)

	recent, err := e.stock.Recent(ctx, 200)
	require.NoError(t, err)
	list := make([]entity.StockMovement, 0, len(recent))
	for _, m := range recent {
		list = append(list, *m)
	}
	chrono := inventory.SortChronological(list)
	assert.Equal(t, 0, inventory.OpeningBalance(chrono))
	assert.Empty(t, inventory.VerifyLedger(0, chrono))

	got, _ := e.products.GetByID(ctx, p.ID)
	assert.Equal(t, 20, got.StockQuantity)
	assert.True(t, inventory.CurrentStockMatches(*got, chrono))

	logs, _ := e.audit.Recent(ctx, 200)
	assert.Len(t, logs, 1+len(steps)+1, "una entrada por mutación")
}

func TestStockAdjust_ConcurrentesRespetanOrdenDeAplicacion(t *testing.T) {
	e := newEnv(t)
	p := e.createProduct(t, "E-5", 10)
	ctx := context.Background()

	// La primera lectura del reloj se demora; el segundo ajuste llega mientras tanto.
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	var calls atomic.Int32
	firstRead := make(chan struct{})
	clock := func() time.Time {
		n := calls.Add(1)
		if n == 1 {
			close(firstRead)
			time.Sleep(100 * time.Millisecond)
		}
		return base.Add(time.Duration(n) * time.Second)
	}
	stock := usecase.NewStockUseCase(memory.NewTxRunner(e.db), e.db.Movements()).WithClock(clock)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	adjust := func(n int) {
		defer wg.Done()
		_, err := stock.Adjust(ctx, e.actor, p.ID, dto.StockAdjustmentRequest{Adjustment: n})
		errs <- err
	}
	wg.Add(1)
	go adjust(5)
	<-firstRead
	wg.Add(1)
	go adjust(-3)
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	recent, err := stock.Recent(ctx, 200)
	require.NoError(t, err)
	list := make([]entity.StockMovement, 0, len(recent))
	for _, m := range recent {
		list = append(list, *m)
	}
	chrono := inventory.SortChronological(list)
	require.Len(t, chrono, 2)
	assert.Equal(t, 10, inventory.OpeningBalance(chrono))
	assert.Empty(t, inventory.VerifyLedger(inventory.OpeningBalance(chrono), chrono))
	assert.Equal(t, 5, chrono[0].Adjustment)
	assert.Equal(t, 12, chrono[1].ResultingStock)
	assert.Less(t, chrono[0].ID, chrono[1].ID, "createdAt y id en el mismo orden")
	assert.Equal(t, list[0].ID, chrono[1].ID, "el servidor entrega primero el último aplicado")
}

func TestRecent_LimiteYOrden(t *testing.T) {
	e := newEnv(t)
	p := e.createProduct(t, "D-4", 0)
	for i := 1; i <= 3; i++ {
		_, err := e.stock.CreateMovement(context.Background(), e.actor, dto.CreateStockMovementRequest{
			ProductID: p.ID, Type: entity.MovementTypeReceiving, Adjustment: i,
		})
		require.NoError(t, err)
	}
	moves, err := e.stock.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, moves, 2)
	assert.Equal(t, 3, moves[0].Adjustment, "más reciente primero")
	assert.Equal(t, 2, moves[1].Adjustment)
}

// ─── Usuarios ────────────────────────────────────────────────────────────────

func TestUserResolve_UpsertYLastLogin(t *testing.T) {
	e := newEnv(t)
	first := e.actor.LastLoginAt

	again, err := e.users.Resolve(context.Background(), jwt.Identity{AuthUserID: "auth|1", Email: "ana@example.com", Picture: "https://x/a.png"})
	require.NoError(t, err)
	assert.Equal(t, e.actor.ID, again.ID)
	assert.True(t, again.LastLoginAt.After(first))
	require.NotNil(t, again.DisplayName)
	assert.Equal(t, "Ana", *again.DisplayName, "nombre vacío en el token no pisa el existente")
	require.NotNil(t, again.AvatarURL)

	users, err := e.users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserResolve_SinEmailUsaSubject(t *testing.T) {
	e := newEnv(t)
	u, err := e.users.Resolve(context.Background(), jwt.Identity{AuthUserID: "auth|2"})
	require.NoError(t, err)
	assert.Equal(t, "auth|2", u.Email)
	assert.Nil(t, u.DisplayName)
}

// staleUsers simula otro request que crea el usuario entre la lectura y el insert.
type staleUsers struct {
	repository.UserRepository
	misses int
}

func (r *staleUsers) GetByAuthUserID(ctx context.Context, authUserID string) (*entity.AppUser, error) {
	if r.misses > 0 {
		r.misses--
		return nil, nil
	}
	return r.UserRepository.GetByAuthUserID(ctx, authUserID)
}

func TestUserResolve_InsertDuplicadoTomaElExistente(t *testing.T) {
	e := newEnv(t)
	later := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	uc := usecase.NewUserUseCase(&staleUsers{UserRepository: e.db.Users(), misses: 1}).
		WithClock(func() time.Time { return later })

	u, err := uc.Resolve(context.Background(), jwt.Identity{AuthUserID: "auth|1", Email: "ana@example.com", Name: "Ana B"})
	require.NoError(t, err)
	assert.Equal(t, e.actor.ID, u.ID)
	assert.Equal(t, later, u.LastLoginAt)
	require.NotNil(t, u.DisplayName)
	assert.Equal(t, "Ana B", *u.DisplayName)

	users, err := e.users.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, later, users[0].LastLoginAt)
}
