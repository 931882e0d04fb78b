package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/nexus-inventory/internal/application/usecase"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
	"github.com/jhoicas/nexus-inventory/internal/infrastructure/memory"
	"github.com/jhoicas/nexus-inventory/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/nexus-inventory/internal/interfaces/http"
	"github.com/jhoicas/nexus-inventory/pkg/config"
	"github.com/jhoicas/nexus-inventory/pkg/logger"
	"github.com/jhoicas/nexus-inventory/pkg/tracing"
)

// backend repositorios y runner transaccional del almacenamiento elegido.
type backend struct {
	tx       usecase.TxRunner
	products repository.ProductRepository
	moves    repository.StockMovementRepository
	audit    repository.AuditLogRepository
	users    repository.UserRepository
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if cfg.JWT.Secret == "" {
		panic("JWT_SECRET es obligatorio")
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Storage.Backend).
		Msg("iniciando aplicación")

	tp, err := tracing.Init(cfg.App.Name, cfg.Tracing.JaegerEndpoint, cfg.Tracing.Enabled)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar tracing")
	}

	ctx := context.Background()
	be, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer be.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app := httpRouter.NewApp(httpRouter.ServerConfig{
		AppName:     cfg.App.Name,
		SwaggerFile: cfg.Swagger.FilePath,
		Registry:    reg,
		Logger:      log,
	}, httpRouter.RouterDeps{
		ProductUC: usecase.NewProductUseCase(be.tx, be.products),
		StockUC:   usecase.NewStockUseCase(be.tx, be.moves),
		AuditUC:   usecase.NewAuditLogUseCase(be.audit),
		UserUC:    usecase.NewUserUseCase(be.users),
		MetaUC:    usecase.NewMetaUseCase(cfg.App.Name),
		Backend:   cfg.Storage.Backend,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
		log.Warn().Err(err).Msg("apagado del tracer")
	}

	log.Info().Msg("aplicación detenida")
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	if cfg.Storage.Backend == config.BackendPostgres {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &backend{
			tx:       postgres.NewTxRunner(pool),
			products: postgres.NewProductRepository(pool),
			moves:    postgres.NewStockMovementRepository(pool),
			audit:    postgres.NewAuditLogRepository(pool),
			users:    postgres.NewUserRepository(pool),
			close:    pool.Close,
		}, nil
	}

	db := memory.NewDB()
	return &backend{
		tx:       memory.NewTxRunner(db),
		products: db.Products(),
		moves:    db.Movements(),
		audit:    db.AuditLogs(),
		users:    db.Users(),
		close:    func() {},
	}, nil
}
