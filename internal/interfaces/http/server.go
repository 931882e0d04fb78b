package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/nexus-inventory/pkg/logger"
)

// ServerConfig opciones del servidor HTTP.
type ServerConfig struct {
	AppName     string
	SwaggerFile string // vacío o inexistente: /docs deshabilitado
	Registry    *prometheus.Registry
	Logger      *logger.Logger
}

// NewApp arma la aplicación Fiber: recover, logging, métricas, /metrics, /docs y las rutas de la API.
func NewApp(cfg ServerConfig, deps RouterDeps) *fiber.App {
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 60,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(tracingMiddleware())
	app.Use(requestLogger(cfg.Logger.Named("http")))
	app.Use(metricsMiddleware(NewMetrics(cfg.Registry)))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    "Nexus Inventory API",
			}))
		}
	}

	Router(app, deps)
	return app
}
