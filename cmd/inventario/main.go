package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/nexus-inventory/pkg/config"
	"github.com/jhoicas/nexus-inventory/pkg/tracing"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}
	if err := newRootCommand().Run(context.Background(), args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	var tp trace.TracerProvider
	return &cli.Command{
		Name:  "inventario",
		Usage: "Cliente de inventario: catálogo, stock, movimientos y bitácora",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api-url", Usage: "URL base del servidor (por defecto API_BASE_URL)"},
			&cli.StringFlag{Name: "token", Usage: "bearer token (por defecto API_TOKEN)"},
			&cli.DurationFlag{Name: "timeout", Usage: "timeout por petición (por defecto API_TIMEOUT_SECONDS)"},
			&cli.BoolFlag{Name: "verbose", Usage: "logs de depuración en stderr"},
		},
		Before: func(ctx context.Context, _ *cli.Command) (context.Context, error) {
			var err error
			tp, err = initTracing()
			return ctx, err
		},
		After: func(context.Context, *cli.Command) error {
			if tp == nil {
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return tracing.Shutdown(ctx, tp)
		},
		Commands: []*cli.Command{
			metaCommand(),
			productsCommand(),
			stockCommand(),
			movementsCommand(),
			auditCommand(),
			usersCommand(),
			summaryCommand(),
			reportCommand(),
			tokenCommand(),
		},
	}
}

// initTracing instala el provider global; con TRACING_ENABLED=false es no-op.
func initTracing() (trace.TracerProvider, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return tracing.Init("inventario-cli", cfg.Tracing.JaegerEndpoint, cfg.Tracing.Enabled)
}
