package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/jhoicas/nexus-inventory/internal/application/auth"
	"github.com/jhoicas/nexus-inventory/internal/application/inventory"
	"github.com/jhoicas/nexus-inventory/internal/application/store"
	"github.com/jhoicas/nexus-inventory/internal/infrastructure/apiclient"
	"github.com/jhoicas/nexus-inventory/pkg/config"
	"github.com/jhoicas/nexus-inventory/pkg/logger"
)

// session cliente de sincronización completo: token → fetcher → stores → coordinador.
// Los stores son lazy: cada comando decide qué recargar.
type session struct {
	cfg       *config.Config
	log       *logger.Logger
	tokens    *auth.TokenHolder
	client    *apiclient.Client
	products  *store.ProductStore
	movements *store.MovementStore
	audit     *store.AuditStore
	meta      *store.MetaStore
	coord     *inventory.Coordinator
}

func newSession(c *cli.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if v := c.String("api-url"); v != "" {
		cfg.Client.BaseURL = v
	}
	if v := c.String("token"); v != "" {
		cfg.Client.Token = v
	}
	if d := c.Duration("timeout"); d > 0 {
		cfg.Client.Timeout = d
	}
	level := cfg.Log.Level
	if c.Bool("verbose") {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: level, Output: c.Root().ErrWriter})

	tokens := auth.NewTokenHolder(cfg.Client.Token)
	client := apiclient.New(cfg.Client.BaseURL, tokens, cfg.Client.Timeout, apiclient.WithLogger(log))

	opts := []store.Option{store.WithLazyLoad(), store.WithLogger(log)}
	s := &session{
		cfg:       cfg,
		log:       log,
		tokens:    tokens,
		client:    client,
		products:  store.NewProducts(client, opts...),
		movements: store.NewStockMovements(client, cfg.Client.MovementsLimit, opts...),
		audit:     store.NewAuditLogs(client, cfg.Client.AuditLimit, opts...),
		meta:      store.NewMeta(client, opts...),
	}
	s.coord = inventory.NewCoordinator(client, inventory.Stores{
		Products:  s.products,
		Movements: s.movements,
		Audit:     s.audit,
	}, log)
	return s, nil
}

// withSession construye la sesión y ejecuta fn con un timeout acotado por el del cliente.
func withSession(fn func(ctx context.Context, c *cli.Command, s *session) error) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		s, err := newSession(c)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(ctx, 4*s.cfg.Client.Timeout+5*time.Second)
		defer cancel()
		return fn(ctx, c, s)
	}
}
