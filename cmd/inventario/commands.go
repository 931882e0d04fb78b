package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/application/store"
	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/inventory"
	"github.com/jhoicas/nexus-inventory/internal/infrastructure/pdf"
	"github.com/jhoicas/nexus-inventory/pkg/config"
	"github.com/jhoicas/nexus-inventory/pkg/jwt"
)

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "salida JSON"}
}

func optional(c *cli.Command, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	v := c.String(name)
	return &v
}

func metaCommand() *cli.Command {
	return &cli.Command{
		Name:  "meta",
		Usage: "Información pública del servidor",
		Flags: []cli.Flag{jsonFlag()},
		Action: withSession(func(ctx context.Context, c *cli.Command, s *session) error {
			if err := s.meta.Refresh(ctx); err != nil {
				return err
			}
			m := s.meta.Data()
			if c.Bool("json") {
				return printJSON(c.Root().Writer, m)
			}
			printKV(c.Root().Writer, [][2]string{
				{"app", m.AppName},
				{"hora del servidor", formatTime(m.ServerTime)},
				{"servidor", s.cfg.Client.BaseURL},
			})
			return nil
		}),
	}
}

func productsCommand() *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "Catálogo de productos",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Listar productos con filtro de estado y búsqueda",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "filter", Value: string(inventory.FilterAll), Usage: "all|in-stock|low-stock|out-of-stock|high-value"},
					&cli.StringFlag{Name: "search", Usage: "texto en SKU, nombre o categoría"},
					jsonFlag(),
				},
				Action: withSession(func(ctx context.Context, c *cli.Command, s *session) error {
					f, err := inventory.ParseFilter(c.String("filter"))
					if err != nil {
						return err
					}
					if err := s.products.Refresh(ctx); err != nil {
						return err
					}
					items := inventory.Apply(s.products.Data(), f, c.String("search"))
					if c.Bool("json") {
						return printJSON(c.Root().Writer, items)
					}
					printProducts(c.Root().Writer, items)
					return nil
				}),
			},
			{
				Name:  "get",
				Usage: "Mostrar un producto",
				Flags: []cli.Flag{&cli.StringFlag{Name: "id", Required: true}, jsonFlag()},
				Action: withSession(func(ctx context.Context, c *cli.Command, s *session) error {
					p, err := s.client.GetProduct(ctx, c.String("id"))
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(c.Root().Writer, p)
					}
					printProduct(c.Root().Writer, p)
					return nil
				}),
			},
			{
				Name:  "create",
				Usage: "Crear un producto",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "sku", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "category"},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "price", Required: true, Usage: "decimal, ej. 19.99"},
					&cli.IntFlag{Name: "stock", Usage: "stock inicial (por defecto 0)"},
					&cli.IntFlag{Name: "min-stock", Usage: "stock mínimo (por defecto 5)"},
					jsonFlag(),
				},
				Action: withSession(func(ctx context.Context, c *cli.Command, s *session) error {
					in := dto.CreateProductRequest{
						SKU:         c.String("sku"),
						Name:        c.String("name"),
						Category:    optional(c, "category"),
						Description: optional(c, "description"),
						Price:       parsePrice(c.String("price")),
					}
					if c.IsSet("stock") {
						v := c.Int("stock")
						in.StockQuantity = &v
					}
					if c.IsSet("min-stock") {
						v := c.Int("min-stock")
						in.MinStockLevel = &v
					}
					p, err := s.coord.CreateProduct(ctx, in)
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(c.Root().Writer, p)
					}
					printProduct(c.Root().Writer, p)
					reportStoreErrors(c, s)
					return nil
				}),
			},
		},
	}
}

func stockCommand() *cli.Command {
	return &cli.Command{
		Name:  "stock",
		Usage: "Ajustes de stock",
		Commands: []*cli.Command{
			{
				Name:  "adjust",
				Usage: "Sumar o restar unidades a un producto",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Required: true, Usage: "ID del producto"},
					&cli.IntFlag{Name: "by", Required: true, Usage: "ajuste con signo, ej. -3"},
					jsonFlag(),
				},
				Action: withSession(func(ctx context.Context, c *cli.Command, s *session) error {
					p, err := s.coord.AdjustStock(ctx, c.String("id"), c.Int("by"))
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(c.Root().Writer, p)
					}
					printProduct(c.Root().Writer, p)
					reportStoreErrors(c, s)
					return nil
				}),
			},
		},
	}
}

func movementsCommand() *cli.Command {
	return &cli.Command{
		Name:  "movements",
		Usage: "Movimientos de stock",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Movimientos recientes (más recientes primero)",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "1-200 (por defecto MOVEMENTS_LIMIT)"},
					&cli.BoolFlag{Name: "verify", Usage: "verificar la cadena de stock resultante por producto"},
					jsonFlag(),
				},
				Action: withSession(func(ctx context.Context, c *cli.Command, s *session) error {
					if err := s.movements.RefreshWithLimit(ctx, c.Int("limit")); err != nil {
						return err
					}
					items := s.movements.Data()
					if c.Bool("verify") {
						return verifyLedger(c, items)
					}
					if c.Bool("json") {
						return printJSON(c.Root().Writer, items)
					}
					printMovements(c.Root().Writer, items)
					return nil
				}),
			},
			{
				Name:  "create",
				Usage: "Registrar un movimiento",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "product", Required: true, Usage: "ID del producto"},
					&cli.StringFlag{Name: "type", Required: true, Usage: "RECEIVING|TRANSFER|ADJUSTMENT"},
					&cli.IntFlag{Name: "adjustment", Required: true, Usage: "cantidad con signo"},
					&cli.StringFlag{Name: "from"},
					&cli.StringFlag{Name: "to"},
					&cli.StringFlag{Name: "note"},
					jsonFlag(),
				},
				Action: withSession(func(ctx context.Context, c *cli.Command, s *session) error {
					m, err := s.coord.CreateStockMovement(ctx, dto.CreateStockMovementRequest{
						ProductID:    c.String("product"),
						Type:         c.String("type"),
						Adjustment:   c.Int("adjustment"),
						FromBusiness: optional(c, "from"),
						ToBusiness:   optional(c, "to"),
						Note:         optional(c, "note"),
					})
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(c.Root().Writer, m)
					}
					printMovements(c.Root().Writer, []entity.StockMovement{m})
					reportStoreErrors(c, s)
					return nil
				}),
			},
		},
	}
}

func auditCommand() *cli.Command {
	return &cli.Command{
		Name:  "audit",
		Usage: "Bitácora",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Entradas recientes de la bitácora",
				Flags: []cli.Flag{&cli.IntFlag{Name: "limit", Usage: "1-200 (por defecto AUDIT_LIMIT)"}, jsonFlag()},
				Action: withSession(func(ctx context.Context, c *cli.Command, s *session) error {
					if err := s.audit.RefreshWithLimit(ctx, c.Int("limit")); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(c.Root().Writer, s.audit.Data())
					}
					printAudit(c.Root().Writer, s.audit.Data())
					return nil
				}),
			},
		},
	}
}

func usersCommand() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Usuarios de la aplicación",
		Commands: []*cli.Command{
			{
				Name:  "me",
				Usage: "Usuario actual (lo crea si no existe)",
				Flags: []cli.Flag{jsonFlag()},
				Action: withSession(func(ctx context.Context, c *cli.Command, s *session) error {
					u, err := s.client.CurrentUser(ctx)
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(c.Root().Writer, u)
					}
					printKV(c.Root().Writer, [][2]string{
						{"id", u.ID},
						{"email", u.Email},
						{"nombre", deref(u.DisplayName)},
						{"último login", formatTime(u.LastLoginAt)},
					})
					return nil
				}),
			},
			{
				Name:  "list",
				Usage: "Listar usuarios",
				Flags: []cli.Flag{jsonFlag()},
				Action: withSession(func(ctx context.Context, c *cli.Command, s *session) error {
					users, err := s.client.ListUsers(ctx)
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(c.Root().Writer, users)
					}
					printUsers(c.Root().Writer, users)
					return nil
				}),
			},
		},
	}
}

func summaryCommand() *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Indicadores del inventario y valor por categoría",
		Flags: []cli.Flag{jsonFlag()},
		Action: withSession(func(ctx context.Context, c *cli.Command, s *session) error {
			if err := s.products.Refresh(ctx); err != nil {
				return err
			}
			items := s.products.Data()
			sum, cats := inventory.Summarize(items), inventory.CategoryAggregate(items)
			if c.Bool("json") {
				return printJSON(c.Root().Writer, map[string]any{"summary": sum, "categories": cats})
			}
			printSummary(c.Root().Writer, sum, cats)
			return nil
		}),
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Generar el reporte PDF de inventario",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Value: "inventario.pdf", Usage: "archivo de salida"},
			&cli.StringFlag{Name: "title", Value: "Reporte de inventario"},
		},
		Action: withSession(func(ctx context.Context, c *cli.Command, s *session) error {
			if err := s.products.Refresh(ctx); err != nil {
				return err
			}
			doc, err := pdf.NewReportGenerator().GenerateInventoryReport(ctx, pdf.ReportInput{
				Title:       c.String("title"),
				Source:      s.cfg.Client.BaseURL,
				GeneratedAt: time.Now(),
				Products:    s.products.Data(),
			})
			if err != nil {
				return err
			}
			if err := os.WriteFile(c.String("out"), doc, 0o644); err != nil {
				return fmt.Errorf("escribir reporte: %w", err)
			}
			_, _ = fmt.Fprintf(c.Root().Writer, "reporte escrito en %s (%d bytes)\n", c.String("out"), len(doc))
			return nil
		}),
	}
}

// tokenCommand emite un token de desarrollo firmado con JWT_SECRET; no necesita servidor.
func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Emitir un bearer token de desarrollo",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "sub", Required: true, Usage: "id del usuario en el proveedor de identidad"},
			&cli.StringFlag{Name: "email"},
			&cli.StringFlag{Name: "name"},
			&cli.StringFlag{Name: "picture"},
			&cli.StringFlag{Name: "secret", Usage: "por defecto JWT_SECRET"},
			&cli.IntFlag{Name: "exp", Usage: "minutos de validez (por defecto JWT_EXPIRATION_MINUTES)"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			secret := cfg.JWT.Secret
			if c.IsSet("secret") {
				secret = c.String("secret")
			}
			exp := cfg.JWT.Expiration
			if c.IsSet("exp") {
				exp = c.Int("exp")
			}
			tok, err := jwt.Generate(secret, cfg.JWT.Issuer, jwt.Identity{
				AuthUserID: c.String("sub"),
				Email:      c.String("email"),
				Name:       c.String("name"),
				Picture:    c.String("picture"),
			}, exp)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(c.Root().Writer, tok)
			return nil
		},
	}
}

// parsePrice un valor no numérico queda inválido y lo rechaza la validación local.
func parsePrice(s string) entity.Price {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return entity.Price{}
	}
	return entity.NewPrice(d)
}

// reportStoreErrors avisa en stderr si alguna recarga posterior a la mutación falló.
func reportStoreErrors(c *cli.Command, s *session) {
	for _, e := range []struct{ name, msg string }{
		{store.NameProducts, s.products.Snapshot().Error},
		{store.NameStockMovements, s.movements.Snapshot().Error},
		{store.NameAuditLogs, s.audit.Snapshot().Error},
	} {
		if e.msg != "" {
			_, _ = fmt.Fprintf(c.Root().ErrWriter, "aviso: no se pudo recargar %s: %s\n", e.name, e.msg)
		}
	}
}

// verifyLedger comprueba, por producto, que resultingStock encadena con los ajustes.
func verifyLedger(c *cli.Command, items []entity.StockMovement) error {
	w := c.Root().Writer
	bad := 0
	for productID, chrono := range inventory.GroupByProduct(items) {
		for _, m := range inventory.VerifyLedger(inventory.OpeningBalance(chrono), chrono) {
			bad++
			_, _ = fmt.Fprintf(w, "%s: %s\n", productID, m.String())
		}
	}
	if bad > 0 {
		return domain.Detail(domain.ErrConflict, "%d movimientos no encadenan con el stock resultante", bad)
	}
	_, _ = fmt.Fprintf(w, "ok: %d movimientos verificados\n", len(items))
	return nil
}
