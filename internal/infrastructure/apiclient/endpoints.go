package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
)

// Rutas del API v1.
const (
	pathMeta           = "/api/v1/meta"
	pathProducts       = "/api/v1/products"
	pathStockMovements = "/api/v1/stock-movements"
	pathAuditLogs      = "/api/v1/audit-logs"
	pathUsers          = "/api/v1/users"
	pathUsersMe        = "/api/v1/users/me"
)

// Meta GET /api/v1/meta.
func (c *Client) Meta(ctx context.Context) (entity.Meta, error) {
	var out entity.Meta
	err := c.Do(ctx, http.MethodGet, pathMeta, nil, &out)
	return out, err
}

// ListProducts GET /api/v1/products.
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	out := make([]entity.Product, 0)
	if err := c.Do(ctx, http.MethodGet, pathProducts, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProduct GET /api/v1/products/{id}.
func (c *Client) GetProduct(ctx context.Context, id string) (entity.Product, error) {
	var out entity.Product
	err := c.Do(ctx, http.MethodGet, pathProducts+"/"+url.PathEscape(id), nil, &out)
	return out, err
}

// CreateProduct POST /api/v1/products.
func (c *Client) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (entity.Product, error) {
	var out entity.Product
	err := c.Do(ctx, http.MethodPost, pathProducts, in, &out)
	return out, err
}

// AdjustStock PATCH /api/v1/products/{id}/stock.
func (c *Client) AdjustStock(ctx context.Context, productID string, adjustment int) (entity.Product, error) {
	var out entity.Product
	path := fmt.Sprintf("%s/%s/stock", pathProducts, url.PathEscape(productID))
	err := c.Do(ctx, http.MethodPatch, path, dto.StockAdjustmentRequest{Adjustment: adjustment}, &out)
	return out, err
}

// ListStockMovements GET /api/v1/stock-movements?limit=N (más recientes primero).
func (c *Client) ListStockMovements(ctx context.Context, limit int) ([]entity.StockMovement, error) {
	out := make([]entity.StockMovement, 0)
	if err := c.Do(ctx, http.MethodGet, withLimit(pathStockMovements, limit), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateStockMovement POST /api/v1/stock-movements.
func (c *Client) CreateStockMovement(ctx context.Context, in dto.CreateStockMovementRequest) (entity.StockMovement, error) {
	var out entity.StockMovement
	err := c.Do(ctx, http.MethodPost, pathStockMovements, in, &out)
	return out, err
}

// ListAuditLogs GET /api/v1/audit-logs?limit=N (más recientes primero).
func (c *Client) ListAuditLogs(ctx context.Context, limit int) ([]entity.AuditLogEntry, error) {
	out := make([]entity.AuditLogEntry, 0)
	if err := c.Do(ctx, http.MethodGet, withLimit(pathAuditLogs, limit), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CurrentUser GET /api/v1/users/me.
func (c *Client) CurrentUser(ctx context.Context) (entity.AppUser, error) {
	var out entity.AppUser
	err := c.Do(ctx, http.MethodGet, pathUsersMe, nil, &out)
	return out, err
}

// ListUsers GET /api/v1/users.
func (c *Client) ListUsers(ctx context.Context) ([]entity.AppUser, error) {
	out := make([]entity.AppUser, 0)
	if err := c.Do(ctx, http.MethodGet, pathUsers, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func withLimit(path string, limit int) string {
	if limit <= 0 {
		limit = dto.DefaultRecentLimit
	}
	return fmt.Sprintf("%s?limit=%d", path, limit)
}
