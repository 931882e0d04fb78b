package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nexus-inventory/internal/application/auth"
	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/infrastructure/apiclient"
)

func newClient(t *testing.T, h http.HandlerFunc, token string) (*apiclient.Client, *auth.TokenHolder) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	holder := auth.NewTokenHolder(token)
	return apiclient.New(srv.URL, holder, 5*time.Second), holder
}

// requestFailed extrae el *domain.RequestFailedError o falla el test.
func requestFailed(t *testing.T, err error) *domain.RequestFailedError {
	t.Helper()
	var rf *domain.RequestFailedError
	require.True(t, errors.As(err, &rf), "se esperaba RequestFailedError, llegó %v", err)
	return rf
}

// ─── Headers ──────────────────────────────────────────────────────────────────

func TestDo_AdjuntaBearerYContentType(t *testing.T) {
	var gotAuth, gotCT string
	var gotBody map[string]any
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("content-type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(`{"id":"p1","sku":"A-1","name":"Lápiz","price":"1.5","stockQuantity":3,"minStockLevel":5}`))
	}, "tok-123")

	p, err := c.CreateProduct(context.Background(), dto.CreateProductRequest{SKU: "A-1", Name: "Lápiz", Price: entity.MustPrice("1.5")})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, 1.5, gotBody["price"], "el precio viaja como número")
	assert.Nil(t, gotBody["category"])
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, 3, p.StockQuantity)
}

func TestDo_SinTokenNoEnviaAuthorization(t *testing.T) {
	var gotAuth []string
	c, holder := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}, "tok")

	_, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	holder.Clear()
	_, err = c.ListProducts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer tok", ""}, gotAuth)
}

// ─── Respuestas 2xx ───────────────────────────────────────────────────────────

func TestDo_204SinValor(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, "")
	var out map[string]any
	require.NoError(t, c.Do(context.Background(), http.MethodPost, "/api/v1/anything", nil, &out))
	assert.Nil(t, out)
}

func TestListStockMovements_EnviaLimit(t *testing.T) {
	var gotQuery string
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"m1","productId":"p1","type":"RECEIVING","adjustment":5,"resultingStock":5}]`))
	}, "")

	moves, err := c.ListStockMovements(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "limit=50", gotQuery)
	require.Len(t, moves, 1)
	assert.Equal(t, entity.MovementTypeReceiving, moves[0].Type)
}

// ─── Errores ──────────────────────────────────────────────────────────────────

func TestDo_ErrorJSONConMessage(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Product not found"}`))
	}, "")

	_, err := c.AdjustStock(context.Background(), "p-404", 3)
	rf := requestFailed(t, err)
	assert.Equal(t, 404, rf.Status)
	assert.Equal(t, "Product not found", rf.Message)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDo_ErrorJSONSinMessage_CuerpoCompleto(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{ "error": "Conflict", "status": 409 }`))
	}, "")

	_, err := c.ListProducts(context.Background())
	rf := requestFailed(t, err)
	assert.Equal(t, `{"error":"Conflict","status":409}`, rf.Message)
}

func TestDo_ErrorTextoPlano(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "text/plain")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream caído"))
	}, "")

	_, err := c.ListProducts(context.Background())
	assert.Equal(t, "upstream caído", requestFailed(t, err).Message)
}

func TestDo_Error500CuerpoVacio_FraseDeStatus(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, "")

	_, err := c.ListProducts(context.Background())
	rf := requestFailed(t, err)
	assert.Equal(t, 500, rf.Status)
	assert.Equal(t, "Internal Server Error", rf.Message)
}

func TestDo_ErrorDeRed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := apiclient.New(url, nil, time.Second)
	_, err := c.ListProducts(context.Background())

	var ne *domain.NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, http.MethodGet, ne.Method)
	assert.Equal(t, "/api/v1/products", ne.Path)
}

// ─── Métricas ─────────────────────────────────────────────────────────────────

func TestDo_RegistraMetricas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(`{"id":"p1","sku":"A","name":"B","price":1,"stockQuantity":4,"minStockLevel":0}`))
	}))
	t.Cleanup(srv.Close)

	reg := prometheus.NewRegistry()
	m := apiclient.NewMetrics(reg)
	c := apiclient.New(srv.URL, nil, time.Second, apiclient.WithMetrics(m))

	_, err := c.AdjustStock(context.Background(), "abc-123", 1)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests().WithLabelValues("PATCH", "/api/v1/products/{id}/stock", "200")))
}
