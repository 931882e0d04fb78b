package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
)

func TestPrice_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		valid bool
		want  string
	}{
		{"numero", `19.99`, true, "19.99"},
		{"string numérico", `"10.5"`, true, "10.5"},
		{"null", `null`, false, "0"},
		{"no numérico", `"abc"`, false, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p entity.Price
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &p))
			assert.Equal(t, tc.valid, p.Valid)
			assert.Equal(t, tc.want, p.Decimal().String())
		})
	}
}

func TestPrice_MarshalJSON_NumeroSinComillas(t *testing.T) {
	b, err := json.Marshal(struct {
		Price entity.Price `json:"price"`
	}{entity.MustPrice("19.99")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":19.99}`, string(b))

	b, err = json.Marshal(entity.Price{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestProduct_DecodeDesdeServidor(t *testing.T) {
	raw := `{"id":"p1","sku":"SKU-1","name":"Lápiz","category":null,"price":2.5,
		"stockQuantity":4,"minStockLevel":5,"lowStockAlert":true,"createdAt":"2024-05-01T10:00:00Z"}`
	var p entity.Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Nil(t, p.Category)
	assert.Equal(t, "", p.CategoryName())
	assert.Equal(t, "2.5", p.Price.Decimal().String())
	assert.Equal(t, 4, p.StockQuantity)
	assert.True(t, p.LowStockAlert)
}
