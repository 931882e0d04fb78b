package postgres

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseURLWithIPv4_IPLiteral(t *testing.T) {
	got := databaseURLWithIPv4("postgres://u:p@127.0.0.1/db?sslmode=disable")
	assert.Equal(t, "postgres://u:p@127.0.0.1:5432/db?sslmode=disable", got)
}

func TestDatabaseURLWithIPv4_URLInvalida(t *testing.T) {
	assert.Equal(t, "://bad", databaseURLWithIPv4("://bad"))
}

func TestResolveIPv4_IPv6Literal(t *testing.T) {
	_, err := resolveIPv4("::1")
	assert.Error(t, err)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("otro")))
}

func TestMigrationsEmbebidas(t *testing.T) {
	raw, err := migrationsFS.ReadFile("migrations/00001_init.sql")
	require.NoError(t, err)
	sql := string(raw)
	for _, table := range []string{"products", "stock_movements", "audit_logs", "app_users"} {
		assert.True(t, strings.Contains(sql, "CREATE TABLE IF NOT EXISTS "+table), table)
	}
	assert.Contains(t, sql, "-- +goose Down")
}
