package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	apphttp "github.com/jhoicas/nexus-inventory/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/nexus-inventory/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "nexus-inventory-test"
	testExpMin    = 60
)

var testIdentity = pkgjwt.Identity{
	AuthUserID: "auth0|0001",
	Email:      "ana@example.com",
	Name:       "Ana",
	Picture:    "https://example.com/ana.png",
}

// buildAuthApp aplicación Fiber mínima con AuthMiddleware y un handler que devuelve la identidad.
func buildAuthApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		id, ok := apphttp.GetIdentity(c)
		return c.JSON(fiber.Map{"ok": ok, "sub": id.AuthUserID, "email": id.Email, "name": id.Name})
	})
	return app
}

func bearer(t *testing.T, id pkgjwt.Identity, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, id, expMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doAuth(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeIdentidad(t *testing.T) {
	resp := doAuth(t, buildAuthApp(), bearer(t, testIdentity, testExpMin))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, testIdentity.AuthUserID, body["sub"])
	assert.Equal(t, testIdentity.Email, body["email"])
	assert.Equal(t, testIdentity.Name, body["name"])
}

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	resp := doAuth(t, buildAuthApp(), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, 401, body.Status)
	assert.Equal(t, "Unauthorized", body.Error)
	assert.Equal(t, "Authorization header is required", body.Message)
	assert.Equal(t, "/me", body.Path)
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	resp := doAuth(t, buildAuthApp(), "Token abc")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	resp := doAuth(t, buildAuthApp(), "Bearer token.invalido.aqui")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid or expired token", decodeError(t, resp).Message)
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	resp := doAuth(t, buildAuthApp(), bearer(t, testIdentity, -1))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SecretIncorrecto_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret-completamente-distinto", testIssuer, testIdentity, testExpMin)
	require.NoError(t, err)
	resp := doAuth(t, buildAuthApp(), "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
