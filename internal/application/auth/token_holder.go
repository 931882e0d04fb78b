package auth

import (
	"strings"
	"sync"

	"github.com/jhoicas/nexus-inventory/internal/domain"
)

// TokenSource lo consume el cliente HTTP en cada request saliente.
type TokenSource interface {
	// Token devuelve el bearer actual y false si no hay ninguno.
	Token() (string, bool)
}

// TokenHolder guarda el bearer vigente. Se inyecta en el cliente HTTP en lugar de ser estado global.
// Lo escribe solo el ciclo de sesión (Set/Clear); el resto lo lee. El último Set gana.
type TokenHolder struct {
	mu    sync.RWMutex
	token string
	set   bool
}

var _ TokenSource = (*TokenHolder)(nil)

// NewTokenHolder crea el holder; un token inicial vacío equivale a sin sesión.
func NewTokenHolder(initial string) *TokenHolder {
	h := &TokenHolder{}
	h.Set(initial)
	return h
}

// Set reemplaza el token. Un valor vacío limpia el holder.
func (h *TokenHolder) Set(token string) {
	token = strings.TrimSpace(token)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
	h.set = token != ""
}

// Clear elimina el token (cierre de sesión); los requests siguientes salen sin Authorization.
func (h *TokenHolder) Clear() {
	h.Set("")
}

// Token devuelve el token vigente.
func (h *TokenHolder) Token() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token, h.set
}

// Require devuelve el token o domain.ErrAuthRequired si no hay sesión.
func (h *TokenHolder) Require() (string, error) {
	tok, ok := h.Token()
	if !ok {
		return "", domain.ErrAuthRequired
	}
	return tok, nil
}
