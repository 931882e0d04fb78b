package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrAuthRequired no hay identidad presente; lo emite la capa de sesión antes de llamar al servidor.
	ErrAuthRequired = errors.New("se requiere autenticación")
)

// ValidationError error local previo al envío, asociado a un campo.
// Nunca llega a la capa de red.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError atajo para construir un *ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// RequestFailedError el servidor respondió con un status no 2xx.
// Message es el texto legible ya normalizado desde el cuerpo de la respuesta.
type RequestFailedError struct {
	Status  int
	Message string
}

func (e *RequestFailedError) Error() string {
	return e.Message
}

// Is traduce el status HTTP a los errores centinela del dominio.
func (e *RequestFailedError) Is(target error) bool {
	switch e.Status {
	case http.StatusBadRequest:
		return target == ErrInvalidInput
	case http.StatusUnauthorized:
		return target == ErrUnauthorized
	case http.StatusForbidden:
		return target == ErrForbidden
	case http.StatusNotFound:
		return target == ErrNotFound
	case http.StatusConflict:
		return target == ErrConflict
	}
	return false
}

// DetailError error de dominio con el texto que se muestra al usuario.
// Kind es el centinela que determina el status HTTP.
type DetailError struct {
	Kind    error
	Message string
}

func (e *DetailError) Error() string {
	return e.Message
}

func (e *DetailError) Unwrap() error {
	return e.Kind
}

// Detail construye un *DetailError con mensaje formateado.
func Detail(kind error, format string, args ...any) error {
	return &DetailError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NetworkError no se obtuvo respuesta del servidor (DNS, conexión, timeout).
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("error de red en %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Message devuelve el texto legible que se muestra al usuario y se guarda en el campo error de los stores.
// Para RequestFailedError es el mensaje exacto del servidor, sin prefijos de envoltura.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var de *DetailError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
