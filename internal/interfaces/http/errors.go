package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/domain"
)

// statusFor traduce un error de dominio a status HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrAuthRequired):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	}
	return fiber.StatusInternalServerError
}

// writeError responde con el envelope {timestamp, status, error, message, path}.
// En 500 no se expone el error interno.
func writeError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	msg := domain.Message(err)
	if status == fiber.StatusInternalServerError {
		msg = "Unexpected server error"
	}
	return writeEnvelope(c, status, msg)
}

func writeEnvelope(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     utils.StatusMessage(status),
		Message:   msg,
		Path:      c.Path(),
	})
}

// ErrorHandler handler de errores de Fiber: rutas inexistentes, body demasiado grande y panics recuperados
// también salen con el envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return writeEnvelope(c, fe.Code, fe.Message)
	}
	return writeError(c, err)
}
