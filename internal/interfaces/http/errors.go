package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fifo-ledger/internal/application/dto"
	"github.com/jhoicas/fifo-ledger/internal/domain"
	"github.com/jhoicas/fifo-ledger/pkg/logger"
)

// writeError traduce un error de los casos de uso a status + ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	var se *domain.InsufficientStockError

	switch {
	case errors.As(err, &ve):
		body := dto.ErrorResponse{Code: "VALIDATION", Message: ve.Error(), Field: ve.Field}
		if ve.Index >= 0 {
			idx := ve.Index
			body.Index = &idx
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	case errors.As(err, &se):
		body := dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: se.Error()}
		if se.Index >= 0 {
			idx := se.Index
			body.Index = &idx
		}
		req, avail := se.Requested, se.Available
		body.Requested, body.Available = &req, &avail
		return c.Status(fiber.StatusConflict).JSON(body)
	case errors.Is(err, domain.ErrTooManyTransactions):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "TOO_MANY_TRANSACTIONS", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay movimientos para el producto"})
	case errors.Is(err, domain.ErrUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "fuente de movimientos no configurada"})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "CANCELED", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// ErrorHandler handler de errores de Fiber. Recibe también los panics que recupera el
// middleware recover: una violación de invariantes del motor se registra como error.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP", Message: fe.Message})
		}
		if errors.Is(err, domain.ErrInvariantViolation) {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("request_id", GetRequestID(c)).
				Msg("violación de invariante del motor FIFO")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INVARIANT_VIOLATION", Message: "error interno del motor FIFO"})
		}
		log.Error().Err(err).Str("path", c.Path()).Msg("error no manejado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
