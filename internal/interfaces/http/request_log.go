package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/fifo-ledger/pkg/logger"
)

// HeaderRequestID header de correlación; se respeta si el cliente lo envía.
const HeaderRequestID = "X-Request-ID"

// RequestLogger asigna un request id y registra cada petición con zerolog.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Locals(LocalRequestID, id)
		c.Set(HeaderRequestID, id)

		err := c.Next()
		if err != nil {
			// el ErrorHandler escribe la respuesta; el status se lee después
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("request_id", id).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_id", GetClientID(c)).
			Msg("http")
		return nil
	}
}

// GetRequestID devuelve el request id asignado por RequestLogger.
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}
