package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fifo-ledger/internal/application/dto"
	"github.com/jhoicas/fifo-ledger/pkg/jwt"
)

// Locals keys en Fiber.
const (
	LocalClientID  = "client_id"
	LocalScopes    = "scopes"
	LocalRequestID = "request_id"
)

// AuthMiddleware valida el Bearer Token JWT y deja ClientID y scopes en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalClientID, claims.ClientID)
		c.Locals(LocalScopes, claims.Scopes)
		return c.Next()
	}
}

// RequireScope exige que el token traiga scope. Debe usarse DESPUÉS de AuthMiddleware.
//   - 401 si no hay cliente en el contexto.
//   - 403 si el token no concede el scope.
func RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetClientID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "cliente no encontrado en el token"})
		}
		for _, s := range GetScopes(c) {
			if s == scope {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "el token no concede el scope '" + scope + "'",
		})
	}
}

// GetClientID devuelve el ClientID del contexto (después del middleware de auth).
func GetClientID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalClientID).(string)
	return s
}

// GetScopes devuelve los scopes del token.
func GetScopes(c *fiber.Ctx) []string {
	s, _ := c.Locals(LocalScopes).([]string)
	return s
}
