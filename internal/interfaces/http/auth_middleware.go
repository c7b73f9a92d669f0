package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lager-api/internal/application/dto"
	"github.com/jhoicas/lager-api/pkg/jwt"
)

// LocalClient clave en Locals del cliente autenticado.
const LocalClient = "client"

// AuthMiddleware valida el Bearer Token JWT y guarda el cliente en c.Locals.
func AuthMiddleware(jwtSecret, issuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token vacío"})
		}
		client, err := jwt.Parse(jwtSecret, issuer, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido o expirado"})
		}
		c.Locals(LocalClient, client)
		return c.Next()
	}
}

// GetClient devuelve el cliente autenticado (vacío si la API corre sin auth).
func GetClient(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalClient).(string)
	return s
}
