package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/andidelouise/TOKO-APP-V2/internal/application/dto"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
)

// LocalIdentity key de Locals con la identidad de la sesión.
const LocalIdentity = "identity"

// readyTimeout tope de espera a que termine la restauración de sesión.
const readyTimeout = 15 * time.Second

// sessionSource lo que el middleware necesita del Session Store.
type sessionSource interface {
	WaitReady(ctx context.Context) error
	Current() *entity.Identity
}

// AuthMiddleware espera a que la sesión deje de estar cargando y exige una
// identidad. Carga la identidad en c.Locals.
func AuthMiddleware(sessions sessionSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), readyTimeout)
		defer cancel()
		if err := sessions.WaitReady(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SESSION_LOADING", Message: "la sesión aún se está restaurando"})
		}
		id := sessions.Current()
		if id == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "se requiere iniciar sesión"})
		}
		c.Locals(LocalIdentity, id)
		return c.Next()
	}
}

// RequireRole deja pasar solo a identidades con alguno de los roles indicados.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "la sesión no tiene rol"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado para el rol " + role})
	}
}

// GetIdentity devuelve la identidad del contexto (después de AuthMiddleware).
func GetIdentity(c *fiber.Ctx) *entity.Identity {
	id, _ := c.Locals(LocalIdentity).(*entity.Identity)
	return id
}

// GetRole devuelve el rol de la identidad del contexto.
func GetRole(c *fiber.Ctx) string {
	if id := GetIdentity(c); id != nil {
		return id.Role
	}
	return ""
}
