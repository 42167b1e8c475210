package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/andidelouise/TOKO-APP-V2/internal/application/dto"
	"github.com/andidelouise/TOKO-APP-V2/internal/application/resource"
)

// LocalPage key de Locals con el controlador de la página pedida.
const LocalPage = "page"

// pageLookup es el contrato mínimo que necesita el middleware para resolver páginas.
// Lo implementa *pages.Registry.
type pageLookup interface {
	Page(name string) (resource.Page, error)
}

// RequireEntity resuelve el parámetro :entity a su controlador de página.
// Responde 404 si la entidad no existe; debe usarse DESPUÉS de AuthMiddleware.
func RequireEntity(lookup pageLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("entity")
		page, err := lookup.Page(name)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code:    "UNKNOWN_ENTITY",
				Message: "la página '" + name + "' no existe",
			})
		}
		c.Locals(LocalPage, page)
		return c.Next()
	}
}

// GetPage devuelve el controlador resuelto por RequireEntity.
func GetPage(c *fiber.Ctx) resource.Page {
	p, _ := c.Locals(LocalPage).(resource.Page)
	return p
}
