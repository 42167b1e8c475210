package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/andidelouise/TOKO-APP-V2/internal/application/dto"
	"github.com/andidelouise/TOKO-APP-V2/internal/application/pages"
	"github.com/andidelouise/TOKO-APP-V2/internal/application/resource"
)

// PageHandler maneja las páginas de recurso (products, categories, suppliers, stores).
// Cada respuesta es la PageView completa tras la operación.
type PageHandler struct {
	pages *pages.Registry
}

// NewPageHandler construye el handler.
func NewPageHandler(registry *pages.Registry) *PageHandler {
	return &PageHandler{pages: registry}
}

// Mount godoc
// @Summary      Navegar a la página y cargarla
// @Description  Desmonta la página actual, monta la pedida y carga su lista (y opciones).
// @Tags         pages
// @Produce      json
// @Param        entity  path  string  true  "products | categories | suppliers | stores"
// @Success      200  {object}  dto.PageView
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.PageErrorResponse
// @Router       /api/pages/{entity}/mount [post]
func (h *PageHandler) Mount(c *fiber.Ctx) error {
	page := GetPage(c)
	if err := h.pages.Navigate(c.UserContext(), page.Entity()); err != nil {
		return writeLoadError(c, err, page.View())
	}
	return c.JSON(page.View())
}

// Get godoc
// @Summary      Vista de la página
// @Description  Monta la página si no está montada. Con ?search= aplica el término de búsqueda.
// @Tags         pages
// @Produce      json
// @Param        entity  path   string  true   "products | categories | suppliers | stores"
// @Param        search  query  string  false  "término de búsqueda (sin distinguir mayúsculas)"
// @Success      200  {object}  dto.PageView
// @Failure      502  {object}  dto.PageErrorResponse
// @Router       /api/pages/{entity} [get]
func (h *PageHandler) Get(c *fiber.Ctx) error {
	page, err := h.pages.Ensure(c.UserContext(), c.Params("entity"))
	if err != nil {
		if page == nil {
			return writeError(c, err)
		}
		return writeLoadError(c, err, page.View())
	}
	if c.Request().URI().QueryArgs().Has("search") {
		page.SetSearch(c.Query("search"))
	}
	return c.JSON(page.View())
}

// Submit godoc
// @Summary      Crear o actualizar
// @Description  Sin edición activa crea la fila; con edición activa actualiza la fila en edición.
// @Tags         pages
// @Accept       json
// @Produce      json
// @Param        entity  path  string              true  "products | categories | suppliers | stores"
// @Param        body    body  dto.SubmitRequest   true  "campos del formulario"
// @Success      200  {object}  dto.PageView
// @Failure      400  {object}  dto.PageErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.PageErrorResponse
// @Failure      502  {object}  dto.PageErrorResponse
// @Router       /api/pages/{entity}/submit [post]
func (h *PageHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	page := GetPage(c)
	return h.respond(c, page, page.Submit(c.UserContext(), resource.Form(in.Form)))
}

// Edit godoc
// @Summary      Editar fila
// @Description  Copia la fila en caché al formulario; no consulta al backend.
// @Tags         pages
// @Produce      json
// @Param        entity  path  string  true  "entidad"
// @Param        id      path  string  true  "id de la fila"
// @Success      200  {object}  dto.PageView
// @Failure      404  {object}  dto.PageErrorResponse
// @Router       /api/pages/{entity}/edit/{id} [post]
func (h *PageHandler) Edit(c *fiber.Ctx) error {
	page := GetPage(c)
	return h.respond(c, page, page.Edit(c.Params("id")))
}

// Reset godoc
// @Summary      Limpiar formulario
// @Tags         pages
// @Produce      json
// @Param        entity  path  string  true  "entidad"
// @Success      200  {object}  dto.PageView
// @Router       /api/pages/{entity}/reset [post]
func (h *PageHandler) Reset(c *fiber.Ctx) error {
	page := GetPage(c)
	return h.respond(c, page, page.ResetForm())
}

// RequestDelete godoc
// @Summary      Pedir confirmación de borrado
// @Tags         pages
// @Produce      json
// @Param        entity  path  string  true  "entidad"
// @Param        id      path  string  true  "id de la fila"
// @Success      200  {object}  dto.PageView
// @Failure      404  {object}  dto.PageErrorResponse
// @Router       /api/pages/{entity}/delete/{id} [post]
func (h *PageHandler) RequestDelete(c *fiber.Ctx) error {
	page := GetPage(c)
	return h.respond(c, page, page.RequestDelete(c.Params("id")))
}

// ConfirmDelete godoc
// @Summary      Confirmar borrado
// @Description  Borra la fila pendiente. Si el backend la rechaza (p. ej. referenciada por productos) la fila se conserva.
// @Tags         pages
// @Produce      json
// @Param        entity  path  string  true  "entidad"
// @Success      200  {object}  dto.PageView
// @Failure      409  {object}  dto.PageErrorResponse
// @Failure      502  {object}  dto.PageErrorResponse
// @Router       /api/pages/{entity}/delete/confirm [post]
func (h *PageHandler) ConfirmDelete(c *fiber.Ctx) error {
	page := GetPage(c)
	return h.respond(c, page, page.ConfirmDelete(c.UserContext()))
}

// CancelDelete godoc
// @Summary      Cancelar borrado
// @Tags         pages
// @Produce      json
// @Param        entity  path  string  true  "entidad"
// @Success      200  {object}  dto.PageView
// @Router       /api/pages/{entity}/delete/cancel [post]
func (h *PageHandler) CancelDelete(c *fiber.Ctx) error {
	page := GetPage(c)
	return h.respond(c, page, page.CancelDelete())
}

func (h *PageHandler) respond(c *fiber.Ctx, page resource.Page, err error) error {
	if err != nil {
		return writePageError(c, err, page.View())
	}
	return c.JSON(page.View())
}
