package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/andidelouise/TOKO-APP-V2/internal/application/dto"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain"
)

// classify traduce un error de aplicación a status HTTP y código estable.
func classify(err error) (int, string) {
	var gwErr *domain.GatewayError
	switch {
	case domain.IsValidation(err):
		return fiber.StatusBadRequest, "VALIDATION"
	case domain.IsAuth(err):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrBusy):
		return fiber.StatusConflict, "BUSY"
	case errors.Is(err, domain.ErrNotMounted):
		return fiber.StatusConflict, "NOT_MOUNTED"
	case errors.Is(err, domain.ErrUnknownEntity):
		return fiber.StatusNotFound, "UNKNOWN_ENTITY"
	case errors.Is(err, domain.ErrNoSession):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrDashboardFetch), errors.Is(err, domain.ErrReportFetch):
		return fiber.StatusBadGateway, "FETCH_FAILED"
	case errors.As(err, &gwErr):
		switch gwErr.Kind {
		case domain.KindConstraint:
			return fiber.StatusConflict, "CONSTRAINT"
		case domain.KindNotFound:
			return fiber.StatusNotFound, "NOT_FOUND"
		}
		return fiber.StatusBadGateway, "GATEWAY"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// writeError responde con el mensaje del error tal cual.
func writeError(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// writePageError responde con el error y la vista de la página.
func writePageError(c *fiber.Ctx, err error, view dto.PageView) error {
	return pageError(c, err, err.Error(), view)
}

// writeLoadError como writePageError, pero si la carga dejó un mensaje propio
// en la vista (p. ej. "Gagal memuat data.") se usa ese.
func writeLoadError(c *fiber.Ctx, err error, view dto.PageView) error {
	msg := err.Error()
	if view.Error != "" {
		msg = view.Error
	}
	return pageError(c, err, msg, view)
}

func pageError(c *fiber.Ctx, err error, msg string, view dto.PageView) error {
	status, code := classify(err)
	return c.Status(status).JSON(dto.PageErrorResponse{
		ErrorResponse: dto.ErrorResponse{Code: code, Message: msg},
		View:          &view,
	})
}
