package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/andidelouise/TOKO-APP-V2/internal/application/pages"
)

// DashboardHandler maneja el dashboard y los reportes.
type DashboardHandler struct {
	pages *pages.Registry
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(registry *pages.Registry) *DashboardHandler {
	return &DashboardHandler{pages: registry}
}

// GetDashboard godoc
// @Summary      Dashboard
// @Description  Conteos, stock total, 5 productos recientes y serie de ventas. Todo o nada:
// @Description  si falla cualquiera de las seis lecturas responde 502 sin datos parciales.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	if err := h.pages.Navigate(c.UserContext(), pages.PageDashboard); err != nil {
		return writeError(c, err)
	}
	out, err := h.pages.Dashboard().Load(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetReport godoc
// @Summary      Reporte de inventario
// @Description  Valor de inventario, stock bajo (< 30), precio promedio, stock por categoría y ventas.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.ReportDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *DashboardHandler) GetReport(c *fiber.Ctx) error {
	if err := h.pages.Navigate(c.UserContext(), pages.PageReports); err != nil {
		return writeError(c, err)
	}
	out, err := h.pages.Reports().DTO()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetReportPDF godoc
// @Summary      Exportar reporte en PDF
// @Description  Usa los datos ya cargados si la página de reportes está montada; si no, los carga.
// @Description  Tras una carga fallida vuelve a cargar y nunca exporta datos anteriores.
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/reports/pdf [get]
func (h *DashboardHandler) GetReportPDF(c *fiber.Ctx) error {
	switch {
	case h.pages.Current() != pages.PageReports:
		if err := h.pages.Navigate(c.UserContext(), pages.PageReports); err != nil {
			return writeError(c, err)
		}
	case !h.pages.Reports().Loaded():
		if err := h.pages.Reports().Load(c.UserContext()); err != nil {
			return writeError(c, err)
		}
	}
	pdf, err := h.pages.Reports().Export()
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="laporan-inventaris.pdf"`)
	return c.Send(pdf)
}
