package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/andidelouise/TOKO-APP-V2/internal/application/pages"
	"github.com/andidelouise/TOKO-APP-V2/internal/application/session"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session *session.Store
	Pages   *pages.Registry
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.Session)
	authGroup.Get("/session", authHandler.Session)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	// Rutas protegidas (requieren sesión)
	protected := api.Group("/", AuthMiddleware(deps.Session))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Páginas de recurso
	pageGroup := protected.Group("/pages")
	withPage := RequireEntity(deps.Pages)
	pageHandler := NewPageHandler(deps.Pages)
	pageGroup.Get("/:entity", withPage, pageHandler.Get)
	pageGroup.Post("/:entity/mount", withPage, pageHandler.Mount)
	pageGroup.Post("/:entity/submit", adminOnly, withPage, pageHandler.Submit)
	pageGroup.Post("/:entity/edit/:id", adminOnly, withPage, pageHandler.Edit)
	pageGroup.Post("/:entity/reset", adminOnly, withPage, pageHandler.Reset)
	// confirm y cancel antes de :id
	pageGroup.Post("/:entity/delete/confirm", adminOnly, withPage, pageHandler.ConfirmDelete)
	pageGroup.Post("/:entity/delete/cancel", adminOnly, withPage, pageHandler.CancelDelete)
	pageGroup.Post("/:entity/delete/:id", adminOnly, withPage, pageHandler.RequestDelete)

	// Dashboard y reportes
	dashboardHandler := NewDashboardHandler(deps.Pages)
	protected.Get("/dashboard", dashboardHandler.GetDashboard)
	protected.Get("/reports", dashboardHandler.GetReport)
	protected.Get("/reports/pdf", dashboardHandler.GetReportPDF)
}
