package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-service/internal/api/http/handlers"
	"github.com/spec-kit/maintenance-service/internal/auth"
	"github.com/spec-kit/maintenance-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Technicians    *handlers.TechniciansHandler
	Maintenance    *handlers.MaintenanceHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole())
	protected.Post("/auth/password/change", cfg.Auth.ChangePassword)

	protected.Post("/tickets", cfg.Tickets.CreateTicket)
	protected.Get("/tickets", cfg.Tickets.ListTickets)
	protected.Get("/tickets/:id", cfg.Tickets.GetTicket)
	protected.Patch("/tickets/:id", cfg.Tickets.UpdateTicket)
	protected.Post("/tickets/:id/notes", cfg.Tickets.AddNote)

	protected.Get("/technicians", cfg.Technicians.ListTechnicians)
	protected.Get("/maintenance/plans", cfg.Maintenance.ListPlans)

	admin := protected.Group("", auth.RequireRole(domain.RoleAdmin))
	admin.Patch("/technicians/:id/availability", cfg.Technicians.SetAvailability)
	admin.Post("/maintenance/tick", cfg.Maintenance.RunTick)
	admin.Post("/maintenance/sweep", cfg.Maintenance.RunSweep)
}
