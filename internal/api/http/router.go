package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/deskops/incident-desk/internal/api/http/handlers"
	"github.com/deskops/incident-desk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Metrics        *handlers.MetricsHandler
	Incidents      *handlers.IncidentsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Snapshot)

	incidents := app.Group("/incidents", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	incidents.Get("/", cfg.Incidents.ListIncidents)
	incidents.Get("/export", cfg.Incidents.ExportIncidents)
	incidents.Get("/:id", cfg.Incidents.GetIncident)

	requireOperator := auth.RequireRole(auth.RoleOperator)
	incidents.Post("/", requireOperator, cfg.Incidents.CreateIncident)
	incidents.Post("/:id/commands", requireOperator, cfg.Incidents.DispatchCommand)

	requireSupervisor := auth.RequireRole(auth.RoleSupervisor)
	incidents.Post("/import", requireSupervisor, cfg.Incidents.ImportIncidents)
	incidents.Post("/reset", requireSupervisor, cfg.Incidents.ResetIncidents)
	incidents.Post("/save", requireSupervisor, cfg.Incidents.SaveIncidents)
	incidents.Post("/load", requireSupervisor, cfg.Incidents.LoadIncidents)
	incidents.Delete("/:id", requireSupervisor, cfg.Incidents.DeleteIncident)
}
