package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/grievance-service/internal/api/http/handlers"
	"github.com/spec-kit/grievance-service/internal/auth"
	"github.com/spec-kit/grievance-service/internal/domain"
)

// RouteConfig bundles the handlers and middleware the router needs.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Reports     *handlers.ReportsHandler
	Departments *handlers.DepartmentsHandler
	AuthMW      *auth.AuthMiddleware
}

// RegisterRoutes mounts all endpoints on the app.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)
	authGroup.Post("/password/change", cfg.AuthMW.Handle, cfg.Auth.ChangePassword)

	app.Get("/departments", cfg.Departments.ListDepartments)
	app.Post("/departments", cfg.AuthMW.Handle, auth.RequireRole(domain.RoleAdmin), cfg.Departments.CreateDepartment)
	app.Patch("/departments/:id", cfg.AuthMW.Handle, auth.RequireRole(domain.RoleAdmin), cfg.Departments.UpdateDepartment)

	app.Get("/statuses", cfg.Reports.ListStatuses)

	reports := app.Group("/reports", cfg.AuthMW.Handle)
	reports.Post("/", cfg.Reports.CreateReport)
	reports.Get("/", cfg.Reports.ListReports)
	reports.Get("/:id", cfg.Reports.GetReport)
	reports.Get("/:id/history", cfg.Reports.GetHistory)
	reports.Post("/:id/transition", cfg.Reports.Transition)
	reports.Post("/:id/department", auth.RequireRole(domain.RoleAdmin), cfg.Reports.Reassign)
	reports.Post("/:id/comments", cfg.Reports.AddComment)

	admin := app.Group("/admin", cfg.AuthMW.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Post("/actors", cfg.Auth.ProvisionActor)
}
