package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/medicine-service/internal/api/http/handlers"
	"github.com/spec-kit/medicine-service/internal/auth"
	"github.com/spec-kit/medicine-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Medicines      *handlers.MedicinesHandler
	Activity       *handlers.ActivityHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Role filters always run behind the
// authentication middleware.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Post("/reset-password", cfg.Auth.ResetPassword)
	authGroup.Get("/profile", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Auth.Profile)

	users := api.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	users.Put("/:id", cfg.Users.Update)

	medicines := api.Group("/medicines", cfg.AuthMiddleware.Handle)
	medicines.Get("/", auth.RequireAuthenticated(), cfg.Medicines.List)
	medicines.Get("/:id", auth.RequireAuthenticated(), cfg.Medicines.Get)
	medicines.Post("/", auth.RequireRole(domain.RoleAdmin, domain.RoleDoctor, domain.RoleStaff), cfg.Medicines.Create)
	medicines.Put("/:id", auth.RequireRole(domain.RoleAdmin, domain.RoleDoctor, domain.RoleStaff), cfg.Medicines.Update)
	medicines.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Medicines.Delete)

	activity := api.Group("/activity", cfg.AuthMiddleware.Handle)
	activity.Get("/", auth.RequireRole(domain.RoleAdmin, domain.RoleDoctor, domain.RoleStaff), cfg.Activity.Feed)
}
