package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/http/handlers"
	"github.com/spec-kit/job-board/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Jobs           *handlers.JobsHandler
	Applications   *handlers.ApplicationsHandler
	Admins         *handlers.AdminsHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	// Job routes are open; an admin token, when sent, stamps ownership.
	jobs := app.Group("/jobs", cfg.AuthMiddleware.Optional)
	jobs.Get("/", cfg.Jobs.List)
	// Static segments go before /:id so they are not captured as ids.
	jobs.Get("/active", cfg.Jobs.Active)
	jobs.Get("/user/applications/:userId", cfg.Applications.ListForUser)
	jobs.Get("/applications/:applicationId", cfg.Applications.Get)
	jobs.Put("/applications/:applicationId", cfg.Applications.UpdateStatus)
	jobs.Delete("/applications/:applicationId", cfg.Applications.Delete)
	jobs.Post("/", cfg.Jobs.Create)
	jobs.Get("/:id", cfg.Jobs.Get)
	jobs.Put("/:id", cfg.Jobs.Update)
	jobs.Delete("/:id", cfg.Jobs.Delete)
	jobs.Post("/:id/apply", cfg.Applications.Apply)
	jobs.Get("/:id/applications", cfg.Applications.ListForJob)
	jobs.Get("/:jobId/check-application/:userId", cfg.Applications.CheckApplied)

	admin := app.Group("/admin")
	admin.Post("/register", cfg.Admins.Register)
	admin.Post("/login", cfg.Admins.Login)

	// Per-route guards: a group middleware would also cover register/login.
	adminOnly := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireAdmin()}
	admin.Get("/profile", append(adminOnly, cfg.Admins.Profile)...)
	admin.Put("/profile", append(adminOnly, cfg.Admins.UpdateProfile)...)
	admin.Delete("/profile", append(adminOnly, cfg.Admins.Deactivate)...)
	admin.Get("/stats", append(adminOnly, cfg.Admins.Stats)...)
	admin.Get("/jobs", append(adminOnly, cfg.Jobs.ListMine)...)

	users := app.Group("/users")
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)

	userOnly := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireUser()}
	users.Get("/me", append(userOnly, cfg.Users.Me)...)
	users.Put("/me/password", append(userOnly, cfg.Users.ChangePassword)...)
}
