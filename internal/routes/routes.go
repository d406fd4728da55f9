package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stratacloud/careers-backend/internal/config"
	"github.com/stratacloud/careers-backend/internal/database"
	"github.com/stratacloud/careers-backend/internal/handlers"
	"github.com/stratacloud/careers-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	store database.Store,
	healthHandler *handlers.HealthHandler,
	jobHandler *handlers.JobHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	resumeHandler *handlers.ResumeHandler,
	applicationHandler *handlers.ApplicationHandler,
	adminHandler *handlers.AdminHandler,
) {
	// Route boundary: method and origin policy first, then CORS.
	app.Use(middleware.RoutePolicy(cfg))
	app.Use(middleware.CORS(cfg))

	api := app.Group("/api")

	// Per-IP rate limit, process local
	api.Use(middleware.RateLimit(cfg))

	// Public
	api.Get("/health", healthHandler.Check)
	api.Get("/jobs", jobHandler.List)
	api.Get("/jobs/:slug", jobHandler.Get)

	// Passwordless auth
	api.Get("/auth/config", authHandler.Config)
	api.All("/auth/fido2/*", authHandler.FIDO2)
	if cfg.SessionAuthEnabled() {
		api.Get("/auth/session", middleware.SessionOptional(cfg), authHandler.Session)
	} else {
		api.Get("/auth/session", authHandler.Session)
	}

	// Everything below requires the shared secret
	secret := middleware.APISecret(cfg)

	users := api.Group("/users", secret)
	users.Post("/", userHandler.Create)
	users.Get("/check", userHandler.Check)
	users.Get("/:userId", userHandler.Get)
	users.Get("/:userId/applications", userHandler.Applications)

	users.Get("/:userId/resumes", resumeHandler.List)
	users.Post("/:userId/resumes", resumeHandler.Upload)
	users.Post("/:userId/resumes/confirm", resumeHandler.Confirm)
	users.Post("/:userId/resumes/presigned-url", resumeHandler.Presign)
	users.Get("/:userId/resumes/:resumeId/download", resumeHandler.Download)
	users.Get("/:userId/resumes/:resumeId/file", resumeHandler.File)
	users.Delete("/:userId/resumes/:resumeId", resumeHandler.Delete)
	users.Patch("/:userId/resumes/:resumeId", resumeHandler.Patch)

	api.Post("/applications", secret, applicationHandler.Submit)
	api.Post("/upload/presigned-url", secret, applicationHandler.Presign)

	// Admin: shared secret, plus an admin session when session auth is configured
	adminGuards := []fiber.Handler{secret}
	if cfg.SessionAuthEnabled() {
		adminGuards = append(adminGuards, middleware.SessionRequired(cfg), middleware.AdminRequired(store, cfg))
	}
	admin := api.Group("/admin", adminGuards...)
	admin.Get("/jobs", adminHandler.Jobs)
	admin.Get("/applicants", adminHandler.Applicants)
	admin.Patch("/applicants/:id/status", adminHandler.UpdateStatus)
	admin.Get("/users", adminHandler.Users)
}
