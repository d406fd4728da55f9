package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"

	"github.com/stratacloud/careers-backend/internal/catalog"
	"github.com/stratacloud/careers-backend/internal/config"
	"github.com/stratacloud/careers-backend/internal/database"
	"github.com/stratacloud/careers-backend/internal/handlers"
	"github.com/stratacloud/careers-backend/internal/logging"
	"github.com/stratacloud/careers-backend/internal/middleware"
	"github.com/stratacloud/careers-backend/internal/notify"
	"github.com/stratacloud/careers-backend/internal/routes"
	"github.com/stratacloud/careers-backend/internal/services"
	"github.com/stratacloud/careers-backend/internal/storage"
)

// Multipart uploads carry up to the 5MB profile limit plus form overhead.
const bodyLimit = 6 * 1024 * 1024

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.APISecret == "" {
		slog.Error("API_SECRET environment variable is required")
		os.Exit(1)
	}

	ctx := context.Background()

	// Error log sink (optional)
	var (
		logDB        *gorm.DB
		pgLogHandler *logging.PGHandler
		cleanupDone  = make(chan struct{})
	)
	if cfg.LogDatabaseURL != "" {
		db, err := database.ConnectLogDB(cfg.LogDatabaseURL)
		if err != nil {
			slog.Error("log database unavailable, continuing without it", "error", err)
		} else {
			logDB = db
			pgLogHandler = logging.NewPGHandler(logDB)
			logging.Setup(pgLogHandler)
			logging.StartCleanup(logDB, cfg.LogRetentionDays, cleanupDone)
		}
	}

	// Job catalog
	jobs, err := catalog.LoadFromFile(cfg.JobsCatalogPath)
	if err != nil {
		slog.Error("failed to load job catalog", "path", cfg.JobsCatalogPath, "error", err)
		os.Exit(1)
	}
	slog.Info("job catalog loaded", "jobs", jobs.Len())

	// Stores
	store, err := database.Open(ctx, cfg)
	if err != nil {
		slog.Error("document store setup failed", "error", err)
		os.Exit(1)
	}
	objects, err := storage.Open(ctx, cfg)
	if err != nil {
		slog.Error("object store setup failed", "error", err)
		os.Exit(1)
	}
	publisher := notify.Open(cfg)

	// Services
	userService := services.NewUserService(store, publisher)
	resumeService := services.NewResumeService(store, objects)
	uploadService := services.NewUploadService(store, objects)
	applicationService := services.NewApplicationService(store, jobs)
	jobService := services.NewJobService(store, jobs)

	// Handlers
	healthHandler := handlers.NewHealthHandler(store, jobs)
	jobHandler := handlers.NewJobHandler(jobService)
	authHandler := handlers.NewAuthHandler(cfg, store)
	userHandler := handlers.NewUserHandler(userService, applicationService)
	resumeHandler := handlers.NewResumeHandler(resumeService, uploadService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, uploadService)
	adminHandler := handlers.NewAdminHandler(jobService, applicationService, userService)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    bodyLimit,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.SecurityHeaders())

	// Routes
	routes.Setup(app, cfg, store, healthHandler, jobHandler, authHandler, userHandler, resumeHandler, applicationHandler, adminHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := publisher.Close(); err != nil {
		slog.Error("broker close error", "error", err)
	}

	close(cleanupDone)
	if pgLogHandler != nil {
		pgLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	if logDB != nil {
		if err := database.CloseLogDB(logDB); err != nil {
			slog.Error("log database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "route", c.Path(), "error", err.Error())
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
