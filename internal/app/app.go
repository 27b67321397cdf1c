package app

import (
	"context"
	"errors"
	"time"

	"toyblox/internal/config"
	"toyblox/internal/handlers"
	"toyblox/internal/middleware"
	"toyblox/internal/notifications"
	"toyblox/internal/repositories"
	"toyblox/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const serviceName = "toyblox"

// Options are the collaborators opened by main.
type Options struct {
	Config config.Config
	DB     *gorm.DB
	Log    zerolog.Logger
	// Cache is optional.
	Cache  services.StatsCache
	Mailer notifications.Mailer
	// DisableRequestLog turns off the per-request access log.
	DisableRequestLog bool
}

// App is the wired HTTP server together with the pieces the background
// workers need.
type App struct {
	HTTP       *fiber.App
	Dispatcher *notifications.Dispatcher
	Outbox     *repositories.GORMOutboxRepository
}

// New wires repositories, services and handlers around one database pool.
func New(opts Options) *App {
	cfg := opts.Config
	log := opts.Log

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(opts.DB)
	itemRepo := repositories.NewGORMItemRepository(opts.DB)
	orderRepo := repositories.NewGORMOrderRepository(opts.DB)
	analyticsRepo := repositories.NewGORMAnalyticsRepository(opts.DB)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	userService := services.NewUserService(userRepo, authService, log)
	itemService := services.NewItemService(itemRepo)
	analyticsService := services.NewAnalyticsService(analyticsRepo, opts.Cache, cfg.StatsCacheTTL, log)
	orderService := services.NewOrderService(orderRepo, userRepo, analyticsService, log)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, userService, log)
	userHandler := handlers.NewUserHandler(userService, log)
	itemHandler := handlers.NewItemHandler(itemService, log)
	orderHandler := handlers.NewOrderHandler(orderService, analyticsService, log)
	adminHandler := handlers.NewAdminHandler(analyticsService, log)

	app := fiber.New(fiber.Config{
		AppName:      serviceName,
		ErrorHandler: errorHandler(log),
	})

	// --- Middleware ---
	app.Use(recover.New())
	if !opts.DisableRequestLog {
		app.Use(logger.New())
	}
	app.Use(cors.New())
	app.Use(middleware.Metrics(serviceName))

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	auth := middleware.AuthRequired(authService, log)

	authHandler.RegisterRoutes(apiV1)
	userHandler.RegisterRoutes(apiV1, auth)
	itemHandler.RegisterRoutes(apiV1, auth)
	orderHandler.RegisterRoutes(apiV1, auth)
	adminHandler.RegisterRoutes(apiV1, auth)

	// --- Health Check Endpoint ---
	app.Get("/health", healthHandler(opts.DB))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	mailer := opts.Mailer
	if mailer == nil {
		mailer = notifications.LogMailer{Log: log}
	}

	return &App{
		HTTP:       app,
		Dispatcher: notifications.NewDispatcher(orderRepo, userRepo, mailer, log, cfg.PublicBaseURL),
		Outbox:     repositories.NewGORMOutboxRepository(opts.DB),
	}
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, dbStatus := "healthy", "up"
		code := fiber.StatusOK

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			status, dbStatus = "unhealthy", "down"
			code = fiber.StatusServiceUnavailable
		}

		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": dbStatus,
		})
	}
}

func errorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "internal server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		}
		return c.Status(code).JSON(fiber.Map{
			"message": message,
			"error":   message,
		})
	}
}
