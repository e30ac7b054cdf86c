package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quiz-hub/internal/adapter/remotedb"
	"quiz-hub/internal/adapter/snapshot"
	"quiz-hub/internal/config"
	"quiz-hub/internal/handler"
	"quiz-hub/internal/logger"
	"quiz-hub/internal/middleware"
	"quiz-hub/internal/repository"
	"quiz-hub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		// Process request
		err := c.Next()

		// Log request details
		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// Snapshot storage and the local store
	persister, err := snapshot.NewPersister(ctx, appLogger, cfg.Storage)
	if err != nil {
		appLogger.Fatal("Failed to open snapshot storage", zap.String("type", cfg.Storage.Type), zap.Error(err))
	}
	store := repository.NewLocalStore(persister, appLogger.Named("store"), repository.Options{
		Version:    cfg.Store.Version,
		BcryptCost: cfg.Store.BcryptCost,
		SeedAdmin: &repository.SeedAdmin{
			Name:     cfg.Store.SeedAdmin.Name,
			Email:    cfg.Store.SeedAdmin.Email,
			Password: cfg.Store.SeedAdmin.Password,
		},
	})
	if err := store.Initialize(ctx); err != nil {
		appLogger.Fatal("Failed to initialize store", zap.Error(err))
	}
	appLogger.Info("Store initialized", zap.String("storage", cfg.Storage.Type), zap.String("key", cfg.Storage.Key))

	// Initialize services
	authService, err := service.NewAuthService(store, store, cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	tenantService := service.NewTenantService(store, appLogger.Named("tenants"))
	userService := service.NewUserService(store, appLogger.Named("users"))
	quizService := service.NewQuizService(store, store, appLogger.Named("quizzes"))
	attemptService := service.NewAttemptService(store, store, appLogger.Named("attempts"))
	remoteClient := remotedb.NewClient(cfg.Remote, appLogger.Named("remote"))

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.Server.AllowOrigins, AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	handler.RegisterRoutes(app, handler.Handlers{
		Auth:    handler.NewAuthHandler(authService, tenantService, userService),
		Tenant:  handler.NewTenantHandler(tenantService),
		User:    handler.NewUserHandler(userService),
		Quiz:    handler.NewQuizHandler(quizService),
		Attempt: handler.NewAttemptHandler(attemptService),
		Backup:  handler.NewBackupHandler(store),
		Remote:  handler.NewRemoteHandler(remoteClient, store),
		Records: handler.NewRecordsHandler(remotedb.NewRecords(remoteClient)),
	}, authService)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := store.Close(shutdownCtx); err != nil {
		appLogger.Error("Failed to close store", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
