package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rurasogoodo/notes_app/internal/adapters/notification"
	portsrepo "github.com/rurasogoodo/notes_app/internal/core/ports/repositories"
	portssvc "github.com/rurasogoodo/notes_app/internal/core/ports/services"
	"github.com/rurasogoodo/notes_app/internal/core/services"
	"github.com/rurasogoodo/notes_app/internal/handlers"
	"github.com/rurasogoodo/notes_app/internal/middleware"
	"github.com/rurasogoodo/notes_app/internal/platform/config"
	"github.com/rurasogoodo/notes_app/internal/platform/observability"
	"github.com/rurasogoodo/notes_app/internal/repositories/database/pgsql"
	"github.com/rurasogoodo/notes_app/internal/repositories/memory"
	"github.com/rurasogoodo/notes_app/pkg/database"
)

// @title Notes Backend API
// @version 1.0
// @description Accounts, sessions, account recovery and notes.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run owns every deferred cleanup, so main only exits once they have finished.
func run(cfg *config.Config, logger *slog.Logger) error {
	environment := "development"
	if cfg.IsProduction {
		environment = "production"
	}
	if err := observability.InitSentry(cfg.SentryDSN, environment); err != nil {
		return fmt.Errorf("failed to initialize Sentry: %w", err)
	}
	defer observability.FlushSentry()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg, logger)
}

// serve wires storage, services and the router, then blocks until ctx ends or the listener fails.
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	repos, cleanup, err := setupRepositories(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer cleanup()

	notifier, closeNotifier, err := setupNotifier(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}
	defer closeNotifier()

	serviceContainer, err := services.NewServiceContainer(cfg, repos, notifier)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}

	sweepCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	sweeper := &services.TokenSweeper{
		Stores:   repos.TokenRepos(),
		Interval: cfg.TokenSweepInterval,
		Grace:    cfg.TokenSweepGrace,
		Logger:   logger,
	}
	go sweeper.Run(sweepCtx)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, metrics, CORS)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		observability.RecoverMiddleware(),
		middleware.MetricsMiddleware(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
		}),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	}
}

// setupRepositories builds the configured storage backend and returns a cleanup func.
func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewRepositoryProvider(), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		dbPool.Close()
		return portsrepo.RepositoryProvider{}, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool), dbPool.Close, nil
}

// setupNotifier pushes to Redis when REDIS_URL is set and logs otherwise.
func setupNotifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portssvc.Notifier, func(), error) {
	renderer, err := notification.NewRenderer()
	if err != nil {
		return nil, nil, err
	}
	if cfg.RedisURL == "" {
		logger.Warn("REDIS_URL not set; notifications will only be logged")
		return notification.NewLogNotifier(renderer), func() {}, nil
	}

	queue, err := notification.NewRedisQueue(ctx, cfg.RedisURL, cfg.NotificationQueue, renderer)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Notification queue connected", slog.String("queue", cfg.NotificationQueue))
	return queue, func() {
		if err := queue.Close(); err != nil {
			logger.Error("Error closing notification queue", slog.String("error", err.Error()))
		}
	}, nil
}
