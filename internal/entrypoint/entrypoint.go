package entrypoint

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

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/cache"
	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/database"
	auditrepo "github.com/mrlokans/bookstore/internal/database/audit"
	"github.com/mrlokans/bookstore/internal/database/authors"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/database/seed"
	"github.com/mrlokans/bookstore/internal/database/stores"
	http_controllers "github.com/mrlokans/bookstore/internal/http"
	"github.com/mrlokans/bookstore/internal/logging"
	"github.com/mrlokans/bookstore/internal/scheduler"
	"github.com/mrlokans/bookstore/internal/services"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the wired application.
type App struct {
	Database *database.Database
	Cache    *cache.Cache
	Sweeper  *scheduler.CacheSweeper
	Router   *gin.Engine
}

// NewApp opens the database and wires repositories, services and the router.
// The cache sweeper is created but not started.
func NewApp(cfg *config.Config, version string, logger *slog.Logger) (*App, error) {
	if cfg.Cache.SweepSchedule != "" {
		if err := scheduler.ValidateSchedule(cfg.Cache.SweepSchedule); err != nil {
			return nil, fmt.Errorf("invalid cache sweep schedule '%s': %w", cfg.Cache.SweepSchedule, err)
		}
	}

	db, err := database.NewDatabase(cfg.Database.Path, database.WithLogLevel(database.ParseLogLevel(cfg.Database.LogLevel)))
	if err != nil {
		return nil, err
	}

	recorder := audit.NewRecorder()
	uow := database.NewUnitOfWork(db.DB)
	catalogCache := cache.New(cfg.Cache.TTL)

	authorRepo := authors.NewRepository(db.DB, recorder)
	bookRepo := books.NewRepository(db.DB, recorder)
	storeRepo := stores.NewRepository(db.DB, recorder)
	seedRepo := seed.NewRepository(db.DB, recorder)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Authors:  services.NewAuthorService(uow, authorRepo, catalogCache),
		Books:    services.NewBookService(uow, bookRepo, authorRepo, storeRepo, catalogCache),
		Stores:   services.NewStoreService(uow, storeRepo, catalogCache),
		Seed:     services.NewSeedService(seedRepo, cfg.Seed.FilePath, catalogCache),
		Audit:    audit.NewService(auditrepo.NewRepository(db.DB)),
		Database: db,
		Logger:   logger,
		Version:  version,
	})

	return &App{
		Database: db,
		Cache:    catalogCache,
		Sweeper:  scheduler.NewCacheSweeper(catalogCache, cfg.Cache.SweepSchedule, logger),
		Router:   router,
	}, nil
}

// Close stops the sweeper and closes the database.
func (a *App) Close() {
	a.Sweeper.Stop()
	if err := a.Database.Close(); err != nil {
		slog.Error("Failed to close database", "error", err)
	}
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server", "timeout", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	slog.Info("Server exiting")
}

func Run(cfg *config.Config, version string) {
	logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.SetDefault(logger)
	gin.SetMode(cfg.HTTP.GinMode)

	slog.Info("Starting bookstore", "version", version)

	app, err := NewApp(cfg, version, logger)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := app.Sweeper.Start(context.Background()); err != nil {
		slog.Error("Failed to start cache sweeper", "error", err)
		app.Close()
		os.Exit(1)
	}

	Serve(app.Router, cfg, func(ctx context.Context) {
		app.Close()
	})
}
