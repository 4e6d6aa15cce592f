// Package app wires the shared runtime of a service binary: configuration,
// logging, telemetry, the HTTP server and the optional backing services.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Aidin1998/apiexercises/internal/config"
	"github.com/Aidin1998/apiexercises/internal/database"
	"github.com/Aidin1998/apiexercises/internal/middleware/ratelimit"
	"github.com/Aidin1998/apiexercises/internal/server"
	"github.com/Aidin1998/apiexercises/internal/storage"
	"github.com/Aidin1998/apiexercises/internal/telemetry"
	"github.com/Aidin1998/apiexercises/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is a running service and the resources it owns
type App struct {
	Name   string
	Config *config.Config
	Logger *zap.Logger
	Server *server.Server

	closers []func(context.Context) error
}

// New loads the configuration of the named service and prepares its server
func New(ctx context.Context, name string) (*App, error) {
	cfg, err := config.Load(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return NewWithConfig(ctx, cfg)
}

// NewWithConfig is New with an already loaded configuration
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	zapLogger, err := logger.NewLogger(cfg.Log.Level, cfg.App)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("failed to set up telemetry: %w", err)
	}

	a := &App{
		Name:   cfg.App,
		Config: cfg,
		Logger: zapLogger,
		Server: server.New(zapLogger, cfg.Server, cfg.App),
	}
	a.onClose(shutdown)
	return a, nil
}

func (a *App) onClose(fn func(context.Context) error) {
	a.closers = append(a.closers, fn)
}

// Database opens the configured database, migrates models when
// auto_migrate is set and registers a health check. Pool statistics are
// published until ctx is done.
func (a *App) Database(ctx context.Context, models ...interface{}) (*gorm.DB, error) {
	db, err := database.Open(a.Config.Database, a.Logger)
	if err != nil {
		return nil, err
	}
	a.onClose(func(context.Context) error { return database.Close(db) })

	if a.Config.Database.AutoMigrate && len(models) > 0 {
		if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	a.Server.AddHealthCheck("database", sqlDB.PingContext)

	go database.WatchPool(ctx, db, a.Name, a.Config.Database.StatsInterval)

	a.Logger.Info("Database ready", zap.String("driver", a.Config.Database.Driver))
	return db, nil
}

// LoginLimiter returns the redis backed limiter for login attempts, or nil
// when no redis address is configured.
func (a *App) LoginLimiter() ratelimit.Limiter {
	cfg := a.Config.Redis
	if cfg.Address == "" {
		a.Logger.Warn("Redis address not set, login rate limiting disabled")
		return nil
	}

	client := ratelimit.NewClient(cfg)
	a.onClose(func(context.Context) error { return client.Close() })
	a.Server.AddHealthCheck("redis", func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	return ratelimit.NewSlidingWindow(client, a.Name+":login", cfg.LoginLimit, cfg.LoginWindow)
}

// Storage builds the configured object store and registers a health check
func (a *App) Storage(ctx context.Context) (storage.ObjectStore, error) {
	objects, err := storage.New(ctx, a.Config.Storage, a.Logger)
	if err != nil {
		return nil, err
	}
	a.Server.AddHealthCheck("storage", objects.Check)
	return objects, nil
}

// Run serves until ctx is done, then releases every resource
func (a *App) Run(ctx context.Context) error {
	runErr := a.Server.Run(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return errors.Join(runErr, a.Close(closeCtx))
}

// Close releases resources in reverse order of acquisition
func (a *App) Close(ctx context.Context) error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, a.closers[i](ctx))
	}
	a.closers = nil
	_ = a.Logger.Sync()
	return err
}
