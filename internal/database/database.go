// Package database opens the gorm connections used by the services
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Aidin1998/apiexercises/internal/config"
	"github.com/Aidin1998/apiexercises/pkg/metrics"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open creates a database connection for the configured driver with pooling
func Open(cfg config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(zap.NewStdLog(logger.Named("gorm")), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	maxOpen, maxIdle := cfg.MaxOpenConns, cfg.MaxIdleConns
	if maxOpen == 0 {
		maxOpen = 25
	}
	if maxIdle == 0 {
		maxIdle = 5
	}
	// Every connection to an in-memory sqlite database sees its own database,
	// so the single connection must never be recycled.
	inMemory := cfg.Driver == "sqlite" && strings.Contains(cfg.DSN, ":memory:")
	if inMemory {
		maxOpen, maxIdle = 1, 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	if !inMemory {
		if cfg.ConnMaxLifetime > 0 {
			sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		}
		sqlDB.SetConnMaxIdleTime(15 * time.Minute)
	}

	return db, nil
}

// OpenInMemory opens a private in-memory sqlite database with foreign keys
// enforced, migrating the given models.
func OpenInMemory(models ...interface{}) (*gorm.DB, error) {
	db, err := Open(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:?_foreign_keys=on"}, zap.NewNop())
	if err != nil {
		return nil, err
	}
	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return db, nil
}

// WatchPool publishes pool statistics every interval until ctx is done
func WatchPool(ctx context.Context, db *gorm.DB, name string, interval time.Duration) {
	if interval <= 0 {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.RecordDBStats(name, sqlDB.Stats())
		}
	}
}

// Close releases the underlying pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
