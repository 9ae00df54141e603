// Package app boots the service's shared resources (config, logging,
// database, cache) and runs the commands the CLI exposes.
//
//	a, err := app.Boot(ctx, app.BootOptions{Cache: true, LogSinks: true})
//	if err != nil { ... }
//	defer a.Close()
//	return a.Serve(ctx)
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/shopservice/config"
	"github.com/shashiranjanraj/shopservice/pkg/cache"
	"github.com/shashiranjanraj/shopservice/pkg/database"
	"github.com/shashiranjanraj/shopservice/pkg/logger"
	"github.com/shashiranjanraj/shopservice/pkg/migration"
	"github.com/shashiranjanraj/shopservice/pkg/orm"
)

const (
	cachePrefix    = "shop:"
	slowQuery      = 200 * time.Millisecond
	mongoSinkLevel = slog.LevelInfo
)

// BootOptions selects the optional resources a command needs.
type BootOptions struct {
	// Cache connects Redis and enables read-through caching.
	Cache bool
	// LogSinks attaches the MongoDB log sink when LOG_MONGO_URI is set.
	LogSinks bool
}

// Application holds the resources shared by every command.
type Application struct {
	DB    *gorm.DB
	ORM   *orm.DB
	Cache *cache.Store

	closers []func() error
}

// Boot loads configuration and opens the database. Redis and MongoDB are
// optional: when they cannot be reached the service runs without them and
// a warning is logged.
func Boot(ctx context.Context, opts BootOptions) (*Application, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("app: config: %w", err)
	}
	a := &Application{}

	var extra []slog.Handler
	var sinkErr error
	if opts.LogSinks && config.LogMongoURI() != "" {
		h, err := logger.NewMongoHandler(ctx, config.LogMongoURI(), config.LogMongoDatabase(), config.LogMongoCollection(), mongoSinkLevel)
		if err != nil {
			sinkErr = err
		} else {
			extra = append(extra, h)
			a.closers = append(a.closers, func() error { h.Close(); return nil })
		}
	}
	logger.Setup(logger.Options{Production: config.IsProduction(), Extra: extra})
	if sinkErr != nil {
		logger.Warn("mongo log sink disabled", "error", sinkErr)
	}

	gdb, err := database.Open(ctx, database.Options{
		Driver:    config.DatabaseDriver(),
		DSN:       config.DatabaseDSN(),
		SlowQuery: slowQuery,
	})
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.DB = gdb
	a.closers = append(a.closers, func() error { return database.Close(gdb) })
	logger.Info("database connected", "driver", config.DatabaseDriver())

	if config.AutoMigrate() {
		applied, err := migration.New(gdb).Run(ctx)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		logger.Info("auto-migrate finished", "applied", len(applied))
	}

	var ormOpts []orm.Option
	if opts.Cache && config.CacheTTL() > 0 {
		store, err := cache.Connect(ctx, config.RedisAddr(), config.RedisPassword(), cachePrefix)
		if err != nil {
			logger.Warn("cache disabled", "addr", config.RedisAddr(), "error", err)
		} else {
			a.Cache = store
			a.closers = append(a.closers, store.Close)
			ormOpts = append(ormOpts, orm.WithCache(store, config.CacheTTL()))
			logger.Info("cache connected", "addr", config.RedisAddr(), "ttl", config.CacheTTL().String())
		}
	}
	a.ORM = orm.New(gdb, ormOpts...)

	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *Application) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
