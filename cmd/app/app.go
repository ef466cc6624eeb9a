package app

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sphenegem/gem-inventory-api/internal/api"
	"github.com/sphenegem/gem-inventory-api/internal/cache"
	"github.com/sphenegem/gem-inventory-api/internal/config"
	"github.com/sphenegem/gem-inventory-api/internal/db"
	"github.com/sphenegem/gem-inventory-api/internal/logger"
	"github.com/sphenegem/gem-inventory-api/internal/repository/dao"
	"github.com/sphenegem/gem-inventory-api/internal/storage"
)

const defaultConfigPath = "./cmd/app/config.yml"

// ConfigPath is the config file location, CONFIG_PATH when set.
func ConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}

	return defaultConfigPath
}

// OpenDatabase connects with DATABASE_URL when set, the postgres section
// otherwise, and migrates the schema.
func OpenDatabase(conf *config.AppConfig) (*gorm.DB, error) {
	var (
		postgresDB *gorm.DB
		err        error
	)

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return nil, err
	}

	if err := dao.InitTables(postgresDB); err != nil {
		return nil, fmt.Errorf("dao.InitTables -> %w", err)
	}

	return postgresDB, nil
}

func Start() error {
	path := ConfigPath()

	conf, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	if err = logger.SetLevel(conf.API.LogLevel); err != nil {
		return fmt.Errorf("failed to set log level -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	watchLogLevel(path)

	postgresDB, err := OpenDatabase(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	store, err := storage.New(context.Background(), conf.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage -> %w", err)
	}

	var rdb *redis.Client
	if conf.Redis.Enabled() {
		rdb, err = cache.ConnectRedis(conf.Redis)
		if err != nil {
			// statistics still work without the cache
			zap.L().Warn("redis unavailable, dashboard cache disabled", zap.String("addr", conf.Redis.Addr), zap.Error(err))
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	s := api.NewServer(conf, postgresDB, store, rdb)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr),
		zap.String("environment", conf.API.Environment),
		zap.String("storage", conf.Storage.Driver),
		zap.Bool("redis", rdb != nil),
	)
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

// watchLogLevel applies api.log_level edits without a restart. Other keys
// still need one.
func watchLogLevel(path string) {
	err := config.Watch(path, func(conf *config.AppConfig) {
		if err := logger.SetLevel(conf.API.LogLevel); err != nil {
			zap.L().Warn("ignoring log level from reloaded config", zap.Error(err))
			return
		}
		zap.L().Info("log level reloaded", zap.Stringer("level", logger.Level()))
	}, func(err error) {
		zap.L().Warn("config reload failed", zap.Error(err))
	})
	if err != nil {
		zap.L().Warn("config watcher not started", zap.Error(err))
	}
}
