package app

import (
	"context"
	"database/sql"

	"github.com/graciegould/snaglet/internal/config"
	"github.com/graciegould/snaglet/internal/db"
	"github.com/graciegould/snaglet/internal/logger"
	"github.com/graciegould/snaglet/internal/redis"

	_ "github.com/lib/pq"
)

type Infra struct {
	DB    *db.DB
	Redis *redis.Client // nil when no REDIS_ADDR is configured
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := db.RunBootstrapMigration(ctx, sqlDB); err != nil {
		return nil, err
	}

	logger.Info("database ready", nil)

	infra := &Infra{
		DB: &db.DB{DB: sqlDB},
	}

	if cfg.RedisAddr == "" {
		logger.Info("public content cache disabled (no REDIS_ADDR)", nil)
		return infra, nil
	}

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	logger.Info("redis ready", nil)

	infra.Redis = redisClient
	return infra, nil
}
