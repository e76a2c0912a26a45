package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"appointment-engine/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const redisPingTimeout = 2 * time.Second

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
	),
)

// NewRedisClient returns nil when no address is configured or the server does
// not answer a ping; the engine then runs without a shared selection cache.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *redis.Client {
	if !cfg.Redis.Enabled() {
		logger.Info("selection cache disabled", slog.String("reason", "REDIS_ADDR not set"))
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("selection cache disabled",
			slog.String("reason", "redis unreachable"),
			slog.String("addr", cfg.Redis.Addr),
			slog.String("error", err.Error()))
		_ = client.Close()
		return nil
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client
}
