// Package cache shares resource selections between engine instances.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"appointment-engine/internal/infra"
	"appointment-engine/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "appointment:selection:"

// SelectionCache stores the resource IDs picked for a selection key in Redis.
// Entries expire after ttl; a zero ttl keeps them until evicted.
type SelectionCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewSelectionCache(client *redis.Client, ttl time.Duration, l *slog.Logger) *SelectionCache {
	if l == nil {
		l = logger.Discard()
	}
	return &SelectionCache{redis: client, ttl: ttl, logger: l}
}

func (c *SelectionCache) key(selectionKey string) string {
	return keyPrefix + selectionKey
}

func (c *SelectionCache) Get(ctx context.Context, key string) ([]uuid.UUID, bool, error) {
	data, err := c.redis.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, infra.WrapRepoErr(c.logger, infra.KindCacheFailure, "failed to read selection", err)
	}

	var ids []uuid.UUID
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, false, infra.WrapRepoErr(c.logger, infra.KindCorruptRecord, "failed to decode selection", err)
	}
	return ids, true, nil
}

func (c *SelectionCache) Set(ctx context.Context, key string, ids []uuid.UUID) error {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return infra.WrapRepoErr(c.logger, infra.KindCorruptRecord, "failed to encode selection", err)
	}

	if err := c.redis.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		return infra.WrapRepoErr(c.logger, infra.KindCacheFailure, "failed to write selection", err)
	}
	return nil
}
