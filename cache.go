package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var rdb *redis.Client

const identityCacheTTL = 10 * time.Minute

// initRedis connects the optional identity cache. An unset REDIS_ADDR or a
// failed ping leaves rdb nil and every lookup falls through to Postgres.
func initRedis(cfg *Config) {
	if cfg.RedisAddr == "" {
		log.Warn().Msg("REDIS_ADDR not set, identity caching disabled")
		return
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Error().Err(err).Msg("redis unreachable, identity caching disabled")
		return
	}
	rdb = client
	log.Info().Str("addr", cfg.RedisAddr).Msg("redis connected")
}

func identityCacheKey(userID uint) string {
	return fmt.Sprintf("user:%d:identity", userID)
}

// cachedIdentityExists reports whether the user id was recently confirmed to
// exist. Only presence is cached, never profile data, so stale reads are
// impossible.
func cachedIdentityExists(ctx context.Context, userID uint) bool {
	if rdb == nil {
		return false
	}
	_, err := rdb.Get(ctx, identityCacheKey(userID)).Result()
	return err == nil
}

func cacheIdentity(ctx context.Context, userID uint) {
	if rdb == nil {
		return
	}
	if err := rdb.Set(ctx, identityCacheKey(userID), "1", identityCacheTTL).Err(); err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("failed to cache identity")
	}
}

func invalidateIdentity(ctx context.Context, userID uint) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, identityCacheKey(userID)).Err(); err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("failed to invalidate identity cache")
	}
}
