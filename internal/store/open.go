package store

import (
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/nikhilbhutani/promptpulse/internal/cache"
	"github.com/nikhilbhutani/promptpulse/internal/config"
)

// Open builds the configured backend, wrapped in the Redis read cache when
// cfg.CacheTTL is positive. rdb and db are only required by the backends
// that use them.
func Open(cfg config.StoreConfig, rdb *redis.Client, db *pgxpool.Pool, logger *slog.Logger) (Store, error) {
	var st Store
	switch cfg.Backend {
	case config.BackendFile, "":
		st = NewFileStore(cfg.DataDir, logger)
	case config.BackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis store requires a redis client")
		}
		st = NewRedisStore(rdb, cfg.RedisKey, logger)
	case config.BackendPostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres store requires a database pool")
		}
		st = NewPostgresStore(db)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	if cfg.CacheTTL > 0 {
		if rdb == nil {
			return nil, fmt.Errorf("store cache requires a redis client")
		}
		st = NewCached(st, cache.NewCache(rdb), cfg.CacheTTL, logger)
	}
	return st, nil
}
