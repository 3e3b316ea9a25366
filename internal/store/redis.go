package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/nikhilbhutani/promptpulse/internal/models"
)

// RedisStore keeps records as JSON entries of a single Redis list, so each
// append is one atomic RPUSH.
type RedisStore struct {
	client *redis.Client
	key    string
	logger *slog.Logger
}

func NewRedisStore(client *redis.Client, key string, logger *slog.Logger) *RedisStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisStore{client: client, key: key, logger: logger}
}

func (s *RedisStore) ReadAll(ctx context.Context) ([]models.Prompt, error) {
	vals, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", s.key, err)
	}

	prompts := make([]models.Prompt, 0, len(vals))
	for i, v := range vals {
		var p models.Prompt
		if err := json.Unmarshal([]byte(v), &p); err != nil {
			s.logger.Warn("skipping undecodable prompt entry", "key", s.key, "index", i, "error", err)
			continue
		}
		prompts = append(prompts, p)
	}
	return prompts, nil
}

func (s *RedisStore) Append(ctx context.Context, p models.Prompt) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prompt: %w", err)
	}
	if err := s.client.RPush(ctx, s.key, data).Err(); err != nil {
		return fmt.Errorf("rpush %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
