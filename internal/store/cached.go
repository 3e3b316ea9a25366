package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nikhilbhutani/promptpulse/internal/cache"
	"github.com/nikhilbhutani/promptpulse/internal/models"
)

const (
	listCacheKey       = "prompts:list"
	generationCacheKey = "prompts:gen"
)

// Cached serves ReadAll from Redis. The cached list is keyed by a generation
// counter that every append increments, so a list loaded before an append can
// never be served after it. Cache errors are logged and fall through to the
// wrapped store.
type Cached struct {
	next   Store
	cache  *cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

func NewCached(next Store, c *cache.Cache, ttl time.Duration, logger *slog.Logger) *Cached {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cached{next: next, cache: c, ttl: ttl, logger: logger}
}

func (s *Cached) ReadAll(ctx context.Context) ([]models.Prompt, error) {
	var gen int64
	err := s.cache.Get(ctx, generationCacheKey, &gen)
	if err != nil && !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("prompt list cache read failed", "error", err)
		return s.next.ReadAll(ctx)
	}
	key := fmt.Sprintf("%s:%d", listCacheKey, gen)

	var prompts []models.Prompt
	err = s.cache.Get(ctx, key, &prompts)
	if err == nil && prompts != nil {
		return prompts, nil
	}
	if err != nil && !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("prompt list cache read failed", "error", err)
	}

	prompts, err = s.next.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, prompts, s.ttl); err != nil {
		s.logger.Warn("prompt list cache write failed", "error", err)
	}
	return prompts, nil
}

func (s *Cached) Append(ctx context.Context, p models.Prompt) error {
	if err := s.next.Append(ctx, p); err != nil {
		return err
	}
	if _, err := s.cache.Increment(ctx, generationCacheKey); err != nil {
		s.logger.Warn("prompt list cache invalidation failed", "id", p.ID, "error", err)
	}
	return nil
}

func (s *Cached) Ping(ctx context.Context) error {
	if pinger, ok := s.next.(Pinger); ok {
		return pinger.Ping(ctx)
	}
	return nil
}
