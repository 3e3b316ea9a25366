package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/nikhilbhutani/promptpulse/internal/api/handlers"
	"github.com/nikhilbhutani/promptpulse/internal/api/middleware"
	"github.com/nikhilbhutani/promptpulse/internal/prompt"
	"github.com/nikhilbhutani/promptpulse/internal/store"
)

type Router struct {
	mux     *chi.Mux
	store   store.Store
	prompts *prompt.Service
	redis   *redis.Client
	limiter *middleware.RateLimiter
	logger  *slog.Logger
}

// NewRouter wires the HTTP surface. rdb and limiter are optional.
func NewRouter(st store.Store, svc *prompt.Service, rdb *redis.Client, limiter *middleware.RateLimiter, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		mux:     chi.NewRouter(),
		store:   st,
		prompts: svc,
		redis:   rdb,
		limiter: limiter,
		logger:  logger,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(rt.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))
	if rt.limiter != nil {
		r.Use(rt.limiter.Limit)
	}

	health := handlers.NewHealthHandler(rt.store, rt.redis)
	r.Get("/health", health.Health)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	promptH := handlers.NewPromptHandler(rt.prompts, rt.logger)
	r.Route("/api/prompts", func(r chi.Router) {
		r.Get("/", promptH.List)
		r.Post("/", promptH.Create)
	})

	return r
}

// Routes lists the public endpoints for the startup banner.
func Routes() []string {
	return []string{
		"GET  /api/prompts  list prompts",
		"POST /api/prompts  add prompt",
		"GET  /health       liveness",
	}
}
