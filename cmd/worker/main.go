package main

import (
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"github.com/nikhilbhutani/promptpulse/internal/config"
	"github.com/nikhilbhutani/promptpulse/internal/logging"
	"github.com/nikhilbhutani/promptpulse/internal/queue"
	"github.com/nikhilbhutani/promptpulse/internal/queue/workers"
	"github.com/nikhilbhutani/promptpulse/internal/webhook"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := logging.Init(cfg.Env, cfg.Log.Level)

	if len(cfg.Webhook.URLs) == 0 {
		logger.Warn("WEBHOOK_URLS is empty, prompt:created tasks will be acknowledged without delivery")
	}

	srv := asynq.NewServer(
		queue.RedisOpt(cfg.Redis),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: newAsynqLogger(logger),
		},
	)

	dispatcher := webhook.NewDispatcher(cfg.Webhook.Secret, logger)
	webhookWorker := workers.NewWebhookWorker(dispatcher, cfg.Webhook.URLs)

	logger.Info("starting worker", "concurrency", 10, "webhooks", len(cfg.Webhook.URLs))
	if err := srv.Run(queue.NewMux(asynq.HandlerFunc(webhookWorker.ProcessTask))); err != nil {
		logger.Error("worker error", "error", err)
		os.Exit(1)
	}
}
