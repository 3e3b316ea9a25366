package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/nikhilbhutani/promptpulse/internal/queue"
	"github.com/nikhilbhutani/promptpulse/internal/webhook"
)

// Deliverer sends one webhook request.
type Deliverer interface {
	Deliver(ctx context.Context, req webhook.DeliveryRequest) error
}

// WebhookWorker fans a prompt:created task out to every subscriber URL.
type WebhookWorker struct {
	deliverer Deliverer
	urls      []string
}

func NewWebhookWorker(d Deliverer, urls []string) *WebhookWorker {
	return &WebhookWorker{deliverer: d, urls: urls}
}

func (w *WebhookWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.PromptCreatedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		// a malformed payload will never succeed
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	body, err := json.Marshal(payload.Prompt)
	if err != nil {
		return fmt.Errorf("marshal prompt: %w", err)
	}

	slog.Info("delivering prompt created event", "id", payload.Prompt.ID, "subscribers", len(w.urls))

	var errs []error
	for _, url := range w.urls {
		err := w.deliverer.Deliver(ctx, webhook.DeliveryRequest{
			URL:     url,
			Event:   queue.TypePromptCreated,
			Payload: body,
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
