package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	HeaderEvent     = "X-Webhook-Event"
	HeaderSignature = "X-Webhook-Signature"
	HeaderID        = "X-Webhook-ID"
)

type Dispatcher struct {
	httpClient *http.Client
	secret     string
	logger     *slog.Logger
}

type DeliveryRequest struct {
	URL     string
	Event   string
	Payload []byte
}

// NewDispatcher signs every delivery with secret. An empty secret still
// produces a signature header, keyed with the empty string.
func NewDispatcher(secret string, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		secret: secret,
		logger: logger,
	}
}

// Deliver POSTs one payload and returns an error for transport failures and
// non-2xx responses so the caller can retry.
func (d *Dispatcher) Deliver(ctx context.Context, req DeliveryRequest) error {
	deliveryID := uuid.NewString()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(req.Payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(HeaderEvent, req.Event)
	httpReq.Header.Set(HeaderSignature, Sign(req.Payload, d.secret))
	httpReq.Header.Set(HeaderID, deliveryID)

	resp, err := d.httpClient.Do(httpReq)
	if err != nil {
		d.logger.Error("webhook delivery failed", "error", err, "url", req.URL, "delivery_id", deliveryID)
		return fmt.Errorf("deliver to %s: %w", req.URL, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		d.logger.Warn("webhook received non-success response", "status", resp.StatusCode, "url", req.URL, "delivery_id", deliveryID)
		return fmt.Errorf("deliver to %s: status %d", req.URL, resp.StatusCode)
	}

	d.logger.Info("webhook delivered", "url", req.URL, "event", req.Event, "delivery_id", deliveryID)
	return nil
}

func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return fmt.Sprintf("sha256=%s", hex.EncodeToString(mac.Sum(nil)))
}
