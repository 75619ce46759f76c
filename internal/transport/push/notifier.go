package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/notedex/internal/metrics"
)

// Notifier delivers push notifications to an HTTP webhook. The gateway behind
// the webhook owns device routing; this side only posts one JSON payload per
// notification and records the outcome.
type Notifier struct {
	webhookURL string
	authToken  string
	client     *http.Client
	logger     *zap.Logger
}

// Config holds the push gateway settings.
type Config struct {
	WebhookURL string
	AuthToken  string
	Timeout    time.Duration
	Logger     *zap.Logger
}

// New creates a webhook notifier.
func New(cfg *Config) *Notifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Notifier{
		webhookURL: cfg.WebhookURL,
		authToken:  cfg.AuthToken,
		client:     &http.Client{Timeout: timeout},
		logger:     cfg.Logger,
	}
}

type payload struct {
	UserID string            `json:"user_id"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

// Notify posts one notification to the webhook. A non-2xx response is an error.
func (n *Notifier) Notify(
	ctx context.Context, userID, title, body string, data map[string]string,
) error {
	buf, err := json.Marshal(payload{
		UserID: userID,
		Title:  title,
		Body:   body,
		Data:   data,
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+n.authToken)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("post notification: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.NotificationsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("notification webhook returned %d", resp.StatusCode)
	}

	metrics.NotificationsTotal.WithLabelValues("ok").Inc()
	n.logger.Debug("Notification delivered",
		zap.String("user_id", userID),
		zap.String("title", title),
	)
	return nil
}
