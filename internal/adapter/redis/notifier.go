package redisadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"adforge/internal/core/port"
)

const (
	notificationsKey = "adforge:notifications"
	maxKept          = 100
)

// Notifier keeps a capped recent-events feed in redis: sync toasts and
// external-service failures. It is strictly best-effort: a dead redis
// degrades to log-only and never fails the operation that published.
type Notifier struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// NewNotifier returns a notifier over the given client. A nil client is
// allowed and makes every publish a log-only no-op.
func NewNotifier(client *redis.Client, logger *slog.Logger, ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Notifier{client: client, logger: logger, ttl: ttl}
}

// Publish pushes one entry onto the feed and trims it to the cap.
func (n *Notifier) Publish(ctx context.Context, text string) {
	n.logger.Info("notification", slog.String("text", text))
	if n.client == nil {
		return
	}
	payload, err := json.Marshal(port.Notification{Text: text, At: time.Now().UTC()})
	if err != nil {
		return
	}
	pipe := n.client.TxPipeline()
	pipe.LPush(ctx, notificationsKey, payload)
	pipe.LTrim(ctx, notificationsKey, 0, maxKept-1)
	pipe.Expire(ctx, notificationsKey, n.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		n.logger.Warn("notification publish failed", slog.Any("error", err))
	}
}

// Recent returns up to limit newest-first entries.
func (n *Notifier) Recent(ctx context.Context, limit int64) ([]port.Notification, error) {
	if n.client == nil {
		return nil, nil
	}
	if limit <= 0 || limit > maxKept {
		limit = maxKept
	}
	raw, err := n.client.LRange(ctx, notificationsKey, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]port.Notification, 0, len(raw))
	for _, item := range raw {
		var note port.Notification
		if err := json.Unmarshal([]byte(item), &note); err != nil {
			continue
		}
		out = append(out, note)
	}
	return out, nil
}
