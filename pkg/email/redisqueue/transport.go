// Package redisqueue hands outbound email to a relay through a Redis list.
package redisqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/dukex/crmflow/pkg/email"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const DefaultQueue = "crmflow:email:outbound"

// Envelope is the JSON document pushed onto the queue.
type Envelope struct {
	ID       string        `json:"id"`
	Message  email.Message `json:"message"`
	QueuedAt time.Time     `json:"queuedAt"`
}

// Transport pushes messages onto a Redis list consumed by the mail relay.
type Transport struct {
	client redis.UniversalClient
	queue  string
	logger *slog.Logger
}

func NewTransport(client redis.UniversalClient, queue string, logger *slog.Logger) *Transport {
	if queue == "" {
		queue = DefaultQueue
	}

	return &Transport{
		client: client,
		queue:  queue,
		logger: logger.With("module", "email_redis_transport", "queue", queue),
	}
}

// NewFromURL connects to a redis:// URL. The optional "queue" query
// parameter names the list.
func NewFromURL(ctx context.Context, rawURL string, logger *slog.Logger) (*Transport, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	query := parsed.Query()
	queue := query.Get("queue")
	query.Del("queue")
	parsed.RawQuery = query.Encode()

	options, err := redis.ParseURL(parsed.String())
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.InfoContext(ctx, "Connected to Redis", "addr", options.Addr, "db", options.DB)

	return NewTransport(client, queue, logger), nil
}

func (t *Transport) Send(ctx context.Context, message email.Message) (email.Result, error) {
	queuedAt := time.Now().UTC()

	payload, err := json.Marshal(Envelope{
		ID:       uuid.NewString(),
		Message:  message,
		QueuedAt: queuedAt,
	})
	if err != nil {
		return email.Result{}, fmt.Errorf("failed to encode email envelope: %w", err)
	}

	if err := t.client.LPush(ctx, t.queue, payload).Err(); err != nil {
		return email.Result{}, fmt.Errorf("failed to enqueue email: %w", err)
	}

	t.logger.DebugContext(ctx, "Email queued", "to", message.To)

	return email.Result{SentAt: &queuedAt}, nil
}

func (t *Transport) Close() error {
	return t.client.Close()
}
