package redisaction

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/actionproxy/core/action"
	"github.com/dmitrymomot/actionproxy/core/logger"
)

// pusher is the part of a Redis client the handler needs.
// *redis.Client and *redis.ClusterClient satisfy it.
type pusher interface {
	RPush(ctx context.Context, key string, values ...any) *redis.IntCmd
}

// Entry is the JSON document appended to the Redis list for each action.
type Entry struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Label     string          `json:"label,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload"`
}

// Handler publishes actions to a Redis list for out-of-process workers.
// An action succeeds once it is appended to the list.
type Handler struct {
	action.Sink

	category action.Category
	client   pusher
	key      string
	logger   *slog.Logger
}

var _ action.Handler = (*Handler)(nil)

// Option configures a Handler.
type Option func(*Handler)

// WithKey sets the list key. Defaults to "actions".
func WithKey(key string) Option {
	return func(h *Handler) {
		if key != "" {
			h.key = key
		}
	}
}

// WithLogger sets the handler logger. Defaults to a discarding logger.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.logger = log
		}
	}
}

// New creates a handler for category that appends to a Redis list.
func New(category action.Category, client pusher, opts ...Option) *Handler {
	h := &Handler{
		category: category,
		client:   client,
		key:      "actions",
		logger:   logger.Discard(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Category returns the category the handler was created for.
func (h *Handler) Category() action.Category {
	return h.category
}

// Key returns the Redis list key actions are appended to.
func (h *Handler) Key() string {
	return h.key
}

// Send encodes the action and appends it to the list.
func (h *Handler) Send(ctx context.Context, holder *action.Holder, cb action.Callback) error {
	cb = h.Resolve(cb)

	data, err := h.encode(holder)
	if err != nil {
		cb.OnFail(holder, err)
		return nil
	}

	if err := h.client.RPush(ctx, h.key, data).Err(); err != nil {
		err = fmt.Errorf("%w: %w", ErrPublishFailed, err)
		h.logger.ErrorContext(ctx, "redis publish failed",
			logger.ActionID(holder.ID),
			logger.Action(holder.Name()),
			logger.Key("key", h.key),
			logger.Error(err))
		cb.OnFail(holder, err)
		return nil
	}

	h.logger.DebugContext(ctx, "action published",
		logger.ActionID(holder.ID),
		logger.Action(holder.Name()),
		logger.Key("key", h.key))
	cb.OnSuccess(holder)

	return nil
}

// Cancel is a no-op: a published entry has already left the process.
func (h *Handler) Cancel(*action.Holder) {}

func (h *Handler) encode(holder *action.Holder) ([]byte, error) {
	payload, err := json.Marshal(holder.Action)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrEncodeFailed, holder.Name(), err)
	}

	entry := Entry{
		ID:        holder.ID,
		Name:      holder.Name(),
		Category:  h.category.String(),
		CreatedAt: holder.CreatedAt,
		Payload:   payload,
	}
	if la, ok := holder.Action.(interface{ Label() string }); ok {
		entry.Label = la.Label()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrEncodeFailed, holder.Name(), err)
	}
	return data, nil
}
