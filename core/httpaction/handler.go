package httpaction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/actionproxy/core/action"
	"github.com/dmitrymomot/actionproxy/core/logger"
)

// Handler performs the HTTP request described by each action against a base URL.
//
// Send runs the request in the calling goroutine and reports OnSuccess once
// the response is decoded, or OnFail on transport, status or decode errors.
// Cancel aborts an in-flight request; the action then fails with
// action.ErrCancelled.
type Handler struct {
	action.Sink

	category action.Category
	baseURL  *url.URL
	client   *http.Client
	logger   *slog.Logger

	mu       sync.Mutex
	inflight map[string]context.CancelFunc
}

var _ action.Handler = (*Handler)(nil)

// Option configures a Handler.
type Option func(*Handler)

// WithClient sets the HTTP client. Defaults to a client with a 30s timeout.
func WithClient(c *http.Client) Option {
	return func(h *Handler) {
		if c != nil {
			h.client = c
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

// New creates a handler for category sending requests relative to baseURL.
func New(category action.Category, baseURL string, opts ...Option) (*Handler, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	h := &Handler{
		category: category,
		baseURL:  u,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logger.Discard(),
		inflight: make(map[string]context.CancelFunc),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

// Category returns the category the handler was created for.
func (h *Handler) Category() action.Category {
	return h.category
}

// Send performs the request for holder.Action.
// Returns ErrUnsupportedAction synchronously if the action does not implement Action.
func (h *Handler) Send(ctx context.Context, holder *action.Holder, cb action.Callback) error {
	a, ok := holder.Action.(Action)
	if !ok {
		return fmt.Errorf("%w: got %T", ErrUnsupportedAction, holder.Action)
	}
	cb = h.Resolve(cb)

	ctx, cancel := context.WithCancel(ctx)
	h.track(holder.ID, cancel)
	defer h.untrack(holder.ID)

	start := time.Now()
	err := h.do(ctx, a)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			err = fmt.Errorf("%w: %w", action.ErrCancelled, err)
		}
		h.logger.DebugContext(ctx, "http action failed",
			logger.ActionID(holder.ID),
			logger.Action(holder.Name()),
			logger.Duration(time.Since(start)),
			logger.Error(err))
		cb.OnFail(holder, err)
		return nil
	}

	h.logger.DebugContext(ctx, "http action completed",
		logger.ActionID(holder.ID),
		logger.Action(holder.Name()),
		logger.Duration(time.Since(start)))
	cb.OnSuccess(holder)

	return nil
}

// Cancel aborts the in-flight request for holder, if any.
func (h *Handler) Cancel(holder *action.Holder) {
	h.mu.Lock()
	cancel, ok := h.inflight[holder.ID]
	h.mu.Unlock()

	if ok {
		cancel()
	}
}

func (h *Handler) do(ctx context.Context, a Action) error {
	req, err := h.newRequest(ctx, a)
	if err != nil {
		return err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("httpaction: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s %s: %d", ErrUnexpectedStatus, req.Method, req.URL.Path, resp.StatusCode)
	}

	target := a.Response()
	if target == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("httpaction: failed to decode response: %w", err)
	}

	return nil
}

func (h *Handler) newRequest(ctx context.Context, a Action) (*http.Request, error) {
	method := a.Method()
	if method == "" {
		method = http.MethodGet
	}

	ref, err := url.Parse(strings.TrimPrefix(a.Path(), "/"))
	if err != nil {
		return nil, fmt.Errorf("httpaction: invalid path %q: %w", a.Path(), err)
	}

	base := *h.baseURL
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	target := base.ResolveReference(ref)

	var body io.Reader
	if ba, ok := a.(BodyAction); ok && ba.Body() != nil {
		data, err := json.Marshal(ba.Body())
		if err != nil {
			return nil, fmt.Errorf("httpaction: failed to encode body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (h *Handler) track(id string, cancel context.CancelFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inflight[id] = cancel
}

func (h *Handler) untrack(id string) {
	h.mu.Lock()
	cancel, ok := h.inflight[id]
	delete(h.inflight, id)
	h.mu.Unlock()

	if ok {
		cancel()
	}
}
