package action

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/actionproxy/core/logger"
)

// loggingHandler decorates a Handler with lifecycle logging.
type loggingHandler struct {
	next   Handler
	logger *slog.Logger
}

// WithLogging wraps a handler so every lifecycle event it reports is logged.
// Category, Cancel and SetCallback are forwarded to the wrapped handler.
//
// Example:
//
//	dispatcher.Register(action.WithLogging(router, log))
func WithLogging(h Handler, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}
	return &loggingHandler{next: h, logger: log}
}

func (l *loggingHandler) Category() Category {
	return l.next.Category()
}

func (l *loggingHandler) Send(ctx context.Context, h *Holder, cb Callback) error {
	if cb != nil {
		cb = &loggingCallback{next: cb, logger: l.logger, ctx: ctx, start: time.Now()}
	}

	l.logger.DebugContext(ctx, "action sent",
		logger.ActionID(h.ID),
		logger.Action(h.Name()),
		logger.Category(l.next.Category().String()))

	err := l.next.Send(ctx, h, cb)
	if err != nil {
		l.logger.ErrorContext(ctx, "action dispatch failed",
			logger.ActionID(h.ID),
			logger.Action(h.Name()),
			logger.Error(err))
	}
	return err
}

func (l *loggingHandler) Cancel(h *Holder) {
	l.logger.Info("action cancel requested",
		logger.ActionID(h.ID),
		logger.Action(h.Name()))
	l.next.Cancel(h)
}

func (l *loggingHandler) SetCallback(cb Callback) {
	if cb == nil {
		l.next.SetCallback(nil)
		return
	}
	l.next.SetCallback(&loggingCallback{next: cb, logger: l.logger, ctx: context.Background()})
}

// loggingCallback logs each event before forwarding it.
type loggingCallback struct {
	next   Callback
	logger *slog.Logger
	ctx    context.Context
	start  time.Time
}

func (c *loggingCallback) OnStart(h *Holder) {
	c.logger.InfoContext(c.ctx, "action started",
		logger.ActionID(h.ID),
		logger.Action(h.Name()))
	c.next.OnStart(h)
}

func (c *loggingCallback) OnProgress(h *Holder, progress int) {
	c.logger.DebugContext(c.ctx, "action progress",
		logger.ActionID(h.ID),
		logger.Action(h.Name()),
		logger.Progress(progress))
	c.next.OnProgress(h, progress)
}

func (c *loggingCallback) OnSuccess(h *Holder) {
	c.logger.InfoContext(c.ctx, "action succeeded",
		logger.ActionID(h.ID),
		logger.Action(h.Name()),
		logger.Duration(c.elapsed(h)))
	c.next.OnSuccess(h)
}

func (c *loggingCallback) OnFail(h *Holder, err error) {
	c.logger.ErrorContext(c.ctx, "action failed",
		logger.ActionID(h.ID),
		logger.Action(h.Name()),
		logger.Duration(c.elapsed(h)),
		logger.Error(err))
	c.next.OnFail(h, err)
}

func (c *loggingCallback) elapsed(h *Holder) time.Duration {
	if !c.start.IsZero() {
		return time.Since(c.start)
	}
	return time.Since(h.CreatedAt)
}
