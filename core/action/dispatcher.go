package action

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/actionproxy/core/logger"
)

// Dispatcher accepts actions, selects the handler registered for each
// action's Category and relays lifecycle events to observers.
// It is the enclosing framework a Router is installed into.
//
// Example:
//
//	dispatcher := action.NewDispatcher(
//	    action.WithChannelTransport(100, action.WithWorkers(4)),
//	    action.WithLogger(logger),
//	    action.WithHandler(router),
//	)
//	defer dispatcher.Stop()
//	err := dispatcher.Execute(ctx, GithubRepos{})
type Dispatcher struct {
	handlers  map[Category]Handler
	observers []Callback
	transport transport
	logger    *slog.Logger
	mu        sync.RWMutex

	newTransport    func(d *Dispatcher) transport
	shutdownTimeout time.Duration
	pending         []Handler

	waiters sync.Map // holder ID -> chan error
	running sync.Map // holder ID -> context.CancelCauseFunc
	stopped atomic.Bool
}

// NewDispatcher creates a dispatcher with the given options.
// If no transport is specified, WithSyncTransport() is used by default.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		handlers:        make(map[Category]Handler),
		logger:          slog.Default(),
		shutdownTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.newTransport == nil {
		d.newTransport = newSyncTransport
	}
	d.transport = d.newTransport(d)

	for _, h := range d.pending {
		d.Register(h)
	}
	d.pending = nil

	return d
}

// Register installs a handler for its declared category and hands it the
// dispatcher's callback sink.
// Panics if a handler is already registered for the category.
func (d *Dispatcher) Register(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c := h.Category()
	if _, exists := d.handlers[c]; exists {
		panic(fmt.Sprintf("action: handler already registered for category: %s", c))
	}

	h.SetCallback(d.callback())
	d.handlers[c] = h
}

// Send submits an action for processing and returns its Holder.
//
// For sync transport the handler has already been invoked when Send returns.
// For channel transport Send returns as soon as the action is queued.
// Lifecycle outcomes are reported to observers; the returned error only
// covers submission failures.
func (d *Dispatcher) Send(ctx context.Context, a any) (*Holder, error) {
	return d.send(ctx, a, nil)
}

// Execute submits an action and blocks until it succeeds, fails or ctx is done.
// When ctx is done first the action is cancelled and ctx.Err() is returned.
func (d *Dispatcher) Execute(ctx context.Context, a any) error {
	done := make(chan error, 1)

	h, err := d.send(ctx, a, done)
	if err != nil {
		return err
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		d.waiters.Delete(h.ID)
		d.Cancel(h)
		return ctx.Err()
	}
}

// Cancel cancels the action's dispatch context and asks the handler owning
// the action to cancel it. An action still queued in the channel transport
// fails with ErrCancelled without reaching its handler's Send.
// Cancelling an action whose category has no handler is a no-op.
func (d *Dispatcher) Cancel(h *Holder) {
	if h == nil {
		return
	}

	if v, ok := d.running.LoadAndDelete(h.ID); ok {
		v.(context.CancelCauseFunc)(ErrCancelled)
	}

	handler, err := d.handlerFor(h.Action)
	if err != nil {
		d.logger.Debug("cancel ignored",
			logger.ActionID(h.ID),
			logger.Action(h.Name()),
			logger.Error(err))
		return
	}

	handler.Cancel(h)
}

// Stop gracefully shuts the dispatcher down.
// Queued actions are drained before Stop returns or the shutdown timeout expires.
func (d *Dispatcher) Stop() {
	if d.stopped.Swap(true) {
		return
	}
	d.transport.stop()
}

func (d *Dispatcher) send(ctx context.Context, a any, done chan error) (*Holder, error) {
	if d.stopped.Load() {
		return nil, ErrDispatcherStopped
	}

	handler, err := d.handlerFor(a)
	if err != nil {
		return nil, err
	}

	h := NewHolder(a)
	if done != nil {
		d.waiters.Store(h.ID, done)
	}

	actx, cancel := context.WithCancelCause(d.transport.detach(ctx))
	d.running.Store(h.ID, cancel)

	if err := d.transport.dispatch(actx, h, handler); err != nil {
		d.release(h.ID)
		d.waiters.Delete(h.ID)
		return nil, err
	}

	return h, nil
}

func (d *Dispatcher) handlerFor(a any) (Handler, error) {
	c, ok := a.(Categorized)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUncategorized, Name(a))
	}

	d.mu.RLock()
	handler, exists := d.handlers[c.Category()]
	d.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, c.Category())
	}

	return handler, nil
}

// process runs one action against its handler. Transports call it from the
// dispatching goroutine (sync) or from a worker (channel).
func (d *Dispatcher) process(ctx context.Context, h *Holder, handler Handler) {
	cb := d.callback()

	cb.OnStart(h)
	if ctx.Err() != nil {
		cb.OnFail(h, fmt.Errorf("%w: %w", ErrCancelled, context.Cause(ctx)))
		return
	}
	if err := safeSend(ctx, handler, h, cb); err != nil {
		cb.OnFail(h, fmt.Errorf("%w: %w", ErrInternal, err))
	}
}

func (d *Dispatcher) callback() Callback {
	return dispatcherCallback{d: d}
}

// release drops the dispatch context of a finished or rejected action.
func (d *Dispatcher) release(id string) {
	if v, ok := d.running.LoadAndDelete(id); ok {
		v.(context.CancelCauseFunc)(nil)
	}
}

// finish resolves a pending Execute call, if any.
func (d *Dispatcher) finish(h *Holder, err error) {
	d.release(h.ID)

	if v, ok := d.waiters.LoadAndDelete(h.ID); ok {
		v.(chan error) <- err
	}
}

// dispatcherCallback is the sink the dispatcher installs on every handler.
type dispatcherCallback struct {
	d *Dispatcher
}

func (c dispatcherCallback) OnStart(h *Holder) {
	for _, o := range c.d.observers {
		o.OnStart(h)
	}
}

func (c dispatcherCallback) OnProgress(h *Holder, progress int) {
	for _, o := range c.d.observers {
		o.OnProgress(h, progress)
	}
}

func (c dispatcherCallback) OnSuccess(h *Holder) {
	for _, o := range c.d.observers {
		o.OnSuccess(h)
	}
	c.d.finish(h, nil)
}

func (c dispatcherCallback) OnFail(h *Holder, err error) {
	for _, o := range c.d.observers {
		o.OnFail(h, err)
	}
	c.d.finish(h, err)
}
