package action

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// transport decides where Dispatcher.process runs.
type transport interface {
	dispatch(ctx context.Context, h *Holder, handler Handler) error
	detach(ctx context.Context) context.Context
	stop()
}

// syncTransport runs actions in the caller's goroutine.
type syncTransport struct {
	d *Dispatcher
}

func newSyncTransport(d *Dispatcher) transport {
	return &syncTransport{d: d}
}

func (t *syncTransport) dispatch(ctx context.Context, h *Holder, handler Handler) error {
	t.d.process(ctx, h, handler)
	return nil
}

// detach keeps the caller's cancellation: the action runs inside the call.
func (t *syncTransport) detach(ctx context.Context) context.Context {
	return ctx
}

func (t *syncTransport) stop() {}

// envelope carries a queued action to a worker.
type envelope struct {
	ctx     context.Context
	holder  *Holder
	handler Handler
}

// channelTransport runs actions on a fixed pool of workers fed by a
// buffered channel.
//
// Characteristics:
// - Non-blocking dispatch (ErrBufferFull when saturated)
// - Local execution, no persistence
// - Dispatch context values are preserved, its cancellation is not;
//   Dispatcher.Cancel cancels queued and running actions instead
type channelTransport struct {
	d       *Dispatcher
	ch      chan envelope
	workers int
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func newChannelTransport(d *Dispatcher, bufferSize int, opts ...ChannelOption) *channelTransport {
	if bufferSize < 0 {
		bufferSize = 0
	}

	t := &channelTransport{
		d:       d,
		ch:      make(chan envelope, bufferSize),
		workers: 1,
	}

	for _, opt := range opts {
		opt(t)
	}

	for range t.workers {
		t.wg.Add(1)
		go t.worker()
	}

	return t
}

func (t *channelTransport) dispatch(ctx context.Context, h *Holder, handler Handler) error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.closed {
		return ErrDispatcherStopped
	}

	env := envelope{
		ctx:     ctx,
		holder:  h,
		handler: handler,
	}

	select {
	case t.ch <- env:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("%w: %s", ErrBufferFull, h.Name())
	}
}

// detach strips the caller's cancellation so a queued action outlives the
// call that submitted it.
func (t *channelTransport) detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

func (t *channelTransport) worker() {
	defer t.wg.Done()

	for env := range t.ch {
		t.d.process(env.ctx, env.holder, env.handler)
	}
}

// stop closes the queue and waits for workers to drain it.
func (t *channelTransport) stop() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	close(t.ch)
	t.mu.Unlock()

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.d.logger.Info("channel transport stopped gracefully")
	case <-time.After(t.d.shutdownTimeout):
		t.d.logger.Warn("channel transport shutdown timeout",
			slog.Duration("timeout", t.d.shutdownTimeout))
	}
}
