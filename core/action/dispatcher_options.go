package action

import (
	"log/slog"
	"time"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHandler registers one or more handlers with the dispatcher.
// Only one handler can be registered per category; duplicates panic.
func WithHandler(handlers ...Handler) Option {
	return func(d *Dispatcher) {
		d.pending = append(d.pending, handlers...)
	}
}

// WithObserver adds a callback that receives every lifecycle event.
//
// Example:
//
//	dispatcher := action.NewDispatcher(
//	    action.WithObserver(action.CallbackFuncs{
//	        Fail: func(h *action.Holder, err error) {
//	            logger.Error("action failed", "action", h.Name(), "error", err)
//	        },
//	    }),
//	)
func WithObserver(cb Callback) Option {
	return func(d *Dispatcher) {
		if cb != nil {
			d.observers = append(d.observers, cb)
		}
	}
}

// WithLogger sets the logger for the dispatcher.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithShutdownTimeout configures how long Stop waits for queued actions.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.shutdownTimeout = timeout
		}
	}
}

// WithSyncTransport runs every action in the caller's goroutine.
// This is the default transport if none is specified.
func WithSyncTransport() Option {
	return func(d *Dispatcher) {
		d.newTransport = newSyncTransport
	}
}

// WithChannelTransport queues actions in a buffered channel processed by
// worker goroutines. Call Stop for graceful shutdown.
//
// Example:
//
//	dispatcher := action.NewDispatcher(
//	    action.WithChannelTransport(100, action.WithWorkers(5)),
//	)
//	defer dispatcher.Stop()
func WithChannelTransport(bufferSize int, opts ...ChannelOption) Option {
	return func(d *Dispatcher) {
		d.newTransport = func(d *Dispatcher) transport {
			return newChannelTransport(d, bufferSize, opts...)
		}
	}
}

// ChannelOption configures the channel transport.
type ChannelOption func(*channelTransport)

// WithWorkers sets the number of worker goroutines. Default is 1.
func WithWorkers(n int) ChannelOption {
	return func(t *channelTransport) {
		if n > 0 {
			t.workers = n
		}
	}
}
