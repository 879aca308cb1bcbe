package action

import (
	"context"
	"sync/atomic"
)

// Handler processes actions of one Category and reports their lifecycle.
//
// Send starts processing. Lifecycle events go to cb, or to the sink installed
// with SetCallback when cb is nil. A non-nil error return means the action
// could not be dispatched at all; the caller reports it, the handler must not
// also report it through the callback.
//
// Every Send that returns nil must be followed by exactly one OnSuccess or
// OnFail for that holder.
//
// Cancel stops an in-flight action previously passed to Send.
type Handler interface {
	Category() Category
	Send(ctx context.Context, h *Holder, cb Callback) error
	Cancel(h *Holder)
	SetCallback(cb Callback)
}

// Sink stores the callback installed on a handler by its enclosing dispatcher.
// Embed it in handler implementations to get SetCallback for free.
// The zero value is ready to use and resolves to NopCallback.
type Sink struct {
	cb atomic.Pointer[callbackBox]
}

// callbackBox lets atomic.Pointer hold an interface value.
type callbackBox struct {
	cb Callback
}

// SetCallback installs cb as the default sink, replacing the previous one.
func (s *Sink) SetCallback(cb Callback) {
	if cb == nil {
		s.cb.Store(nil)
		return
	}
	s.cb.Store(&callbackBox{cb: cb})
}

// Callback returns the installed sink, or NopCallback if none is installed.
func (s *Sink) Callback() Callback {
	if b := s.cb.Load(); b != nil {
		return b.cb
	}
	return NopCallback
}

// Resolve returns cb when non-nil, otherwise the installed sink.
func (s *Sink) Resolve(cb Callback) Callback {
	if cb != nil {
		return cb
	}
	return s.Callback()
}
