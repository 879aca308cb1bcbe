package instrument_test

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrymomot/actionproxy/core/action"
)

var testCategory = action.DefineCategory("instrument-test")

type Ping struct{}

func (Ping) Category() action.Category { return testCategory }

func (Ping) Label() string { return "ping" }

var errBoom = errors.New("boom")

// leaf reports a fixed outcome through the resolved callback.
type leaf struct {
	action.Sink

	fail     error
	reject   error
	progress bool

	mu        sync.Mutex
	cancelled int
	lastCtx   context.Context
}

func (l *leaf) Category() action.Category { return testCategory }

func (l *leaf) Send(ctx context.Context, h *action.Holder, cb action.Callback) error {
	l.mu.Lock()
	l.lastCtx = ctx
	l.mu.Unlock()

	if l.reject != nil {
		return l.reject
	}

	cb = l.Resolve(cb)
	if l.progress {
		cb.OnProgress(h, 50)
	}
	if l.fail != nil {
		cb.OnFail(h, l.fail)
		return nil
	}
	cb.OnSuccess(h)
	return nil
}

func (l *leaf) Cancel(*action.Holder) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cancelled++
}

func (l *leaf) context() context.Context {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastCtx
}

// outcome counts terminal callbacks.
type outcome struct {
	mu       sync.Mutex
	success  int
	failures []error
	progress []int
}

func (o *outcome) callback() action.Callback {
	return action.CallbackFuncs{
		Progress: func(_ *action.Holder, p int) {
			o.mu.Lock()
			defer o.mu.Unlock()
			o.progress = append(o.progress, p)
		},
		Success: func(*action.Holder) {
			o.mu.Lock()
			defer o.mu.Unlock()
			o.success++
		},
		Fail: func(_ *action.Holder, err error) {
			o.mu.Lock()
			defer o.mu.Unlock()
			o.failures = append(o.failures, err)
		},
	}
}
