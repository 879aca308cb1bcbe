package proxy_test

import (
	"context"
	"sync"

	"github.com/dmitrymomot/actionproxy/core/action"
)

var (
	testCategory  = action.DefineCategory("proxy-test")
	otherCategory = action.DefineCategory("proxy-test-other")
)

// LabeledPing is a routable test action.
type LabeledPing struct {
	label string
}

func (p LabeledPing) Label() string { return p.label }

func (LabeledPing) Category() action.Category { return testCategory }

// PlainPing does not implement LabeledAction.
type PlainPing struct{}

func (PlainPing) Category() action.Category { return testCategory }

// countingHandler records Send and Cancel calls and reports success through
// the resolved callback.
type countingHandler struct {
	action.Sink

	category action.Category

	mu      sync.Mutex
	sends   int
	cancels int
	lastCb  action.Callback
	holders []*action.Holder
}

func newCountingHandler(c action.Category) *countingHandler {
	return &countingHandler{category: c}
}

func (h *countingHandler) Category() action.Category { return h.category }

func (h *countingHandler) Send(ctx context.Context, holder *action.Holder, cb action.Callback) error {
	h.mu.Lock()
	h.sends++
	h.lastCb = cb
	h.holders = append(h.holders, holder)
	h.mu.Unlock()

	h.Resolve(cb).OnSuccess(holder)
	return nil
}

func (h *countingHandler) Cancel(*action.Holder) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cancels++
}

func (h *countingHandler) sendCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sends
}

func (h *countingHandler) cancelCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancels
}

func (h *countingHandler) lastCallback() action.Callback {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastCb
}

// eventLog is a Callback that records events.
type eventLog struct {
	mu     sync.Mutex
	events []string
	errs   []error
}

func (l *eventLog) add(e string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) OnStart(*action.Holder) { l.add("start") }

func (l *eventLog) OnProgress(*action.Holder, int) { l.add("progress") }

func (l *eventLog) OnSuccess(*action.Holder) { l.add("success") }

func (l *eventLog) OnFail(_ *action.Holder, err error) {
	l.mu.Lock()
	l.errs = append(l.errs, err)
	l.mu.Unlock()
	l.add("fail")
}

func (l *eventLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

func (l *eventLog) lastErr() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.errs) == 0 {
		return nil
	}
	return l.errs[len(l.errs)-1]
}
