package action_test

import (
	"context"
	"sync"

	"github.com/dmitrymomot/actionproxy/core/action"
)

var testCategory = action.DefineCategory("action-test")

type Ping struct {
	Value string
}

func (Ping) Category() action.Category { return testCategory }

// stubHandler reports success or failure synchronously and records calls.
type stubHandler struct {
	action.Sink

	category action.Category
	fail     error
	sendErr  error
	panicMsg string

	mu       sync.Mutex
	sent     []*action.Holder
	canceled []*action.Holder
}

func (s *stubHandler) Category() action.Category { return s.category }

func (s *stubHandler) Send(ctx context.Context, h *action.Holder, cb action.Callback) error {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}

	s.mu.Lock()
	s.sent = append(s.sent, h)
	s.mu.Unlock()

	if s.sendErr != nil {
		return s.sendErr
	}

	cb = s.Resolve(cb)
	cb.OnProgress(h, 50)
	if s.fail != nil {
		cb.OnFail(h, s.fail)
		return nil
	}
	cb.OnSuccess(h)
	return nil
}

func (s *stubHandler) Cancel(h *action.Holder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canceled = append(s.canceled, h)
}

func (s *stubHandler) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func (s *stubHandler) canceledCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.canceled)
}

// recorder collects lifecycle events as strings.
type recorder struct {
	mu     sync.Mutex
	events []string
	errs   []error
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) OnStart(h *action.Holder) { r.add("start") }

func (r *recorder) OnProgress(h *action.Holder, p int) { r.add("progress") }

func (r *recorder) OnSuccess(h *action.Holder) { r.add("success") }

func (r *recorder) OnFail(h *action.Holder, err error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
	r.add("fail")
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recorder) lastErr() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errs) == 0 {
		return nil
	}
	return r.errs[len(r.errs)-1]
}
