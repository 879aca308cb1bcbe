package action

// Callback receives lifecycle events for actions.
// Implementations must be safe for concurrent use: different actions may
// report from different goroutines at the same time.
type Callback interface {
	OnStart(h *Holder)
	OnProgress(h *Holder, progress int)
	OnSuccess(h *Holder)
	OnFail(h *Holder, err error)
}

// CallbackFuncs adapts plain functions to the Callback interface.
// Nil fields are ignored.
type CallbackFuncs struct {
	Start    func(h *Holder)
	Progress func(h *Holder, progress int)
	Success  func(h *Holder)
	Fail     func(h *Holder, err error)
}

func (c CallbackFuncs) OnStart(h *Holder) {
	if c.Start != nil {
		c.Start(h)
	}
}

func (c CallbackFuncs) OnProgress(h *Holder, progress int) {
	if c.Progress != nil {
		c.Progress(h, progress)
	}
}

func (c CallbackFuncs) OnSuccess(h *Holder) {
	if c.Success != nil {
		c.Success(h)
	}
}

func (c CallbackFuncs) OnFail(h *Holder, err error) {
	if c.Fail != nil {
		c.Fail(h, err)
	}
}

// NopCallback discards all events.
var NopCallback Callback = CallbackFuncs{}

// multiCallback fans events out to several callbacks in order.
type multiCallback []Callback

// MultiCallback returns a Callback that forwards every event to each of cbs.
func MultiCallback(cbs ...Callback) Callback {
	out := make(multiCallback, 0, len(cbs))
	for _, cb := range cbs {
		if cb != nil {
			out = append(out, cb)
		}
	}
	return out
}

func (m multiCallback) OnStart(h *Holder) {
	for _, cb := range m {
		cb.OnStart(h)
	}
}

func (m multiCallback) OnProgress(h *Holder, progress int) {
	for _, cb := range m {
		cb.OnProgress(h, progress)
	}
}

func (m multiCallback) OnSuccess(h *Holder) {
	for _, cb := range m {
		cb.OnSuccess(h)
	}
}

func (m multiCallback) OnFail(h *Holder, err error) {
	for _, cb := range m {
		cb.OnFail(h, err)
	}
}
