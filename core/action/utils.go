package action

import (
	"context"
	"fmt"
)

// safeSend invokes handler.Send with panic recovery.
// A panic is converted to an error so the dispatcher can report it.
func safeSend(ctx context.Context, handler Handler, h *Holder, cb Callback) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler for %s panicked: %v", h.Name(), r)
		}
	}()
	return handler.Send(ctx, h, cb)
}
