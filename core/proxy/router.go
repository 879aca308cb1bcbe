package proxy

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/actionproxy/core/action"
	"github.com/dmitrymomot/actionproxy/core/logger"
)

// Router forwards each action to the first route whose rule matches it.
// It is itself an action.Handler, so routers can be nested inside routers
// or registered with an action.Dispatcher.
//
// A Router holds no per-action state and never modifies its route table, so
// it is safe for concurrent use without locking. Send and Cancel for the same
// action always resolve to the same handler.
type Router struct {
	category action.Category
	routes   routeTable
	logger   *slog.Logger
}

var _ action.Handler = (*Router)(nil)

// Category returns the category shared by the router and all its handlers.
func (r *Router) Category() action.Category {
	return r.category
}

// Routes returns a copy of the route table in evaluation order.
func (r *Router) Routes() []Route {
	return slices.Clone(r.routes)
}

// Route returns the handler that would receive a.
// Returns ErrNotLabeled if a does not implement LabeledAction and ErrNoRoute
// if no rule matches.
func (r *Router) Route(a any) (action.Handler, error) {
	_, route, err := r.find(a)
	if err != nil {
		return nil, err
	}
	return route.handler, nil
}

// Send delegates to the matching handler with the callback unchanged.
//
// Routing failures are returned synchronously and no handler is invoked;
// the enclosing dispatcher reports them through the same failure channel
// used for handler errors.
func (r *Router) Send(ctx context.Context, h *action.Holder, cb action.Callback) error {
	i, route, err := r.find(h.Action)
	if err != nil {
		r.logger.WarnContext(ctx, "action not routed",
			logger.ActionID(h.ID),
			logger.Action(h.Name()),
			logger.Category(r.category.String()),
			logger.Error(err))
		return err
	}

	r.logger.DebugContext(ctx, "action routed",
		logger.ActionID(h.ID),
		logger.Action(h.Name()),
		logger.Label(labelOf(h.Action)),
		logger.Route(i))

	return route.handler.Send(ctx, h, cb)
}

// Cancel delegates to the handler that Send would have selected.
// Cancelling an unroutable action is a no-op: it could not have been sent.
func (r *Router) Cancel(h *action.Holder) {
	_, route, err := r.find(h.Action)
	if err != nil {
		r.logger.Debug("cancel ignored",
			logger.ActionID(h.ID),
			logger.Action(h.Name()),
			logger.Error(err))
		return
	}

	route.handler.Cancel(h)
}

// SetCallback installs cb on every routed handler, replacing their previous
// sinks. The router keeps no callback of its own.
func (r *Router) SetCallback(cb action.Callback) {
	for _, route := range r.routes {
		route.handler.SetCallback(cb)
	}
}

func (r *Router) find(a any) (int, Route, error) {
	la, ok := a.(LabeledAction)
	if !ok {
		return -1, Route{}, fmt.Errorf("%w: got %T", ErrNotLabeled, a)
	}

	i, route, ok := r.routes.match(la)
	if !ok {
		return -1, Route{}, fmt.Errorf("%w of type %s (label %q)", ErrNoRoute, action.Name(a), la.Label())
	}

	return i, route, nil
}

func labelOf(a any) string {
	if la, ok := a.(LabeledAction); ok {
		return la.Label()
	}
	return ""
}
