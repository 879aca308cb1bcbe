package proxy

import "github.com/dmitrymomot/actionproxy/core/action"

// Route pairs one handler with the rule that selects it.
// Routes are immutable once added to a Router.
type Route struct {
	handler action.Handler
	rule    Rule
}

// Handler returns the route handler.
func (r Route) Handler() action.Handler {
	return r.handler
}

// Rule returns the route rule.
func (r Route) Rule() Rule {
	return r.rule
}

// routeTable is the ordered route list of a Router. It is never modified
// after Build, so concurrent reads need no locking.
type routeTable []Route

// match returns the first route whose rule accepts a, in registration order.
func (t routeTable) match(a LabeledAction) (int, Route, bool) {
	for i, r := range t {
		if r.rule.Matches(a) {
			return i, r, true
		}
	}
	return -1, Route{}, false
}
