// Package proxy provides a rule-based Router that selects one handler out of
// a registered set for every action and forwards the action's lifecycle to it.
//
// A Router is configured once with a Builder and is immutable afterwards.
// Each route pairs an action.Handler with a Rule; routes are evaluated in
// registration order and the first match wins.
//
// # Configuration
//
// All handlers in a Router share the Router's category. The Builder checks
// this when a route is added, and refuses to build an empty Router, so a
// misconfigured Router never reaches dispatch:
//
//	var HTTP = action.DefineCategory("http")
//
//	b, err := proxy.NewBuilder(HTTP)
//	if err != nil {
//	    return err // ErrInvalidCategory
//	}
//	if err := b.Add(github, proxy.Label("github")); err != nil {
//	    return err // ErrCategoryMismatch
//	}
//	router, err := b.Build() // ErrNoRoutes if nothing was added
//
// Every configuration error wraps ErrConfiguration.
//
// # Routing
//
// Rules see actions through the LabeledAction interface. Send fails with
// ErrNotLabeled before evaluating any rule if the action does not implement
// it, and with ErrNoRoute if no rule matches. Both wrap ErrRouting and are
// returned synchronously; an action.Dispatcher reports them to observers as
// an internal failure of that single action.
//
// The callback passed to Send reaches the selected handler unchanged.
// SetCallback propagates the sink to every handler, so a Router nested in a
// Dispatcher or in another Router never aggregates events itself.
//
// Cancel resolves the handler the same way Send does. Cancelling an action
// no rule matches is a no-op.
package proxy
