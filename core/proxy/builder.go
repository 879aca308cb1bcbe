package proxy

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"github.com/dmitrymomot/actionproxy/core/action"
	"github.com/dmitrymomot/actionproxy/core/logger"
)

// Builder validates routes and assembles an immutable Router.
// Configuration mistakes surface from NewBuilder, Add and Build, never from
// dispatch.
//
// Example:
//
//	b, err := proxy.NewBuilder(HTTP, proxy.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	if err := b.Add(githubHandler, proxy.Label("github")); err != nil {
//	    return err
//	}
//	if err := b.Add(xkcdHandler, proxy.Label("xkcd")); err != nil {
//	    return err
//	}
//	router, err := b.Build()
type Builder struct {
	category action.Category
	routes   []Route
	logger   *slog.Logger
}

// Option configures a Router built by a Builder.
type Option func(*Builder)

// WithLogger sets the router logger. Defaults to a discarding logger.
func WithLogger(log *slog.Logger) Option {
	return func(b *Builder) {
		if log != nil {
			b.logger = log
		}
	}
}

// NewBuilder creates a builder for routers of the given category.
// Returns ErrInvalidCategory if category was not defined with action.DefineCategory.
func NewBuilder(category action.Category, opts ...Option) (*Builder, error) {
	if !action.IsCategory(category) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	b := &Builder{
		category: category,
		logger:   logger.Discard(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// Add appends a route. Routes are evaluated in the order they are added and
// the first matching route wins.
// Returns ErrNilHandler or ErrNilRule for nil values, including typed nils
// such as (*httpaction.Handler)(nil), and ErrCategoryMismatch if the handler
// declares another category.
func (b *Builder) Add(h action.Handler, rule Rule) error {
	if isNil(h) {
		return ErrNilHandler
	}
	if isNil(rule) {
		return ErrNilRule
	}

	if got := h.Category(); got != b.category {
		return fmt.Errorf("%w: expected %s but handler has %s", ErrCategoryMismatch, b.category, got)
	}

	b.routes = append(b.routes, Route{handler: h, rule: rule})
	return nil
}

// Build returns a Router over the routes added so far.
// Returns ErrNoRoutes if no route was added.
//
// Build may be called more than once. Each Router gets its own snapshot of
// the route list and is unaffected by later calls to Add.
func (b *Builder) Build() (*Router, error) {
	if len(b.routes) == 0 {
		return nil, ErrNoRoutes
	}

	return &Router{
		category: b.category,
		routes:   routeTable(slices.Clone(b.routes)),
		logger:   b.logger,
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Router {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}

// New builds a Router from routes in one call.
// It applies the same validation as NewBuilder, Add and Build.
//
// Example:
//
//	router, err := proxy.New(HTTP,
//	    []proxy.Route{
//	        proxy.NewRoute(githubHandler, proxy.Label("github")),
//	        proxy.NewRoute(xkcdHandler, proxy.Label("xkcd")),
//	    },
//	)
func New(category action.Category, routes []Route, opts ...Option) (*Router, error) {
	b, err := NewBuilder(category, opts...)
	if err != nil {
		return nil, err
	}

	for _, r := range routes {
		if err := b.Add(r.handler, r.rule); err != nil {
			return nil, err
		}
	}

	return b.Build()
}

// NewRoute pairs a handler with a rule for use with New.
// Validation happens when the route is passed to New.
func NewRoute(h action.Handler, rule Rule) Route {
	return Route{handler: h, rule: rule}
}

// isNil reports whether v is nil or an interface holding a nil pointer,
// func, map, slice or channel.
func isNil(v any) bool {
	if v == nil {
		return true
	}

	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
