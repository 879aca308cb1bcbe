package proxy

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is the parent of every error raised while assembling a Router.
	ErrConfiguration = errors.New("proxy: configuration error")

	// ErrInvalidCategory is returned when the builder category is not a defined marker.
	ErrInvalidCategory = fmt.Errorf("%w: category is not a defined marker", ErrConfiguration)

	// ErrCategoryMismatch is returned when a handler declares a different category than the builder.
	ErrCategoryMismatch = fmt.Errorf("%w: handler with unsupported category", ErrConfiguration)

	// ErrNoRoutes is returned when Build is called before any route was added.
	ErrNoRoutes = fmt.Errorf("%w: no handler registered, cannot operate", ErrConfiguration)

	// ErrNilHandler is returned when adding a route without a handler.
	ErrNilHandler = fmt.Errorf("%w: handler is nil", ErrConfiguration)

	// ErrNilRule is returned when adding a route without a rule.
	ErrNilRule = fmt.Errorf("%w: rule is nil", ErrConfiguration)
)

var (
	// ErrRouting is the parent of every error raised while routing an action.
	ErrRouting = errors.New("proxy: routing error")

	// ErrNoRoute is returned when no rule matches the action.
	ErrNoRoute = fmt.Errorf("%w: cannot find a handler for action", ErrRouting)

	// ErrNotLabeled is returned when the action does not implement LabeledAction.
	ErrNotLabeled = fmt.Errorf("%w: action must implement proxy.LabeledAction", ErrRouting)
)
