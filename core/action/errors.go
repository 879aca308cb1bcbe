package action

import "errors"

var (
	// ErrNoHandler is returned when no handler is registered for an action's category.
	ErrNoHandler = errors.New("no handler registered for action category")

	// ErrUncategorized is returned when an action does not declare its category.
	ErrUncategorized = errors.New("action does not declare a category")

	// ErrInternal wraps failures raised by the dispatch machinery itself
	// rather than reported by a handler while processing the action.
	ErrInternal = errors.New("internal dispatch failure")

	// ErrCancelled is reported through OnFail when an in-flight action is cancelled.
	ErrCancelled = errors.New("action cancelled")

	// ErrBufferFull is returned when the channel transport cannot accept more actions.
	ErrBufferFull = errors.New("action buffer is full")

	// ErrDispatcherStopped is returned when sending through a stopped dispatcher.
	ErrDispatcherStopped = errors.New("dispatcher stopped")
)
