package httpaction

import "errors"

var (
	// ErrUnsupportedAction is returned when the action does not implement Action.
	ErrUnsupportedAction = errors.New("httpaction: action must implement httpaction.Action")

	// ErrUnexpectedStatus is reported when the server answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("httpaction: unexpected response status")

	// ErrInvalidBaseURL is returned when the handler base URL cannot be parsed.
	ErrInvalidBaseURL = errors.New("httpaction: invalid base URL")
)
