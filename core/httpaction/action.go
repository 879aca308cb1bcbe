package httpaction

// Action describes an HTTP request and where to decode its JSON response.
type Action interface {
	// Method returns the HTTP method. Empty means GET.
	Method() string

	// Path returns the request path relative to the handler base URL.
	Path() string

	// Response returns a pointer the JSON response body is decoded into.
	// Nil discards the body.
	Response() any
}

// BodyAction is implemented by actions that send a JSON request body.
type BodyAction interface {
	Action
	Body() any
}
