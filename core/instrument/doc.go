// Package instrument provides action.Handler decorators for Prometheus
// metrics and OpenTelemetry tracing.
//
// Both decorators keep the wrapped handler's Category, forward Cancel and
// SetCallback, and observe the lifecycle by wrapping the callback passed
// to Send. They compose with each other and with action.WithLogging:
//
//	var h action.Handler = router
//	h = instrument.Tracing(h, instrument.WithTracerName("proxy"))
//	h = instrument.Metrics(h, instrument.WithRegistry(registry))
//	h = action.WithLogging(h, log)
//	dispatcher.Register(h)
//
// Metrics exported (namespace "actionproxy" by default):
//
//	actions_total{category,action,status}    status: success, failure, rejected
//	action_duration_seconds{category,action}
//	actions_in_flight{category}
//	action_cancels_total{category}
//
// A dispatch error returned from Send is counted as "rejected" and recorded
// on the span; it is not reported through the callback.
package instrument
