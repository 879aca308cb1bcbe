package instrument

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmitrymomot/actionproxy/core/action"
)

// Status label values of the actions_total counter.
const (
	StatusSuccess  = "success"
	StatusFailure  = "failure"
	StatusRejected = "rejected"
)

// MetricsConfig configures the Prometheus decorator.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "actionproxy").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for action duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus decorator.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "actionproxy",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

type metrics struct {
	actionsTotal   *prometheus.CounterVec
	actionDuration *prometheus.HistogramVec
	inFlight       *prometheus.GaugeVec
	cancelsTotal   *prometheus.CounterVec
}

func newMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		actionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "actions_total",
			Help:        "Total number of actions that reached a terminal state",
			ConstLabels: config.ConstLabels,
		}, []string{"category", "action", "status"}),

		actionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "action_duration_seconds",
			Help:        "Time from send to terminal callback in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"category", "action"}),

		inFlight: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "actions_in_flight",
			Help:        "Number of actions sent and not yet finished",
			ConstLabels: config.ConstLabels,
		}, []string{"category"}),

		cancelsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "action_cancels_total",
			Help:        "Total number of cancel requests",
			ConstLabels: config.ConstLabels,
		}, []string{"category"}),
	}
}

// metricsHandler decorates a Handler with Prometheus metrics.
type metricsHandler struct {
	action.Sink

	next     action.Handler
	metrics  *metrics
	category string
}

// Metrics wraps h so every action it handles is counted and timed.
// The wrapped handler must report exactly one terminal event (OnSuccess or
// OnFail) per accepted Send; an action that never finishes stays counted in
// actions_in_flight.
// The collectors are registered on construction; registering twice on the
// same registry panics, as promauto does.
//
// Example:
//
//	dispatcher.Register(instrument.Metrics(router,
//	    instrument.WithNamespace("proxy"),
//	    instrument.WithRegistry(registry),
//	))
func Metrics(h action.Handler, opts ...MetricsOption) action.Handler {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return &metricsHandler{
		next:     h,
		metrics:  newMetrics(config),
		category: h.Category().String(),
	}
}

func (m *metricsHandler) Category() action.Category {
	return m.next.Category()
}

func (m *metricsHandler) Send(ctx context.Context, h *action.Holder, cb action.Callback) error {
	m.metrics.inFlight.WithLabelValues(m.category).Inc()

	mcb := &metricsCallback{
		next:   m.Resolve(cb),
		m:      m,
		action: h.Name(),
		start:  time.Now(),
	}

	if err := m.next.Send(ctx, h, mcb); err != nil {
		mcb.finish(StatusRejected)
		return err
	}
	return nil
}

func (m *metricsHandler) Cancel(h *action.Holder) {
	m.metrics.cancelsTotal.WithLabelValues(m.category).Inc()
	m.next.Cancel(h)
}

func (m *metricsHandler) SetCallback(cb action.Callback) {
	m.Sink.SetCallback(cb)
	m.next.SetCallback(cb)
}

// metricsCallback records the outcome of one Send.
type metricsCallback struct {
	next   action.Callback
	m      *metricsHandler
	action string
	start  time.Time
	once   sync.Once
}

func (c *metricsCallback) OnStart(h *action.Holder) {
	c.next.OnStart(h)
}

func (c *metricsCallback) OnProgress(h *action.Holder, progress int) {
	c.next.OnProgress(h, progress)
}

func (c *metricsCallback) OnSuccess(h *action.Holder) {
	c.finish(StatusSuccess)
	c.next.OnSuccess(h)
}

func (c *metricsCallback) OnFail(h *action.Holder, err error) {
	c.finish(StatusFailure)
	c.next.OnFail(h, err)
}

// finish records the terminal state once per Send.
func (c *metricsCallback) finish(status string) {
	c.once.Do(func() {
		c.m.metrics.inFlight.WithLabelValues(c.m.category).Dec()
		c.m.metrics.actionsTotal.WithLabelValues(c.m.category, c.action, status).Inc()
		c.m.metrics.actionDuration.WithLabelValues(c.m.category, c.action).Observe(time.Since(c.start).Seconds())
	})
}
