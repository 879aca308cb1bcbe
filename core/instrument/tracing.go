package instrument

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/actionproxy/core/action"
)

const defaultTracerName = "actionproxy"

// TracingConfig configures the OpenTelemetry decorator.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "actionproxy").
	TracerName string

	// TracerProvider resolves the tracer.
	// Default: the global provider from otel.GetTracerProvider.
	TracerProvider trace.TracerProvider

	// AttributeExtractor adds custom attributes for an action.
	AttributeExtractor func(h *action.Holder) []attribute.KeyValue
}

// TracingOption configures the OpenTelemetry decorator.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) TracingOption {
	return func(c *TracingConfig) {
		c.TracerProvider = tp
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(h *action.Holder) []attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.AttributeExtractor = extractor
	}
}

// tracingHandler decorates a Handler with one span per action.
type tracingHandler struct {
	action.Sink

	next   action.Handler
	tracer trace.Tracer
	config TracingConfig
}

// Tracing wraps h so every action gets a span named "action.<Name>".
// The span starts on Send and ends on the first terminal callback or on a
// dispatch error. The span context is passed down to the wrapped handler,
// so outgoing HTTP calls made by leaf handlers join the trace.
// The wrapped handler must report exactly one terminal event per accepted
// Send, otherwise its span is never ended.
//
// The tracer uses the global OpenTelemetry tracer provider unless
// WithTracerProvider is given. Configure it in main():
//
//	otel.SetTracerProvider(tp)
func Tracing(h action.Handler, opts ...TracingOption) action.Handler {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerProvider == nil {
		config.TracerProvider = otel.GetTracerProvider()
	}

	return &tracingHandler{
		next:   h,
		tracer: config.TracerProvider.Tracer(config.TracerName),
		config: config,
	}
}

func (t *tracingHandler) Category() action.Category {
	return t.next.Category()
}

func (t *tracingHandler) Send(ctx context.Context, h *action.Holder, cb action.Callback) error {
	attrs := []attribute.KeyValue{
		attribute.String("action.id", h.ID),
		attribute.String("action.name", h.Name()),
		attribute.String("action.category", t.next.Category().String()),
	}
	if la, ok := h.Action.(interface{ Label() string }); ok {
		attrs = append(attrs, attribute.String("action.label", la.Label()))
	}
	if t.config.AttributeExtractor != nil {
		attrs = append(attrs, t.config.AttributeExtractor(h)...)
	}

	spanCtx, span := t.tracer.Start(ctx, fmt.Sprintf("action.%s", h.Name()),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)

	tcb := &tracingCallback{next: t.Resolve(cb), span: span}

	if err := t.next.Send(spanCtx, h, tcb); err != nil {
		tcb.end(err)
		return err
	}
	return nil
}

func (t *tracingHandler) Cancel(h *action.Holder) {
	t.next.Cancel(h)
}

func (t *tracingHandler) SetCallback(cb action.Callback) {
	t.Sink.SetCallback(cb)
	t.next.SetCallback(cb)
}

// tracingCallback annotates the span of one Send.
type tracingCallback struct {
	next action.Callback
	span trace.Span
	once sync.Once
}

func (c *tracingCallback) OnStart(h *action.Holder) {
	c.span.AddEvent("started")
	c.next.OnStart(h)
}

func (c *tracingCallback) OnProgress(h *action.Holder, progress int) {
	c.span.AddEvent("progress", trace.WithAttributes(attribute.Int("action.progress", progress)))
	c.next.OnProgress(h, progress)
}

func (c *tracingCallback) OnSuccess(h *action.Holder) {
	c.end(nil)
	c.next.OnSuccess(h)
}

func (c *tracingCallback) OnFail(h *action.Holder, err error) {
	c.end(err)
	c.next.OnFail(h, err)
}

func (c *tracingCallback) end(err error) {
	c.once.Do(func() {
		if err != nil {
			c.span.RecordError(err)
			c.span.SetStatus(codes.Error, err.Error())
		} else {
			c.span.SetStatus(codes.Ok, "")
		}
		c.span.End()
	})
}
