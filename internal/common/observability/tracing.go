package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracerName is the instrumentation scope used by every span in the service.
const TracerName = "institute-discovery"

// TracingConfig mirrors config.TracingConfig.
type TracingConfig struct {
	Enabled        bool
	JaegerEndpoint string
	SampleRatio    float64
}

// Tracing owns the tracer provider installed as the otel global.
type Tracing struct {
	provider *sdktrace.TracerProvider
}

// NewTracing installs a Jaeger-backed tracer provider. Disabled tracing
// installs a no-op provider so callers can always start spans.
func NewTracing(serviceName, version string, cfg TracingConfig) (*Tracing, error) {
	if !cfg.Enabled {
		otel.SetTracerProvider(noop.NewTracerProvider())
		return &Tracing{}, nil
	}

	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerEndpoint)))
	if err != nil {
		return nil, fmt.Errorf("create jaeger exporter: %w", err)
	}

	provider := NewTracerProvider(serviceName, version, cfg.SampleRatio, sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)

	return &Tracing{provider: provider}, nil
}

// NewTracerProvider builds an sdk provider with the service resource and a
// parent-based ratio sampler.
func NewTracerProvider(serviceName, version string, sampleRatio float64, opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", version),
	)

	opts = append([]sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
	}, opts...)

	return sdktrace.NewTracerProvider(opts...)
}

// Tracer returns the service tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

func (t *Tracing) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return t.provider.Shutdown(ctx)
}
