// Package otel brings up the tracing provider wardroom services share.
package otel

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/brinedeck/wardroom/internal/platform/config"
)

// settings is the tracing env surface. Tracing stays off until an
// endpoint is configured; WARDROOM_OTEL_ENABLED=false forces it off
// even when one is. Any other value of the flag, including unset,
// leaves the endpoint in charge.
type settings struct {
	Enabled  string `env:"WARDROOM_OTEL_ENABLED"`
	Endpoint string `env:"WARDROOM_OTEL_ENDPOINT"`
}

func (s settings) exportable() bool {
	if strings.EqualFold(strings.TrimSpace(s.Enabled), "false") {
		return false
	}
	return strings.TrimSpace(s.Endpoint) != ""
}

// Setup initialises tracing for serviceName and returns the flush
// function the caller defers. When tracing is off both the setup and
// the returned function are no-ops and no global provider is
// registered.
func Setup(ctx context.Context, serviceName string) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	var cfg settings
	if err := config.ParseEnv(&cfg); err != nil {
		return noop, err
	}
	if !cfg.exportable() {
		return noop, nil
	}

	provider, err := newProvider(ctx, serviceName, strings.TrimSpace(cfg.Endpoint))
	if err != nil {
		return noop, err
	}
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return provider.Shutdown, nil
}

func newProvider(ctx context.Context, serviceName, endpoint string) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return nil, err
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	), nil
}
