package otel

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the name every BoardSmith span is created under.
const Tracer = "github.com/boardsmith/boardsmith"

// Setup registers a process-wide TracerProvider tagged with serviceName and
// returns a shutdown function to defer. With BOARDSMITH_OTEL_ENABLED=false
// it registers nothing and returns a no-op shutdown.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	if strings.EqualFold(os.Getenv("BOARDSMITH_OTEL_ENABLED"), "false") {
		return noop, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(attribute.String("service.name", serviceName)),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// StartSpan opens a span under Tracer, used by performAction and broadcast
// fan-out to mark engine activity without the core depending on a specific
// exporter (spec §11).
func StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(Tracer).Start(ctx, name)
}
