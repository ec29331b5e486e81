package tracer

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Logger is the subset of the process logger the tracer uses.
//
//go:generate mockgen -source=setup.go -destination=mock_logger_test.go -package=tracer
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Tracer wraps an OpenTelemetry TracerProvider. It is safe for concurrent use.
type Tracer struct {
	tracer *trace.TracerProvider
	logger Logger
	name   string
}

// NewClient creates a Tracer for the service described by cfg and installs
// it as the global OpenTelemetry provider.
//
// When cfg.EnableExport is set, spans are batched to an OTLP/HTTP exporter.
// A failure to create the exporter is fatal.
//
// Example:
//
//	t := tracer.NewClient(tracer.Config{
//	    ServiceName: "sim-exporter",
//	    AppEnv:      "production",
//	}, log)
//
//	ctx, span := t.StartSpan(ctx, "exporter.scrape")
//	defer span.End()
func NewClient(cfg Config, logger Logger) *Tracer {
	var options []trace.TracerProviderOption

	if cfg.EnableExport {
		client := otlptracehttp.NewClient()
		exporter, err := otlptrace.New(context.Background(), client)
		if err != nil {
			logger.Fatal("cannot initiate tracer", err, nil)
			return nil
		}
		options = append(options, trace.WithBatcher(exporter))
	}

	return newTracer(cfg, logger, options...)
}

// NewWithExporter creates a Tracer that sends every span synchronously to
// exporter. It does not touch the global provider.
func NewWithExporter(cfg Config, logger Logger, exporter trace.SpanExporter) *Tracer {
	return &Tracer{
		tracer: trace.NewTracerProvider(trace.WithSyncer(exporter), trace.WithResource(newResource(cfg))),
		logger: logger,
		name:   cfg.ServiceName,
	}
}

func newTracer(cfg Config, logger Logger, options ...trace.TracerProviderOption) *Tracer {
	options = append(options, trace.WithResource(newResource(cfg)))
	tp := trace.NewTracerProvider(options...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	logger.Info("tracer initialised", nil, map[string]interface{}{
		"service": cfg.ServiceName,
		"export":  cfg.EnableExport,
	})
	return &Tracer{tracer: tp, logger: logger, name: cfg.ServiceName}
}

func newResource(cfg Config) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)
}

// Shutdown flushes pending spans and stops the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.tracer == nil {
		return nil
	}
	return t.tracer.Shutdown(ctx)
}
