// Package tracer provides OpenTelemetry tracing for the exporter.
//
// Every scrape of the metrics endpoint runs inside an "exporter.scrape"
// span. A scraper that sends W3C trace headers gets the span attached to
// its own trace:
//
//	t := tracer.NewClient(tracer.Config{
//		ServiceName:  "sim-exporter",
//		AppEnv:       "production",
//		EnableExport: true,
//	}, log)
//
//	ctx := t.ExtractHTTP(r.Context(), r.Header)
//	ctx, span := t.StartSpan(ctx, "exporter.scrape")
//	defer span.End()
//
//	if err != nil {
//		t.RecordErrorOnSpan(span, err)
//	}
//
// With EnableExport set, spans are sent over OTLP/HTTP to the endpoint
// configured by the standard OTEL_EXPORTER_OTLP_ENDPOINT variables.
//
// FX Module Integration:
//
//	app := fx.New(
//		fx.Supply(tracer.Config{ServiceName: "sim-exporter"}),
//		fx.Provide(func(l *logger.Logger) tracer.Logger { return l }),
//		tracer.FXModule,
//	)
//
// The provider is shut down, flushing pending spans, when the app stops.
package tracer
