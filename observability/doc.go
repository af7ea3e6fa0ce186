// Package observability provides OpenTelemetry tracing and metrics for
// pipeline cursors.
//
// Setup installs OTLP HTTP exporters as the global providers:
//
//	cfg := observability.DefaultConfig("reports")
//	shutdown, err := observability.Setup(ctx, &cfg)
//	defer shutdown(ctx)
//
// With pipeline.Configure(pipeline.Config{Telemetry: true}) every cursor then
// opens a span named after its stage and records CursorMetrics: cursors opened
// and active, elements pulled, and span or copy fast-path hits by stage.
package observability
