package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/seqkit/logger"
)

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, cfg *Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName, cfg.ServiceVersion, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Fast path kinds recorded by RecordFastPath.
const (
	FastPathSpan = "span"
	FastPathCopy = "copy"
)

// CursorMetrics holds the instruments recorded over a cursor's lifetime.
type CursorMetrics struct {
	opened   metric.Int64Counter
	active   metric.Int64UpDownCounter
	elements metric.Int64Counter
	fastPath metric.Int64Counter
	errors   metric.Int64Counter
}

// NewCursorMetrics creates cursor instruments on the given meter.
func NewCursorMetrics(meter metric.Meter) (*CursorMetrics, error) {
	opened, err := meter.Int64Counter("pipeline.cursor.opened",
		metric.WithDescription("Total number of cursors opened"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.cursor.opened counter: %w", err)
	}

	active, err := meter.Int64UpDownCounter("pipeline.cursor.active",
		metric.WithDescription("Number of cursors opened and not yet closed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.cursor.active gauge: %w", err)
	}

	elements, err := meter.Int64Counter("pipeline.elements.pulled",
		metric.WithDescription("Total number of elements pulled through cursors"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.elements.pulled counter: %w", err)
	}

	fastPath, err := meter.Int64Counter("pipeline.fast_path.hits",
		metric.WithDescription("Capability queries answered without pulling, by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.fast_path.hits counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("pipeline.cursor.errors",
		metric.WithDescription("Total pull and close failures"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.cursor.errors counter: %w", err)
	}

	return &CursorMetrics{
		opened:   opened,
		active:   active,
		elements: elements,
		fastPath: fastPath,
		errors:   errorTotal,
	}, nil
}

func stageAttr(stage string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String(AttrStage, stage))
}

// RecordOpen counts a cursor opened for stage.
func (m *CursorMetrics) RecordOpen(ctx context.Context, stage string) {
	attrs := stageAttr(stage)
	m.opened.Add(ctx, 1, attrs)
	m.active.Add(ctx, 1, attrs)
}

// RecordClose records the elements a cursor for stage pulled before closing.
func (m *CursorMetrics) RecordClose(ctx context.Context, stage string, elements int) {
	attrs := stageAttr(stage)
	m.active.Add(ctx, -1, attrs)
	m.elements.Add(ctx, int64(elements), attrs)
}

// RecordFastPath counts a capability query of kind answered by stage.
func (m *CursorMetrics) RecordFastPath(ctx context.Context, stage, kind string) {
	m.fastPath.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrStage, stage),
		attribute.String(AttrFastPath, kind),
	))
}

// RecordError counts a failure raised by stage.
func (m *CursorMetrics) RecordError(ctx context.Context, stage string) {
	m.errors.Add(ctx, 1, stageAttr(stage))
}
