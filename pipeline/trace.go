package pipeline

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/observability"
)

// Trace logs the lifecycle of every iterator opened from p at debug level:
// open, capability answers, exhaustion with the number of elements pulled,
// failures, and close. Capability queries pass through unchanged.
func Trace[T any](p *Pipeline[T], log *logger.Logger) *Pipeline[T] {
	return newPipeline(p.name, func() Iterator[T] {
		return newTracedIter(p.open(), p.name, log, nil)
	})
}

type telemetry struct {
	tracer  trace.Tracer
	metrics *observability.CursorMetrics
}

// observe wraps it for stage with the tracing and telemetry installed by
// Configure. With neither installed it is returned as is.
func observe[T any](stage string, it Iterator[T]) Iterator[T] {
	log, tel := currentTracer(), currentTelemetry()
	if log == nil && tel == nil {
		return it
	}
	if log == nil {
		log = logger.NewNop()
	}
	return newTracedIter(it, stage, log, tel)
}

type tracedIter[T any] struct {
	source    Iterator[T]
	stage     string
	log       *logger.Logger
	tel       *telemetry
	ctx       context.Context
	span      trace.Span
	pulled    int
	exhausted bool
	closed    bool
}

func newTracedIter[T any](source Iterator[T], stage string, log *logger.Logger, tel *telemetry) *tracedIter[T] {
	id := uuid.NewString()
	it := &tracedIter[T]{source: source, stage: stage, log: log.WithStage(stage).WithCursor(id), tel: tel}
	if tel != nil {
		// Cursors outlive any caller context, so each span is a root.
		it.ctx, it.span = tel.tracer.Start(context.Background(), "pipeline."+stage,
			trace.WithAttributes(
				attribute.String(observability.AttrStage, stage),
				attribute.String(observability.AttrCursorID, id),
			),
		)
		tel.metrics.RecordOpen(it.ctx, stage)
	}
	it.log.Debug("cursor opened")
	return it
}

func (it *tracedIter[T]) fail(op string, err error) {
	it.log.Debug(op+" failed", logger.ErrorFields(op, err))
	if it.tel != nil {
		it.span.RecordError(err)
		it.span.SetStatus(codes.Error, err.Error())
		it.tel.metrics.RecordError(it.ctx, it.stage)
	}
}

func (it *tracedIter[T]) fastPath(kind string, n int) {
	it.log.Debug(kind+" fast path", logger.Fields(logger.FieldFastPath, kind, logger.FieldElements, n))
	if it.tel != nil {
		it.tel.metrics.RecordFastPath(it.ctx, it.stage, kind)
	}
}

func (it *tracedIter[T]) Next() (T, bool, error) {
	val, ok, err := it.source.Next()
	if err != nil {
		it.fail("pull", err)
		return val, false, err
	}
	if ok {
		it.pulled++
		return val, true, nil
	}
	if !it.exhausted {
		it.exhausted = true
		it.log.Debug("cursor exhausted", logger.Fields(logger.FieldElements, it.pulled))
		if it.tel != nil {
			it.span.AddEvent("exhausted", trace.WithAttributes(attribute.Int(observability.AttrElements, it.pulled)))
		}
	}
	return val, false, nil
}

func (it *tracedIter[T]) Count() (int, bool) {
	n, ok := TryCount(it.source)
	it.log.Debug("count queried", logger.Fields("known", ok, "count", n))
	return n, ok
}

func (it *tracedIter[T]) Span() ([]T, bool) {
	s, ok := TrySpan(it.source)
	if ok {
		it.fastPath(observability.FastPathSpan, len(s))
	}
	return s, ok
}

func (it *tracedIter[T]) CopyTo(dst []T, offset int) (int, bool) {
	n, ok := TryCopyTo(it.source, dst, offset)
	if ok {
		it.fastPath(observability.FastPathCopy, n)
	}
	return n, ok
}

func (it *tracedIter[T]) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	err := it.source.Close()
	if err != nil {
		it.fail("close", err)
	}
	it.log.Debug("cursor closed", logger.Fields(logger.FieldElements, it.pulled))
	if it.tel != nil {
		it.span.SetAttributes(attribute.Int(observability.AttrElements, it.pulled))
		it.span.End()
		it.tel.metrics.RecordClose(it.ctx, it.stage, it.pulled)
	}
	return err
}
