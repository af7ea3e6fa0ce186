package pipeline

import (
	"iter"
	"math"
)

// Iterator provides pull-based sequential access to a stream of values.
// Next after exhaustion or Close returns (zero, false, nil).
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next() (T, bool, error)
	// Close releases any resources held by the iterator and its upstream.
	// Calling Close more than once is a no-op.
	Close() error
}

// Counter is implemented by iterators that can report how many elements
// remain without consuming any of them.
type Counter interface {
	Count() (int, bool)
}

// Spanner is implemented by iterators whose remaining elements are already
// laid out in memory. The returned slice must not be modified.
type Spanner[T any] interface {
	Span() ([]T, bool)
}

// CopierTo is implemented by iterators that can copy remaining elements,
// starting offset elements in, into dst more cheaply than pulling them.
// CopyTo does not advance the iterator. It reports the number of elements
// written; ok is false when the copy is not supported or offset lies beyond
// the remaining elements.
type CopierTo[T any] interface {
	CopyTo(dst []T, offset int) (n int, ok bool)
}

// TryCount asks it for its remaining count.
func TryCount[T any](it Iterator[T]) (int, bool) {
	if c, ok := it.(Counter); ok {
		return c.Count()
	}
	return 0, false
}

// TrySpan asks it for a contiguous view of its remaining elements.
func TrySpan[T any](it Iterator[T]) ([]T, bool) {
	if s, ok := it.(Spanner[T]); ok {
		return s.Span()
	}
	return nil, false
}

// TryCopyTo asks it to copy its remaining elements into dst.
func TryCopyTo[T any](it Iterator[T], dst []T, offset int) (int, bool) {
	if offset < 0 {
		return 0, false
	}
	if c, ok := it.(CopierTo[T]); ok {
		return c.CopyTo(dst, offset)
	}
	return 0, false
}

// Pipeline represents a lazy, pull-based data pipeline.
// A Pipeline is an immutable definition: every call to Iter builds a fresh
// chain of iterators, so one definition can be iterated many times
// independently. Pipelines built with From wrap a live iterator and are
// single-use.
type Pipeline[T any] struct {
	name   string
	create func() Iterator[T]
	order  *sortChain[T]
}

// Ordered is a pipeline sorted by a chain of keys. It can be refined with
// ThenBy and used anywhere a *Pipeline is expected through its embedded field.
type Ordered[T any] struct {
	*Pipeline[T]
}

func newPipeline[T any](name string, create func() Iterator[T]) *Pipeline[T] {
	return &Pipeline[T]{name: name, create: create}
}

// Iter returns a fresh iterator for this pipeline. The caller must Close it.
func (p *Pipeline[T]) Iter() Iterator[T] {
	return p.open()
}

// Name returns the stage name of the outermost stage.
func (p *Pipeline[T]) Name() string { return p.name }

// open instantiates the stage, wrapping it with tracing and telemetry when
// configured.
func (p *Pipeline[T]) open() Iterator[T] {
	return observe(p.name, p.create())
}

// Values adapts the pipeline to a range-over-func sequence. Iteration stops
// at the first error, which is yielded with a zero value. Breaking out of the
// loop closes the underlying iterator.
func (p *Pipeline[T]) Values() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		it := p.open()
		defer it.Close()
		for {
			val, ok, err := it.Next()
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok || !yield(val, nil) {
				return
			}
		}
	}
}

// --- Constructors ---

// From creates a single-use pipeline from an existing Iterator.
func From[T any](it Iterator[T]) *Pipeline[T] {
	return newPipeline("from", func() Iterator[T] {
		return it
	})
}

// FromSlice creates a pipeline from a slice of values. Its iterators report
// count, span and copy capabilities.
func FromSlice[T any](items []T) *Pipeline[T] {
	return newPipeline("slice", func() Iterator[T] {
		return &sliceIter[T]{items: items}
	})
}

// Of creates a pipeline over the given values.
func Of[T any](values ...T) *Pipeline[T] {
	return FromSlice(values)
}

// Empty returns a pipeline with no elements.
func Empty[T any]() *Pipeline[T] {
	return newPipeline("empty", func() Iterator[T] {
		return &sliceIter[T]{}
	})
}

// FromFunc creates a pipeline from a factory that produces an Iterator.
func FromFunc[T any](fn func() Iterator[T]) *Pipeline[T] {
	return newPipeline("func", fn)
}

// FromSeq creates a pipeline from a range-over-func sequence. Each iterator
// pulls from its own iter.Pull instance, stopped on Close.
func FromSeq[T any](seq iter.Seq[T]) *Pipeline[T] {
	return newPipeline("seq", func() Iterator[T] {
		next, stop := iter.Pull(seq)
		return &seqIter[T]{next: next, stop: stop}
	})
}

// Range creates a pipeline of count consecutive integers starting at start.
// A non-positive count yields an empty pipeline. The sequence stops at
// math.MaxInt rather than wrapping.
func Range(start, count int) *Pipeline[int] {
	if count < 0 {
		count = 0
	}
	if start > 0 && count > 0 && count-1 > math.MaxInt-start {
		count = math.MaxInt - start + 1
	}
	return newPipeline("range", func() Iterator[int] {
		return &rangeIter{next: start, remaining: count}
	})
}

// Repeat creates a pipeline yielding value count times.
func Repeat[T any](value T, count int) *Pipeline[T] {
	if count < 0 {
		count = 0
	}
	return newPipeline("repeat", func() Iterator[T] {
		return &repeatIter[T]{value: value, remaining: count}
	})
}
