package pipeline

import (
	"fmt"

	"github.com/kbukum/seqkit/errors"
)

// Map transforms each value using fn. The result reports the upstream count
// and copies by projecting the upstream's contiguous data.
func Map[I, O any](p *Pipeline[I], fn func(I) O) *Pipeline[O] {
	return newPipeline("map", func() Iterator[O] {
		return &mapIter[I, O]{source: p.open(), fn: fn}
	})
}

// TryMap transforms each value using a fallible fn. The first error stops
// iteration and is returned unchanged.
func TryMap[I, O any](p *Pipeline[I], fn func(I) (O, error)) *Pipeline[O] {
	return newPipeline("try_map", func() Iterator[O] {
		return &tryMapIter[I, O]{source: p.open(), fn: fn}
	})
}

// MapIndexed transforms each value using fn, which also receives the
// zero-based position of the value.
func MapIndexed[I, O any](p *Pipeline[I], fn func(int, I) O) *Pipeline[O] {
	return newPipeline("map_indexed", func() Iterator[O] {
		index := -1
		return &mapIter[I, O]{source: p.open(), fn: func(v I) O {
			index++
			return fn(index, v)
		}, sequential: true}
	})
}

// Filter keeps only values that satisfy the predicate.
func Filter[T any](p *Pipeline[T], fn func(T) bool) *Pipeline[T] {
	return newPipeline("filter", func() Iterator[T] {
		return &filterIter[T]{source: p.open(), fn: func(v T) (bool, error) {
			return fn(v), nil
		}}
	})
}

// TryFilter keeps only values for which fn reports true. The first error
// stops iteration and is returned unchanged.
func TryFilter[T any](p *Pipeline[T], fn func(T) (bool, error)) *Pipeline[T] {
	return newPipeline("try_filter", func() Iterator[T] {
		return &filterIter[T]{source: p.open(), fn: fn}
	})
}

// FilterIndexed keeps only values that satisfy the predicate, which also
// receives the zero-based position of the value in the upstream.
func FilterIndexed[T any](p *Pipeline[T], fn func(int, T) bool) *Pipeline[T] {
	return newPipeline("filter_indexed", func() Iterator[T] {
		index := -1
		return &filterIter[T]{source: p.open(), fn: func(v T) (bool, error) {
			index++
			return fn(index, v), nil
		}}
	})
}

// Tap calls fn as a side-effect for each value, then passes the value through unchanged.
// Use for logging, metrics, or assertions in the middle of a pipeline.
func Tap[T any](p *Pipeline[T], fn func(T) error) *Pipeline[T] {
	return newPipeline("tap", func() Iterator[T] {
		return &tapIter[T]{source: p.open(), fn: fn}
	})
}

// OfType keeps the values whose dynamic type is U and yields them as U.
func OfType[T, U any](p *Pipeline[T]) *Pipeline[U] {
	return newPipeline("of_type", func() Iterator[U] {
		return &castIter[T, U]{source: p.open(), skip: true}
	})
}

// Cast converts every value to U. A value of another dynamic type fails the
// pull with ErrInvalidCast.
func Cast[T, U any](p *Pipeline[T]) *Pipeline[U] {
	return newPipeline("cast", func() Iterator[U] {
		return &castIter[T, U]{source: p.open()}
	})
}

// Indexed pairs a value with its zero-based position.
type Indexed[T any] struct {
	Index int
	Value T
}

// WithIndex pairs every value with its position.
func WithIndex[T any](p *Pipeline[T]) *Pipeline[Indexed[T]] {
	return newPipeline("index", func() Iterator[Indexed[T]] {
		index := -1
		return &mapIter[T, Indexed[T]]{source: p.open(), fn: func(v T) Indexed[T] {
			index++
			return Indexed[T]{Index: index, Value: v}
		}, sequential: true}
	})
}

// Concat joins multiple pipelines sequentially.
// All values from the first pipeline are yielded before the second, etc.
func Concat[T any](pipelines ...*Pipeline[T]) *Pipeline[T] {
	return newPipeline("concat", func() Iterator[T] {
		iters := make([]Iterator[T], len(pipelines))
		for i, p := range pipelines {
			iters[i] = p.open()
		}
		return &concatIter[T]{iters: iters}
	})
}

// Append yields the values of p followed by value.
func Append[T any](p *Pipeline[T], value T) *Pipeline[T] {
	return newPipeline("append", func() Iterator[T] {
		return &concatIter[T]{iters: []Iterator[T]{p.open(), &sliceIter[T]{items: []T{value}}}}
	})
}

// Prepend yields value followed by the values of p.
func Prepend[T any](p *Pipeline[T], value T) *Pipeline[T] {
	return newPipeline("prepend", func() Iterator[T] {
		return &concatIter[T]{iters: []Iterator[T]{&sliceIter[T]{items: []T{value}}, p.open()}}
	})
}

// DefaultIfEmpty yields the values of p, or value alone when p is empty.
func DefaultIfEmpty[T any](p *Pipeline[T], value T) *Pipeline[T] {
	return newPipeline("default_if_empty", func() Iterator[T] {
		return &defaultIter[T]{source: p.open(), value: value}
	})
}

// TakeWhile yields values until fn first reports false.
func TakeWhile[T any](p *Pipeline[T], fn func(T) bool) *Pipeline[T] {
	return newPipeline("take_while", func() Iterator[T] {
		return &takeWhileIter[T]{source: p.open(), fn: fn}
	})
}

// SkipWhile drops values until fn first reports false, then yields the rest.
func SkipWhile[T any](p *Pipeline[T], fn func(T) bool) *Pipeline[T] {
	return newPipeline("skip_while", func() Iterator[T] {
		return &skipWhileIter[T]{source: p.open(), fn: fn}
	})
}

// Reduce accumulates all values into a single result.
// The pipeline yields exactly one value: the final accumulator.
func Reduce[T, R any](p *Pipeline[T], init R, fn func(R, T) R) *Pipeline[R] {
	return newPipeline("reduce", func() Iterator[R] {
		return &reduceIter[T, R]{source: p.open(), acc: init, fn: fn}
	})
}

// --- Iterator implementations ---

type mapIter[I, O any] struct {
	source Iterator[I]
	fn     func(I) O
	// sequential projections depend on pull order and cannot copy out of band.
	sequential bool
}

func (it *mapIter[I, O]) Next() (O, bool, error) {
	val, ok, err := it.source.Next()
	if err != nil || !ok {
		var zero O
		return zero, false, err
	}
	return it.fn(val), true, nil
}

func (it *mapIter[I, O]) Count() (int, bool) { return TryCount(it.source) }

func (it *mapIter[I, O]) CopyTo(dst []O, offset int) (int, bool) {
	if it.sequential {
		return 0, false
	}
	span, ok := TrySpan(it.source)
	if !ok {
		tmp := make([]I, len(dst))
		n, ok := TryCopyTo(it.source, tmp, offset)
		if !ok {
			return 0, false
		}
		span, offset = tmp[:n], 0
	}
	if offset < 0 || offset > len(span) {
		return 0, false
	}
	n := min(len(dst), len(span)-offset)
	for i := 0; i < n; i++ {
		dst[i] = it.fn(span[offset+i])
	}
	return n, true
}

func (it *mapIter[I, O]) Close() error { return it.source.Close() }

type tryMapIter[I, O any] struct {
	source Iterator[I]
	fn     func(I) (O, error)
}

func (it *tryMapIter[I, O]) Next() (O, bool, error) {
	val, ok, err := it.source.Next()
	if err != nil || !ok {
		var zero O
		return zero, false, err
	}
	out, err := it.fn(val)
	if err != nil {
		var zero O
		return zero, false, err
	}
	return out, true, nil
}

func (it *tryMapIter[I, O]) Count() (int, bool) { return TryCount(it.source) }

func (it *tryMapIter[I, O]) Close() error { return it.source.Close() }

type filterIter[T any] struct {
	source Iterator[T]
	fn     func(T) (bool, error)
}

func (it *filterIter[T]) Next() (T, bool, error) {
	for {
		val, ok, err := it.source.Next()
		if err != nil || !ok {
			var zero T
			return zero, false, err
		}
		keep, err := it.fn(val)
		if err != nil {
			var zero T
			return zero, false, err
		}
		if keep {
			return val, true, nil
		}
	}
}

func (it *filterIter[T]) Close() error { return it.source.Close() }

type tapIter[T any] struct {
	source Iterator[T]
	fn     func(T) error
}

func (it *tapIter[T]) Next() (T, bool, error) {
	val, ok, err := it.source.Next()
	if err != nil || !ok {
		return val, ok, err
	}
	if err := it.fn(val); err != nil {
		var zero T
		return zero, false, err
	}
	return val, true, nil
}

func (it *tapIter[T]) Count() (int, bool) { return TryCount(it.source) }

func (it *tapIter[T]) Close() error { return it.source.Close() }

type castIter[T, U any] struct {
	source Iterator[T]
	skip   bool
}

func (it *castIter[T, U]) Next() (U, bool, error) {
	for {
		val, ok, err := it.source.Next()
		if err != nil || !ok {
			var zero U
			return zero, false, err
		}
		if out, ok := any(val).(U); ok {
			return out, true, nil
		}
		if !it.skip {
			var zero U
			return zero, false, errors.InvalidCast(fmt.Sprintf("%T", val), fmt.Sprintf("%T", zero))
		}
	}
}

func (it *castIter[T, U]) Close() error { return it.source.Close() }

type concatIter[T any] struct {
	iters []Iterator[T]
	index int
}

func (it *concatIter[T]) Next() (T, bool, error) {
	for it.index < len(it.iters) {
		val, ok, err := it.iters[it.index].Next()
		if err != nil {
			return val, false, err
		}
		if ok {
			return val, true, nil
		}
		it.index++
	}
	var zero T
	return zero, false, nil
}

func (it *concatIter[T]) Count() (int, bool) {
	total := 0
	for _, src := range it.iters[it.index:] {
		n, ok := TryCount(src)
		if !ok {
			return 0, false
		}
		total += n
	}
	return total, true
}

func (it *concatIter[T]) CopyTo(dst []T, offset int) (int, bool) {
	total, ok := it.Count()
	if !ok || offset > total {
		return 0, false
	}
	written := 0
	for _, src := range it.iters[it.index:] {
		if written == len(dst) {
			break
		}
		n, _ := TryCount(src)
		if offset >= n {
			offset -= n
			continue
		}
		c, ok := TryCopyTo(src, dst[written:], offset)
		if !ok {
			return 0, false
		}
		written += c
		offset = 0
	}
	return written, true
}

func (it *concatIter[T]) Close() error {
	var firstErr error
	for _, iter := range it.iters {
		if err := iter.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type defaultIter[T any] struct {
	source  Iterator[T]
	value   T
	started bool
}

func (it *defaultIter[T]) Next() (T, bool, error) {
	if !it.started {
		it.started = true
		val, ok, err := it.source.Next()
		if err != nil {
			return val, false, err
		}
		if ok {
			return val, true, nil
		}
		return it.value, true, nil
	}
	return it.source.Next()
}

func (it *defaultIter[T]) Count() (int, bool) {
	n, ok := TryCount(it.source)
	if ok && n == 0 && !it.started {
		return 1, true
	}
	return n, ok
}

func (it *defaultIter[T]) Close() error { return it.source.Close() }

type takeWhileIter[T any] struct {
	source Iterator[T]
	fn     func(T) bool
	done   bool
}

func (it *takeWhileIter[T]) Next() (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	val, ok, err := it.source.Next()
	if err != nil || !ok {
		return zero, false, err
	}
	if !it.fn(val) {
		it.done = true
		return zero, false, nil
	}
	return val, true, nil
}

func (it *takeWhileIter[T]) Close() error { return it.source.Close() }

type skipWhileIter[T any] struct {
	source  Iterator[T]
	fn      func(T) bool
	yielded bool
}

func (it *skipWhileIter[T]) Next() (T, bool, error) {
	for {
		val, ok, err := it.source.Next()
		if err != nil || !ok {
			var zero T
			return zero, false, err
		}
		if it.yielded || !it.fn(val) {
			it.yielded = true
			return val, true, nil
		}
	}
}

func (it *skipWhileIter[T]) Close() error { return it.source.Close() }

type reduceIter[T, R any] struct {
	source Iterator[T]
	acc    R
	fn     func(R, T) R
	done   bool
}

func (it *reduceIter[T, R]) Next() (R, bool, error) {
	if it.done {
		var zero R
		return zero, false, nil
	}
	for {
		val, ok, err := it.source.Next()
		if err != nil {
			var zero R
			return zero, false, err
		}
		if !ok {
			it.done = true
			return it.acc, true, nil
		}
		it.acc = it.fn(it.acc, val)
	}
}

func (it *reduceIter[T, R]) Count() (int, bool) {
	if it.done {
		return 0, true
	}
	return 1, true
}

func (it *reduceIter[T, R]) Close() error {
	it.done = true
	return it.source.Close()
}
