package pipeline

import (
	"slices"

	"github.com/emirpasic/gods/queues/circularbuffer"
)

// Take yields at most the first n values of p. A non-positive n yields
// nothing without opening p.
func Take[T any](p *Pipeline[T], n int) *Pipeline[T] {
	if n <= 0 {
		return Empty[T]()
	}
	return newPipeline("take", func() Iterator[T] {
		return &takeIter[T]{source: p.open(), remaining: n}
	})
}

// Skip drops the first n values of p and yields the rest. A non-positive n
// skips nothing.
func Skip[T any](p *Pipeline[T], n int) *Pipeline[T] {
	if n <= 0 {
		return p
	}
	return newPipeline("skip", func() Iterator[T] {
		return &skipIter[T]{source: p.open(), toSkip: n}
	})
}

// TakeLast yields the last n values of p. Unless p can report its elements
// directly, the values are held in a ring of up to n while p is consumed.
func TakeLast[T any](p *Pipeline[T], n int) *Pipeline[T] {
	if n <= 0 {
		return Empty[T]()
	}
	return newPipeline("take_last", func() Iterator[T] {
		return &takeLastIter[T]{bufferedIter: bufferedIter[T]{source: p.open(), load: func(src Iterator[T]) ([]T, error) {
			return lastN(src, n)
		}}, n: n}
	})
}

// SkipLast yields all but the last n values of p, streaming through a ring
// of up to n.
func SkipLast[T any](p *Pipeline[T], n int) *Pipeline[T] {
	if n <= 0 {
		return p
	}
	return newPipeline("skip_last", func() Iterator[T] {
		return &skipLastIter[T]{source: p.open(), n: n}
	})
}

// Index is a position counted from the start or from the end of a sequence.
type Index struct {
	value   int
	fromEnd bool
}

// FromStart returns the index i counted from the first element. Negative
// values are treated as zero.
func FromStart(i int) Index { return Index{value: max(i, 0)} }

// FromEnd returns the index i counted back from one past the last element,
// so FromEnd(0) is the end of the sequence. Negative values are treated as
// zero.
func FromEnd(i int) Index { return Index{value: max(i, 0), fromEnd: true} }

// resolve converts the index into an absolute position in a sequence of n
// elements, clamped to [0, n].
func (i Index) resolve(n int) int {
	if i.fromEnd {
		return max(n-i.value, 0)
	}
	return min(i.value, n)
}

// TakeRange yields the values of p whose position lies in [start, end).
func TakeRange[T any](p *Pipeline[T], start, end Index) *Pipeline[T] {
	return newPipeline("take_range", func() Iterator[T] {
		return &takeRangeIter[T]{source: p.open(), start: start, end: end}
	})
}

// lastN consumes it and returns its final n elements, using the span or a
// copy when the iterator offers one.
func lastN[T any](it Iterator[T], n int) ([]T, error) {
	if span, ok := TrySpan(it); ok {
		return slices.Clone(span[max(len(span)-n, 0):]), nil
	}
	if c, ok := TryCount(it); ok {
		k := min(c, n)
		buf := make([]T, k)
		if m, ok := TryCopyTo(it, buf, c-k); ok && m == k {
			return buf, nil
		}
	}
	items, _, err := tail(it, n)
	return items, err
}

// tail pulls it to the end through a ring of at most n and returns the final
// elements together with the total number pulled.
func tail[T any](it Iterator[T], n int) ([]T, int, error) {
	window := newRingWindow[T](n)
	total := 0
	for {
		val, ok, err := it.Next()
		if err != nil {
			return nil, total, err
		}
		if !ok {
			break
		}
		total++
		window.push(val)
	}
	return window.drain(), total, nil
}

// ringWindow holds the most recent values up to limit. Its backing circular buffer
// starts small and doubles until it reaches limit, so a large limit over a
// short sequence costs only what was pulled.
type ringWindow[T any] struct {
	queue *circularbuffer.Queue
	limit int
}

func newRingWindow[T any](limit int) *ringWindow[T] {
	return &ringWindow[T]{queue: circularbuffer.New(max(min(limit, bufferCapacity()), 1)), limit: limit}
}

// push appends val. Once limit values are held, the oldest is displaced and
// returned.
func (r *ringWindow[T]) push(val T) (T, bool) {
	if r.queue.Full() {
		size := r.queue.Size()
		if size >= r.limit {
			oldest, _ := r.queue.Dequeue()
			r.queue.Enqueue(val)
			return oldest.(T), true
		}
		grown := circularbuffer.New(min(size*2, r.limit))
		for !r.queue.Empty() {
			v, _ := r.queue.Dequeue()
			grown.Enqueue(v)
		}
		r.queue = grown
	}
	r.queue.Enqueue(val)
	var zero T
	return zero, false
}

// drain empties the ring oldest first.
func (r *ringWindow[T]) drain() []T {
	items := make([]T, 0, r.queue.Size())
	for !r.queue.Empty() {
		v, _ := r.queue.Dequeue()
		items = append(items, v.(T))
	}
	return items
}

func (r *ringWindow[T]) clear() { r.queue.Clear() }

type takeIter[T any] struct {
	source    Iterator[T]
	remaining int
}

func (it *takeIter[T]) Next() (T, bool, error) {
	if it.remaining <= 0 {
		var zero T
		return zero, false, nil
	}
	val, ok, err := it.source.Next()
	if err != nil || !ok {
		it.remaining = 0
		return val, false, err
	}
	it.remaining--
	return val, true, nil
}

func (it *takeIter[T]) Count() (int, bool) {
	n, ok := TryCount(it.source)
	if !ok {
		return 0, false
	}
	return min(n, it.remaining), true
}

func (it *takeIter[T]) Span() ([]T, bool) {
	span, ok := TrySpan(it.source)
	if !ok {
		return nil, false
	}
	return span[:min(len(span), it.remaining)], true
}

func (it *takeIter[T]) CopyTo(dst []T, offset int) (int, bool) {
	if offset < 0 || offset > it.remaining {
		return 0, false
	}
	if n, ok := TryCount(it.source); ok && offset > n {
		return 0, false
	}
	dst = dst[:min(len(dst), it.remaining-offset)]
	return TryCopyTo(it.source, dst, offset)
}

func (it *takeIter[T]) Close() error {
	it.remaining = 0
	return it.source.Close()
}

type skipIter[T any] struct {
	source Iterator[T]
	toSkip int
	// done is set when a known count showed nothing survives the skip.
	done bool
}

func (it *skipIter[T]) Next() (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	if it.toSkip > 0 {
		if n, ok := TryCount(it.source); ok && n <= it.toSkip {
			it.toSkip = 0
			it.done = true
			return zero, false, nil
		}
	}
	for it.toSkip > 0 {
		it.toSkip--
		_, ok, err := it.source.Next()
		if err != nil {
			return zero, false, err
		}
		if !ok {
			it.toSkip = 0
			return zero, false, nil
		}
	}
	return it.source.Next()
}

func (it *skipIter[T]) Count() (int, bool) {
	if it.done {
		return 0, true
	}
	n, ok := TryCount(it.source)
	if !ok {
		return 0, false
	}
	return max(n-it.toSkip, 0), true
}

func (it *skipIter[T]) Span() ([]T, bool) {
	if it.done {
		return nil, true
	}
	span, ok := TrySpan(it.source)
	if !ok {
		return nil, false
	}
	return span[min(len(span), it.toSkip):], true
}

func (it *skipIter[T]) CopyTo(dst []T, offset int) (int, bool) {
	if it.done {
		return copySpan[T](nil, dst, offset)
	}
	if n, ok := TryCount(it.source); ok && n <= it.toSkip {
		return copySpan[T](nil, dst, offset)
	}
	return TryCopyTo(it.source, dst, offset+it.toSkip)
}

func (it *skipIter[T]) Close() error {
	it.done = true
	return it.source.Close()
}

type takeLastIter[T any] struct {
	bufferedIter[T]
	n int
}

func (it *takeLastIter[T]) Count() (int, bool) {
	if it.state == stateNotStarted {
		c, ok := TryCount(it.source)
		return min(c, it.n), ok
	}
	return it.bufferedIter.Count()
}

type skipLastIter[T any] struct {
	source Iterator[T]
	n      int
	// take is set when the upstream count was known at the first pull.
	take *takeIter[T]
	ring *ringWindow[T]
}

// window reports the bounded view of the upstream while no element is held
// in the ring.
func (it *skipLastIter[T]) window() (*takeIter[T], bool) {
	if it.take != nil {
		return it.take, true
	}
	if it.ring != nil {
		return nil, false
	}
	c, ok := TryCount(it.source)
	if !ok {
		return nil, false
	}
	return &takeIter[T]{source: it.source, remaining: max(c-it.n, 0)}, true
}

func (it *skipLastIter[T]) Next() (T, bool, error) {
	if it.take == nil && it.ring == nil {
		if w, ok := it.window(); ok {
			it.take = w
		} else {
			it.ring = newRingWindow[T](it.n)
		}
	}
	if it.take != nil {
		return it.take.Next()
	}
	for {
		val, ok, err := it.source.Next()
		if err != nil || !ok {
			return val, false, err
		}
		if oldest, ok := it.ring.push(val); ok {
			return oldest, true, nil
		}
	}
}

func (it *skipLastIter[T]) Count() (int, bool) {
	if w, ok := it.window(); ok {
		return w.Count()
	}
	return 0, false
}

func (it *skipLastIter[T]) Span() ([]T, bool) {
	if w, ok := it.window(); ok {
		return w.Span()
	}
	return nil, false
}

func (it *skipLastIter[T]) CopyTo(dst []T, offset int) (int, bool) {
	if w, ok := it.window(); ok {
		return w.CopyTo(dst, offset)
	}
	return 0, false
}

func (it *skipLastIter[T]) Close() error {
	if it.ring != nil {
		it.ring.clear()
	}
	return it.source.Close()
}

type takeRangeIter[T any] struct {
	source     Iterator[T]
	start, end Index
	inner      Iterator[T]
}

// resolve picks the cheapest strategy for the range. With a known count both
// indices become absolute; otherwise from-start bounds stream and a
// from-end start buffers the tail.
func (it *takeRangeIter[T]) resolve() error {
	if c, ok := TryCount(it.source); ok {
		it.inner = it.absolute(c)
		return nil
	}
	switch {
	case !it.start.fromEnd && !it.end.fromEnd:
		it.inner = &takeIter[T]{
			source:    &skipIter[T]{source: it.source, toSkip: it.start.value},
			remaining: max(it.end.value-it.start.value, 0),
		}
	case !it.start.fromEnd:
		var inner Iterator[T] = &skipIter[T]{source: it.source, toSkip: it.start.value}
		if it.end.value > 0 {
			inner = &skipLastIter[T]{source: inner, n: it.end.value}
		}
		it.inner = inner
	case it.start.value == 0:
		it.inner = &sliceIter[T]{}
		return it.source.Close()
	default:
		items, total, err := tail(it.source, it.start.value)
		closeErr := it.source.Close()
		it.inner = &sliceIter[T]{}
		if err != nil {
			return err
		}
		if closeErr != nil {
			return closeErr
		}
		first := total - len(items)
		hi := min(max(it.end.resolve(total)-first, 0), len(items))
		it.inner = &sliceIter[T]{items: items[:hi]}
	}
	return nil
}

func (it *takeRangeIter[T]) absolute(n int) Iterator[T] {
	lo, hi := it.start.resolve(n), it.end.resolve(n)
	return &takeIter[T]{
		source:    &skipIter[T]{source: it.source, toSkip: lo},
		remaining: max(hi-lo, 0),
	}
}

func (it *takeRangeIter[T]) Next() (T, bool, error) {
	if it.inner == nil {
		if err := it.resolve(); err != nil {
			var zero T
			return zero, false, err
		}
	}
	return it.inner.Next()
}

func (it *takeRangeIter[T]) view() (Iterator[T], bool) {
	if it.inner != nil {
		return it.inner, true
	}
	if c, ok := TryCount(it.source); ok {
		return it.absolute(c), true
	}
	return nil, false
}

func (it *takeRangeIter[T]) Count() (int, bool) {
	if v, ok := it.view(); ok {
		return TryCount(v)
	}
	return 0, false
}

func (it *takeRangeIter[T]) Span() ([]T, bool) {
	if v, ok := it.view(); ok {
		return TrySpan(v)
	}
	return nil, false
}

func (it *takeRangeIter[T]) CopyTo(dst []T, offset int) (int, bool) {
	if v, ok := it.view(); ok {
		return TryCopyTo(v, dst, offset)
	}
	return 0, false
}

func (it *takeRangeIter[T]) Close() error {
	if it.inner != nil {
		return it.inner.Close()
	}
	return it.source.Close()
}
