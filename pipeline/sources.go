package pipeline

// --- Source iterators ---

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next() (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Count() (int, bool) { return len(it.items) - it.index, true }

func (it *sliceIter[T]) Span() ([]T, bool) { return it.items[it.index:], true }

func (it *sliceIter[T]) CopyTo(dst []T, offset int) (int, bool) {
	return copySpan(it.items[it.index:], dst, offset)
}

// Close drops the backing slice so later pulls report exhaustion.
func (it *sliceIter[T]) Close() error {
	it.items = nil
	it.index = 0
	return nil
}

type rangeIter struct {
	next      int
	remaining int
}

func (it *rangeIter) Next() (int, bool, error) {
	if it.remaining <= 0 {
		return 0, false, nil
	}
	v := it.next
	it.remaining--
	if it.remaining > 0 {
		it.next++
	}
	return v, true, nil
}

func (it *rangeIter) Count() (int, bool) { return it.remaining, true }

func (it *rangeIter) CopyTo(dst []int, offset int) (int, bool) {
	if offset < 0 || offset > it.remaining {
		return 0, false
	}
	n := min(len(dst), it.remaining-offset)
	for i := 0; i < n; i++ {
		dst[i] = it.next + offset + i
	}
	return n, true
}

func (it *rangeIter) Close() error {
	it.remaining = 0
	return nil
}

type repeatIter[T any] struct {
	value     T
	remaining int
}

func (it *repeatIter[T]) Next() (T, bool, error) {
	if it.remaining <= 0 {
		var zero T
		return zero, false, nil
	}
	it.remaining--
	return it.value, true, nil
}

func (it *repeatIter[T]) Count() (int, bool) { return it.remaining, true }

func (it *repeatIter[T]) CopyTo(dst []T, offset int) (int, bool) {
	if offset > it.remaining {
		return 0, false
	}
	n := min(len(dst), it.remaining-offset)
	for i := 0; i < n; i++ {
		dst[i] = it.value
	}
	return n, true
}

func (it *repeatIter[T]) Close() error {
	it.remaining = 0
	return nil
}

type seqIter[T any] struct {
	next   func() (T, bool)
	stop   func()
	closed bool
}

func (it *seqIter[T]) Next() (T, bool, error) {
	if it.closed {
		var zero T
		return zero, false, nil
	}
	v, ok := it.next()
	return v, ok, nil
}

func (it *seqIter[T]) Close() error {
	if !it.closed {
		it.closed = true
		it.stop()
	}
	return nil
}

// copySpan copies span[offset:] into dst, the shared body of every
// span-backed CopyTo.
func copySpan[T any](span, dst []T, offset int) (int, bool) {
	if offset < 0 || offset > len(span) {
		return 0, false
	}
	return copy(dst, span[offset:]), true
}
