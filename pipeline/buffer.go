package pipeline

import "slices"

// bufferState tracks a buffering stage through its single fill.
type bufferState int

const (
	stateNotStarted bufferState = iota
	stateBuffering
	stateReady
	stateClosed
)

// drain copies every remaining element of it into a new slice, negotiating
// count, then span, then copy, and pulling only as a last resort. It does
// not close it.
func drain[T any](it Iterator[T]) ([]T, error) {
	n, counted := TryCount(it)
	if counted && n == 0 {
		return nil, nil
	}
	if span, ok := TrySpan(it); ok {
		return slices.Clone(span), nil
	}
	if counted {
		buf := make([]T, n)
		if c, ok := TryCopyTo(it, buf, 0); ok && c == n {
			return buf, nil
		}
		return pull(it, buf[:0])
	}
	return pull(it, make([]T, 0, bufferCapacity()))
}

// pull appends every remaining element of it to buf. On error it returns the
// elements pulled so far with the error.
func pull[T any](it Iterator[T], buf []T) ([]T, error) {
	for {
		val, ok, err := it.Next()
		if err != nil {
			return buf, err
		}
		if !ok {
			return buf, nil
		}
		buf = append(buf, val)
	}
}

// bufferedIter fills itself from source on first demand with load (drain
// when nil), hands the elements to build, and then yields build's result.
// The source is closed as soon as it has been loaded.
type bufferedIter[T any] struct {
	source Iterator[T]
	load   func(Iterator[T]) ([]T, error)
	build  func([]T) []T
	items  []T
	pos    int
	state  bufferState
	err    error
}

func (it *bufferedIter[T]) fill() error {
	switch it.state {
	case stateNotStarted:
	case stateBuffering, stateReady, stateClosed:
		return it.err
	}
	it.state = stateBuffering
	load := it.load
	if load == nil {
		load = drain[T]
	}
	items, err := load(it.source)
	closeErr := it.source.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		it.err = err
		it.state = stateClosed
		return err
	}
	if len(items) > 0 && it.build != nil {
		items = it.build(items)
	}
	it.items = items
	it.state = stateReady
	return nil
}

func (it *bufferedIter[T]) Next() (T, bool, error) {
	var zero T
	if err := it.fill(); err != nil {
		it.err = nil
		return zero, false, err
	}
	if it.state != stateReady || it.pos >= len(it.items) {
		return zero, false, nil
	}
	val := it.items[it.pos]
	it.pos++
	return val, true, nil
}

func (it *bufferedIter[T]) Count() (int, bool) {
	switch it.state {
	case stateNotStarted:
		return TryCount(it.source)
	case stateReady:
		return len(it.items) - it.pos, true
	default:
		return 0, it.state == stateClosed
	}
}

func (it *bufferedIter[T]) Span() ([]T, bool) {
	if it.state != stateReady {
		return nil, false
	}
	return it.items[it.pos:], true
}

func (it *bufferedIter[T]) CopyTo(dst []T, offset int) (int, bool) {
	if it.state != stateReady {
		return 0, false
	}
	return copySpan(it.items[it.pos:], dst, offset)
}

func (it *bufferedIter[T]) Close() error {
	prev := it.state
	it.state = stateClosed
	it.items = nil
	if prev == stateNotStarted || prev == stateBuffering {
		return it.source.Close()
	}
	return nil
}
