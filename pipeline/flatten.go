package pipeline

// FlatMap transforms each value into a pipeline and flattens the results.
// At most one inner iterator is open at a time: each is closed before the
// next is opened, and the outer iterator is closed after the last inner.
func FlatMap[I, O any](p *Pipeline[I], fn func(I) *Pipeline[O]) *Pipeline[O] {
	return newPipeline("flat_map", func() Iterator[O] {
		return &flatMapIter[I, O, O]{source: p.open(), fn: fn, result: func(_ I, o O) O { return o }}
	})
}

// FlatMapWith flattens the collection produced for each value and projects
// every (value, element) pair with result.
func FlatMapWith[I, C, R any](p *Pipeline[I], collection func(I) *Pipeline[C], result func(I, C) R) *Pipeline[R] {
	return newPipeline("flat_map", func() Iterator[R] {
		return &flatMapIter[I, C, R]{source: p.open(), fn: collection, result: result}
	})
}

// FlatMapSlice transforms each value into a slice and flattens the results.
func FlatMapSlice[I, O any](p *Pipeline[I], fn func(I) []O) *Pipeline[O] {
	return FlatMap(p, func(v I) *Pipeline[O] { return FromSlice(fn(v)) })
}

type flatMapIter[I, C, R any] struct {
	source  Iterator[I]
	fn      func(I) *Pipeline[C]
	result  func(I, C) R
	outer   I
	current Iterator[C]
	done    bool
}

func (it *flatMapIter[I, C, R]) Next() (R, bool, error) {
	var zero R
	for !it.done {
		if it.current != nil {
			val, ok, err := it.current.Next()
			if err != nil {
				return zero, false, err
			}
			if ok {
				return it.result(it.outer, val), true, nil
			}
			err = it.current.Close()
			it.current = nil
			if err != nil {
				return zero, false, err
			}
		}
		in, ok, err := it.source.Next()
		if err != nil {
			return zero, false, err
		}
		if !ok {
			it.done = true
			return zero, false, it.source.Close()
		}
		it.outer = in
		it.current = it.fn(in).open()
	}
	return zero, false, nil
}

func (it *flatMapIter[I, C, R]) Close() error {
	it.done = true
	var innerErr error
	if it.current != nil {
		innerErr = it.current.Close()
		it.current = nil
	}
	if err := it.source.Close(); err != nil {
		return err
	}
	return innerErr
}
