package pipeline

import "io"

// Pair holds two values pulled in lockstep.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple holds three values pulled in lockstep.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Zip pairs the values of a and b in lockstep, stopping when either runs out.
func Zip[A, B any](a *Pipeline[A], b *Pipeline[B]) *Pipeline[Pair[A, B]] {
	return ZipWith(a, b, func(x A, y B) Pair[A, B] { return Pair[A, B]{First: x, Second: y} })
}

// ZipWith combines the values of a and b in lockstep with fn.
func ZipWith[A, B, R any](a *Pipeline[A], b *Pipeline[B], fn func(A, B) R) *Pipeline[R] {
	return newPipeline("zip", func() Iterator[R] {
		return &zipIter[A, B, R]{a: a.open(), b: b.open(), fn: fn}
	})
}

// Zip3 combines the values of a, b and c in lockstep, stopping when any of
// them runs out.
func Zip3[A, B, C any](a *Pipeline[A], b *Pipeline[B], c *Pipeline[C]) *Pipeline[Triple[A, B, C]] {
	return newPipeline("zip3", func() Iterator[Triple[A, B, C]] {
		return &zip3Iter[A, B, C]{a: a.open(), b: b.open(), c: c.open()}
	})
}

type zipIter[A, B, R any] struct {
	a    Iterator[A]
	b    Iterator[B]
	fn   func(A, B) R
	done bool
}

func (it *zipIter[A, B, R]) Next() (R, bool, error) {
	var zero R
	if it.done {
		return zero, false, nil
	}
	x, ok, err := it.a.Next()
	if err != nil || !ok {
		it.done = err == nil
		return zero, false, err
	}
	y, ok, err := it.b.Next()
	if err != nil || !ok {
		it.done = err == nil
		return zero, false, err
	}
	return it.fn(x, y), true, nil
}

func (it *zipIter[A, B, R]) Count() (int, bool) {
	if it.done {
		return 0, true
	}
	n, ok := TryCount(it.a)
	m, mok := TryCount(it.b)
	if !ok || !mok {
		return 0, false
	}
	return min(n, m), true
}

func (it *zipIter[A, B, R]) Close() error {
	it.done = true
	return closeAll(it.a, it.b)
}

type zip3Iter[A, B, C any] struct {
	a    Iterator[A]
	b    Iterator[B]
	c    Iterator[C]
	done bool
}

func (it *zip3Iter[A, B, C]) Next() (Triple[A, B, C], bool, error) {
	var zero Triple[A, B, C]
	if it.done {
		return zero, false, nil
	}
	x, ok, err := it.a.Next()
	if err != nil || !ok {
		it.done = err == nil
		return zero, false, err
	}
	y, ok, err := it.b.Next()
	if err != nil || !ok {
		it.done = err == nil
		return zero, false, err
	}
	z, ok, err := it.c.Next()
	if err != nil || !ok {
		it.done = err == nil
		return zero, false, err
	}
	return Triple[A, B, C]{First: x, Second: y, Third: z}, true, nil
}

func (it *zip3Iter[A, B, C]) Count() (int, bool) {
	if it.done {
		return 0, true
	}
	n, ok := TryCount(it.a)
	m, mok := TryCount(it.b)
	k, kok := TryCount(it.c)
	if !ok || !mok || !kok {
		return 0, false
	}
	return min(n, m, k), true
}

func (it *zip3Iter[A, B, C]) Close() error {
	it.done = true
	return closeAll(it.a, it.b, it.c)
}

// closeAll closes every closer, returning the first error.
func closeAll(closers ...io.Closer) error {
	var firstErr error
	for _, c := range closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
