package pipeline

import (
	"slices"

	"github.com/kbukum/seqkit/compare"
	"github.com/kbukum/seqkit/errors"
)

// Runnable is a terminal pipeline that has been bound to a sink but not yet run.
type Runnable struct {
	run func() error
}

// Run pulls the pipeline to completion.
func (r *Runnable) Run() error {
	return r.run()
}

// Drain creates a Runnable that pulls all values and sends each to sink.
func Drain[T any](p *Pipeline[T], sink func(T) error) *Runnable {
	return &Runnable{
		run: func() error {
			iter := p.open()
			defer iter.Close()
			for {
				val, ok, err := iter.Next()
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				if err := sink(val); err != nil {
					return err
				}
			}
		},
	}
}

// ForEach pulls all values and calls fn for each. Convenience wrapper around Drain.
func ForEach[T any](p *Pipeline[T], fn func(T) error) error {
	return Drain(p, fn).Run()
}

// Collect runs the pipeline and returns all values as a slice. On error the
// values pulled before the failure are returned with it.
func Collect[T any](p *Pipeline[T]) ([]T, error) {
	iter := p.open()
	defer iter.Close()
	return drain(iter)
}

// ToMap runs the pipeline into a map. Two values with the same key fail
// with ErrDuplicateKey.
func ToMap[T any, K comparable, V any](p *Pipeline[T], key func(T) K, value func(T) V) (map[K]V, error) {
	iter := p.open()
	defer iter.Close()
	n, _ := TryCount(iter)
	result := make(map[K]V, n)
	for {
		val, ok, err := iter.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return result, nil
		}
		k := key(val)
		if _, exists := result[k]; exists {
			return nil, errors.DuplicateKey(k)
		}
		result[k] = value(val)
	}
}

// CountOf returns the number of values in p, without pulling when the count
// is already known.
func CountOf[T any](p *Pipeline[T]) (int, error) {
	iter := p.open()
	defer iter.Close()
	if n, ok := TryCount(iter); ok {
		return n, nil
	}
	n := 0
	for {
		_, ok, err := iter.Next()
		if err != nil {
			return n, err
		}
		if !ok {
			return n, nil
		}
		n++
	}
}

// Any reports whether p has at least one value.
func Any[T any](p *Pipeline[T]) (bool, error) {
	iter := p.open()
	defer iter.Close()
	if n, ok := TryCount(iter); ok {
		return n > 0, nil
	}
	_, ok, err := iter.Next()
	return ok, err
}

// AnyFunc reports whether any value of p satisfies fn.
func AnyFunc[T any](p *Pipeline[T], fn func(T) bool) (bool, error) {
	iter := p.open()
	defer iter.Close()
	for {
		val, ok, err := iter.Next()
		if err != nil || !ok {
			return false, err
		}
		if fn(val) {
			return true, nil
		}
	}
}

// All reports whether every value of p satisfies fn. It is true for an
// empty pipeline.
func All[T any](p *Pipeline[T], fn func(T) bool) (bool, error) {
	found, err := AnyFunc(p, func(v T) bool { return !fn(v) })
	return !found && err == nil, err
}

// Contains reports whether p holds value.
func Contains[T comparable](p *Pipeline[T], value T) (bool, error) {
	iter := p.open()
	defer iter.Close()
	if span, ok := TrySpan(iter); ok {
		return slices.Contains(span, value), nil
	}
	for {
		val, ok, err := iter.Next()
		if err != nil || !ok {
			return false, err
		}
		if val == value {
			return true, nil
		}
	}
}

// ContainsFunc reports whether p holds a value equal to value under eq.
func ContainsFunc[T any](p *Pipeline[T], value T, eq compare.Equality[T]) (bool, error) {
	return AnyFunc(p, func(v T) bool { return eq.Equal(v, value) })
}

// SequenceEqual reports whether a and b hold equal values in the same order.
func SequenceEqual[T comparable](a, b *Pipeline[T]) (bool, error) {
	return sequenceEqual(a, b, func(x, y T) bool { return x == y })
}

// SequenceEqualFunc is SequenceEqual with values compared by eq.
func SequenceEqualFunc[T any](a, b *Pipeline[T], eq func(x, y T) bool) (bool, error) {
	return sequenceEqual(a, b, eq)
}

func sequenceEqual[T any](a, b *Pipeline[T], eq func(x, y T) bool) (bool, error) {
	ai, bi := a.open(), b.open()
	defer closeAll(ai, bi)
	if n, ok := TryCount(ai); ok {
		if m, ok := TryCount(bi); ok && n != m {
			return false, nil
		}
	}
	if as, ok := TrySpan(ai); ok {
		if bs, ok := TrySpan(bi); ok {
			return slices.EqualFunc(as, bs, eq), nil
		}
	}
	for {
		x, aok, err := ai.Next()
		if err != nil {
			return false, err
		}
		y, bok, err := bi.Next()
		if err != nil {
			return false, err
		}
		if aok != bok {
			return false, nil
		}
		if !aok {
			return true, nil
		}
		if !eq(x, y) {
			return false, nil
		}
	}
}

// First returns the first value of p, or ErrEmptySequence. On a sorted
// pipeline the smallest value is found with one scan instead of a full sort.
func First[T any](p *Pipeline[T]) (T, error) {
	val, ok, err := first(p)
	if err == nil && !ok {
		err = errors.EmptySequence("first")
	}
	return val, err
}

// FirstOrDefault returns the first value of p, or def when p is empty.
func FirstOrDefault[T any](p *Pipeline[T], def T) (T, error) {
	val, ok, err := first(p)
	if err != nil || !ok {
		return def, err
	}
	return val, nil
}

// Last returns the last value of p, or ErrEmptySequence.
func Last[T any](p *Pipeline[T]) (T, error) {
	val, ok, err := last(p)
	if err == nil && !ok {
		err = errors.EmptySequence("last")
	}
	return val, err
}

// LastOrDefault returns the last value of p, or def when p is empty.
func LastOrDefault[T any](p *Pipeline[T], def T) (T, error) {
	val, ok, err := last(p)
	if err != nil || !ok {
		return def, err
	}
	return val, nil
}

// Single returns the only value of p. It fails with ErrEmptySequence when p
// is empty and with ErrMoreThanOne when p holds several values.
func Single[T any](p *Pipeline[T]) (T, error) {
	val, n, err := single(p)
	if err != nil {
		return val, err
	}
	switch n {
	case 0:
		return val, errors.EmptySequence("single")
	case 1:
		return val, nil
	default:
		var zero T
		return zero, errors.MoreThanOne("single")
	}
}

// SingleOrDefault returns the only value of p, or def when p is empty. It
// fails with ErrMoreThanOne when p holds several values.
func SingleOrDefault[T any](p *Pipeline[T], def T) (T, error) {
	val, n, err := single(p)
	if err != nil {
		return def, err
	}
	switch n {
	case 0:
		return def, nil
	case 1:
		return val, nil
	default:
		return def, errors.MoreThanOne("single_or_default")
	}
}

// ElementAt returns the value at position index, or ErrOutOfRange.
func ElementAt[T any](p *Pipeline[T], index int) (T, error) {
	val, ok, err := elementAt(p, index)
	if err == nil && !ok {
		err = errors.OutOfRange(index)
	}
	return val, err
}

// ElementAtOrDefault returns the value at position index, or def when p is
// shorter.
func ElementAtOrDefault[T any](p *Pipeline[T], index int, def T) (T, error) {
	val, ok, err := elementAt(p, index)
	if err != nil || !ok {
		return def, err
	}
	return val, nil
}

func first[T any](p *Pipeline[T]) (T, bool, error) {
	if p.order != nil {
		return orderedExtreme(p, false)
	}
	iter := p.open()
	defer iter.Close()
	if span, ok := TrySpan(iter); ok {
		if len(span) == 0 {
			var zero T
			return zero, false, nil
		}
		return span[0], true, nil
	}
	return iter.Next()
}

func last[T any](p *Pipeline[T]) (T, bool, error) {
	if p.order != nil {
		return orderedExtreme(p, true)
	}
	iter := p.open()
	defer iter.Close()
	var result T
	if span, ok := TrySpan(iter); ok {
		if len(span) == 0 {
			return result, false, nil
		}
		return span[len(span)-1], true, nil
	}
	if n, ok := TryCount(iter); ok {
		if n == 0 {
			return result, false, nil
		}
		buf := make([]T, 1)
		if c, ok := TryCopyTo(iter, buf, n-1); ok && c == 1 {
			return buf[0], true, nil
		}
	}
	found := false
	for {
		val, ok, err := iter.Next()
		if err != nil {
			var zero T
			return zero, false, err
		}
		if !ok {
			return result, found, nil
		}
		result, found = val, true
	}
}

// orderedExtreme buffers the unsorted source of the ordered pipeline p and
// selects its first or last element in sorted order without sorting. The
// buffering cursor is observed under p's stage name.
func orderedExtreme[T any](p *Pipeline[T], wantLast bool) (T, bool, error) {
	chain := p.order
	iter := observe(p.name, chain.source.open())
	defer iter.Close()
	items, err := drain(iter)
	if err != nil || len(items) == 0 {
		var zero T
		return zero, false, err
	}
	return items[chain.extreme(items, wantLast)], true, nil
}

// single returns the first value of p and how many values were seen, up to two.
func single[T any](p *Pipeline[T]) (T, int, error) {
	iter := p.open()
	defer iter.Close()
	var zero T
	if n, ok := TryCount(iter); ok && n > 1 {
		return zero, n, nil
	}
	val, ok, err := iter.Next()
	if err != nil || !ok {
		return zero, 0, err
	}
	_, more, err := iter.Next()
	if err != nil {
		return zero, 0, err
	}
	if more {
		return zero, 2, nil
	}
	return val, 1, nil
}

func elementAt[T any](p *Pipeline[T], index int) (T, bool, error) {
	var zero T
	if index < 0 {
		return zero, false, nil
	}
	iter := p.open()
	defer iter.Close()
	if span, ok := TrySpan(iter); ok {
		if index >= len(span) {
			return zero, false, nil
		}
		return span[index], true, nil
	}
	if n, ok := TryCount(iter); ok {
		if index >= n {
			return zero, false, nil
		}
		buf := make([]T, 1)
		if c, ok := TryCopyTo(iter, buf, index); ok && c == 1 {
			return buf[0], true, nil
		}
	}
	for i := 0; ; i++ {
		val, ok, err := iter.Next()
		if err != nil || !ok {
			return zero, false, err
		}
		if i == index {
			return val, true, nil
		}
	}
}
