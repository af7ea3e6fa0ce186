package pipeline

import "github.com/kbukum/seqkit/compare"

// Distinct yields the first occurrence of every value of p.
func Distinct[T comparable](p *Pipeline[T]) *Pipeline[T] {
	return DistinctByFunc(p, identity[T], compare.Default[T]())
}

// DistinctFunc yields the first occurrence of every value of p under eq.
func DistinctFunc[T any](p *Pipeline[T], eq compare.Equality[T]) *Pipeline[T] {
	return DistinctByFunc(p, identity[T], eq)
}

// DistinctBy yields the first value of p for every distinct key.
func DistinctBy[T any, K comparable](p *Pipeline[T], key func(T) K) *Pipeline[T] {
	return DistinctByFunc(p, key, compare.Default[K]())
}

// DistinctByFunc yields the first value of p for every key distinct under eq.
func DistinctByFunc[T, K any](p *Pipeline[T], key func(T) K, eq compare.Equality[K]) *Pipeline[T] {
	return newPipeline("distinct", func() Iterator[T] {
		return &setIter[T, K]{source: p.open(), key: key, eq: eq, mode: modeDistinct}
	})
}

// Union yields the distinct values of first followed by the distinct values
// of second not already seen.
func Union[T comparable](first, second *Pipeline[T]) *Pipeline[T] {
	return UnionByFunc(first, second, identity[T], compare.Default[T]())
}

// UnionFunc is Union under eq.
func UnionFunc[T any](first, second *Pipeline[T], eq compare.Equality[T]) *Pipeline[T] {
	return UnionByFunc(first, second, identity[T], eq)
}

// UnionBy is Union with values identified by key.
func UnionBy[T any, K comparable](first, second *Pipeline[T], key func(T) K) *Pipeline[T] {
	return UnionByFunc(first, second, key, compare.Default[K]())
}

// UnionByFunc is Union with values identified by key and keys compared by eq.
func UnionByFunc[T, K any](first, second *Pipeline[T], key func(T) K, eq compare.Equality[K]) *Pipeline[T] {
	return newPipeline("union", func() Iterator[T] {
		source := &concatIter[T]{iters: []Iterator[T]{first.open(), second.open()}}
		return &setIter[T, K]{source: source, key: key, eq: eq, mode: modeDistinct}
	})
}

// Intersect yields the distinct values of first that also occur in second,
// in the order of first.
func Intersect[T comparable](first, second *Pipeline[T]) *Pipeline[T] {
	return IntersectByFunc(first, second, identity[T], compare.Default[T]())
}

// IntersectFunc is Intersect under eq.
func IntersectFunc[T any](first, second *Pipeline[T], eq compare.Equality[T]) *Pipeline[T] {
	return IntersectByFunc(first, second, identity[T], eq)
}

// IntersectBy yields the first value of first for every key that occurs in keys.
func IntersectBy[T any, K comparable](first *Pipeline[T], keys *Pipeline[K], key func(T) K) *Pipeline[T] {
	return IntersectByFunc(first, keys, key, compare.Default[K]())
}

// IntersectByFunc is IntersectBy with keys compared by eq.
func IntersectByFunc[T, K any](first *Pipeline[T], keys *Pipeline[K], key func(T) K, eq compare.Equality[K]) *Pipeline[T] {
	return newPipeline("intersect", func() Iterator[T] {
		return &setIter[T, K]{source: first.open(), other: keys, key: key, eq: eq, mode: modeIntersect}
	})
}

// Except yields the distinct values of first that do not occur in second.
func Except[T comparable](first, second *Pipeline[T]) *Pipeline[T] {
	return ExceptByFunc(first, second, identity[T], compare.Default[T]())
}

// ExceptFunc is Except under eq.
func ExceptFunc[T any](first, second *Pipeline[T], eq compare.Equality[T]) *Pipeline[T] {
	return ExceptByFunc(first, second, identity[T], eq)
}

// ExceptBy yields the first value of first for every key absent from keys.
func ExceptBy[T any, K comparable](first *Pipeline[T], keys *Pipeline[K], key func(T) K) *Pipeline[T] {
	return ExceptByFunc(first, keys, key, compare.Default[K]())
}

// ExceptByFunc is ExceptBy with keys compared by eq.
func ExceptByFunc[T, K any](first *Pipeline[T], keys *Pipeline[K], key func(T) K, eq compare.Equality[K]) *Pipeline[T] {
	return newPipeline("except", func() Iterator[T] {
		return &setIter[T, K]{source: first.open(), other: keys, key: key, eq: eq, mode: modeExcept}
	})
}

type setMode int

const (
	// modeDistinct emits a value when its key is added to the set.
	modeDistinct setMode = iota
	// modeExcept seeds the set from other, then behaves like modeDistinct.
	modeExcept
	// modeIntersect seeds the set from other and emits a value when its key
	// is removed from the set.
	modeIntersect
)

type setIter[T, K any] struct {
	source  Iterator[T]
	other   *Pipeline[K]
	otherIt Iterator[K]
	key     func(T) K
	eq      compare.Equality[K]
	mode    setMode
	seen    *keySet[K]
	done    bool
}

func (it *setIter[T, K]) seed() error {
	it.seen = newKeySet(it.eq)
	if it.other == nil {
		return nil
	}
	it.otherIt = it.other.open()
	for {
		k, ok, err := it.otherIt.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		it.seen.add(k)
	}
	err := it.otherIt.Close()
	it.otherIt = nil
	return err
}

func (it *setIter[T, K]) Next() (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	if it.seen == nil {
		if err := it.seed(); err != nil {
			it.done = true
			return zero, false, err
		}
	}
	for {
		if it.mode == modeIntersect && it.seen.len() == 0 {
			it.done = true
			return zero, false, nil
		}
		val, ok, err := it.source.Next()
		if err != nil || !ok {
			return zero, false, err
		}
		k := it.key(val)
		if it.mode == modeIntersect {
			if it.seen.remove(k) {
				return val, true, nil
			}
			continue
		}
		if it.seen.add(k) {
			return val, true, nil
		}
	}
}

func (it *setIter[T, K]) Close() error {
	it.done = true
	var otherErr error
	if it.otherIt != nil {
		otherErr = it.otherIt.Close()
	}
	if err := it.source.Close(); err != nil {
		return err
	}
	return otherErr
}
