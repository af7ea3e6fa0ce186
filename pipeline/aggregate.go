package pipeline

import (
	"cmp"

	"golang.org/x/exp/constraints"

	"github.com/kbukum/seqkit/errors"
)

// Number is the set of element types Sum and Average accept.
type Number interface {
	constraints.Integer | constraints.Float
}

// Fold accumulates every value of p into init with fn.
func Fold[T, R any](p *Pipeline[T], init R, fn func(R, T) R) (R, error) {
	iter := p.open()
	defer iter.Close()
	acc := init
	if span, ok := TrySpan(iter); ok {
		for _, v := range span {
			acc = fn(acc, v)
		}
		return acc, nil
	}
	for {
		val, ok, err := iter.Next()
		if err != nil {
			return acc, err
		}
		if !ok {
			return acc, nil
		}
		acc = fn(acc, val)
	}
}

// Sum adds up the values of p. An empty pipeline sums to zero.
func Sum[T Number](p *Pipeline[T]) (T, error) {
	return Fold(p, T(0), func(acc, v T) T { return acc + v })
}

// Average returns the arithmetic mean of p, or ErrEmptySequence.
func Average[T Number](p *Pipeline[T]) (float64, error) {
	r, err := Fold(p, mean{}, func(acc mean, v T) mean {
		return mean{sum: acc.sum + float64(v), n: acc.n + 1}
	})
	if err != nil {
		return 0, err
	}
	if r.n == 0 {
		return 0, errors.EmptySequence("average")
	}
	return r.sum / float64(r.n), nil
}

// Min returns the smallest value of p, or ErrEmptySequence. Among equal
// values the first wins.
func Min[T cmp.Ordered](p *Pipeline[T]) (T, error) {
	return extremeBy(p, identity[T], cmp.Compare[T], false, "min")
}

// Max returns the largest value of p, or ErrEmptySequence. Among equal
// values the first wins.
func Max[T cmp.Ordered](p *Pipeline[T]) (T, error) {
	return extremeBy(p, identity[T], cmp.Compare[T], true, "max")
}

// MinBy returns the value of p with the smallest key.
func MinBy[T any, K cmp.Ordered](p *Pipeline[T], key func(T) K) (T, error) {
	return extremeBy(p, key, cmp.Compare[K], false, "min_by")
}

// MaxBy returns the value of p with the largest key.
func MaxBy[T any, K cmp.Ordered](p *Pipeline[T], key func(T) K) (T, error) {
	return extremeBy(p, key, cmp.Compare[K], true, "max_by")
}

// MinFunc returns the smallest value of p under compareValues.
func MinFunc[T any](p *Pipeline[T], compareValues func(a, b T) int) (T, error) {
	return extremeBy(p, identity[T], compareValues, false, "min")
}

// MaxFunc returns the largest value of p under compareValues.
func MaxFunc[T any](p *Pipeline[T], compareValues func(a, b T) int) (T, error) {
	return extremeBy(p, identity[T], compareValues, true, "max")
}

func extremeBy[T, K any](p *Pipeline[T], key func(T) K, compareKeys func(a, b K) int, largest bool, op string) (T, error) {
	r, err := Fold(p, best[T, K]{}, func(acc best[T, K], v T) best[T, K] {
		k := key(v)
		if !acc.found {
			return best[T, K]{val: v, key: k, found: true}
		}
		c := compareKeys(k, acc.key)
		if (largest && c > 0) || (!largest && c < 0) {
			return best[T, K]{val: v, key: k, found: true}
		}
		return acc
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if !r.found {
		return r.val, errors.EmptySequence(op)
	}
	return r.val, nil
}

type mean struct {
	sum float64
	n   int
}

type best[T, K any] struct {
	val   T
	key   K
	found bool
}
