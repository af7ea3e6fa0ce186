package collections

import (
	"cmp"
	"iter"
	"maps"
	"slices"

	"github.com/kbukum/seqkit/pipeline"
)

// FromMap yields the entries of m in Go's unspecified map order. The count
// is known; entries added during iteration may or may not be seen.
func FromMap[K comparable, V any](m map[K]V) *pipeline.Pipeline[Entry[K, V]] {
	return pipeline.FromFunc(func() pipeline.Iterator[Entry[K, V]] {
		return newPullIter(entries(maps.All(m)), len(m))
	})
}

// FromSortedMap yields the entries of m in ascending key order. The entries
// are collected when iteration starts, so the result offers a contiguous view.
func FromSortedMap[K cmp.Ordered, V any](m map[K]V) *pipeline.Pipeline[Entry[K, V]] {
	return pipeline.FromFunc(func() pipeline.Iterator[Entry[K, V]] {
		keys := slices.Sorted(maps.Keys(m))
		items := make([]Entry[K, V], len(keys))
		for i, k := range keys {
			items[i] = Entry[K, V]{Key: k, Value: m[k]}
		}
		return pipeline.FromSlice(items).Iter()
	})
}

func entries[K, V any](seq iter.Seq2[K, V]) iter.Seq[Entry[K, V]] {
	return func(yield func(Entry[K, V]) bool) {
		for k, v := range seq {
			if !yield(Entry[K, V]{Key: k, Value: v}) {
				return
			}
		}
	}
}

// pullIter pulls from a range-over-func sequence whose length is known up
// front. The pull is stopped on Close.
type pullIter[T any] struct {
	next      func() (T, bool)
	stop      func()
	remaining int
	closed    bool
}

func newPullIter[T any](seq iter.Seq[T], n int) *pullIter[T] {
	next, stop := iter.Pull(seq)
	return &pullIter[T]{next: next, stop: stop, remaining: n}
}

func (it *pullIter[T]) Next() (T, bool, error) {
	if it.closed {
		var zero T
		return zero, false, nil
	}
	v, ok := it.next()
	if !ok {
		it.remaining = 0
		return v, false, nil
	}
	it.remaining = max(it.remaining-1, 0)
	return v, true, nil
}

func (it *pullIter[T]) Count() (int, bool) { return it.remaining, true }

func (it *pullIter[T]) Close() error {
	if !it.closed {
		it.closed = true
		it.remaining = 0
		it.stop()
	}
	return nil
}
