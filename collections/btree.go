package collections

import (
	"github.com/google/btree"

	"github.com/kbukum/seqkit/pipeline"
)

// FromBTree yields the items of t in ascending order.
func FromBTree[T any](t *btree.BTreeG[T]) *pipeline.Pipeline[T] {
	return pipeline.FromFunc(func() pipeline.Iterator[T] {
		return newPullIter(func(yield func(T) bool) {
			t.Ascend(func(item T) bool { return yield(item) })
		}, t.Len())
	})
}

// FromBTreeRange yields the items of t in [greaterOrEqual, lessThan) in
// ascending order. The count of a range is not known in advance.
func FromBTreeRange[T any](t *btree.BTreeG[T], greaterOrEqual, lessThan T) *pipeline.Pipeline[T] {
	return pipeline.FromFunc(func() pipeline.Iterator[T] {
		return pipeline.FromSeq(func(yield func(T) bool) {
			t.AscendRange(greaterOrEqual, lessThan, func(item T) bool { return yield(item) })
		}).Iter()
	})
}
