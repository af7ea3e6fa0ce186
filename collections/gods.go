package collections

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/lists/doublylinkedlist"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/queues/circularbuffer"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/pipeline"
)

// Entry is a key/value pair read from a map-like collection.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// FromList walks a doubly linked list from head to tail. Elements that are
// not of type T fail the pull with ErrInvalidCast.
func FromList[T any](l *doublylinkedlist.List) *pipeline.Pipeline[T] {
	return pipeline.FromFunc(func() pipeline.Iterator[T] {
		iter := l.Iterator()
		return &valuesIter[T]{next: iter.Next, value: iter.Value, remaining: l.Size()}
	})
}

// FromArrayList walks an array list in index order.
func FromArrayList[T any](l *arraylist.List) *pipeline.Pipeline[T] {
	return pipeline.FromFunc(func() pipeline.Iterator[T] {
		iter := l.Iterator()
		return &valuesIter[T]{next: iter.Next, value: iter.Value, remaining: l.Size()}
	})
}

// FromCircularBuffer walks a circular buffer from its oldest element to its
// newest without dequeuing anything.
func FromCircularBuffer[T any](q *circularbuffer.Queue) *pipeline.Pipeline[T] {
	return pipeline.FromFunc(func() pipeline.Iterator[T] {
		iter := q.Iterator()
		return &valuesIter[T]{next: iter.Next, value: iter.Value, remaining: q.Size()}
	})
}

// FromLinkedMap walks a linked hash map in insertion order.
func FromLinkedMap[K, V any](m *linkedhashmap.Map) *pipeline.Pipeline[Entry[K, V]] {
	return pipeline.FromFunc(func() pipeline.Iterator[Entry[K, V]] {
		iter := m.Iterator()
		return &valuesIter[Entry[K, V]]{
			next: iter.Next,
			value: func() interface{} {
				k, ok := iter.Key().(K)
				if !ok {
					return iter.Key()
				}
				v, ok := iter.Value().(V)
				if !ok {
					return iter.Value()
				}
				return Entry[K, V]{Key: k, Value: v}
			},
			remaining: m.Size(),
		}
	})
}

// valuesIter drives a gods container iterator through its Next and Value
// method values.
type valuesIter[T any] struct {
	next      func() bool
	value     func() interface{}
	remaining int
	closed    bool
}

func (it *valuesIter[T]) Next() (T, bool, error) {
	var zero T
	if it.closed || !it.next() {
		it.remaining = 0
		return zero, false, nil
	}
	it.remaining--
	raw := it.value()
	v, ok := raw.(T)
	if !ok {
		return zero, false, errors.InvalidCast(fmt.Sprintf("%T", raw), fmt.Sprintf("%T", zero))
	}
	return v, true, nil
}

func (it *valuesIter[T]) Count() (int, bool) { return it.remaining, true }

func (it *valuesIter[T]) Close() error {
	it.closed = true
	it.remaining = 0
	return nil
}
