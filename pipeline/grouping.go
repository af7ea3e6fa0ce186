package pipeline

import "github.com/kbukum/seqkit/compare"

// GroupBy groups the values of p by key. Groups come out in the order their
// key was first seen, members in arrival order. The zero key forms a group
// like any other.
func GroupBy[T any, K comparable](p *Pipeline[T], key func(T) K) *Pipeline[Grouping[K, T]] {
	return GroupByFunc(p, key, compare.Default[K]())
}

// GroupByFunc groups the values of p by key, comparing keys with eq.
func GroupByFunc[T, K any](p *Pipeline[T], key func(T) K, eq compare.Equality[K]) *Pipeline[Grouping[K, T]] {
	return newPipeline("group_by", func() Iterator[Grouping[K, T]] {
		return &groupIter[T, K, T, Grouping[K, T]]{
			source: p.open(),
			key:    key,
			elem:   identity[T],
			result: func(k K, items []T) Grouping[K, T] { return Grouping[K, T]{Key: k, Items: items} },
			eq:     eq,
		}
	})
}

// GroupBySelect groups the values of p by key, projects each member with
// elem and each group with result.
func GroupBySelect[T any, K comparable, E, R any](p *Pipeline[T], key func(T) K, elem func(T) E, result func(K, []E) R) *Pipeline[R] {
	return newPipeline("group_by_select", func() Iterator[R] {
		return &groupIter[T, K, E, R]{source: p.open(), key: key, elem: elem, result: result, eq: compare.Default[K]()}
	})
}

type groupIter[T, K, E, R any] struct {
	source Iterator[T]
	key    func(T) K
	elem   func(T) E
	result func(K, []E) R
	eq     compare.Equality[K]
	groups []Grouping[K, E]
	pos    int
	state  bufferState
}

func (it *groupIter[T, K, E, R]) Next() (R, bool, error) {
	var zero R
	switch it.state {
	case stateNotStarted:
		it.state = stateBuffering
		table, err := buildLookup(it.source, it.key, it.elem, it.eq)
		if err != nil {
			it.state = stateClosed
			return zero, false, err
		}
		it.groups = table.groups
		it.state = stateReady
	case stateReady:
	default:
		return zero, false, nil
	}
	if it.pos >= len(it.groups) {
		return zero, false, nil
	}
	g := it.groups[it.pos]
	it.pos++
	return it.result(g.Key, g.Items), true, nil
}

func (it *groupIter[T, K, E, R]) Close() error {
	prev := it.state
	it.state = stateClosed
	it.groups = nil
	if prev == stateNotStarted || prev == stateBuffering {
		return it.source.Close()
	}
	return nil
}
