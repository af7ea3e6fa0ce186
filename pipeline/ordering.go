package pipeline

import (
	"cmp"
	"slices"

	"github.com/kbukum/seqkit/compare"
)

// sortLevel is one key of a sort descriptor chain.
type sortLevel[T any] interface {
	// bind evaluates the level's key once per element and returns a
	// comparator over element indices.
	bind(items []T) func(i, j int) int
}

type keyLevel[T, K any] struct {
	key  func(T) K
	cmp  func(a, b K) int
	desc bool
}

func (l keyLevel[T, K]) bind(items []T) func(i, j int) int {
	keys := make([]K, len(items))
	for i, v := range items {
		keys[i] = l.key(v)
	}
	if l.desc {
		return func(i, j int) int { return l.cmp(keys[j], keys[i]) }
	}
	return func(i, j int) int { return l.cmp(keys[i], keys[j]) }
}

// sortChain is the immutable descriptor of an ordered pipeline: its unsorted
// source and the keys to sort by, most significant first.
type sortChain[T any] struct {
	source *Pipeline[T]
	levels []sortLevel[T]
}

func (c *sortChain[T]) then(level sortLevel[T]) *sortChain[T] {
	levels := make([]sortLevel[T], 0, len(c.levels)+1)
	levels = append(levels, c.levels...)
	return &sortChain[T]{source: c.source, levels: append(levels, level)}
}

// comparator binds every level to items. Ties fall through to the original
// index so the resulting order is stable.
func (c *sortChain[T]) comparator(items []T) func(i, j int) int {
	cmps := make([]func(i, j int) int, len(c.levels))
	for i, level := range c.levels {
		cmps[i] = level.bind(items)
	}
	return func(i, j int) int {
		for _, f := range cmps {
			if r := f(i, j); r != 0 {
				return r
			}
		}
		return cmp.Compare(i, j)
	}
}

func (c *sortChain[T]) sort(items []T) []T {
	if len(items) < 2 {
		return items
	}
	compareIdx := c.comparator(items)
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	slices.SortFunc(idx, compareIdx)
	out := make([]T, len(items))
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}

// extreme returns the index of the first element in sorted order, or the
// last when last is set, with a single scan.
func (c *sortChain[T]) extreme(items []T, last bool) int {
	if len(items) < 2 {
		return 0
	}
	compareIdx := c.comparator(items)
	best := 0
	for i := 1; i < len(items); i++ {
		r := compareIdx(i, best)
		if (!last && r < 0) || (last && r > 0) {
			best = i
		}
	}
	return best
}

func (c *sortChain[T]) pipeline(name string) *Ordered[T] {
	p := newPipeline(name, func() Iterator[T] {
		return &bufferedIter[T]{source: c.source.open(), build: c.sort}
	})
	p.order = c
	return &Ordered[T]{Pipeline: p}
}

// OrderBy sorts p ascending by key. The sort is stable.
func OrderBy[T any, K cmp.Ordered](p *Pipeline[T], key func(T) K) *Ordered[T] {
	return OrderByFunc(p, key, cmp.Compare[K])
}

// OrderByDescending sorts p descending by key. Equal keys keep their
// original relative order.
func OrderByDescending[T any, K cmp.Ordered](p *Pipeline[T], key func(T) K) *Ordered[T] {
	chain := &sortChain[T]{source: p, levels: []sortLevel[T]{keyLevel[T, K]{key: key, cmp: cmp.Compare[K], desc: true}}}
	return chain.pipeline("order_by_descending")
}

// OrderByFunc sorts p by key using compareKeys.
func OrderByFunc[T, K any](p *Pipeline[T], key func(T) K, compareKeys func(a, b K) int) *Ordered[T] {
	chain := &sortChain[T]{source: p, levels: []sortLevel[T]{keyLevel[T, K]{key: key, cmp: compareKeys}}}
	return chain.pipeline("order_by")
}

// ThenBy refines o with a secondary ascending key.
func ThenBy[T any, K cmp.Ordered](o *Ordered[T], key func(T) K) *Ordered[T] {
	return ThenByFunc(o, key, cmp.Compare[K])
}

// ThenByDescending refines o with a secondary descending key.
func ThenByDescending[T any, K cmp.Ordered](o *Ordered[T], key func(T) K) *Ordered[T] {
	return o.order.then(keyLevel[T, K]{key: key, cmp: cmp.Compare[K], desc: true}).pipeline("then_by_descending")
}

// ThenByFunc refines o with a secondary key compared by compareKeys.
func ThenByFunc[T, K any](o *Ordered[T], key func(T) K, compareKeys func(a, b K) int) *Ordered[T] {
	return o.order.then(keyLevel[T, K]{key: key, cmp: compareKeys}).pipeline("then_by")
}

// Order sorts p ascending by its natural order.
func Order[T cmp.Ordered](p *Pipeline[T]) *Ordered[T] {
	return OrderByFunc(p, identity[T], cmp.Compare[T])
}

// OrderDescending sorts p descending by its natural order.
func OrderDescending[T cmp.Ordered](p *Pipeline[T]) *Ordered[T] {
	return OrderByFunc(p, identity[T], compare.Reverse(cmp.Compare[T]))
}

// OrderFunc sorts p using compareValues.
func OrderFunc[T any](p *Pipeline[T], compareValues func(a, b T) int) *Ordered[T] {
	return OrderByFunc(p, identity[T], compareValues)
}

// Reverse yields the values of p in reverse order. The whole upstream is
// buffered before the first value is produced.
func Reverse[T any](p *Pipeline[T]) *Pipeline[T] {
	return newPipeline("reverse", func() Iterator[T] {
		return &bufferedIter[T]{source: p.open(), build: func(items []T) []T {
			slices.Reverse(items)
			return items
		}}
	})
}

func identity[T any](v T) T { return v }
