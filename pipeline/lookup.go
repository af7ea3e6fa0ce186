package pipeline

import "github.com/kbukum/seqkit/compare"

// Grouping is a key with the members that share it, in arrival order.
type Grouping[K, E any] struct {
	Key   K
	Items []E
}

// Lookup is an immutable one-to-many index built by ToLookup. Keys keep the
// order in which they were first seen.
type Lookup[K, E any] struct {
	table *lookupTable[K, E]
}

// Get returns the members stored under key. A missing key yields nil.
func (l *Lookup[K, E]) Get(key K) []E { return l.table.get(key) }

// Contains reports whether any element was stored under key.
func (l *Lookup[K, E]) Contains(key K) bool { return l.table.contains(key) }

// Len returns the number of distinct keys.
func (l *Lookup[K, E]) Len() int { return len(l.table.groups) }

// Keys returns the distinct keys in first-seen order.
func (l *Lookup[K, E]) Keys() []K {
	keys := make([]K, len(l.table.groups))
	for i, g := range l.table.groups {
		keys[i] = g.Key
	}
	return keys
}

// Groupings returns a pipeline over the groups in first-seen key order.
func (l *Lookup[K, E]) Groupings() *Pipeline[Grouping[K, E]] {
	return FromSlice(l.table.groups)
}

// ToLookup builds a Lookup of the values of p keyed by key.
func ToLookup[T any, K comparable](p *Pipeline[T], key func(T) K) (*Lookup[K, T], error) {
	return ToLookupFunc(p, key, compare.Default[K]())
}

// ToLookupFunc builds a Lookup of the values of p, comparing keys with eq.
func ToLookupFunc[T, K any](p *Pipeline[T], key func(T) K, eq compare.Equality[K]) (*Lookup[K, T], error) {
	table, err := buildLookup(p.open(), key, identity[T], eq)
	if err != nil {
		return nil, err
	}
	return &Lookup[K, T]{table: table}, nil
}

// buildLookup drains and closes source into a new table.
func buildLookup[T, K, E any](source Iterator[T], key func(T) K, elem func(T) E, eq compare.Equality[K]) (*lookupTable[K, E], error) {
	table := newLookupTable[K, E](eq)
	for {
		val, ok, err := source.Next()
		if err != nil {
			_ = source.Close()
			return nil, err
		}
		if !ok {
			break
		}
		table.add(key(val), elem(val))
	}
	if err := source.Close(); err != nil {
		return nil, err
	}
	return table, nil
}
