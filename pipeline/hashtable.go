package pipeline

import "github.com/kbukum/seqkit/compare"

// lookupTable maps keys to member lists, keeping groups in first-seen key
// order and members in insertion order.
type lookupTable[K, E any] struct {
	eq      compare.Equality[K]
	buckets map[uint64][]int
	groups  []Grouping[K, E]
}

func newLookupTable[K, E any](eq compare.Equality[K]) *lookupTable[K, E] {
	return &lookupTable[K, E]{eq: eq, buckets: make(map[uint64][]int)}
}

func (t *lookupTable[K, E]) find(key K, h uint64) int {
	for _, g := range t.buckets[h] {
		if t.eq.Equal(t.groups[g].Key, key) {
			return g
		}
	}
	return -1
}

func (t *lookupTable[K, E]) add(key K, elem E) {
	h := t.eq.Hash(key)
	g := t.find(key, h)
	if g < 0 {
		g = len(t.groups)
		t.groups = append(t.groups, Grouping[K, E]{Key: key})
		t.buckets[h] = append(t.buckets[h], g)
	}
	t.groups[g].Items = append(t.groups[g].Items, elem)
}

// get returns the members stored under key, or nil.
func (t *lookupTable[K, E]) get(key K) []E {
	if g := t.find(key, t.eq.Hash(key)); g >= 0 {
		return t.groups[g].Items
	}
	return nil
}

func (t *lookupTable[K, E]) contains(key K) bool {
	return t.find(key, t.eq.Hash(key)) >= 0
}

// keySet is a hash set over an arbitrary Equality.
type keySet[K any] struct {
	eq      compare.Equality[K]
	buckets map[uint64][]K
	size    int
}

func newKeySet[K any](eq compare.Equality[K]) *keySet[K] {
	return &keySet[K]{eq: eq, buckets: make(map[uint64][]K)}
}

// add inserts key and reports whether it was absent.
func (s *keySet[K]) add(key K) bool {
	h := s.eq.Hash(key)
	for _, k := range s.buckets[h] {
		if s.eq.Equal(k, key) {
			return false
		}
	}
	s.buckets[h] = append(s.buckets[h], key)
	s.size++
	return true
}

func (s *keySet[K]) contains(key K) bool {
	for _, k := range s.buckets[s.eq.Hash(key)] {
		if s.eq.Equal(k, key) {
			return true
		}
	}
	return false
}

// remove deletes key and reports whether it was present.
func (s *keySet[K]) remove(key K) bool {
	h := s.eq.Hash(key)
	bucket := s.buckets[h]
	for i, k := range bucket {
		if s.eq.Equal(k, key) {
			bucket[i] = bucket[len(bucket)-1]
			bucket = bucket[:len(bucket)-1]
			if len(bucket) == 0 {
				delete(s.buckets, h)
			} else {
				s.buckets[h] = bucket
			}
			s.size--
			return true
		}
	}
	return false
}

func (s *keySet[K]) len() int { return s.size }
