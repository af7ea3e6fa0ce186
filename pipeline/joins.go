package pipeline

import "github.com/kbukum/seqkit/compare"

// Join correlates outer and inner on equal keys and yields result for every
// matching pair, in outer order and then inner order. The inner pipeline is
// buffered into a hash table on the first pull and closed right after.
func Join[O, I any, K comparable, R any](outer *Pipeline[O], inner *Pipeline[I], outerKey func(O) K, innerKey func(I) K, result func(O, I) R) *Pipeline[R] {
	return JoinFunc(outer, inner, outerKey, innerKey, result, compare.Default[K]())
}

// JoinFunc is Join with keys compared by eq.
func JoinFunc[O, I, K, R any](outer *Pipeline[O], inner *Pipeline[I], outerKey func(O) K, innerKey func(I) K, result func(O, I) R, eq compare.Equality[K]) *Pipeline[R] {
	return newPipeline("join", func() Iterator[R] {
		return &joinIter[O, I, K, R]{driver: outer.open(), buffered: inner, driverKey: outerKey, bufferedKey: innerKey, emit: result, eq: eq}
	})
}

// LeftJoin is Join that also yields every outer value without a match once,
// paired with the zero inner value.
func LeftJoin[O, I any, K comparable, R any](outer *Pipeline[O], inner *Pipeline[I], outerKey func(O) K, innerKey func(I) K, result func(O, I) R) *Pipeline[R] {
	return LeftJoinFunc(outer, inner, outerKey, innerKey, result, compare.Default[K]())
}

// LeftJoinFunc is LeftJoin with keys compared by eq.
func LeftJoinFunc[O, I, K, R any](outer *Pipeline[O], inner *Pipeline[I], outerKey func(O) K, innerKey func(I) K, result func(O, I) R, eq compare.Equality[K]) *Pipeline[R] {
	return newPipeline("left_join", func() Iterator[R] {
		return &joinIter[O, I, K, R]{driver: outer.open(), buffered: inner, driverKey: outerKey, bufferedKey: innerKey, emit: result, eq: eq, keepUnmatched: true}
	})
}

// RightJoin mirrors LeftJoin: the outer pipeline is buffered by key and the
// inner pipeline drives, so every inner value appears at least once. Inner
// values without a match are paired with the zero outer value.
func RightJoin[O, I any, K comparable, R any](outer *Pipeline[O], inner *Pipeline[I], outerKey func(O) K, innerKey func(I) K, result func(O, I) R) *Pipeline[R] {
	return RightJoinFunc(outer, inner, outerKey, innerKey, result, compare.Default[K]())
}

// RightJoinFunc is RightJoin with keys compared by eq.
func RightJoinFunc[O, I, K, R any](outer *Pipeline[O], inner *Pipeline[I], outerKey func(O) K, innerKey func(I) K, result func(O, I) R, eq compare.Equality[K]) *Pipeline[R] {
	return newPipeline("right_join", func() Iterator[R] {
		return &joinIter[I, O, K, R]{
			driver:        inner.open(),
			buffered:      outer,
			driverKey:     innerKey,
			bufferedKey:   outerKey,
			emit:          func(i I, o O) R { return result(o, i) },
			eq:            eq,
			keepUnmatched: true,
		}
	})
}

// GroupJoin yields result once per outer value with the (possibly empty)
// slice of inner values sharing its key.
func GroupJoin[O, I any, K comparable, R any](outer *Pipeline[O], inner *Pipeline[I], outerKey func(O) K, innerKey func(I) K, result func(O, []I) R) *Pipeline[R] {
	return GroupJoinFunc(outer, inner, outerKey, innerKey, result, compare.Default[K]())
}

// GroupJoinFunc is GroupJoin with keys compared by eq.
func GroupJoinFunc[O, I, K, R any](outer *Pipeline[O], inner *Pipeline[I], outerKey func(O) K, innerKey func(I) K, result func(O, []I) R, eq compare.Equality[K]) *Pipeline[R] {
	return newPipeline("group_join", func() Iterator[R] {
		return &groupJoinIter[O, I, K, R]{outer: outer.open(), inner: inner, outerKey: outerKey, innerKey: innerKey, result: result, eq: eq}
	})
}

// joinIter streams the driving side against a hash table of the buffered
// side. The buffered side is opened only once the driver has produced a value.
type joinIter[D, B, K, R any] struct {
	driver        Iterator[D]
	buffered      *Pipeline[B]
	bufferedIt    Iterator[B]
	driverKey     func(D) K
	bufferedKey   func(B) K
	emit          func(D, B) R
	eq            compare.Equality[K]
	keepUnmatched bool

	table   *lookupTable[K, B]
	current D
	matches []B
	pos     int
	done    bool
}

func (it *joinIter[D, B, K, R]) build() error {
	it.bufferedIt = it.buffered.open()
	table, err := buildLookup(it.bufferedIt, it.bufferedKey, identity[B], it.eq)
	it.bufferedIt = nil
	if err != nil {
		return err
	}
	it.table = table
	return nil
}

func (it *joinIter[D, B, K, R]) Next() (R, bool, error) {
	var zero R
	for !it.done {
		if it.pos < len(it.matches) {
			b := it.matches[it.pos]
			it.pos++
			return it.emit(it.current, b), true, nil
		}
		d, ok, err := it.driver.Next()
		if err != nil {
			return zero, false, err
		}
		if !ok {
			it.done = true
			break
		}
		if it.table == nil {
			if err := it.build(); err != nil {
				it.done = true
				return zero, false, err
			}
		}
		matches := it.table.get(it.driverKey(d))
		if len(matches) == 0 {
			if it.keepUnmatched {
				var none B
				return it.emit(d, none), true, nil
			}
			continue
		}
		it.current, it.matches, it.pos = d, matches, 0
	}
	return zero, false, nil
}

func (it *joinIter[D, B, K, R]) Close() error {
	it.done = true
	it.matches = nil
	if it.bufferedIt != nil {
		_ = it.bufferedIt.Close()
	}
	return it.driver.Close()
}

type groupJoinIter[O, I, K, R any] struct {
	outer    Iterator[O]
	inner    *Pipeline[I]
	innerIt  Iterator[I]
	outerKey func(O) K
	innerKey func(I) K
	result   func(O, []I) R
	eq       compare.Equality[K]
	table    *lookupTable[K, I]
	done     bool
}

func (it *groupJoinIter[O, I, K, R]) Next() (R, bool, error) {
	var zero R
	if it.done {
		return zero, false, nil
	}
	o, ok, err := it.outer.Next()
	if err != nil {
		return zero, false, err
	}
	if !ok {
		it.done = true
		return zero, false, nil
	}
	if it.table == nil {
		it.innerIt = it.inner.open()
		table, err := buildLookup(it.innerIt, it.innerKey, identity[I], it.eq)
		it.innerIt = nil
		if err != nil {
			it.done = true
			return zero, false, err
		}
		it.table = table
	}
	return it.result(o, it.table.get(it.outerKey(o))), true, nil
}

func (it *groupJoinIter[O, I, K, R]) Close() error {
	it.done = true
	if it.innerIt != nil {
		_ = it.innerIt.Close()
	}
	return it.outer.Close()
}
