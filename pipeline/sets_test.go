package pipeline

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/kbukum/seqkit/compare"
)

func TestDistinct(t *testing.T) {
	got := collect(t, Distinct(Of(3, 2, 1, 3, 2, 4, 1, 5)))
	assertSlice(t, []int{3, 2, 1, 4, 5}, got)
}

func TestDistinct_Lazy(t *testing.T) {
	r := newRecorder()
	v, err := ElementAt(Distinct(track(r, "src", 1, 1, 2, 3, 4)), 1)
	if err != nil || v != 2 {
		t.Fatalf("got %d (%v), want 2", v, err)
	}
	if r.pulls["src"] != 3 {
		t.Errorf("expected 3 pulls, got %d", r.pulls["src"])
	}
}

func TestDistinctFunc(t *testing.T) {
	got := collect(t, DistinctFunc(Of("Go", "go", "Rust", "GO"), compare.FoldString()))
	assertSlice(t, []string{"Go", "Rust"}, got)
}

func TestDistinctBy(t *testing.T) {
	got := collect(t, DistinctBy(FromSlice(people), func(p person) int { return p.Age }))
	assertSlice(t, []person{{"carol", 35}, {"alice", 30}, {"bob", 25}}, got)
}

func TestDistinctByFunc(t *testing.T) {
	got := collect(t, DistinctByFunc(Of("ab", "AB", "cd"), strings.ToUpper, compare.Default[string]()))
	assertSlice(t, []string{"ab", "cd"}, got)
}

func TestUnion(t *testing.T) {
	got := collect(t, Union(Of(1, 2, 2, 3), Of(3, 4, 1, 5)))
	assertSlice(t, []int{1, 2, 3, 4, 5}, got)

	got2 := collect(t, UnionFunc(Of("a"), Of("A", "b"), compare.FoldString()))
	assertSlice(t, []string{"a", "b"}, got2)

	got3 := collect(t, UnionBy(FromSlice(people[:2]), FromSlice(people[2:]), func(p person) int { return p.Age }))
	assertSlice(t, []person{{"carol", 35}, {"alice", 30}, {"bob", 25}}, got3)
}

func TestIntersect(t *testing.T) {
	got := collect(t, Intersect(Of(1, 2, 2, 3, 4), Of(4, 2, 9)))
	assertSlice(t, []int{2, 4}, got)

	got2 := collect(t, IntersectFunc(Of("A", "b", "a"), Of("a"), compare.FoldString()))
	assertSlice(t, []string{"A"}, got2)
}

func TestIntersect_StopsWhenSetExhausted(t *testing.T) {
	r := newRecorder()
	got := collect(t, Intersect(track(r, "first", 1, 2, 3, 4, 5), Of(2)))
	assertSlice(t, []int{2}, got)
	if r.pulls["first"] != 2 {
		t.Errorf("expected 2 pulls of first, got %d", r.pulls["first"])
	}
}

func TestIntersectBy(t *testing.T) {
	got := collect(t, IntersectBy(FromSlice(people), Of(25, 35), func(p person) int { return p.Age }))
	assertSlice(t, []person{{"carol", 35}, {"bob", 25}}, got)

	got2 := collect(t, IntersectByFunc(Of("Go", "Rust"), Of("go"), identity[string], compare.FoldString()))
	assertSlice(t, []string{"Go"}, got2)
}

func TestExcept(t *testing.T) {
	got := collect(t, Except(Of(1, 2, 2, 3, 4, 1), Of(2, 9)))
	assertSlice(t, []int{1, 3, 4}, got)

	got2 := collect(t, ExceptFunc(Of("A", "b", "B"), Of("a"), compare.FoldString()))
	assertSlice(t, []string{"b"}, got2)

	got3 := collect(t, ExceptBy(FromSlice(people), Of(30), func(p person) int { return p.Age }))
	assertSlice(t, []person{{"carol", 35}, {"bob", 25}}, got3)

	got4 := collect(t, ExceptByFunc(Of("x", "Y"), Of("y"), identity[string], compare.FoldString()))
	assertSlice(t, []string{"x"}, got4)
}

func TestExcept_SecondOpenedOnFirstPull(t *testing.T) {
	r := newRecorder()
	it := Except(track(r, "first", 1, 2), track(r, "second", 2)).Iter()
	assertSlice(t, []string{"open first"}, r.events)
	v, ok, err := it.Next()
	if err != nil || !ok || v != 1 {
		t.Fatalf("got %d ok=%v (%v), want 1", v, ok, err)
	}
	assertSlice(t, []string{"open first", "open second", "close second"}, r.events)
	_ = it.Close()
	assertSlice(t, []string{"open first", "open second", "close second", "close first"}, r.events)
}

func TestExcept_ErrorInSecond(t *testing.T) {
	r := newRecorder()
	_, err := Collect(Except(track(r, "first", 1), failing(errBoom, 2)))
	if !stderrors.Is(err, errBoom) {
		t.Errorf("expected errBoom, got %v", err)
	}
	assertSlice(t, []string{"open first", "close first"}, r.events)
}
