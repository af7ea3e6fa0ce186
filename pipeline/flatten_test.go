package pipeline

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestFlatMap(t *testing.T) {
	got := collect(t, FlatMap(Of(1, 2, 3), func(v int) *Pipeline[int] { return Repeat(v, v) }))
	assertSlice(t, []int{1, 2, 2, 3, 3, 3}, got)
}

func TestFlatMapWith(t *testing.T) {
	got := collect(t, FlatMapWith(Of("ab", "c"),
		func(s string) *Pipeline[rune] { return FromSlice([]rune(s)) },
		func(s string, r rune) string { return fmt.Sprintf("%s:%c", s, r) }))
	assertSlice(t, []string{"ab:a", "ab:b", "c:c"}, got)
}

func TestFlatMapSlice(t *testing.T) {
	got := collect(t, FlatMapSlice(Of(1, 0, 2), func(v int) []int { return make([]int, v) }))
	assertSlice(t, []int{0, 0, 0}, got)
}

func TestFlatMap_DisposalOrder(t *testing.T) {
	r := newRecorder()
	p := FlatMap(track(r, "outer", 1, 2), func(v int) *Pipeline[int] {
		return track(r, fmt.Sprintf("inner%d", v), v, v*10)
	})
	assertSlice(t, []int{1, 10, 2, 20}, collect(t, p))
	assertSlice(t, []string{
		"open outer",
		"open inner1", "close inner1",
		"open inner2", "close inner2",
		"close outer",
	}, r.events)
}

func TestFlatMap_AbandonedClosesInnerThenOuter(t *testing.T) {
	r := newRecorder()
	p := FlatMap(track(r, "outer", 1, 2), func(v int) *Pipeline[int] {
		return track(r, fmt.Sprintf("inner%d", v), v, v*10)
	})
	v, err := First(p)
	if err != nil || v != 1 {
		t.Fatalf("got %d (%v), want 1", v, err)
	}
	assertSlice(t, []string{"open outer", "open inner1", "close inner1", "close outer"}, r.events)
}

func TestFlatMap_InnerError(t *testing.T) {
	r := newRecorder()
	_, err := Collect(FlatMap(track(r, "outer", 1, 2), func(int) *Pipeline[int] { return failing(errBoom, 7) }))
	if !stderrors.Is(err, errBoom) {
		t.Errorf("expected errBoom, got %v", err)
	}
	assertSlice(t, []string{"open outer", "close outer"}, r.events)
}
