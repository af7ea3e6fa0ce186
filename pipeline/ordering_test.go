package pipeline

import (
	"cmp"
	stderrors "errors"
	"slices"
	"strings"
	"testing"

	"github.com/kbukum/seqkit/compare"
)

type person struct {
	Name string
	Age  int
}

var people = []person{
	{"carol", 35}, {"alice", 30}, {"bob", 25}, {"dave", 30}, {"erin", 25},
}

func TestOrderBy_Stable(t *testing.T) {
	words := []string{"pear", "fig", "apple", "kiwi", "plum", "date", "banana", "lime"}
	got := collect(t, OrderBy(FromSlice(words), func(s string) int { return len(s) }).Pipeline)

	want := slices.Clone(words)
	slices.SortStableFunc(want, func(a, b string) int { return cmp.Compare(len(a), len(b)) })
	assertSlice(t, want, got)
}

func TestOrderByDescending_Stable(t *testing.T) {
	got := collect(t, OrderByDescending(FromSlice(people), func(p person) int { return p.Age }).Pipeline)
	assertSlice(t, []person{{"carol", 35}, {"alice", 30}, {"dave", 30}, {"bob", 25}, {"erin", 25}}, got)
}

func TestThenBy(t *testing.T) {
	byAge := OrderBy(FromSlice(people), func(p person) int { return p.Age })
	got := collect(t, ThenByDescending(byAge, func(p person) string { return p.Name }).Pipeline)
	assertSlice(t, []person{{"erin", 25}, {"bob", 25}, {"dave", 30}, {"alice", 30}, {"carol", 35}}, got)

	// refining must not change the original ordering
	assertSlice(t, []person{{"bob", 25}, {"erin", 25}, {"alice", 30}, {"dave", 30}, {"carol", 35}}, collect(t, byAge.Pipeline))
}

func TestThenByFunc(t *testing.T) {
	src := FromSlice([]string{"b", "A", "a", "B"})
	got := collect(t, ThenByFunc(
		OrderByFunc(src, strings.ToLower, strings.Compare),
		identity[string], strings.Compare,
	).Pipeline)
	assertSlice(t, []string{"A", "a", "B", "b"}, got)
}

func TestOrder(t *testing.T) {
	assertSlice(t, []int{1, 2, 3, 5}, collect(t, Order(Of(3, 1, 5, 2)).Pipeline))
	assertSlice(t, []int{5, 3, 2, 1}, collect(t, OrderDescending(Of(3, 1, 5, 2)).Pipeline))
	assertSlice(t, []string{"a", "B", "c"}, collect(t, OrderFunc(Of("c", "B", "a"), compare.FoldOrder).Pipeline))
}

func TestOrderBy_EmptyEvaluatesNoKeys(t *testing.T) {
	calls := 0
	got := collect(t, OrderBy(Empty[int](), func(v int) int {
		calls++
		return v
	}).Pipeline)
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
	if calls != 0 {
		t.Errorf("expected no key evaluations, got %d", calls)
	}
}

func TestOrderBy_KeyEvaluatedOncePerElement(t *testing.T) {
	calls := 0
	collect(t, OrderBy(Range(0, 50), func(v int) int {
		calls++
		return -v
	}).Pipeline)
	if calls != 50 {
		t.Errorf("expected 50 key evaluations, got %d", calls)
	}
}

func TestOrderBy_Deferred(t *testing.T) {
	r := newRecorder()
	p := OrderBy(track(r, "src", 2, 1), identity[int])
	if len(r.events) != 0 {
		t.Fatalf("expected nothing opened, got %v", r.events)
	}
	it := p.Iter()
	if len(r.events) != 1 {
		t.Fatalf("expected only open, got %v", r.events)
	}
	if _, _, err := it.Next(); err != nil {
		t.Fatal(err)
	}
	assertSlice(t, []string{"open src", "close src"}, r.events)
	_ = it.Close()
}

func TestOrdered_FirstLastUseSingleScan(t *testing.T) {
	o := OrderBy(FromSlice(people), func(p person) int { return p.Age })

	first, err := First(o.Pipeline)
	if err != nil {
		t.Fatal(err)
	}
	if first != (person{"bob", 25}) {
		t.Errorf("got %v, want bob", first)
	}
	last, err := Last(o.Pipeline)
	if err != nil {
		t.Fatal(err)
	}
	if last != (person{"carol", 35}) {
		t.Errorf("got %v, want carol", last)
	}

	desc := OrderByDescending(FromSlice(people), func(p person) int { return p.Age })
	last, err = Last(desc.Pipeline)
	if err != nil {
		t.Fatal(err)
	}
	if last != (person{"erin", 25}) {
		t.Errorf("got %v, want erin", last)
	}
	if _, err := First(OrderBy(Empty[person](), func(p person) int { return p.Age }).Pipeline); err == nil {
		t.Error("expected an error on an empty sequence")
	}
}

func TestOrdered_SpanAfterBuffering(t *testing.T) {
	it := Order(Of(3, 1, 2)).Iter()
	defer it.Close()
	if _, ok := TrySpan(it); ok {
		t.Fatal("expected no span before buffering")
	}
	if n, ok := TryCount(it); !ok || n != 3 {
		t.Errorf("expected upstream count 3, got %d ok=%v", n, ok)
	}
	v, _, err := it.Next()
	if err != nil || v != 1 {
		t.Fatalf("got %d (%v), want 1", v, err)
	}
	span, ok := TrySpan(it)
	if !ok {
		t.Fatal("expected span once buffered")
	}
	assertSlice(t, []int{2, 3}, span)
}

func TestOrderBy_Error(t *testing.T) {
	_, err := Collect(OrderBy(failing(errBoom, 1, 2), identity[int]).Pipeline)
	if !stderrors.Is(err, errBoom) {
		t.Errorf("expected errBoom, got %v", err)
	}
}

func TestReverse(t *testing.T) {
	assertSlice(t, []int{3, 2, 1}, collect(t, Reverse(Of(1, 2, 3))))
	assertSlice(t, []int{3, 2, 1}, collect(t, Reverse(stream(1, 2, 3))))
	assertSlice(t, []int{}, collect(t, Reverse(Empty[int]())))

	src := []int{1, 2, 3}
	collect(t, Reverse(FromSlice(src)))
	assertSlice(t, []int{1, 2, 3}, src)
}
