package view

import (
	"testing"

	"github.com/go-drift/loom/pkg/world"
)

func TestSpanCountMatchesFlatten(t *testing.T) {
	spans := []NodeSpan{
		EmptySpan(),
		SpanOf(1),
		FragmentOf(),
		FragmentOf(SpanOf(1), EmptySpan(), SpanOf(2)),
		FragmentOf(FragmentOf(SpanOf(1)), SpanOf(2), FragmentOf(EmptySpan(), SpanOf(3))),
	}
	for _, s := range spans {
		if got, want := s.Count(), len(s.Flatten(nil)); got != want {
			t.Errorf("Count() = %d, len(Flatten) = %d", got, want)
		}
	}
}

func TestSpanFlattenOrder(t *testing.T) {
	s := FragmentOf(SpanOf(3), FragmentOf(SpanOf(1), SpanOf(4)), SpanOf(1))
	got := s.Flatten(nil)
	want := []world.Entity{3, 1, 4, 1}
	if len(got) != len(want) {
		t.Fatalf("Flatten = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Flatten = %v, want %v", got, want)
		}
	}
}

func TestSpanSoleNode(t *testing.T) {
	if _, ok := EmptySpan().SoleNode(); ok {
		t.Error("empty span has no sole node")
	}
	if n, ok := SpanOf(7).SoleNode(); !ok || n != 7 {
		t.Errorf("SoleNode = %d (ok=%v), want 7", n, ok)
	}
	if n, ok := FragmentOf(SpanOf(7)).SoleNode(); !ok || n != 7 {
		t.Errorf("fragment of one node should have a sole node, got %d (ok=%v)", n, ok)
	}
	if _, ok := FragmentOf(SpanOf(1), SpanOf(2)).SoleNode(); ok {
		t.Error("two-node fragment has no sole node")
	}
}

func TestSpanEq(t *testing.T) {
	if !EmptySpan().Eq(EmptySpan()) {
		t.Error("empty spans are equal")
	}
	if !SpanOf(1).Eq(SpanOf(1)) || SpanOf(1).Eq(SpanOf(2)) {
		t.Error("single spans compare by node")
	}
	if SpanOf(1).Eq(FragmentOf(SpanOf(1))) {
		t.Error("a fragment of one node is structurally distinct from the node")
	}
	a := FragmentOf(SpanOf(1), FragmentOf(SpanOf(2)))
	b := FragmentOf(SpanOf(1), FragmentOf(SpanOf(2)))
	c := FragmentOf(SpanOf(1), SpanOf(2))
	if !a.Eq(b) {
		t.Error("identical fragments are equal")
	}
	if a.Eq(c) {
		t.Error("nesting differences are visible to Eq")
	}
}

func TestSpanDespawn(t *testing.T) {
	w := world.NewWorld()
	a := w.Spawn()
	b := w.Spawn()
	keep := w.Spawn()

	FragmentOf(SpanOf(a), FragmentOf(SpanOf(b))).Despawn(w)
	if w.Alive(a) || w.Alive(b) {
		t.Error("span nodes should be despawned")
	}
	if !w.Alive(keep) {
		t.Error("unrelated entity should survive")
	}
}
