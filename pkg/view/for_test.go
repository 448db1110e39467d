package view

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/loom/pkg/world"
)

func keyedProbes(log *probeLog, keys []int) View {
	return ForKeyed(keys, func(k int) int { return k }, func(k int) View {
		return probe(log, fmt.Sprintf("item-%d", k))
	})
}

func TestForKeyedReorderPreservesState(t *testing.T) {
	h := newHarness()
	log := &probeLog{}

	slot := buildSlot(h.cx, keyedProbes(log, []int{1, 2, 3}))
	if log.builds != 3 {
		t.Fatalf("expected 3 builds, got %d", log.builds)
	}
	node1 := h.findNamed("item-1")
	node3 := h.findNamed("item-3")

	updateSlot(h.cx, &slot, keyedProbes(log, []int{3, 1, 4}))

	if h.findNamed("item-1") != node1 {
		t.Error("key 1 must keep its display node across the reorder")
	}
	if h.findNamed("item-3") != node3 {
		t.Error("key 3 must keep its display node across the move")
	}
	if h.findNamed("item-2") != world.NoEntity {
		t.Error("key 2 left the list and must be gone")
	}
	if log.razes != 1 {
		t.Errorf("expected exactly the departed key razed, got %d razes", log.razes)
	}
	if log.builds != 4 {
		t.Errorf("expected exactly the new key built, got %d builds", log.builds)
	}

	// The assembled order follows the new list.
	span := assembleSlot(h.cx, &slot)
	got := span.Flatten(nil)
	want := []world.Entity{node3, node1, h.findNamed("item-4")}
	if !slices.Equal(got, want) {
		t.Errorf("assembled order = %v, want %v", got, want)
	}
}

func TestForKeyedEqualKeysFastPath(t *testing.T) {
	h := newHarness()
	log := &probeLog{}

	slot := buildSlot(h.cx, keyedProbes(log, []int{1, 2}))
	updateSlot(h.cx, &slot, keyedProbes(log, []int{1, 2}))

	if log.updates != 2 || log.razes != 0 || log.builds != 2 {
		t.Errorf("equal keys should update in place, got %d/%d/%d builds/updates/razes",
			log.builds, log.updates, log.razes)
	}
	if h.sched.rootStructureChanged {
		t.Error("an unchanged key sequence must not mark the structure changed")
	}
}

func TestForKeyedClearAndRefill(t *testing.T) {
	h := newHarness()
	log := &probeLog{}

	slot := buildSlot(h.cx, keyedProbes(log, []int{1, 2}))
	updateSlot(h.cx, &slot, keyedProbes(log, nil))
	if log.razes != 2 {
		t.Fatalf("expected both entries razed, got %d", log.razes)
	}
	if got := slotNodes(h.cx, &slot).Count(); got != 0 {
		t.Fatalf("expected empty list, got %d nodes", got)
	}

	updateSlot(h.cx, &slot, keyedProbes(log, []int{2}))
	if log.builds != 3 {
		t.Errorf("refill must build fresh state, got %d builds", log.builds)
	}
}

func TestForKeyedDuplicateKeysMatchInScanOrder(t *testing.T) {
	h := newHarness()
	log := &probeLog{}

	slot := buildSlot(h.cx, keyedProbes(log, []int{7, 7}))
	if log.builds != 2 {
		t.Fatalf("expected 2 builds, got %d", log.builds)
	}
	updateSlot(h.cx, &slot, keyedProbes(log, []int{7}))
	if log.razes != 1 {
		t.Errorf("one duplicate left, one razed; got %d razes", log.razes)
	}
}

func TestForIndexPositionalReuse(t *testing.T) {
	h := newHarness()
	log := &probeLog{}

	indexed := func(items []string) View {
		return ForIndex(items, func(s string, i int) View {
			return probe(log, s)
		})
	}

	slot := buildSlot(h.cx, indexed([]string{"a", "b", "c"}))
	first := h.findNamed("a")

	// A "reorder" by position is just relabeling: no raze, no build.
	updateSlot(h.cx, &slot, indexed([]string{"c", "b", "a"}))
	if log.builds != 3 || log.razes != 0 {
		t.Errorf("positional lists never move state, got %d builds / %d razes", log.builds, log.razes)
	}
	if h.findNamed("c") != first {
		t.Error("position 0 must keep its display node")
	}

	updateSlot(h.cx, &slot, indexed([]string{"c"}))
	if log.razes != 2 {
		t.Errorf("surplus tail should be razed, got %d", log.razes)
	}
	updateSlot(h.cx, &slot, indexed([]string{"c", "d"}))
	if log.builds != 4 {
		t.Errorf("shortfall should be built fresh, got %d builds", log.builds)
	}
}

func TestLCSMatch(t *testing.T) {
	cases := []struct {
		a, b []int
		want []matchPair
	}{
		{[]int{1, 2, 3}, []int{1, 2, 3}, []matchPair{{0, 0}, {1, 1}, {2, 2}}},
		{[]int{1, 2, 3}, []int{3, 1, 4}, []matchPair{{2, 0}}},
		{[]int{1, 2, 3, 4}, []int{2, 4}, []matchPair{{1, 0}, {3, 1}}},
		{[]int{1, 2}, []int{3, 4}, nil},
		{nil, []int{1}, nil},
		{[]int{5, 1, 5}, []int{5, 5}, []matchPair{{0, 0}, {2, 1}}},
	}
	for _, c := range cases {
		got := lcsMatch(c.a, c.b)
		if diff := cmp.Diff(c.want, got, cmp.AllowUnexported(matchPair{})); diff != "" {
			t.Errorf("lcsMatch(%v, %v) mismatch (-want +got):\n%s", c.a, c.b, diff)
		}
	}
}
