package viewtest

import (
	"fmt"
	"sort"
	"testing"

	"github.com/go-drift/loom/pkg/style"
	"github.com/go-drift/loom/pkg/view"
	"github.com/go-drift/loom/pkg/world"
)

// Tester drives a view tree through scheduler ticks against a private
// world, without a host renderer. Mutations (hover, focus, atom writes)
// go through the tester or the world between ticks, mirroring how a real
// host feeds input.
type Tester struct {
	w     *world.World
	sched *view.Scheduler
}

// New creates a tester with a fresh world. The mounted tree is razed via
// t.Cleanup.
func New(t *testing.T) *Tester {
	w := world.NewWorld()
	tester := &Tester{w: w, sched: view.NewScheduler(w)}
	t.Cleanup(tester.sched.Unmount)
	return tester
}

// World returns the tester's world for direct reads and writes.
func (t *Tester) World() *world.World {
	return t.w
}

// Scheduler returns the scheduler driving the mounted tree.
func (t *Tester) Scheduler() *view.Scheduler {
	return t.sched
}

// Mount installs the root view and runs one tick, so the tree is built,
// assembled, and styled when Mount returns.
func (t *Tester) Mount(v view.View) {
	t.sched.Mount(v)
	t.sched.Tick()
}

// Tick runs one scheduler pass.
func (t *Tester) Tick() {
	t.sched.Tick()
}

// TickN runs n scheduler passes.
func (t *Tester) TickN(n int) {
	for i := 0; i < n; i++ {
		t.sched.Tick()
	}
}

// Hover marks the given entities (and implicitly their ancestors) as
// hovered, replacing any previous hover set. Takes effect on the next
// tick's style pass.
func (t *Tester) Hover(entities ...world.Entity) {
	hits := make(map[world.Entity]world.HitData, len(entities))
	for _, e := range entities {
		hits[e] = world.HitData{}
	}
	t.w.SetHover(hits)
}

// ClearHover empties the hover set.
func (t *Tester) ClearHover() {
	t.w.SetHover(nil)
}

// Focus gives an entity keyboard focus.
func (t *Tester) Focus(e world.Entity, visible bool) {
	t.w.SetFocus(e, visible)
}

// Blur clears focus.
func (t *Tester) Blur() {
	t.w.SetFocus(world.NoEntity, false)
}

// FindNamed returns the unique display node carrying the given debug
// name. Zero or multiple matches panic; use AllNamed when multiplicity is
// expected.
func (t *Tester) FindNamed(name string) world.Entity {
	matches := t.AllNamed(name)
	if len(matches) != 1 {
		panic(fmt.Sprintf("viewtest: FindNamed(%q) matched %d nodes", name, len(matches)))
	}
	return matches[0]
}

// AllNamed returns every display node carrying the given debug name, in
// entity order.
func (t *Tester) AllNamed(name string) []world.Entity {
	var out []world.Entity
	world.EachWith(t.w, func(e world.Entity, n view.Name) {
		if n.Value == name {
			out = append(out, e)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllClass returns every display node carrying the given class, in
// entity order.
func (t *Tester) AllClass(class string) []world.Entity {
	var out []world.Entity
	world.EachWith(t.w, func(e world.Entity, ec style.ElementClasses) {
		if ec.Has(class) {
			out = append(out, e)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllText returns every display node whose text content equals s, in
// entity order.
func (t *Tester) AllText(s string) []world.Entity {
	var out []world.Entity
	world.EachWith(t.w, func(e world.Entity, tc view.TextContent) {
		if tc.Value == s {
			out = append(out, e)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Text returns the text content of a display node, or "" when it has
// none.
func (t *Tester) Text(e world.Entity) string {
	tc, _ := world.Get[view.TextContent](t.w, e)
	return tc.Value
}

// Style returns the computed style of a display node. The zero value is
// returned when no style pass has touched the node.
func (t *Tester) Style(e world.Entity) style.ComputedStyle {
	cs, _ := world.Get[style.ComputedStyle](t.w, e)
	return cs
}

// TextTree renders the subtree under e as an indented listing of names,
// classes and text, for diffing in failure messages.
func (t *Tester) TextTree(e world.Entity) string {
	var b []byte
	t.writeTree(&b, e, 0)
	return string(b)
}

func (t *Tester) writeTree(b *[]byte, e world.Entity, depth int) {
	for i := 0; i < depth; i++ {
		*b = append(*b, "  "...)
	}
	label := fmt.Sprintf("#%d", e)
	if n, ok := world.Get[view.Name](t.w, e); ok {
		label += " " + n.Value
	}
	if ec, ok := world.Get[style.ElementClasses](t.w, e); ok {
		for _, c := range ec.Classes {
			label += " ." + c
		}
	}
	if tc, ok := world.Get[view.TextContent](t.w, e); ok {
		label += fmt.Sprintf(" %q", tc.Value)
	}
	*b = append(*b, label...)
	*b = append(*b, '\n')
	for _, c := range t.w.Children(e) {
		t.writeTree(b, c, depth+1)
	}
}
