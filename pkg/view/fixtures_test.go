package view

import (
	"github.com/go-drift/loom/pkg/world"
)

// probeLog counts lifecycle calls across all probes sharing it.
type probeLog struct {
	builds  int
	updates int
	razes   int
}

// probeView is a leaf fixture producing one display node and recording
// its lifecycle in a shared log. The tag is stamped on the node as a Name
// so tests can locate it.
type probeView struct {
	log *probeLog
	tag string
}

type probeState struct {
	node world.Entity
}

func probe(log *probeLog, tag string) View {
	return probeView{log: log, tag: tag}
}

func (v probeView) Build(cx *Cx) any {
	v.log.builds++
	st := &probeState{node: cx.w.Spawn()}
	world.Insert(cx.w, st.node, Name{Value: v.tag})
	return st
}

func (v probeView) Update(cx *Cx, state any) {
	v.log.updates++
	st := state.(*probeState)
	if n, _ := world.Get[Name](cx.w, st.node); n.Value != v.tag {
		world.Insert(cx.w, st.node, Name{Value: v.tag})
	}
}

func (v probeView) Assemble(cx *Cx, state any) NodeSpan {
	return SpanOf(state.(*probeState).node)
}

func (v probeView) Nodes(cx *Cx, state any) NodeSpan {
	return SpanOf(state.(*probeState).node)
}

func (v probeView) Raze(cx *Cx, state any) {
	v.log.razes++
	cx.w.Despawn(state.(*probeState).node)
}

// harness bundles a world, scheduler and root context for driving views
// directly in unit tests.
type harness struct {
	w     *world.World
	sched *Scheduler
	cx    *Cx
}

func newHarness() *harness {
	w := world.NewWorld()
	sched := NewScheduler(w)
	return &harness{w: w, sched: sched, cx: sched.rootCx()}
}

func (h *harness) liveEntities() int {
	n := 0
	h.w.Each(func(world.Entity) { n++ })
	return n
}

// findNamed returns the entity carrying the given Name, or NoEntity.
func (h *harness) findNamed(name string) world.Entity {
	found := world.NoEntity
	world.EachWith(h.w, func(e world.Entity, n Name) {
		if n.Value == name {
			found = e
		}
	})
	return found
}
