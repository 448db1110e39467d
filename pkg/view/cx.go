package view

import (
	"reflect"

	"github.com/go-drift/loom/pkg/world"
)

// Cx is the per-invocation context threaded through presenter calls and
// the view lifecycle. It carries the single mutable handle to the world —
// there is exactly one Cx in flight per tick — and records which reactive
// inputs the current presenter invocation reads.
type Cx struct {
	w     *world.World
	sched *Scheduler
	owner world.Entity   // presenter node entity, NoEntity at the root
	pn    *presenterNode // nil outside a presenter invocation
}

// World exposes the world for direct reads and writes. Access through
// World is not dependency-tracked; use UseResource, UseComponent and
// ReadAtom when the read should re-trigger the presenter on change.
func (cx *Cx) World() *world.World {
	return cx.w
}

// Owner returns the entity of the presenter instance this context belongs
// to, or NoEntity at the mount root.
func (cx *Cx) Owner() world.Entity {
	return cx.owner
}

// CreateEntity returns an entity owned by the current presenter instance,
// despawned when the instance is razed. Slots are addressed by call order
// within one invocation: the n-th CreateEntity call of every invocation
// returns the same entity. Call order must therefore be stable across
// invocations of the same instance.
func (cx *Cx) CreateEntity() world.Entity {
	if cx.pn == nil {
		panic("view: CreateEntity outside a presenter invocation")
	}
	idx := cx.pn.ownedCur
	cx.pn.ownedCur++
	if idx < len(cx.pn.owned) {
		return cx.pn.owned[idx]
	}
	e := cx.w.Spawn()
	cx.pn.owned = append(cx.pn.owned, e)
	return e
}

// UseResource reads the global resource of type T and registers it as a
// tracked dependency of the current invocation.
func UseResource[T any](cx *Cx) (T, bool) {
	cx.trackResource(reflect.TypeFor[T]())
	return world.GetResource[T](cx.w)
}

// UseComponent reads the component of type T on e and registers the
// (entity, component) pair as a tracked dependency of the current
// invocation.
func UseComponent[T any](cx *Cx, e world.Entity) (T, bool) {
	cx.trackComponent(e, reflect.TypeFor[T]())
	return world.Get[T](cx.w, e)
}

func (cx *Cx) trackResource(t reflect.Type) {
	if cx.pn == nil {
		return
	}
	for _, r := range cx.pn.trackedResources {
		if r == t {
			return
		}
	}
	cx.pn.trackedResources = append(cx.pn.trackedResources, t)
}

func (cx *Cx) trackComponent(e world.Entity, t reflect.Type) {
	if cx.pn == nil {
		return
	}
	for _, c := range cx.pn.trackedComponents {
		if c.entity == e && c.typ == t {
			return
		}
	}
	cx.pn.trackedComponents = append(cx.pn.trackedComponents, trackedComponent{entity: e, typ: t})
}

// markStructureChanged flags the current presenter node and its ancestors
// so the assembly pass re-parents their display nodes. Structural changes
// propagate upward: an ancestor's element must re-collect child spans when
// any nested presenter's output shape changed.
func (cx *Cx) markStructureChanged() {
	pn := cx.pn
	for pn != nil {
		if pn.structureChanged {
			return
		}
		pn.structureChanged = true
		pn = cx.sched.nodes[pn.parent]
	}
	cx.sched.rootStructureChanged = true
}
