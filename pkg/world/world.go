package world

import (
	"reflect"
	"slices"
)

type componentSlot struct {
	value   any
	changed Tick
}

type entityRecord struct {
	parent     Entity
	children   []Entity
	components map[reflect.Type]*componentSlot
}

type resourceSlot struct {
	value   any
	changed Tick
}

// World is an in-memory entity store with typed components, typed global
// resources, a node hierarchy, and per-mutation change ticks.
//
// World is not safe for concurrent use. The view layer holds the single
// mutable handle during a tick; event handlers mutate it strictly between
// ticks.
type World struct {
	next      Entity
	tick      Tick
	entities  map[Entity]*entityRecord
	resources map[reflect.Type]*resourceSlot

	hover  hoverState
	focus  focusState
	assets AssetServer
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		next:      1,
		entities:  make(map[Entity]*entityRecord),
		resources: make(map[reflect.Type]*resourceSlot),
		assets:    AssetServer{table: make(map[string]AssetHandle)},
	}
}

// Tick returns the current change version. It advances by one on every
// mutating operation.
func (w *World) Tick() Tick {
	return w.tick
}

func (w *World) bump() Tick {
	w.tick++
	return w.tick
}

// Spawn creates a new live entity with no components and no parent.
func (w *World) Spawn() Entity {
	e := w.next
	w.next++
	w.bump()
	w.entities[e] = &entityRecord{components: make(map[reflect.Type]*componentSlot)}
	return e
}

// Despawn destroys an entity. The entity is detached from its parent and
// its children are orphaned (their parent becomes NoEntity); recursive
// teardown is the caller's job. Despawning a dead entity is a no-op.
func (w *World) Despawn(e Entity) {
	rec, ok := w.entities[e]
	if !ok {
		return
	}
	w.bump()
	if rec.parent != NoEntity {
		if p, ok := w.entities[rec.parent]; ok {
			p.children = slices.DeleteFunc(p.children, func(c Entity) bool { return c == e })
		}
	}
	for _, c := range rec.children {
		if cr, ok := w.entities[c]; ok {
			cr.parent = NoEntity
		}
	}
	delete(w.entities, e)
	delete(w.hover.current, e)
	delete(w.hover.previous, e)
	if w.focus.current == e {
		w.focus.current = NoEntity
	}
}

// Alive reports whether e refers to a live entity.
func (w *World) Alive(e Entity) bool {
	_, ok := w.entities[e]
	return ok
}

// Each calls fn for every live entity. Iteration order is unspecified.
func (w *World) Each(fn func(Entity)) {
	for e := range w.entities {
		fn(e)
	}
}

// SetParent attaches child under parent, appending it to the parent's child
// list. Passing NoEntity as the parent detaches the child. Dead entities on
// either side make this a no-op.
func (w *World) SetParent(child, parent Entity) {
	rec, ok := w.entities[child]
	if !ok {
		return
	}
	if parent != NoEntity {
		if _, ok := w.entities[parent]; !ok {
			return
		}
	}
	if rec.parent == parent {
		return
	}
	w.bump()
	if rec.parent != NoEntity {
		if p, ok := w.entities[rec.parent]; ok {
			p.children = slices.DeleteFunc(p.children, func(c Entity) bool { return c == child })
		}
	}
	rec.parent = parent
	if parent != NoEntity {
		p := w.entities[parent]
		p.children = append(p.children, child)
	}
}

// ReplaceChildren makes children the exact, ordered child list of parent.
// Previous children not in the new list are detached.
func (w *World) ReplaceChildren(parent Entity, children []Entity) {
	p, ok := w.entities[parent]
	if !ok {
		return
	}
	if slices.Equal(p.children, children) {
		return
	}
	w.bump()
	for _, c := range p.children {
		if cr, ok := w.entities[c]; ok && cr.parent == parent {
			cr.parent = NoEntity
		}
	}
	kept := make([]Entity, 0, len(children))
	for _, c := range children {
		cr, ok := w.entities[c]
		if !ok {
			continue
		}
		if cr.parent != NoEntity && cr.parent != parent {
			if old, ok := w.entities[cr.parent]; ok {
				old.children = slices.DeleteFunc(old.children, func(x Entity) bool { return x == c })
			}
		}
		cr.parent = parent
		kept = append(kept, c)
	}
	p.children = kept
}

// Parent returns the parent of e, or NoEntity.
func (w *World) Parent(e Entity) Entity {
	if rec, ok := w.entities[e]; ok {
		return rec.parent
	}
	return NoEntity
}

// Children returns the ordered child list of e. The returned slice must not
// be mutated.
func (w *World) Children(e Entity) []Entity {
	if rec, ok := w.entities[e]; ok {
		return rec.children
	}
	return nil
}

// Ancestors returns the ancestor chain of e, nearest first.
func (w *World) Ancestors(e Entity) []Entity {
	var out []Entity
	for p := w.Parent(e); p != NoEntity; p = w.Parent(p) {
		out = append(out, p)
	}
	return out
}

// IsAncestor reports whether anc appears in e's ancestor chain.
func (w *World) IsAncestor(anc, e Entity) bool {
	if anc == NoEntity {
		return false
	}
	for p := w.Parent(e); p != NoEntity; p = w.Parent(p) {
		if p == anc {
			return true
		}
	}
	return false
}

// Insert sets the component of value's concrete type on e, replacing any
// previous value and stamping the change tick. Inserting on a dead entity
// is a silent no-op: the host may despawn between event capture and
// handling.
func Insert[T any](w *World, e Entity, value T) {
	rec, ok := w.entities[e]
	if !ok {
		return
	}
	t := reflect.TypeFor[T]()
	tick := w.bump()
	if slot, ok := rec.components[t]; ok {
		slot.value = value
		slot.changed = tick
		return
	}
	rec.components[t] = &componentSlot{value: value, changed: tick}
}

// Get returns the component of type T on e.
func Get[T any](w *World, e Entity) (T, bool) {
	var zero T
	rec, ok := w.entities[e]
	if !ok {
		return zero, false
	}
	slot, ok := rec.components[reflect.TypeFor[T]()]
	if !ok {
		return zero, false
	}
	return slot.value.(T), true
}

// Has reports whether e carries a component of type T.
func Has[T any](w *World, e Entity) bool {
	_, ok := Get[T](w, e)
	return ok
}

// Remove deletes the component of type T from e, if present.
func Remove[T any](w *World, e Entity) {
	rec, ok := w.entities[e]
	if !ok {
		return
	}
	t := reflect.TypeFor[T]()
	if _, ok := rec.components[t]; ok {
		w.bump()
		delete(rec.components, t)
	}
}

// Update applies fn to the component of type T on e in place and stamps the
// change tick. It reports whether the component was present.
func Update[T any](w *World, e Entity, fn func(*T)) bool {
	rec, ok := w.entities[e]
	if !ok {
		return false
	}
	slot, ok := rec.components[reflect.TypeFor[T]()]
	if !ok {
		return false
	}
	v := slot.value.(T)
	fn(&v)
	slot.value = v
	slot.changed = w.bump()
	return true
}

// Changed reports whether the component of type T on e was written after
// the given tick. A missing component or dead entity reports false.
func Changed[T any](w *World, e Entity, since Tick) bool {
	rec, ok := w.entities[e]
	if !ok {
		return false
	}
	slot, ok := rec.components[reflect.TypeFor[T]()]
	if !ok {
		return false
	}
	return slot.changed > since
}

// ChangedDynamic is Changed for a reflect.Type known only at run time. The
// view layer's dependency records are type-erased, so staleness checks go
// through here.
func (w *World) ChangedDynamic(e Entity, t reflect.Type, since Tick) bool {
	rec, ok := w.entities[e]
	if !ok {
		return false
	}
	slot, ok := rec.components[t]
	if !ok {
		return false
	}
	return slot.changed > since
}

// EachWith calls fn for every live entity carrying a component of type T.
// Iteration order is unspecified.
func EachWith[T any](w *World, fn func(Entity, T)) {
	t := reflect.TypeFor[T]()
	for e, rec := range w.entities {
		if slot, ok := rec.components[t]; ok {
			fn(e, slot.value.(T))
		}
	}
}

// InsertResource sets the global resource of value's concrete type,
// replacing any previous value and stamping the change tick.
func InsertResource[T any](w *World, value T) {
	t := reflect.TypeFor[T]()
	tick := w.bump()
	if slot, ok := w.resources[t]; ok {
		slot.value = value
		slot.changed = tick
		return
	}
	w.resources[t] = &resourceSlot{value: value, changed: tick}
}

// GetResource returns the global resource of type T.
func GetResource[T any](w *World) (T, bool) {
	var zero T
	slot, ok := w.resources[reflect.TypeFor[T]()]
	if !ok {
		return zero, false
	}
	return slot.value.(T), true
}

// UpdateResource applies fn to the resource of type T in place and stamps
// the change tick. It reports whether the resource was present.
func UpdateResource[T any](w *World, fn func(*T)) bool {
	slot, ok := w.resources[reflect.TypeFor[T]()]
	if !ok {
		return false
	}
	v := slot.value.(T)
	fn(&v)
	slot.value = v
	slot.changed = w.bump()
	return true
}

// ResourceChanged reports whether the resource of type T was written after
// the given tick.
func ResourceChanged[T any](w *World, since Tick) bool {
	slot, ok := w.resources[reflect.TypeFor[T]()]
	if !ok {
		return false
	}
	return slot.changed > since
}

// ResourceChangedDynamic is ResourceChanged for a run-time reflect.Type.
func (w *World) ResourceChangedDynamic(t reflect.Type, since Tick) bool {
	slot, ok := w.resources[t]
	if !ok {
		return false
	}
	return slot.changed > since
}
