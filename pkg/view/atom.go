package view

import (
	"fmt"
	"reflect"

	"github.com/go-drift/loom/pkg/world"
)

// AtomHandle addresses one atom cell. Handles are stable across
// re-invocations of the owning presenter instance and may be captured by
// event handlers.
type AtomHandle[T any] struct {
	entity world.Entity
}

// Entity returns the entity backing the atom cell.
func (h AtomHandle[T]) Entity() world.Entity {
	return h.entity
}

// atomCell is the type-erased storage component of an atom entity.
// Access is downcast-checked: a type mismatch is a programming error.
type atomCell struct {
	value any
	typ   reflect.Type
}

// CreateAtom allocates (or, on re-invocation, re-addresses) an atom cell
// owned by the current presenter instance, initialized to the zero value.
//
// Slots are addressed by call order within one invocation: the n-th
// atom-creating call of every invocation returns the same cell. Presenter
// logic must not change the number or order of atom-creating calls
// between invocations of the same instance — this is a hard correctness
// precondition, not a recoverable condition.
func CreateAtom[T any](cx *Cx) AtomHandle[T] {
	return CreateAtomInit[T](cx, nil)
}

// CreateAtomInit is CreateAtom with an initializer, run only when the
// cell is first allocated.
func CreateAtomInit[T any](cx *Cx, init func() T) AtomHandle[T] {
	if cx.pn == nil {
		panic("view: CreateAtom outside a presenter invocation")
	}
	want := reflect.TypeFor[T]()
	idx := cx.pn.atomCur
	cx.pn.atomCur++
	if idx < len(cx.pn.atoms) {
		e := cx.pn.atoms[idx]
		cell, ok := world.Get[atomCell](cx.w, e)
		if !ok || cell.typ != want {
			panic(fmt.Sprintf("view: atom slot %d holds %v, requested %v; atom call order must be stable", idx, cellType(cell, ok), want))
		}
		return AtomHandle[T]{entity: e}
	}
	e := cx.w.Spawn()
	var v T
	if init != nil {
		v = init()
	}
	world.Insert(cx.w, e, atomCell{value: v, typ: want})
	cx.pn.atoms = append(cx.pn.atoms, e)
	return AtomHandle[T]{entity: e}
}

func cellType(cell atomCell, ok bool) any {
	if !ok {
		return "no cell"
	}
	return cell.typ
}

// ReadAtom returns the cell's current value and registers the cell as a
// tracked dependency of the current invocation, so a later write
// re-invokes this presenter.
func ReadAtom[T any](cx *Cx, h AtomHandle[T]) T {
	cell, ok := world.Get[atomCell](cx.w, h.entity)
	if !ok {
		panic(fmt.Sprintf("view: reading razed atom %d", h.entity))
	}
	if want := reflect.TypeFor[T](); cell.typ != want {
		panic(fmt.Sprintf("view: atom %d holds %v, read as %v", h.entity, cell.typ, want))
	}
	cx.trackComponent(h.entity, reflect.TypeFor[atomCell]())
	return cell.value.(T)
}

// WriteAtom stores a new value in the cell. It takes the world directly
// so event handlers can write between ticks without a presenter context;
// the scheduler's change detection re-invokes dependents on the next
// tick. Writing an atom whose owner was razed is a silent no-op.
func WriteAtom[T any](w *world.World, h AtomHandle[T], value T) {
	cell, ok := world.Get[atomCell](w, h.entity)
	if !ok {
		return
	}
	if want := reflect.TypeFor[T](); cell.typ != want {
		panic(fmt.Sprintf("view: atom %d holds %v, written as %v", h.entity, cell.typ, want))
	}
	world.Insert(w, h.entity, atomCell{value: value, typ: cell.typ})
}

// UpdateAtom applies fn to the cell's current value and stores the
// result, with WriteAtom's semantics.
func UpdateAtom[T any](w *world.World, h AtomHandle[T], fn func(T) T) {
	cell, ok := world.Get[atomCell](w, h.entity)
	if !ok {
		return
	}
	if want := reflect.TypeFor[T](); cell.typ != want {
		panic(fmt.Sprintf("view: atom %d holds %v, updated as %v", h.entity, cell.typ, want))
	}
	world.Insert(w, h.entity, atomCell{value: fn(cell.value.(T)), typ: cell.typ})
}

// DetachAtom releases the cell from its owning presenter instance, so it
// survives the instance's raze. The caller owns the backing entity from
// then on. The slot keeps its call-order address either way.
func DetachAtom[T any](cx *Cx, h AtomHandle[T]) {
	if cx.pn == nil {
		panic("view: DetachAtom outside a presenter invocation")
	}
	if cx.pn.detachedAtoms == nil {
		cx.pn.detachedAtoms = make(map[world.Entity]bool)
	}
	cx.pn.detachedAtoms[h.entity] = true
}
