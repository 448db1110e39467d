package view

import (
	"reflect"

	"github.com/go-drift/loom/pkg/world"
)

// Presenter is a function from context and props to a View. Presenters
// are pure descriptions: all retained data lives in atoms, owned
// entities, and the view state the scheduler threads through lifecycle
// calls.
type Presenter[P any] func(cx *Cx, props P) View

// Bind couples a presenter with its props into a persistent node in the
// world. Building the Bind spawns the node and schedules its first
// invocation; updating it transfers new props into the live node and
// marks it for re-invocation only when the props actually differ
// (reflect.DeepEqual), which is the short-circuit that stops a parent
// rebuild from cascading into children whose inputs are unchanged.
func Bind[P any](presenter Presenter[P], props P) View {
	return bindView[P]{presenter: presenter, props: props}
}

type bindView[P any] struct {
	presenter Presenter[P]
	props     P
}

type bindState struct {
	node world.Entity
}

// Equals reports whether the other view is a Bind of the same presenter
// function with equal props.
func (v bindView[P]) Equals(other View) bool {
	o, ok := other.(bindView[P])
	if !ok {
		return false
	}
	return presenterPtr(v.presenter) == presenterPtr(o.presenter) &&
		reflect.DeepEqual(v.props, o.props)
}

func presenterPtr[P any](p Presenter[P]) uintptr {
	return reflect.ValueOf(p).Pointer()
}

func (v bindView[P]) Build(cx *Cx) any {
	e := cx.w.Spawn()
	pn := &presenterNode{
		entity: e,
		parent: cx.owner,
		props:  v.props,
		fnPtr:  presenterPtr(v.presenter),
	}
	if cx.pn != nil {
		pn.depth = cx.pn.depth + 1
	}
	presenter := v.presenter
	pn.invoke = func(icx *Cx) View {
		return presenter(icx, pn.props.(P))
	}
	cx.sched.register(pn)
	return &bindState{node: e}
}

func (v bindView[P]) Update(cx *Cx, state any) {
	st := state.(*bindState)
	pn := cx.sched.nodes[st.node]
	if pn == nil {
		panic("view: Bind updated after raze")
	}
	if pn.fnPtr != presenterPtr(v.presenter) {
		presenter := v.presenter
		pn.fnPtr = presenterPtr(presenter)
		pn.invoke = func(icx *Cx) View {
			return presenter(icx, pn.props.(P))
		}
		pn.props = v.props
		pn.propsChanged = true
		return
	}
	if !reflect.DeepEqual(pn.props, v.props) {
		pn.props = v.props
		pn.propsChanged = true
	}
}

func (v bindView[P]) Assemble(cx *Cx, state any) NodeSpan {
	st := state.(*bindState)
	pn := cx.sched.nodes[st.node]
	if pn == nil || !pn.built {
		return EmptySpan()
	}
	if !pn.structureChanged {
		return pn.span
	}
	icx := cx.sched.nodeCx(pn)
	pn.span = assembleSlot(icx, &pn.root)
	pn.structureChanged = false
	return pn.span
}

func (v bindView[P]) Nodes(cx *Cx, state any) NodeSpan {
	st := state.(*bindState)
	pn := cx.sched.nodes[st.node]
	if pn == nil || !pn.built {
		return EmptySpan()
	}
	icx := cx.sched.nodeCx(pn)
	return slotNodes(icx, &pn.root)
}

func (v bindView[P]) Raze(cx *Cx, state any) {
	st := state.(*bindState)
	pn := cx.sched.nodes[st.node]
	if pn == nil {
		return
	}
	icx := cx.sched.nodeCx(pn)
	if pn.built {
		razeSlot(icx, &pn.root)
	}
	for _, a := range pn.atoms {
		if !pn.detachedAtoms[a] {
			cx.w.Despawn(a)
		}
	}
	for _, e := range pn.owned {
		cx.w.Despawn(e)
	}
	cx.sched.unregister(pn)
	cx.w.Despawn(pn.entity)
}

// trackedComponent records one (entity, component type) pair read by a
// presenter during its last invocation.
type trackedComponent struct {
	entity world.Entity
	typ    reflect.Type
}

// presenterNode is the persistent record of one live Bind instance: the
// presenter closure, its current props, the state graph it built, and the
// dependency records from its last invocation. The records are cleared
// before every re-invocation and fully repopulated by the run that
// follows; they are only ever compared for staleness, never interpreted.
type presenterNode struct {
	entity world.Entity
	parent world.Entity // owning presenter node, NoEntity at the root
	depth  int

	invoke func(cx *Cx) View
	props  any
	fnPtr  uintptr

	root  childSlot
	built bool
	span  NodeSpan

	propsChanged     bool
	structureChanged bool
	lastRun          world.Tick

	trackedResources  []reflect.Type
	trackedComponents []trackedComponent

	atoms         []world.Entity
	detachedAtoms map[world.Entity]bool
	atomCur       int
	owned         []world.Entity
	ownedCur      int
}

func (pn *presenterNode) stale(w *world.World) bool {
	for _, t := range pn.trackedResources {
		if w.ResourceChangedDynamic(t, pn.lastRun) {
			return true
		}
	}
	for _, c := range pn.trackedComponents {
		if w.ChangedDynamic(c.entity, c.typ, pn.lastRun) {
			return true
		}
	}
	return false
}
