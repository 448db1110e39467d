package view

import (
	"reflect"
)

// View is an immutable description of part of the display tree. Views are
// cheap values recreated on every presenter invocation; the retained data
// lives in the opaque state threaded through the lifecycle.
//
// The state argument is whatever Build returned for this instance,
// type-erased. Passing a state built by a different view type is a
// programming error and panics on downcast.
//
// Lifecycle per instance: Build once, any number of Updates, Raze exactly
// once. After Raze the state must not be used.
type View interface {
	// Build constructs the retained state for a fresh instance,
	// allocating any owned display nodes and child state.
	Build(cx *Cx) any

	// Update re-applies this view's configuration onto existing state,
	// mutating it in place when the output shape is unchanged and
	// razing-then-rebuilding affected children when it is not.
	Update(cx *Cx, state any)

	// Assemble attaches child display nodes under this view's own nodes
	// and returns the resulting span. Views without nodes of their own
	// delegate to their children and aggregate.
	Assemble(cx *Cx, state any) NodeSpan

	// Nodes is a read-only projection of the current state into its span.
	Nodes(cx *Cx, state any) NodeSpan

	// Raze recursively tears down all owned state and display nodes.
	Raze(cx *Cx, state any)
}

// Equaler is implemented by views whose equality is meaningful, such as
// Bind, which compares the presenter pointer and props. Callers may use it
// to skip rework for unchanged views.
type Equaler interface {
	Equals(other View) bool
}

// emptyView renders nothing. Nil views are normalized to it.
type emptyView struct{}

func (emptyView) Build(cx *Cx) any                     { return nil }
func (emptyView) Update(cx *Cx, state any)             {}
func (emptyView) Assemble(cx *Cx, state any) NodeSpan  { return EmptySpan() }
func (emptyView) Nodes(cx *Cx, state any) NodeSpan     { return EmptySpan() }
func (emptyView) Raze(cx *Cx, state any)               {}

// childSlot couples a child view with the state it built. Composite views
// own a slot per child; updateSlot is the single place that decides
// between in-place update and raze-then-rebuild.
type childSlot struct {
	view  View
	state any
}

func normalize(v View) View {
	if v == nil {
		return emptyView{}
	}
	return v
}

func buildSlot(cx *Cx, v View) childSlot {
	v = normalize(v)
	return childSlot{view: v, state: v.Build(cx)}
}

// updateSlot applies a new view value to an existing slot. Same concrete
// view type updates the retained state in place; a type change razes the
// old subtree, builds the new one, and marks the structure changed.
func updateSlot(cx *Cx, s *childSlot, v View) {
	v = normalize(v)
	if canUpdateView(s.view, v) {
		s.view = v
		v.Update(cx, s.state)
		return
	}
	s.view.Raze(cx, s.state)
	*s = buildSlot(cx, v)
	cx.markStructureChanged()
}

func canUpdateView(existing, next View) bool {
	return reflect.TypeOf(existing) == reflect.TypeOf(next)
}

func razeSlot(cx *Cx, s *childSlot) {
	if s.view == nil {
		return
	}
	s.view.Raze(cx, s.state)
	s.view = nil
	s.state = nil
}

func slotNodes(cx *Cx, s *childSlot) NodeSpan {
	if s.view == nil {
		return EmptySpan()
	}
	return s.view.Nodes(cx, s.state)
}

func assembleSlot(cx *Cx, s *childSlot) NodeSpan {
	if s.view == nil {
		return EmptySpan()
	}
	return s.view.Assemble(cx, s.state)
}
