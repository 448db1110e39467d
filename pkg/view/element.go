package view

import (
	"github.com/go-drift/loom/pkg/world"
)

// Name is the debug-name component applied by Named.
type Name struct {
	Value string
}

// TextContent is the component carrying the text of a Text view's node.
// The host's text pipeline renders from it.
type TextContent struct {
	Value string
}

// Element creates one display node and parents the children's flattened
// spans under it, in order.
func Element(children ...View) View {
	return elementView{children: children}
}

type elementView struct {
	children []View
}

type elementState struct {
	node  world.Entity
	slots []childSlot
}

func (v elementView) Build(cx *Cx) any {
	st := &elementState{node: cx.w.Spawn()}
	st.slots = make([]childSlot, len(v.children))
	for i, c := range v.children {
		st.slots[i] = buildSlot(cx, c)
	}
	return st
}

func (v elementView) Update(cx *Cx, state any) {
	st := state.(*elementState)
	st.slots = reconcileSlots(cx, st.slots, len(v.children), func(i int) View {
		return v.children[i]
	})
}

func (v elementView) Assemble(cx *Cx, state any) NodeSpan {
	st := state.(*elementState)
	var flat []world.Entity
	for i := range st.slots {
		flat = assembleSlot(cx, &st.slots[i]).Flatten(flat)
	}
	cx.w.ReplaceChildren(st.node, flat)
	return SpanOf(st.node)
}

func (v elementView) Nodes(cx *Cx, state any) NodeSpan {
	st := state.(*elementState)
	return SpanOf(st.node)
}

func (v elementView) Raze(cx *Cx, state any) {
	st := state.(*elementState)
	for i := range st.slots {
		razeSlot(cx, &st.slots[i])
	}
	st.slots = nil
	cx.w.Despawn(st.node)
}

// Portal renders children whose display nodes attach at the world root
// instead of under the enclosing element; its own span is empty, so the
// surrounding tree lays out as if the portal were not there.
func Portal(children ...View) View {
	return portalView{children: children}
}

type portalView struct {
	children []View
}

type portalState struct {
	slots []childSlot
}

func (v portalView) Build(cx *Cx) any {
	st := &portalState{slots: make([]childSlot, len(v.children))}
	for i, c := range v.children {
		st.slots[i] = buildSlot(cx, c)
	}
	return st
}

func (v portalView) Update(cx *Cx, state any) {
	st := state.(*portalState)
	st.slots = reconcileSlots(cx, st.slots, len(v.children), func(i int) View {
		return v.children[i]
	})
}

func (v portalView) Assemble(cx *Cx, state any) NodeSpan {
	st := state.(*portalState)
	var flat []world.Entity
	for i := range st.slots {
		flat = assembleSlot(cx, &st.slots[i]).Flatten(flat)
	}
	for _, n := range flat {
		cx.w.SetParent(n, world.NoEntity)
	}
	return EmptySpan()
}

func (v portalView) Nodes(cx *Cx, state any) NodeSpan {
	return EmptySpan()
}

func (v portalView) Raze(cx *Cx, state any) {
	st := state.(*portalState)
	for i := range st.slots {
		razeSlot(cx, &st.slots[i])
	}
	st.slots = nil
}

// Text renders a single display node carrying the given text.
func Text(s string) View {
	return textView{text: s}
}

type textView struct {
	text string
}

type textState struct {
	node world.Entity
	last string
}

func (v textView) Build(cx *Cx) any {
	st := &textState{node: cx.w.Spawn(), last: v.text}
	world.Insert(cx.w, st.node, TextContent{Value: v.text})
	return st
}

func (v textView) Update(cx *Cx, state any) {
	st := state.(*textState)
	if st.last != v.text {
		st.last = v.text
		world.Insert(cx.w, st.node, TextContent{Value: v.text})
	}
}

func (v textView) Assemble(cx *Cx, state any) NodeSpan {
	return SpanOf(state.(*textState).node)
}

func (v textView) Nodes(cx *Cx, state any) NodeSpan {
	return SpanOf(state.(*textState).node)
}

func (v textView) Raze(cx *Cx, state any) {
	cx.w.Despawn(state.(*textState).node)
}

// TextExpr is Text with the string computed from the context on every
// build and update. Reads made through the context inside fn are tracked
// like any other presenter read.
func TextExpr(fn func(cx *Cx) string) View {
	return textExprView{fn: fn}
}

type textExprView struct {
	fn func(cx *Cx) string
}

func (v textExprView) Build(cx *Cx) any {
	st := &textState{node: cx.w.Spawn()}
	st.last = v.fn(cx)
	world.Insert(cx.w, st.node, TextContent{Value: st.last})
	return st
}

func (v textExprView) Update(cx *Cx, state any) {
	st := state.(*textState)
	text := v.fn(cx)
	if st.last != text {
		st.last = text
		world.Insert(cx.w, st.node, TextContent{Value: text})
	}
}

func (v textExprView) Assemble(cx *Cx, state any) NodeSpan {
	return SpanOf(state.(*textState).node)
}

func (v textExprView) Nodes(cx *Cx, state any) NodeSpan {
	return SpanOf(state.(*textState).node)
}

func (v textExprView) Raze(cx *Cx, state any) {
	cx.w.Despawn(state.(*textState).node)
}
