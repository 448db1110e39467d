package view

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/go-drift/loom/pkg/style"
	"github.com/go-drift/loom/pkg/world"
)

// Named attaches a debug name to the inner view's display node. The inner
// view must produce exactly one node; anything else is a programming error
// and panics.
func Named(inner View, name string) View {
	return namedView{inner: inner, name: name}
}

type namedView struct {
	inner View
	name  string
}

type decoratorState struct {
	slot childSlot
}

func (v namedView) Build(cx *Cx) any {
	st := &decoratorState{slot: buildSlot(cx, v.inner)}
	node := mustSoleNode(cx, &st.slot, "view.Named")
	world.Insert(cx.w, node, Name{Value: v.name})
	return st
}

func (v namedView) Update(cx *Cx, state any) {
	st := state.(*decoratorState)
	updateSlot(cx, &st.slot, v.inner)
	node := mustSoleNode(cx, &st.slot, "view.Named")
	if current, ok := world.Get[Name](cx.w, node); !ok || current.Value != v.name {
		world.Insert(cx.w, node, Name{Value: v.name})
	}
}

func (v namedView) Assemble(cx *Cx, state any) NodeSpan {
	return assembleSlot(cx, &state.(*decoratorState).slot)
}

func (v namedView) Nodes(cx *Cx, state any) NodeSpan {
	return slotNodes(cx, &state.(*decoratorState).slot)
}

func (v namedView) Raze(cx *Cx, state any) {
	razeSlot(cx, &state.(*decoratorState).slot)
}

// WithClasses adds class names to every display node the inner view
// produces. Class additions are idempotent; the change tick only advances
// when a class is actually new.
func WithClasses(inner View, classes ...string) View {
	return classesView{inner: inner, classes: classes}
}

type classesView struct {
	inner   View
	classes []string
}

func (v classesView) applyClasses(cx *Cx, st *decoratorState) {
	for _, node := range slotNodes(cx, &st.slot).Flatten(nil) {
		current, ok := world.Get[style.ElementClasses](cx.w, node)
		if !ok {
			world.Insert(cx.w, node, style.ElementClasses{Classes: slices.Clone(v.classes)})
			continue
		}
		missing := false
		for _, c := range v.classes {
			if !current.Has(c) {
				missing = true
				break
			}
		}
		if !missing {
			continue
		}
		world.Update(cx.w, node, func(ec *style.ElementClasses) {
			for _, c := range v.classes {
				if !ec.Has(c) {
					ec.Classes = append(ec.Classes, c)
				}
			}
		})
	}
}

func (v classesView) Build(cx *Cx) any {
	st := &decoratorState{slot: buildSlot(cx, v.inner)}
	v.applyClasses(cx, st)
	return st
}

func (v classesView) Update(cx *Cx, state any) {
	st := state.(*decoratorState)
	updateSlot(cx, &st.slot, v.inner)
	v.applyClasses(cx, st)
}

func (v classesView) Assemble(cx *Cx, state any) NodeSpan {
	return assembleSlot(cx, &state.(*decoratorState).slot)
}

func (v classesView) Nodes(cx *Cx, state any) NodeSpan {
	return slotNodes(cx, &state.(*decoratorState).slot)
}

func (v classesView) Raze(cx *Cx, state any) {
	razeSlot(cx, &state.(*decoratorState).slot)
}

// WithStyles attaches StyleSets to every display node the inner view
// produces. Sets append after any already attached, so later attachments
// win the cascade on conflict.
func WithStyles(inner View, sets ...*style.StyleSet) View {
	return stylesView{inner: inner, sets: sets}
}

type stylesView struct {
	inner View
	sets  []*style.StyleSet
}

func (v stylesView) applyStyles(cx *Cx, st *decoratorState) {
	for _, node := range slotNodes(cx, &st.slot).Flatten(nil) {
		current, ok := world.Get[style.ElementStyles](cx.w, node)
		if ok && containsSets(current.Sets, v.sets) {
			continue
		}
		merged := slices.Clone(current.Sets)
		for _, s := range v.sets {
			if !slices.Contains(merged, s) {
				merged = append(merged, s)
			}
		}
		world.Insert(cx.w, node, style.ElementStyles{Sets: merged})
	}
}

func containsSets(have, want []*style.StyleSet) bool {
	for _, s := range want {
		if !slices.Contains(have, s) {
			return false
		}
	}
	return true
}

func (v stylesView) Build(cx *Cx) any {
	st := &decoratorState{slot: buildSlot(cx, v.inner)}
	v.applyStyles(cx, st)
	return st
}

func (v stylesView) Update(cx *Cx, state any) {
	st := state.(*decoratorState)
	updateSlot(cx, &st.slot, v.inner)
	v.applyStyles(cx, st)
}

func (v stylesView) Assemble(cx *Cx, state any) NodeSpan {
	return assembleSlot(cx, &state.(*decoratorState).slot)
}

func (v stylesView) Nodes(cx *Cx, state any) NodeSpan {
	return slotNodes(cx, &state.(*decoratorState).slot)
}

func (v stylesView) Raze(cx *Cx, state any) {
	razeSlot(cx, &state.(*decoratorState).slot)
}

// Insert places a component value on the inner view's display node. The
// inner view must produce exactly one node; anything else is a programming
// error and panics. The component is re-inserted on update only when its
// value changed.
func Insert[B any](inner View, bundle B) View {
	return insertView[B]{inner: inner, bundle: bundle}
}

type insertView[B any] struct {
	inner  View
	bundle B
}

func (v insertView[B]) Build(cx *Cx) any {
	st := &decoratorState{slot: buildSlot(cx, v.inner)}
	node := mustSoleNode(cx, &st.slot, "view.Insert")
	world.Insert(cx.w, node, v.bundle)
	return st
}

func (v insertView[B]) Update(cx *Cx, state any) {
	st := state.(*decoratorState)
	updateSlot(cx, &st.slot, v.inner)
	node := mustSoleNode(cx, &st.slot, "view.Insert")
	if current, ok := world.Get[B](cx.w, node); !ok || !reflect.DeepEqual(current, v.bundle) {
		world.Insert(cx.w, node, v.bundle)
	}
}

func (v insertView[B]) Assemble(cx *Cx, state any) NodeSpan {
	return assembleSlot(cx, &state.(*decoratorState).slot)
}

func (v insertView[B]) Nodes(cx *Cx, state any) NodeSpan {
	return slotNodes(cx, &state.(*decoratorState).slot)
}

func (v insertView[B]) Raze(cx *Cx, state any) {
	razeSlot(cx, &state.(*decoratorState).slot)
}

// Once runs fn against the inner view's span exactly once, at build.
func Once(inner View, fn func(cx *Cx, span NodeSpan)) View {
	return onceView{inner: inner, fn: fn}
}

type onceView struct {
	inner View
	fn    func(cx *Cx, span NodeSpan)
}

func (v onceView) Build(cx *Cx) any {
	st := &decoratorState{slot: buildSlot(cx, v.inner)}
	v.fn(cx, slotNodes(cx, &st.slot))
	return st
}

func (v onceView) Update(cx *Cx, state any) {
	st := state.(*decoratorState)
	updateSlot(cx, &st.slot, v.inner)
}

func (v onceView) Assemble(cx *Cx, state any) NodeSpan {
	return assembleSlot(cx, &state.(*decoratorState).slot)
}

func (v onceView) Nodes(cx *Cx, state any) NodeSpan {
	return slotNodes(cx, &state.(*decoratorState).slot)
}

func (v onceView) Raze(cx *Cx, state any) {
	razeSlot(cx, &state.(*decoratorState).slot)
}

// With runs fn against the inner view's span at build and on every
// update.
func With(inner View, fn func(cx *Cx, span NodeSpan)) View {
	return withView{inner: inner, fn: fn}
}

type withView struct {
	inner View
	fn    func(cx *Cx, span NodeSpan)
}

func (v withView) Build(cx *Cx) any {
	st := &decoratorState{slot: buildSlot(cx, v.inner)}
	v.fn(cx, slotNodes(cx, &st.slot))
	return st
}

func (v withView) Update(cx *Cx, state any) {
	st := state.(*decoratorState)
	updateSlot(cx, &st.slot, v.inner)
	v.fn(cx, slotNodes(cx, &st.slot))
}

func (v withView) Assemble(cx *Cx, state any) NodeSpan {
	return assembleSlot(cx, &state.(*decoratorState).slot)
}

func (v withView) Nodes(cx *Cx, state any) NodeSpan {
	return slotNodes(cx, &state.(*decoratorState).slot)
}

func (v withView) Raze(cx *Cx, state any) {
	razeSlot(cx, &state.(*decoratorState).slot)
}

// WithMemo runs fn at build, then again on updates only when deps differs
// from the previous deps value or the inner span's identity changed.
func WithMemo(inner View, deps any, fn func(cx *Cx, span NodeSpan)) View {
	return memoView{inner: inner, deps: deps, fn: fn}
}

type memoView struct {
	inner View
	deps  any
	fn    func(cx *Cx, span NodeSpan)
}

type memoState struct {
	slot     childSlot
	lastDeps any
	lastSpan NodeSpan
}

func (v memoView) Build(cx *Cx) any {
	st := &memoState{slot: buildSlot(cx, v.inner)}
	st.lastDeps = v.deps
	st.lastSpan = slotNodes(cx, &st.slot)
	v.fn(cx, st.lastSpan)
	return st
}

func (v memoView) Update(cx *Cx, state any) {
	st := state.(*memoState)
	updateSlot(cx, &st.slot, v.inner)
	span := slotNodes(cx, &st.slot)
	if reflect.DeepEqual(st.lastDeps, v.deps) && span.Eq(st.lastSpan) {
		return
	}
	st.lastDeps = v.deps
	st.lastSpan = span
	v.fn(cx, span)
}

func (v memoView) Assemble(cx *Cx, state any) NodeSpan {
	return assembleSlot(cx, &state.(*memoState).slot)
}

func (v memoView) Nodes(cx *Cx, state any) NodeSpan {
	return slotNodes(cx, &state.(*memoState).slot)
}

func (v memoView) Raze(cx *Cx, state any) {
	razeSlot(cx, &state.(*memoState).slot)
}

func mustSoleNode(cx *Cx, s *childSlot, op string) world.Entity {
	span := slotNodes(cx, s)
	node, ok := span.SoleNode()
	if !ok {
		panic(fmt.Sprintf("%s: requires a view producing exactly one node, got %d", op, span.Count()))
	}
	return node
}
