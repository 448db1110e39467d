// Package world provides the scene-graph collaborator the view layer runs
// against: entity handles, typed components and resources with change
// detection, the node hierarchy, pointer-hover and focus input state, and
// asset path resolution.
//
// The view layer treats all of this as a narrow host interface. World is an
// in-memory reference implementation of that interface; a real host engine
// can be adapted behind the same operations.
//
// # Entities and Components
//
// Entities are opaque handles. Components are arbitrary Go values keyed by
// their concrete type, at most one per type per entity:
//
//	e := w.Spawn()
//	world.Insert(w, e, Label{Text: "hello"})
//	label, ok := world.Get[Label](w, e)
//
// Every mutation advances the world's change tick and stamps the touched
// component, so callers can ask "did this change since tick T":
//
//	if world.Changed[Label](w, e, since) { ... }
//
// # Input State
//
// The host feeds the current pointer-hover set and focus target once per
// frame. World keeps the previous frame's snapshot so predicates like
// "hover flipped since last frame" stay answerable during styling.
package world
