package world

import "testing"

func TestHoverMembershipAndAncestors(t *testing.T) {
	w := NewWorld()
	parent := w.Spawn()
	child := w.Spawn()
	other := w.Spawn()
	w.SetParent(child, parent)

	w.SetHover(map[Entity]HitData{child: {X: 10, Y: 20}})

	if !w.Hovering(child) {
		t.Error("direct hover member should report hovering")
	}
	if !w.Hovering(parent) {
		t.Error("ancestor of a hover member should report hovering")
	}
	if w.Hovering(other) {
		t.Error("unrelated entity should not report hovering")
	}

	hit, ok := w.HoverHit(child)
	if !ok || hit.X != 10 || hit.Y != 20 {
		t.Errorf("expected hit {10 20} on child, got %v (ok=%v)", hit, ok)
	}
	if _, ok := w.HoverHit(parent); ok {
		t.Error("ancestors are hovered but carry no hit data")
	}
}

func TestHoverPreviousSnapshot(t *testing.T) {
	w := NewWorld()
	a := w.Spawn()
	b := w.Spawn()

	w.SetHover(map[Entity]HitData{a: {}})
	w.SetHover(map[Entity]HitData{b: {}})

	if w.Hovering(a) {
		t.Error("a left the hover set")
	}
	if !w.WasHovering(a) {
		t.Error("a was hovered in the prior frame")
	}
	if !w.Hovering(b) || w.WasHovering(b) {
		t.Error("b is newly hovered this frame")
	}
}

func TestFocusTransitions(t *testing.T) {
	w := NewWorld()
	parent := w.Spawn()
	child := w.Spawn()
	w.SetParent(child, parent)

	w.SetFocus(child, true)
	if !w.HasFocus(child) || w.HasFocus(parent) {
		t.Fatal("focus should be on child only")
	}
	if !w.FocusWithin(parent) {
		t.Error("focus on a descendant should count as focus-within")
	}
	if !w.FocusVisible() {
		t.Error("expected visible focus")
	}

	w.SetFocus(NoEntity, false)
	if w.HasFocus(child) || w.Focused() != NoEntity {
		t.Error("expected focus cleared")
	}
	if !w.HadFocus(child) {
		t.Error("child held focus in the prior frame")
	}
	if !w.FocusWithinWas(parent) {
		t.Error("focus-within held in the prior frame")
	}
	if !w.FocusVisibleWas() {
		t.Error("prior frame's focus was visible")
	}
}
