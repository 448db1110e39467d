package world

// HitData describes a pointer hit on an entity, in the host's logical
// coordinates.
type HitData struct {
	X, Y float64
}

type hoverState struct {
	current  map[Entity]HitData
	previous map[Entity]HitData
}

type focusState struct {
	current     Entity
	visible     bool
	prevCurrent Entity
	prevVisible bool
}

// SetHover replaces the pointer-hover set for the current frame. The
// previous set is retained as the prior-frame snapshot so styling can
// detect hover transitions. The map is typically the hit entity plus its
// ancestor chain up to the root, as produced by host picking.
func (w *World) SetHover(hits map[Entity]HitData) {
	w.hover.previous = w.hover.current
	w.hover.current = hits
}

// Hovering reports whether e is currently hovered: either e is in the
// hover set, or some entity in the hover set is a descendant of e.
func (w *World) Hovering(e Entity) bool {
	return hoveringIn(w, w.hover.current, e)
}

// WasHovering is Hovering against the prior-frame snapshot.
func (w *World) WasHovering(e Entity) bool {
	return hoveringIn(w, w.hover.previous, e)
}

// HoverHit returns the hit data recorded for e this frame, if e is a
// direct member of the hover set.
func (w *World) HoverHit(e Entity) (HitData, bool) {
	hit, ok := w.hover.current[e]
	return hit, ok
}

func hoveringIn(w *World, hits map[Entity]HitData, e Entity) bool {
	if e == NoEntity || len(hits) == 0 {
		return false
	}
	if _, ok := hits[e]; ok {
		return true
	}
	for target := range hits {
		if w.IsAncestor(e, target) {
			return true
		}
	}
	return false
}

// SetFocus moves keyboard focus to e. visible tells whether the focus ring
// should be shown (focus reached via keyboard rather than pointer). Pass
// NoEntity to clear focus. The previous focus is retained as the
// prior-frame snapshot.
func (w *World) SetFocus(e Entity, visible bool) {
	w.focus.prevCurrent = w.focus.current
	w.focus.prevVisible = w.focus.visible
	w.focus.current = e
	w.focus.visible = visible
}

// Focused returns the entity holding keyboard focus, or NoEntity.
func (w *World) Focused() Entity {
	return w.focus.current
}

// FocusVisible reports whether the focused entity should show a focus
// indicator.
func (w *World) FocusVisible() bool {
	return w.focus.visible
}

// HasFocus reports whether e itself holds focus.
func (w *World) HasFocus(e Entity) bool {
	return e != NoEntity && w.focus.current == e
}

// FocusWithin reports whether focus is on e or on one of e's descendants.
func (w *World) FocusWithin(e Entity) bool {
	if e == NoEntity || w.focus.current == NoEntity {
		return false
	}
	return w.focus.current == e || w.IsAncestor(e, w.focus.current)
}

// FocusWithinWas is FocusWithin against the prior-frame snapshot.
func (w *World) FocusWithinWas(e Entity) bool {
	if e == NoEntity || w.focus.prevCurrent == NoEntity {
		return false
	}
	return w.focus.prevCurrent == e || w.IsAncestor(e, w.focus.prevCurrent)
}

// HadFocus reports whether e held focus in the prior frame.
func (w *World) HadFocus(e Entity) bool {
	return e != NoEntity && w.focus.prevCurrent == e
}

// FocusVisibleWas reports the prior frame's focus-indicator flag.
func (w *World) FocusVisibleWas() bool {
	return w.focus.prevVisible
}
