package style

import (
	"fmt"

	"github.com/go-drift/loom/pkg/world"
)

// ComputeStyle folds every StyleSet attached to e into a ComputedStyle:
// first the unconditional attributes of each set in attachment order, then
// each set's matching conditional rules in declaration order. The last
// write to an attribute wins.
//
// Styling a despawned entity is a programming error and panics.
func ComputeStyle(w *world.World, e world.Entity) ComputedStyle {
	if !w.Alive(e) {
		panic(fmt.Sprintf("style: computing style of despawned entity %d", e))
	}
	var cs ComputedStyle
	styles, ok := world.Get[ElementStyles](w, e)
	if !ok {
		return cs
	}
	for _, set := range styles.Sets {
		set.applyUnconditional(&cs)
	}
	for _, set := range styles.Sets {
		set.applyConditional(&cs, w, e)
	}
	return cs
}

// UpdateStyles recomputes the ComputedStyle component of every styled
// entity whose style inputs went stale after the given tick.
//
// An entity is stale when its own ElementStyles or ElementClasses changed,
// or — only when some attached selector reaches ancestor state (Depth > 0)
// or consults hover/focus — when within Depth ancestor hops a class list
// changed or a hover/focus predicate flipped against the prior-frame
// snapshot. This bounds restyling cost by the ancestor reach actually in
// use instead of forcing a global pass.
func UpdateStyles(w *world.World, since world.Tick) {
	type target struct {
		e      world.Entity
		styles ElementStyles
	}
	var targets []target
	world.EachWith(w, func(e world.Entity, styles ElementStyles) {
		targets = append(targets, target{e: e, styles: styles})
	})
	for _, t := range targets {
		if styleStale(w, t.e, t.styles, since) {
			cs := ComputeStyle(w, t.e)
			if prev, ok := world.Get[ComputedStyle](w, t.e); ok && prev == cs {
				continue
			}
			world.Insert(w, t.e, cs)
		}
	}
}

func styleStale(w *world.World, e world.Entity, styles ElementStyles, since world.Tick) bool {
	if world.Changed[ElementStyles](w, e, since) || world.Changed[ElementClasses](w, e, since) {
		return true
	}
	if !world.Has[ComputedStyle](w, e) {
		return true
	}

	depth := 0
	usesHover := false
	usesFocus := false
	for _, set := range styles.Sets {
		if d := set.Depth(); d > depth {
			depth = d
		}
		usesHover = usesHover || set.UsesHover()
		usesFocus = usesFocus || set.UsesFocus()
	}
	if depth == 0 && !usesHover && !usesFocus {
		return false
	}

	node := e
	for hop := 0; node != world.NoEntity; hop++ {
		if hop > 0 && world.Changed[ElementClasses](w, node, since) {
			return true
		}
		if usesHover && w.Hovering(node) != w.WasHovering(node) {
			return true
		}
		if usesFocus && focusFlipped(w, node) {
			return true
		}
		if hop >= depth {
			break
		}
		node = w.Parent(node)
	}
	return false
}

func focusFlipped(w *world.World, e world.Entity) bool {
	if w.HasFocus(e) != w.HadFocus(e) {
		return true
	}
	if w.FocusWithin(e) != w.FocusWithinWas(e) {
		return true
	}
	if w.HasFocus(e) && w.FocusVisible() != w.FocusVisibleWas() {
		return true
	}
	return false
}
