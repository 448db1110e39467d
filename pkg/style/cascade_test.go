package style

import (
	"image/color"
	"testing"

	"github.com/go-drift/loom/pkg/world"
)

var (
	red  = color.RGBA{R: 0xff, A: 0xff}
	blue = color.RGBA{B: 0xff, A: 0xff}
)

func attach(w *world.World, e world.Entity, sets ...*StyleSet) {
	world.Insert(w, e, ElementStyles{Sets: sets})
}

func TestComputeStyleUnconditionalOrder(t *testing.T) {
	w := world.NewWorld()
	e := w.Spawn()
	attach(w, e,
		NewStyleSet(BackgroundColor(red), Padding(Px(4))),
		NewStyleSet(BackgroundColor(blue)),
	)

	cs := ComputeStyle(w, e)
	if cs.BackgroundColor != blue {
		t.Errorf("later attachment should win, got %v", cs.BackgroundColor)
	}
	if !cs.Has(FieldPadding) || cs.Padding != Px(4) {
		t.Errorf("padding from the first set should survive, got %v", cs.Padding)
	}
	if cs.Has(FieldOpacity) {
		t.Error("unset attribute reported as set")
	}
}

func TestComputeStyleConditionalAfterUnconditional(t *testing.T) {
	w := world.NewWorld()
	e := w.Spawn()
	world.Insert(w, e, ElementClasses{Classes: []string{"active"}})

	// The conditional blue lives on the first set; the unconditional red on
	// the second. Conditionals fold after all unconditionals, so blue wins.
	attach(w, e,
		NewStyleSet().Selector("&.active", BackgroundColor(blue)),
		NewStyleSet(BackgroundColor(red)),
	)

	cs := ComputeStyle(w, e)
	if cs.BackgroundColor != blue {
		t.Errorf("matching conditional should override unconditional, got %v", cs.BackgroundColor)
	}
}

func TestComputeStyleNonMatchingConditional(t *testing.T) {
	w := world.NewWorld()
	e := w.Spawn()
	attach(w, e, NewStyleSet(BackgroundColor(red)).Selector("&.active", BackgroundColor(blue)))

	cs := ComputeStyle(w, e)
	if cs.BackgroundColor != red {
		t.Errorf("non-matching conditional must not apply, got %v", cs.BackgroundColor)
	}
}

func TestComputeStyleDespawnedPanics(t *testing.T) {
	w := world.NewWorld()
	e := w.Spawn()
	w.Despawn(e)
	defer func() {
		if recover() == nil {
			t.Error("expected panic styling a despawned entity")
		}
	}()
	ComputeStyle(w, e)
}

func TestUpdateStylesInitialAndIncremental(t *testing.T) {
	w := world.NewWorld()
	e := w.Spawn()
	attach(w, e, NewStyleSet(BackgroundColor(red)))

	UpdateStyles(w, 0)
	cs, ok := world.Get[ComputedStyle](w, e)
	if !ok || cs.BackgroundColor != red {
		t.Fatalf("expected red computed style, got %v (ok=%v)", cs, ok)
	}

	// Nothing changed since: the computed style's tick must not advance.
	since := w.Tick()
	UpdateStyles(w, since)
	if world.Changed[ComputedStyle](w, e, since) {
		t.Error("untouched entity should not be restyled")
	}

	world.Insert(w, e, ElementClasses{Classes: []string{"active"}})
	attach(w, e, NewStyleSet(BackgroundColor(red)).Selector("&.active", BackgroundColor(blue)))
	UpdateStyles(w, since)
	cs, _ = world.Get[ComputedStyle](w, e)
	if cs.BackgroundColor != blue {
		t.Errorf("expected blue after class change, got %v", cs.BackgroundColor)
	}
}

func TestUpdateStylesHoverFlip(t *testing.T) {
	w := world.NewWorld()
	e := w.Spawn()
	attach(w, e, NewStyleSet(BackgroundColor(red)).Selector("&:hover", BackgroundColor(blue)))

	UpdateStyles(w, 0)
	since := w.Tick()

	w.SetHover(map[world.Entity]world.HitData{e: {}})
	UpdateStyles(w, since)
	cs, _ := world.Get[ComputedStyle](w, e)
	if cs.BackgroundColor != blue {
		t.Fatalf("expected blue while hovered, got %v", cs.BackgroundColor)
	}

	since = w.Tick()
	w.SetHover(nil)
	UpdateStyles(w, since)
	cs, _ = world.Get[ComputedStyle](w, e)
	if cs.BackgroundColor != red {
		t.Errorf("expected red after hover left, got %v", cs.BackgroundColor)
	}
}

func TestUpdateStylesAncestorClassWithinDepth(t *testing.T) {
	w := world.NewWorld()
	parent := w.Spawn()
	child := w.Spawn()
	w.SetParent(child, parent)
	attach(w, child, NewStyleSet(BackgroundColor(red)).Selector(".on > &", BackgroundColor(blue)))

	UpdateStyles(w, 0)
	since := w.Tick()

	world.Insert(w, parent, ElementClasses{Classes: []string{"on"}})
	UpdateStyles(w, since)
	cs, _ := world.Get[ComputedStyle](w, child)
	if cs.BackgroundColor != blue {
		t.Errorf("parent class change within selector depth should restyle the child, got %v", cs.BackgroundColor)
	}
}

func TestUpdateStylesIgnoresAncestorBeyondDepth(t *testing.T) {
	w := world.NewWorld()
	grand := w.Spawn()
	parent := w.Spawn()
	child := w.Spawn()
	w.SetParent(parent, grand)
	w.SetParent(child, parent)
	// Depth 0: no selector reaches ancestors.
	attach(w, child, NewStyleSet(BackgroundColor(red)))

	UpdateStyles(w, 0)
	since := w.Tick()

	world.Insert(w, grand, ElementClasses{Classes: []string{"on"}})
	UpdateStyles(w, since)
	if world.Changed[ComputedStyle](w, child, since) {
		t.Error("class change out of selector reach must not restyle the child")
	}
}
