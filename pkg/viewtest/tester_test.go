package viewtest

import (
	"strings"
	"testing"

	"github.com/go-drift/loom/pkg/style"
	"github.com/go-drift/loom/pkg/view"
)

type listProps struct {
	Items []string
}

func present(cx *view.Cx, p listProps) view.View {
	return view.Named(view.Element(
		view.ForKeyed(p.Items, func(s string) string { return s }, func(s string) view.View {
			return view.WithClasses(view.Text(s), "item")
		}),
	), "list")
}

func TestMountAndFind(t *testing.T) {
	tester := New(t)
	tester.Mount(view.Bind(present, listProps{Items: []string{"alpha", "beta"}}))

	list := tester.FindNamed("list")
	if got := len(tester.World().Children(list)); got != 2 {
		t.Fatalf("expected 2 children, got %d", got)
	}
	if got := len(tester.AllClass("item")); got != 2 {
		t.Errorf("expected 2 classed nodes, got %d", got)
	}
	nodes := tester.AllText("alpha")
	if len(nodes) != 1 || tester.Text(nodes[0]) != "alpha" {
		t.Errorf("expected one node reading \"alpha\", got %v", nodes)
	}
}

func TestHoverRestyles(t *testing.T) {
	tester := New(t)
	set := style.NewStyleSet(style.Opacity(1)).Selector("&:hover", style.Opacity(0.5))
	hoverable := func(cx *view.Cx, _ struct{}) view.View {
		return view.Named(view.WithStyles(view.Element(), set), "target")
	}

	tester.Mount(view.Bind(hoverable, struct{}{}))
	target := tester.FindNamed("target")
	if cs := tester.Style(target); cs.Opacity != 1 {
		t.Fatalf("expected opacity 1, got %v", cs.Opacity)
	}

	tester.Hover(target)
	tester.Tick()
	if cs := tester.Style(target); cs.Opacity != 0.5 {
		t.Errorf("expected opacity 0.5 while hovered, got %v", cs.Opacity)
	}

	tester.ClearHover()
	tester.Tick()
	if cs := tester.Style(target); cs.Opacity != 1 {
		t.Errorf("expected opacity 1 after hover cleared, got %v", cs.Opacity)
	}
}

func TestFocusRestyles(t *testing.T) {
	tester := New(t)
	set := style.NewStyleSet().Selector("&:focus-visible", style.BorderWidth(style.Px(2)))
	focusable := func(cx *view.Cx, _ struct{}) view.View {
		return view.Named(view.WithStyles(view.Element(), set), "field")
	}

	tester.Mount(view.Bind(focusable, struct{}{}))
	field := tester.FindNamed("field")

	tester.Focus(field, true)
	tester.Tick()
	if cs := tester.Style(field); !cs.Has(style.FieldBorderWidth) {
		t.Error("expected focus ring once keyboard-focused")
	}

	tester.Blur()
	tester.Tick()
	if cs := tester.Style(field); cs.Has(style.FieldBorderWidth) {
		t.Error("expected no focus ring after blur")
	}
}

func TestTextTreeListing(t *testing.T) {
	tester := New(t)
	tester.Mount(view.Bind(present, listProps{Items: []string{"alpha"}}))

	list := tester.FindNamed("list")
	out := tester.TextTree(list)
	if !strings.Contains(out, "list") || !strings.Contains(out, `"alpha"`) {
		t.Errorf("listing missing expected entries:\n%s", out)
	}
}
