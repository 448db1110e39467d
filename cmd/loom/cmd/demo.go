package cmd

import (
	"fmt"
	"strconv"

	"github.com/go-drift/loom/pkg/style"
	"github.com/go-drift/loom/pkg/view"
	"github.com/go-drift/loom/pkg/world"
)

func init() {
	RegisterCommand(&Command{
		Name:  "demo",
		Short: "Run the headless demo tree",
		Long: `Build a small presenter tree against an in-memory world, run a few
scheduler ticks with simulated state changes, and print the resulting
display tree after each tick.`,
		Usage: "loom demo [ticks]",
		Run:   runDemo,
	})
}

type demoItems struct {
	Items []string
}

var demoStyle = style.NewStyleSet(
	style.Display(style.DisplayFlex),
	style.Direction(style.FlexColumn),
	style.Padding(style.Px(8)),
).Selector("&:hover",
	style.Cursor(style.CursorPointer),
).Selector("&.selected",
	style.Opacity(0.5),
)

// demoSelected is captured so the demo loop can write the selection the
// way an event handler would.
var demoSelected view.AtomHandle[string]

func demoList(cx *view.Cx, _ struct{}) view.View {
	items, _ := view.UseResource[demoItems](cx)
	demoSelected = view.CreateAtomInit(cx, func() string { return "" })
	current := view.ReadAtom(cx, demoSelected)

	return view.Named(view.WithStyles(view.Element(
		view.ForKeyed(items.Items, func(s string) string { return s }, func(s string) view.View {
			item := view.Text(s)
			if s == current {
				item = view.WithClasses(item, "selected")
			}
			return item
		}),
	), demoStyle), "list")
}

func runDemo(args []string) error {
	ticks := 3
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid tick count %q", args[0])
		}
		ticks = n
	}

	w := world.NewWorld()
	sched := view.NewScheduler(w)

	world.InsertResource(w, demoItems{Items: []string{"alpha", "beta", "gamma"}})
	sched.Mount(view.Bind(demoList, struct{}{}))

	for i := 0; i < ticks; i++ {
		sched.Tick()
		fmt.Printf("tick %d:\n", i+1)
		printTree(w)

		// Simulate state changes between ticks: rotate the list, which
		// the presenter tracks through UseResource, and select the new
		// head the way an event handler would.
		world.UpdateResource(w, func(d *demoItems) {
			d.Items = append(d.Items[1:], d.Items[0])
		})
		if d, ok := world.GetResource[demoItems](w); ok {
			view.WriteAtom(w, demoSelected, d.Items[0])
		}
	}
	sched.Unmount()
	return nil
}

func printTree(w *world.World) {
	var roots []world.Entity
	w.Each(func(e world.Entity) {
		if w.Parent(e) == world.NoEntity {
			roots = append(roots, e)
		}
	})
	for _, r := range roots {
		printNode(w, r, 1)
	}
}

func printNode(w *world.World, e world.Entity, depth int) {
	for i := 0; i < depth; i++ {
		fmt.Print("  ")
	}
	fmt.Printf("#%d", e)
	if n, ok := world.Get[view.Name](w, e); ok {
		fmt.Printf(" %s", n.Value)
	}
	if ec, ok := world.Get[style.ElementClasses](w, e); ok {
		for _, c := range ec.Classes {
			fmt.Printf(" .%s", c)
		}
	}
	if tc, ok := world.Get[view.TextContent](w, e); ok {
		fmt.Printf(" %q", tc.Value)
	}
	fmt.Println()
	for _, c := range w.Children(e) {
		printNode(w, c, depth+1)
	}
}
