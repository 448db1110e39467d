// Package view implements the reactive retained-mode view layer: a
// declarative tree of views, produced by presenter functions, reconciled
// into live display nodes in a world and kept in sync with changes to the
// reactive inputs the presenters read.
//
// # Views and State
//
// A View is an immutable, cheap description of what to render. The
// retained data lives in per-instance state created by Build, mutated in
// place by Update, and torn down exactly once by Raze. Composite views
// (Sequence, Element, Cond, the For family) own their children's state and
// delegate lifecycle calls in fixed order.
//
// # Presenters
//
// A presenter is a function from (context, props) to a View. Bind couples
// a presenter with its props into a persistent node in the world. The
// Scheduler re-invokes a presenter whenever something it read during its
// last run — a resource, a component, an atom — has changed, then diffs
// the new View against the retained state:
//
//	func counter(cx *view.Cx, label string) view.View {
//	    count := view.CreateAtom[int](cx)
//	    return view.Element(
//	        view.Text(fmt.Sprintf("%s: %d", label, view.ReadAtom(cx, count))),
//	    )
//	}
//
//	sched := view.NewScheduler(w)
//	sched.Mount(view.Bind(counter, "clicks"))
//	sched.Tick()
//
// Dependency tracking is implicit: reading through UseResource,
// UseComponent or ReadAtom records the dependency for the current
// invocation; the records are cleared and fully rebuilt on every run.
//
// # Scheduling
//
// Each Tick runs two phases to a fixed point: first presenters with stale
// dependencies are re-invoked until none remain (guarded by a divergence
// tolerance that turns reactive cycles into a loud failure), then nodes
// whose output shape changed are reassembled so display nodes land under
// the right parents. A final pass recomputes styles for nodes whose style
// inputs went stale.
//
// # Atoms
//
// Atoms are per-presenter-instance cells addressed by call order, readable
// and writable from event handlers between ticks. Presenter logic must not
// change the number or order of atom-creating calls between invocations of
// the same instance; that call order is the slot address.
package view
