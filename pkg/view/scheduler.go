package view

import (
	"fmt"
	"slices"

	"github.com/go-drift/loom/pkg/style"
	"github.com/go-drift/loom/pkg/world"
)

// DefaultDivergenceTolerance is the number of consecutive non-shrinking
// dirty-set iterations a tick allows before declaring a reactive cycle.
const DefaultDivergenceTolerance = 16

// Scheduler drives the render loop: it finds presenter instances whose
// tracked dependencies went stale, re-invokes them until the dirty set
// drains, reassembles the display-node tree where output shapes changed,
// and recomputes stale styles. Ticks are synchronous and single-threaded;
// the host calls Tick once per frame.
type Scheduler struct {
	w     *world.World
	nodes map[world.Entity]*presenterNode

	rootSlot             childSlot
	mounted              bool
	rootStructureChanged bool
	styledAt             world.Tick

	// DivergenceTolerance bounds re-invocation: when the dirty set fails
	// to strictly shrink for this many consecutive iterations the tick
	// panics. A reactive cycle is a programming error, not a recoverable
	// condition.
	DivergenceTolerance int
}

// NewScheduler creates a scheduler over the given world.
func NewScheduler(w *world.World) *Scheduler {
	return &Scheduler{
		w:                   w,
		nodes:               make(map[world.Entity]*presenterNode),
		DivergenceTolerance: DefaultDivergenceTolerance,
	}
}

// World returns the world the scheduler drives.
func (s *Scheduler) World() *world.World {
	return s.w
}

// Mount installs the root view. The root is typically a Bind; its first
// invocation happens on the next Tick. Mounting twice razes the previous
// tree first.
func (s *Scheduler) Mount(v View) {
	if s.mounted {
		s.Unmount()
	}
	cx := s.rootCx()
	s.rootSlot = buildSlot(cx, v)
	s.mounted = true
	s.rootStructureChanged = true
}

// Unmount razes the whole retained tree.
func (s *Scheduler) Unmount() {
	if !s.mounted {
		return
	}
	cx := s.rootCx()
	razeSlot(cx, &s.rootSlot)
	s.mounted = false
	s.rootStructureChanged = false
}

// Tick runs one scheduler pass: re-invoke stale presenters to a fixed
// point, reassemble changed structure, then restyle. Safe to call with
// nothing mounted (no-op).
func (s *Scheduler) Tick() {
	if !s.mounted {
		return
	}
	s.flushInvocations()
	s.flushAssembly()
	style.UpdateStyles(s.w, s.styledAt)
	s.styledAt = s.w.Tick()
}

// flushInvocations re-invokes presenters until the dirty set drains.
// Each iteration collects nodes not yet built, nodes whose tracked
// dependencies changed since their last run, and nodes marked
// props-changed by an ancestor's Bind update (consuming the mark), then
// runs them parents-first (depth order) so props propagate downward
// within one tick. Runs can dirty further nodes — new Binds, prop
// transfers, reactive writes — so the loop repeats to a fixed point.
func (s *Scheduler) flushInvocations() {
	dirty := make(map[world.Entity]*presenterNode)

	prevSize := -1
	streak := 0
	for {
		for e, pn := range s.nodes {
			if pn.propsChanged || !pn.built || pn.stale(s.w) {
				pn.propsChanged = false
				dirty[e] = pn
			}
		}
		if len(dirty) == 0 {
			return
		}
		if prevSize >= 0 && len(dirty) >= prevSize {
			streak++
			if streak >= s.DivergenceTolerance {
				panic(fmt.Sprintf(
					"view: re-render diverged: dirty set held %d nodes after %d non-shrinking iterations; reactive cycle?",
					len(dirty), streak))
			}
		} else {
			streak = 0
		}
		prevSize = len(dirty)

		batch := make([]*presenterNode, 0, len(dirty))
		for _, pn := range dirty {
			batch = append(batch, pn)
		}
		slices.SortFunc(batch, func(a, b *presenterNode) int {
			if a.depth != b.depth {
				return a.depth - b.depth
			}
			return int(a.entity) - int(b.entity)
		})
		clear(dirty)
		for _, pn := range batch {
			// A parent's run may have razed this node mid-batch.
			if s.nodes[pn.entity] == nil {
				continue
			}
			s.runNode(pn)
		}
	}
}

// runNode clears the node's dependency records, re-invokes its presenter,
// and reconciles the produced view against the retained state. lastRun is
// stamped with the tick observed before the invocation, so writes made
// during the run — the signature of a reactive cycle — count as stale on
// the next iteration and feed the divergence guard.
func (s *Scheduler) runNode(pn *presenterNode) {
	pn.trackedResources = pn.trackedResources[:0]
	pn.trackedComponents = pn.trackedComponents[:0]
	pn.atomCur = 0
	pn.ownedCur = 0
	pn.lastRun = s.w.Tick()

	cx := s.nodeCx(pn)
	v := pn.invoke(cx)
	if !pn.built {
		pn.root = buildSlot(cx, v)
		pn.built = true
		cx.markStructureChanged()
	} else {
		updateSlot(cx, &pn.root, v)
	}
}

// flushAssembly reassembles the tree from the root while any node is
// marked structure-changed. Marks propagate to ancestors when set, so one
// root pass reaches every mark; the loop repeats as a guard in case
// assembly itself flags more structure.
func (s *Scheduler) flushAssembly() {
	for s.rootStructureChanged || s.anyStructureChanged() {
		s.rootStructureChanged = false
		cx := s.rootCx()
		assembleSlot(cx, &s.rootSlot)
		if !s.anyStructureChanged() {
			return
		}
	}
}

func (s *Scheduler) anyStructureChanged() bool {
	for _, pn := range s.nodes {
		if pn.structureChanged {
			return true
		}
	}
	return false
}

func (s *Scheduler) register(pn *presenterNode) {
	s.nodes[pn.entity] = pn
}

func (s *Scheduler) unregister(pn *presenterNode) {
	delete(s.nodes, pn.entity)
}

func (s *Scheduler) rootCx() *Cx {
	return &Cx{w: s.w, sched: s, owner: world.NoEntity}
}

func (s *Scheduler) nodeCx(pn *presenterNode) *Cx {
	return &Cx{w: s.w, sched: s, owner: pn.entity, pn: pn}
}
